package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"

	"tarotbot/internal/models"
	"tarotbot/internal/tarot"
)

// ErrRender is returned when a spread image cannot be produced: missing
// or corrupt artwork, or no geometry for the layout kind. Callers fall
// back to text-only delivery.
var ErrRender = errors.New("render failed")

// Renderer composites drawn cards onto a shared background image. The
// background is loaded once and never mutated; every render draws onto
// its own canvas.
type Renderer struct {
	background image.Image
	source     ArtworkSource
	logger     *zap.Logger
}

// NewRenderer loads the background template from backgroundPath.
func NewRenderer(backgroundPath string, source ArtworkSource, logger *zap.Logger) (*Renderer, error) {
	bg, err := imaging.Open(backgroundPath)
	if err != nil {
		return nil, fmt.Errorf("load background %q: %w", backgroundPath, err)
	}
	logger.Info("Background template loaded",
		zap.String("path", backgroundPath),
		zap.Int("width", bg.Bounds().Dx()),
		zap.Int("height", bg.Bounds().Dy()),
	)
	return &Renderer{background: bg, source: source, logger: logger}, nil
}

// Render produces the spread image as PNG bytes plus a suggested
// filename. Reversed cards are flipped 180° before any layout-specific
// rotation is applied.
func (r *Renderer) Render(ctx context.Context, def tarot.Definition, cards []models.Card, reversed []bool) ([]byte, string, error) {
	if len(cards) != def.CardCount || len(reversed) != len(cards) {
		return nil, "", fmt.Errorf("%w: got %d cards for %q", ErrRender, len(cards), def.Type)
	}

	artwork, err := r.loadArtwork(ctx, cards, reversed)
	if err != nil {
		return nil, "", err
	}

	var dc *gg.Context
	switch def.Layout {
	case tarot.LayoutSingle, tarot.LayoutPair, tarot.LayoutTriple:
		dc, err = r.composeLinear(def.Layout, artwork)
	case tarot.LayoutCelticCross:
		dc, err = r.composeCelticCross(artwork)
	default:
		return nil, "", fmt.Errorf("%w: no geometry for layout %q", ErrRender, def.Layout)
	}
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, "", fmt.Errorf("%w: encode png: %v", ErrRender, err)
	}

	filename := "spread.png"
	if def.CardCount == 1 {
		filename = "card.png"
	}
	return buf.Bytes(), filename, nil
}

// loadArtwork fetches and orients every card image. All decoding happens
// inside this call; nothing is held open afterwards.
func (r *Renderer) loadArtwork(ctx context.Context, cards []models.Card, reversed []bool) ([]image.Image, error) {
	artwork := make([]image.Image, len(cards))
	for i, card := range cards {
		img, err := r.source.Load(ctx, card.ImageURL)
		if err != nil {
			return nil, fmt.Errorf("%w: card %q: %v", ErrRender, card.Name, err)
		}
		if reversed[i] {
			img = imaging.Rotate180(img)
		}
		artwork[i] = img
	}
	return artwork, nil
}

// composeLinear lays cards out left-to-right on the background with
// equal spacing, vertically centered. Multi-card layouts get a 1-based
// index label beneath each card.
func (r *Renderer) composeLinear(kind tarot.LayoutKind, artwork []image.Image) (*gg.Context, error) {
	layout, ok := linearLayouts[kind]
	if !ok {
		return nil, fmt.Errorf("%w: no geometry for layout %q", ErrRender, kind)
	}

	dc := gg.NewContextForImage(r.background)
	dc.SetFontFace(basicfont.Face7x13)

	bgW, bgH := dc.Width(), dc.Height()

	fitted := make([]image.Image, len(artwork))
	total := 0
	for i, img := range artwork {
		fitted[i] = imaging.Fit(img, layout.maxCardW, layout.maxCardH, imaging.Lanczos)
		total += fitted[i].Bounds().Dx()
	}

	spacing := (bgW - total) / (len(fitted) + 1)
	x := spacing
	for i, img := range fitted {
		w, h := img.Bounds().Dx(), img.Bounds().Dy()
		y := (bgH - h) / 2
		dc.DrawImage(img, x, y)
		if layout.labeled {
			drawLabel(dc, strconv.Itoa(i+1), float64(x+w/2), float64(y+h+18))
		}
		x += w + spacing
	}
	return dc, nil
}

// composeCelticCross places the ten cards at the fixed slot table. The
// crossing card is rotated a further 90° on top of its orientation flip.
func (r *Renderer) composeCelticCross(artwork []image.Image) (*gg.Context, error) {
	bg := imaging.Resize(r.background, celticCanvasW, celticCanvasH, imaging.Lanczos)
	dc := gg.NewContextForImage(bg)
	dc.SetFontFace(basicfont.Face7x13)

	for i, slot := range celticSlots {
		img := artwork[i]
		if slot.Rotate90 {
			img = imaging.Fit(img, slot.H, slot.W, imaging.Lanczos)
			img = imaging.Rotate90(img)
		} else {
			img = imaging.Fit(img, slot.W, slot.H, imaging.Lanczos)
		}

		w, h := img.Bounds().Dx(), img.Bounds().Dy()
		x := slot.X + (slot.W-w)/2
		y := slot.Y + (slot.H-h)/2
		dc.DrawImage(img, x, y)

		drawLabel(dc, strconv.Itoa(i+1), float64(slot.LabelX), float64(slot.LabelY))
	}
	return dc, nil
}

// drawLabel draws centered text with a dark drop shadow for legibility
// on busy backgrounds.
func drawLabel(dc *gg.Context, text string, x, y float64) {
	dc.SetRGBA(0, 0, 0, 0.8)
	dc.DrawStringAnchored(text, x+1, y+1, 0.5, 0.5)
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(text, x, y, 0.5, 0.5)
}
