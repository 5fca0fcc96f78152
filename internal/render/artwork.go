package render

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
)

// ArtworkSource resolves a card's artwork reference to a decoded image.
type ArtworkSource interface {
	Load(ctx context.Context, ref string) (image.Image, error)
}

// HTTPSource fetches artwork over HTTP; refs are absolute URLs as served
// by the card backend.
type HTTPSource struct {
	client *http.Client
}

// NewHTTPSource creates an artwork source with the given request timeout.
func NewHTTPSource(timeout time.Duration) *HTTPSource {
	return &HTTPSource{client: &http.Client{Timeout: timeout}}
}

func (s *HTTPSource) Load(ctx context.Context, ref string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("artwork request %q: %w", ref, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch artwork %q: %w", ref, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch artwork %q: status %d", ref, resp.StatusCode)
	}

	img, err := imaging.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode artwork %q: %w", ref, err)
	}
	return img, nil
}

// DirSource loads artwork from a local directory; refs are resolved
// relative to the base directory by file name.
type DirSource struct {
	base string
}

// NewDirSource creates an artwork source rooted at dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{base: dir}
}

func (s *DirSource) Load(ctx context.Context, ref string) (image.Image, error) {
	path := filepath.Join(s.base, filepath.Base(ref))
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open artwork %q: %w", path, err)
	}
	return img, nil
}
