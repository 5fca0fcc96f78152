package render

import "tarotbot/internal/tarot"

// Slot is one fixed card position within a layout: bounding box, an
// optional extra 90° rotation (the Celtic Cross crossing card) and the
// anchor point of its number label.
type Slot struct {
	X, Y, W, H     int
	Rotate90       bool
	LabelX, LabelY int
}

// linearLayout describes the left-to-right layouts whose positions are
// computed from the background size at render time.
type linearLayout struct {
	maxCardW int
	maxCardH int
	labeled  bool
}

var linearLayouts = map[tarot.LayoutKind]linearLayout{
	tarot.LayoutSingle: {maxCardW: 360, maxCardH: 620},
	tarot.LayoutPair:   {maxCardW: 300, maxCardH: 520, labeled: true},
	tarot.LayoutTriple: {maxCardW: 240, maxCardH: 420, labeled: true},
}

// Celtic Cross canvas and slot table. Ten fixed boxes: the cross on the
// left (past, present with the crossing card beside it, future, above,
// below) and the staff of four on the right, bottom to top. Boxes do
// not overlap; the crossing card (slot 2) is rotated 90° and therefore
// uses a landscape box.
const (
	celticCanvasW = 1400
	celticCanvasH = 820

	celticCardW = 110
	celticCardH = 190
)

var celticSlots = [10]Slot{
	{X: 320, Y: 305, W: celticCardW, H: celticCardH, LabelX: 375, LabelY: 509},  // 1. present
	{X: 470, Y: 345, W: celticCardH, H: celticCardW, LabelX: 565, LabelY: 469, Rotate90: true}, // 2. challenge
	{X: 320, Y: 550, W: celticCardW, H: celticCardH, LabelX: 375, LabelY: 754},  // 3. subconscious
	{X: 80, Y: 305, W: celticCardW, H: celticCardH, LabelX: 135, LabelY: 509},   // 4. past
	{X: 320, Y: 60, W: celticCardW, H: celticCardH, LabelX: 375, LabelY: 264},   // 5. conscious
	{X: 700, Y: 305, W: celticCardW, H: celticCardH, LabelX: 755, LabelY: 509},  // 6. future
	{X: 1150, Y: 630, W: celticCardW, H: celticCardH, LabelX: 1120, LabelY: 725}, // 7. attitude
	{X: 1150, Y: 425, W: celticCardW, H: celticCardH, LabelX: 1120, LabelY: 520}, // 8. external
	{X: 1150, Y: 220, W: celticCardW, H: celticCardH, LabelX: 1120, LabelY: 315}, // 9. hopes/fears
	{X: 1150, Y: 15, W: celticCardW, H: celticCardH, LabelX: 1120, LabelY: 110},  // 10. outcome
}

// CelticSlots exposes a copy of the Celtic Cross slot table.
func CelticSlots() [10]Slot {
	return celticSlots
}
