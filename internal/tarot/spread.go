package tarot

// SpreadType identifies one of the spreads offered in the menu.
type SpreadType string

const (
	SpreadSingleCard  SpreadType = "single_card"
	SpreadDaily       SpreadType = "daily_spread"
	SpreadLove        SpreadType = "love_spread"
	SpreadWork        SpreadType = "work_spread"
	SpreadCelticCross SpreadType = "celtic_cross_spread"
)

// LayoutKind selects which geometry table the renderer uses.
type LayoutKind string

const (
	LayoutSingle      LayoutKind = "single"
	LayoutPair        LayoutKind = "pair"
	LayoutTriple      LayoutKind = "triple"
	LayoutCelticCross LayoutKind = "celtic_cross"
)

// Definition is the static, compiled-in configuration for one spread type.
type Definition struct {
	Type         SpreadType
	CardCount    int
	SlotLabels   []string
	Layout       LayoutKind
	Title        string
	AsksQuestion bool
	RateLimited  bool
}

var definitions = map[SpreadType]Definition{
	SpreadSingleCard: {
		Type:         SpreadSingleCard,
		CardCount:    1,
		SlotLabels:   []string{"Your card"},
		Layout:       LayoutSingle,
		Title:        "🎴 Single card",
		AsksQuestion: true,
	},
	SpreadDaily: {
		Type:       SpreadDaily,
		CardCount:  3,
		SlotLabels: []string{"1. Morning", "2. Afternoon", "3. Evening"},
		Layout:     LayoutTriple,
		Title:      "🌅 Daily spread",
	},
	SpreadLove: {
		Type:       SpreadLove,
		CardCount:  2,
		SlotLabels: []string{"1. You", "2. Your partner / relationship"},
		Layout:     LayoutPair,
		Title:      "💕 Love spread",
	},
	SpreadWork: {
		Type:       SpreadWork,
		CardCount:  3,
		SlotLabels: []string{"1. Current situation", "2. Obstacles", "3. Solution"},
		Layout:     LayoutTriple,
		Title:      "💼 Work spread",
	},
	SpreadCelticCross: {
		Type:      SpreadCelticCross,
		CardCount: 10,
		SlotLabels: []string{
			"1. Present situation", "2. Challenge", "3. Subconscious",
			"4. Past", "5. Conscious", "6. Future", "7. Your attitude",
			"8. External influences", "9. Hopes and fears", "10. Outcome",
		},
		Layout:      LayoutCelticCross,
		Title:       "🏰 Celtic Cross",
		RateLimited: true,
	},
}

// Lookup returns the definition for the given spread type.
func Lookup(t SpreadType) (Definition, error) {
	def, ok := definitions[t]
	if !ok {
		return Definition{}, ErrUnknownSpread
	}
	return def, nil
}

// IsSpreadType reports whether data names a known spread type, used to
// route inline keyboard callbacks.
func IsSpreadType(data string) bool {
	_, ok := definitions[SpreadType(data)]
	return ok
}
