package tarot

import "errors"

var (
	// ErrInsufficientPool is returned when the card pool holds fewer
	// cards than the spread requires.
	ErrInsufficientPool = errors.New("not enough cards in pool")

	// ErrUnknownSpread is returned for a spread type with no definition.
	ErrUnknownSpread = errors.New("unknown spread type")
)
