package tarot

import (
	"tarotbot/internal/models"
)

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// Drawn is the result of drawing one spread: the selected cards in slot
// order and, per card, whether it came up reversed.
type Drawn struct {
	Type     SpreadType
	Cards    []models.Card
	Reversed []bool
	Question string
}

// Draw samples n distinct cards from pool uniformly at random without
// replacement and assigns each an independent 50/50 orientation. The
// pool is not modified.
func Draw(pool []models.Card, n int, rng RNG) ([]models.Card, []bool, error) {
	if n < 1 || n > len(pool) {
		return nil, nil, ErrInsufficientPool
	}

	// Fisher-Yates over an index slice; only the first n entries are
	// consumed, the pool itself stays untouched.
	indices := make([]int, len(pool))
	for i := range indices {
		indices[i] = i
	}
	for i := len(indices) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		indices[i], indices[j] = indices[j], indices[i]
	}

	cards := make([]models.Card, n)
	reversed := make([]bool, n)
	for i := 0; i < n; i++ {
		cards[i] = pool[indices[i]]
		reversed[i] = rng.Intn(2) == 1
	}
	return cards, reversed, nil
}
