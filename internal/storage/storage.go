package storage

import (
	"context"

	"tarotbot/internal/models"
)

// Storage is the reading journal: every generated spread is recorded so
// users can review their recent readings.
type Storage interface {
	// SaveReading appends one journal entry.
	SaveReading(ctx context.Context, reading models.Reading) error

	// GetLastReadings returns the user's most recent readings, newest
	// first, up to limit.
	GetLastReadings(ctx context.Context, userID int64, limit int) ([]models.Reading, error)

	// Lifecycle
	Initialize(ctx context.Context) error
	Close() error
}
