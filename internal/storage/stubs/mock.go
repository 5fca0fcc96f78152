package stubs

import (
	"context"
	"sync"

	"tarotbot/internal/models"
)

// MockDB is an in-memory implementation of the Storage interface for testing
type MockDB struct {
	mu       sync.RWMutex
	readings []models.Reading
}

// NewMockDB creates a new mock journal
func NewMockDB() *MockDB {
	return &MockDB{
		readings: make([]models.Reading, 0),
	}
}

// Initialize is a no-op for the in-memory journal
func (m *MockDB) Initialize(ctx context.Context) error {
	return nil
}

// SaveReading appends one reading to the journal
func (m *MockDB) SaveReading(ctx context.Context, reading models.Reading) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.readings = append(m.readings, reading)
	return nil
}

// GetLastReadings returns the user's most recent readings, newest first
func (m *MockDB) GetLastReadings(ctx context.Context, userID int64, limit int) ([]models.Reading, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.Reading
	for i := len(m.readings) - 1; i >= 0 && len(out) < limit; i-- {
		if m.readings[i].UserID == userID {
			out = append(out, m.readings[i])
		}
	}
	return out, nil
}

// Close is a no-op for the in-memory journal
func (m *MockDB) Close() error {
	return nil
}
