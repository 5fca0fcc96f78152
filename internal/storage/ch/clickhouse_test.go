package ch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clickhouseTC "github.com/testcontainers/testcontainers-go/modules/clickhouse"

	"tarotbot/internal/models"
)

// runMigrations manually runs ClickHouse migrations
func runMigrations(ctx context.Context, db *ClickHouseDB) error {
	_ = db.conn.Exec(ctx, "DROP TABLE IF EXISTS readings")

	return db.conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS readings (
			date DateTime,
			user_id Int64,
			spread_type String,
			question String,
			card_names Array(String),
			reversed Array(UInt8)
		) ENGINE = MergeTree()
		ORDER BY (user_id, date)
	`)
}

// setupTestDB creates a test ClickHouse instance using testcontainers
func setupTestDB(t *testing.T) (*ClickHouseDB, func()) {
	ctx := context.Background()

	clickhouseContainer, err := clickhouseTC.Run(ctx,
		"clickhouse/clickhouse-server:24.3.3.102-alpine",
		clickhouseTC.WithUsername("default"),
		clickhouseTC.WithPassword(""),
		clickhouseTC.WithDatabase("default"),
	)
	require.NoError(t, err, "Failed to start ClickHouse container")

	host, err := clickhouseContainer.Host(ctx)
	require.NoError(t, err)

	port, err := clickhouseContainer.MappedPort(ctx, "9000/tcp")
	require.NoError(t, err)

	db, err := NewClickHouseDB(host, port.Int(), "default", "default", "", false)
	require.NoError(t, err, "Failed to connect to ClickHouse")

	err = runMigrations(ctx, db)
	require.NoError(t, err, "Failed to run migrations")

	cleanup := func() {
		db.Close()
		clickhouseContainer.Terminate(ctx)
	}

	return db, cleanup
}

// TestClickHouseDB_SaveReading tests journal inserts round-trip
func TestClickHouseDB_SaveReading(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	reading := models.Reading{
		Date:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		UserID:     42,
		SpreadType: "work_spread",
		Question:   "promotion?",
		CardNames:  []string{"The Fool", "The Magician", "The Star"},
		Reversed:   []bool{false, true, false},
	}
	require.NoError(t, db.SaveReading(ctx, reading))

	readings, err := db.GetLastReadings(ctx, 42, 10)
	require.NoError(t, err)
	require.Len(t, readings, 1)

	got := readings[0]
	assert.EqualValues(t, 42, got.UserID)
	assert.Equal(t, "work_spread", got.SpreadType)
	assert.Equal(t, "promotion?", got.Question)
	assert.Equal(t, reading.CardNames, got.CardNames)
	assert.Equal(t, reading.Reversed, got.Reversed)
}

// TestClickHouseDB_GetLastReadings tests ordering and per-user filtering
func TestClickHouseDB_GetLastReadings(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		require.NoError(t, db.SaveReading(ctx, models.Reading{
			Date:       base.Add(time.Duration(i) * time.Hour),
			UserID:     42,
			SpreadType: "single_card",
			CardNames:  []string{"The Fool"},
			Reversed:   []bool{false},
		}))
	}
	require.NoError(t, db.SaveReading(ctx, models.Reading{
		Date:       base,
		UserID:     7,
		SpreadType: "love_spread",
		CardNames:  []string{"The Lovers", "The Tower"},
		Reversed:   []bool{false, true},
	}))

	readings, err := db.GetLastReadings(ctx, 42, 3)
	require.NoError(t, err)
	require.Len(t, readings, 3)

	for i := 1; i < len(readings); i++ {
		assert.True(t, readings[i-1].Date.After(readings[i].Date), "readings must be newest first")
	}
	for _, r := range readings {
		assert.EqualValues(t, 42, r.UserID)
	}
}
