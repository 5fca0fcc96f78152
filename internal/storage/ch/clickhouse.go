package ch

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"

	"tarotbot/internal/models"
)

type ClickHouseDB struct {
	conn clickhouse.Conn
}

// NewClickHouseDB creates a new ClickHouse database connection
func NewClickHouseDB(host string, port int, database, user, password string, useTLS bool) (*ClickHouseDB, error) {
	addr := fmt.Sprintf("%s:%d", host, port)

	options := &clickhouse.Options{
		Addr:     []string{addr},
		Protocol: clickhouse.Native,
		Auth: clickhouse.Auth{
			Database: database,
			Username: user,
			Password: password,
		},
	}

	if useTLS {
		options.TLS = &tls.Config{
			InsecureSkipVerify: false,
		}
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	if err := conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return &ClickHouseDB{conn: conn}, nil
}

// Initialize is a no-op - tables are managed via migrations
func (db *ClickHouseDB) Initialize(ctx context.Context) error {
	// Tables are managed via migrations (see migrations/ directory)
	return nil
}

// SaveReading appends one reading to the journal
func (db *ClickHouseDB) SaveReading(ctx context.Context, reading models.Reading) error {
	reversed := make([]uint8, len(reading.Reversed))
	for i, r := range reading.Reversed {
		if r {
			reversed[i] = 1
		}
	}

	err := db.conn.Exec(ctx, `INSERT INTO readings (date, user_id, spread_type, question, card_names, reversed) VALUES (?, ?, ?, ?, ?, ?)`,
		reading.Date, reading.UserID, reading.SpreadType, reading.Question, reading.CardNames, reversed)
	if err != nil {
		return fmt.Errorf("failed to save reading: %w", err)
	}
	return nil
}

// GetLastReadings returns the user's most recent readings, newest first
func (db *ClickHouseDB) GetLastReadings(ctx context.Context, userID int64, limit int) ([]models.Reading, error) {
	rows, err := db.conn.Query(ctx, `SELECT date, user_id, spread_type, question, card_names, reversed FROM readings WHERE user_id = ? ORDER BY date DESC LIMIT ?`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get last readings: %w", err)
	}
	defer rows.Close()

	var readings []models.Reading
	for rows.Next() {
		var reading models.Reading
		var reversed []uint8
		if err := rows.Scan(&reading.Date, &reading.UserID, &reading.SpreadType, &reading.Question, &reading.CardNames, &reversed); err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}
		reading.Reversed = make([]bool, len(reversed))
		for i, r := range reversed {
			reading.Reversed[i] = r == 1
		}
		readings = append(readings, reading)
	}
	return readings, nil
}

// Close closes the database connection
func (db *ClickHouseDB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}
