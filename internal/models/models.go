package models

import "time"

// Card is an immutable snapshot of one tarot card record served by the
// card backend. Optional text fields may be empty; consumers substitute
// documented defaults.
type Card struct {
	ID             int64
	Name           string
	ImageURL       string
	Description    string
	ReversedDesc   string
	Message        string
	Advice         string
	ReversedAdvice string
	CardType       string
}

// User identifies a Telegram user for backend registration.
type User struct {
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
}

// Reading is one journal entry for a generated spread.
type Reading struct {
	Date       time.Time
	UserID     int64
	SpreadType string
	Question   string
	CardNames  []string
	Reversed   []bool
}
