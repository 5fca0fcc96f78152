package bot

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"tarotbot/internal/models"
	"tarotbot/internal/storage"
	"tarotbot/internal/tarot"
)

// CardService is the card backend consumed by the bot.
type CardService interface {
	Cards(ctx context.Context) ([]models.Card, error)
	RegisterUser(ctx context.Context, user models.User) error
	SaveRequest(ctx context.Context, telegramID int64, text string) error
}

// SpreadRenderer produces the spread image for a drawn spread.
type SpreadRenderer interface {
	Render(ctx context.Context, def tarot.Definition, cards []models.Card, reversed []bool) ([]byte, string, error)
}

// Bot represents the Telegram bot wrapper
type Bot struct {
	api      *tgbotapi.BotAPI
	cards    CardService
	journal  storage.Storage
	renderer SpreadRenderer
	rng      tarot.RNG
	limiter  *RateLimiter

	sessions   map[int64]*Session
	sessionsMu sync.Mutex

	logger *zap.Logger
}

// Phase is the conversation phase of one user.
type Phase int

const (
	// PhaseIdle: free text is treated as a logged query, not a question.
	PhaseIdle Phase = iota
	// PhaseAwaitingQuestion: the next text message (or an explicit skip)
	// triggers spread generation.
	PhaseAwaitingQuestion
)

// Session tracks per-user conversation state: the current phase, the
// spread type waiting on a question, and the last generated spread kept
// for on-demand interpretation.
type Session struct {
	Phase         Phase
	PendingSpread tarot.SpreadType
	LastSpread    *tarot.Drawn
}
