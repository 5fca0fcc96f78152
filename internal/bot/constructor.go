package bot

import (
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"tarotbot/internal/storage"
	"tarotbot/internal/tarot"
)

// ErrNoActiveSpread is returned when a user asks for an interpretation
// before generating a spread (or after it was superseded).
var ErrNoActiveSpread = errors.New("no active spread")

// NewBot creates a new Telegram bot
func NewBot(token string, cards CardService, journal storage.Storage, renderer SpreadRenderer, rng tarot.RNG, limiter *RateLimiter, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		logger.Error("Failed to create bot API", zap.Error(err))
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Info("Bot created", zap.String("bot_username", api.Self.UserName))

	return &Bot{
		api:      api,
		cards:    cards,
		journal:  journal,
		renderer: renderer,
		rng:      rng,
		limiter:  limiter,
		sessions: make(map[int64]*Session),
		logger:   logger,
	}, nil
}

// GetAPI returns the bot API for testing
func (b *Bot) GetAPI() *tgbotapi.BotAPI {
	return b.api
}

// session returns the user's session, creating it on first contact.
func (b *Bot) session(userID int64) *Session {
	b.sessionsMu.Lock()
	defer b.sessionsMu.Unlock()

	s, ok := b.sessions[userID]
	if !ok {
		s = &Session{}
		b.sessions[userID] = s
	}
	return s
}
