package bot

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tarotbot/internal/models"
	"tarotbot/internal/storage/stubs"
	"tarotbot/internal/tarot"
)

// Note: We can't easily mock tgbotapi.BotAPI, so tests focus on internal
// logic without actually sending messages to Telegram.

// stubCards is an in-memory CardService.
type stubCards struct {
	pool     []models.Card
	cardsErr error
	requests []string
	users    []models.User
}

func (s *stubCards) Cards(ctx context.Context) ([]models.Card, error) {
	if s.cardsErr != nil {
		return nil, s.cardsErr
	}
	return s.pool, nil
}

func (s *stubCards) RegisterUser(ctx context.Context, user models.User) error {
	s.users = append(s.users, user)
	return nil
}

func (s *stubCards) SaveRequest(ctx context.Context, telegramID int64, text string) error {
	s.requests = append(s.requests, text)
	return nil
}

// stubRenderer returns canned bytes or an error.
type stubRenderer struct {
	err     error
	renders int
}

func (s *stubRenderer) Render(ctx context.Context, def tarot.Definition, cards []models.Card, reversed []bool) ([]byte, string, error) {
	s.renders++
	if s.err != nil {
		return nil, "", s.err
	}
	return []byte{0x89, 'P', 'N', 'G'}, "spread.png", nil
}

func testPool(n int) []models.Card {
	pool := make([]models.Card, n)
	for i := range pool {
		pool[i] = models.Card{
			ID:           int64(i + 1),
			Name:         "Card " + string(rune('A'+i)),
			Description:  "upright text",
			ReversedDesc: "reversed text",
			ImageURL:     "http://example.com/card.png",
		}
	}
	return pool
}

func newTestBot(cards *stubCards, renderer *stubRenderer, journal *stubs.MockDB) *Bot {
	return &Bot{
		api:      nil, // Not needed for internal logic tests
		cards:    cards,
		journal:  journal,
		renderer: renderer,
		rng:      rand.New(rand.NewSource(1)),
		limiter:  NewRateLimiter(3, time.Hour),
		sessions: make(map[int64]*Session),
		logger:   zap.NewNop(),
	}
}

func userMessage(userID, chatID int64, text string) *tgbotapi.Message {
	msg := &tgbotapi.Message{
		From: &tgbotapi.User{ID: userID},
		Chat: &tgbotapi.Chat{ID: chatID},
		Text: text,
	}
	if len(text) > 0 && text[0] == '/' {
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}}
	}
	return msg
}

func TestBot_SingleCardQuestionFlow(t *testing.T) {
	cards := &stubCards{pool: testPool(22)}
	renderer := &stubRenderer{}
	bot := newTestBot(cards, renderer, stubs.NewMockDB())

	userID, chatID := int64(123), int64(456)
	ctx := context.Background()

	// Selecting the single-card spread prompts for a question.
	bot.handleSpreadSelection(ctx, chatID, userID, tarot.SpreadSingleCard)

	s := bot.session(userID)
	assert.Equal(t, PhaseAwaitingQuestion, s.Phase)
	assert.Equal(t, tarot.SpreadSingleCard, s.PendingSpread)
	assert.Nil(t, s.LastSpread)

	// The user's text is taken as the question and the spread generates.
	bot.handleMessage(userMessage(userID, chatID, "love?"))

	assert.Equal(t, PhaseIdle, s.Phase)
	assert.Empty(t, s.PendingSpread)
	require.NotNil(t, s.LastSpread)
	assert.Equal(t, tarot.SpreadSingleCard, s.LastSpread.Type)
	assert.Equal(t, "love?", s.LastSpread.Question)
	assert.Len(t, s.LastSpread.Cards, 1)

	// The history entry carries the question.
	require.Len(t, cards.requests, 1)
	assert.Contains(t, cards.requests[0], "love?")
}

func TestBot_SkipQuestionStillLogsEntry(t *testing.T) {
	cards := &stubCards{pool: testPool(22)}
	bot := newTestBot(cards, &stubRenderer{}, stubs.NewMockDB())

	userID, chatID := int64(123), int64(456)
	ctx := context.Background()

	bot.handleSpreadSelection(ctx, chatID, userID, tarot.SpreadSingleCard)
	bot.handleSkipQuestion(ctx, chatID, userID)

	s := bot.session(userID)
	assert.Equal(t, PhaseIdle, s.Phase)
	require.NotNil(t, s.LastSpread)
	assert.Empty(t, s.LastSpread.Question)

	// One entry per generated spread, question or not.
	require.Len(t, cards.requests, 1)
	assert.NotContains(t, cards.requests[0], ":")
}

func TestBot_IdleFreeTextIsNotAQuestion(t *testing.T) {
	cards := &stubCards{pool: testPool(22)}
	bot := newTestBot(cards, &stubRenderer{}, stubs.NewMockDB())

	userID, chatID := int64(123), int64(456)

	bot.handleMessage(userMessage(userID, chatID, "what does my future hold?"))

	s := bot.session(userID)
	assert.Equal(t, PhaseIdle, s.Phase)
	assert.Nil(t, s.LastSpread, "free text in Idle must not generate a spread")

	// But the query is recorded.
	require.Len(t, cards.requests, 1)
	assert.Equal(t, "what does my future hold?", cards.requests[0])
}

func TestBot_CommandCancelsQuestionPrompt(t *testing.T) {
	cards := &stubCards{pool: testPool(22)}
	bot := newTestBot(cards, &stubRenderer{}, stubs.NewMockDB())

	userID, chatID := int64(123), int64(456)
	ctx := context.Background()

	bot.handleSpreadSelection(ctx, chatID, userID, tarot.SpreadSingleCard)
	bot.handleMessage(userMessage(userID, chatID, "/help"))

	s := bot.session(userID)
	assert.Equal(t, PhaseIdle, s.Phase)
	assert.Nil(t, s.LastSpread)
}

func TestBot_ImmediateSpreadsSkipQuestionPrompt(t *testing.T) {
	cards := &stubCards{pool: testPool(22)}
	journal := stubs.NewMockDB()
	bot := newTestBot(cards, &stubRenderer{}, journal)

	userID, chatID := int64(123), int64(456)
	ctx := context.Background()

	bot.handleSpreadSelection(ctx, chatID, userID, tarot.SpreadWork)

	s := bot.session(userID)
	assert.Equal(t, PhaseIdle, s.Phase)
	require.NotNil(t, s.LastSpread)
	assert.Equal(t, tarot.SpreadWork, s.LastSpread.Type)
	assert.Len(t, s.LastSpread.Cards, 3)
	assert.Empty(t, s.LastSpread.Question)

	readings, err := journal.GetLastReadings(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, "work_spread", readings[0].SpreadType)
	assert.Len(t, readings[0].CardNames, 3)
}

func TestBot_CelticCrossRateLimit(t *testing.T) {
	cards := &stubCards{pool: testPool(22)}
	journal := stubs.NewMockDB()
	bot := newTestBot(cards, &stubRenderer{}, journal)

	userID, chatID := int64(123), int64(456)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		bot.generateSpread(ctx, chatID, userID, tarot.SpreadCelticCross, "")
	}

	// Limit is 3: the 4th attempt is denied before any work happens.
	readings, err := journal.GetLastReadings(ctx, userID, 10)
	require.NoError(t, err)
	assert.Len(t, readings, 3)
	assert.Len(t, cards.requests, 3, "a rate-limited request must not log a history entry")
}

func TestBot_InsufficientPool(t *testing.T) {
	cards := &stubCards{pool: testPool(2)}
	journal := stubs.NewMockDB()
	bot := newTestBot(cards, &stubRenderer{}, journal)

	userID, chatID := int64(123), int64(456)

	bot.generateSpread(context.Background(), chatID, userID, tarot.SpreadWork, "")

	s := bot.session(userID)
	assert.Nil(t, s.LastSpread, "a failed draw must not leave a live spread")

	readings, err := journal.GetLastReadings(context.Background(), userID, 10)
	require.NoError(t, err)
	assert.Empty(t, readings)
}

func TestBot_BackendUnavailable(t *testing.T) {
	cards := &stubCards{cardsErr: errors.New("connection refused")}
	bot := newTestBot(cards, &stubRenderer{}, stubs.NewMockDB())

	bot.generateSpread(context.Background(), 456, 123, tarot.SpreadDaily, "")

	s := bot.session(123)
	assert.Nil(t, s.LastSpread)
}

func TestBot_RenderFailureKeepsSpreadLive(t *testing.T) {
	cards := &stubCards{pool: testPool(22)}
	renderer := &stubRenderer{err: errors.New("corrupt artwork")}
	bot := newTestBot(cards, renderer, stubs.NewMockDB())

	userID, chatID := int64(123), int64(456)

	bot.generateSpread(context.Background(), chatID, userID, tarot.SpreadDaily, "")

	// The spread survives a render failure: text-only fallback, and the
	// interpretation follow-up still works.
	s := bot.session(userID)
	require.NotNil(t, s.LastSpread)
	assert.Equal(t, 1, renderer.renders)

	text, err := bot.interpretation(userID)
	require.NoError(t, err)
	assert.Contains(t, text, "Interpretation")
}

func TestBot_InterpretationWithoutSpread(t *testing.T) {
	bot := newTestBot(&stubCards{pool: testPool(22)}, &stubRenderer{}, stubs.NewMockDB())

	_, err := bot.interpretation(123)
	assert.ErrorIs(t, err, ErrNoActiveSpread)
}

func TestBot_NewSpreadSupersedesOld(t *testing.T) {
	cards := &stubCards{pool: testPool(22)}
	bot := newTestBot(cards, &stubRenderer{}, stubs.NewMockDB())

	userID, chatID := int64(123), int64(456)
	ctx := context.Background()

	bot.generateSpread(ctx, chatID, userID, tarot.SpreadLove, "")
	s := bot.session(userID)
	require.NotNil(t, s.LastSpread)
	first := s.LastSpread

	bot.generateSpread(ctx, chatID, userID, tarot.SpreadDaily, "")
	require.NotNil(t, s.LastSpread)
	assert.NotSame(t, first, s.LastSpread)
	assert.Equal(t, tarot.SpreadDaily, s.LastSpread.Type)
}
