package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"tarotbot/internal/tarot"
)

// handleMessage processes a single message
func (b *Bot) handleMessage(message *tgbotapi.Message) {
	// Recover from panics to prevent bot crashes
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in handleMessage", zap.Any("panic", r))
			b.sendText(message.Chat.ID, "An error occurred while processing your request. Please try again.")
		}
	}()

	userID := message.From.ID
	ctx := context.Background()

	if message.IsCommand() {
		// Any command cancels a pending question prompt.
		s := b.session(userID)
		s.Phase = PhaseIdle
		s.PendingSpread = ""

		switch message.Command() {
		case "start":
			b.handleStart(ctx, message)
		case "help":
			b.handleHelp(message.Chat.ID)
		case "history":
			b.handleHistory(ctx, message)
		default:
			b.sendText(message.Chat.ID, "Unknown command. Use /start to see the menu.")
		}
		return
	}

	s := b.session(userID)
	if s.Phase == PhaseAwaitingQuestion {
		spreadType := s.PendingSpread
		s.Phase = PhaseIdle
		s.PendingSpread = ""
		b.generateSpread(ctx, message.Chat.ID, userID, spreadType, message.Text)
		return
	}

	// Free text outside a question prompt: record it and point the user
	// at the menu. It is NOT carried over as a question.
	if err := b.cards.SaveRequest(ctx, userID, message.Text); err != nil {
		b.logger.Warn("Failed to save user request", zap.Int64("user_id", userID), zap.Error(err))
	}
	b.sendTextWithMarkup(message.Chat.ID, "🤔 Got it! Now choose a spread type:", mainKeyboard())
}

// handleCallbackQuery processes inline keyboard button clicks
func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	// Recover from panics
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in handleCallbackQuery", zap.Any("panic", r))
		}
	}()

	userID := query.From.ID
	ctx := context.Background()

	// Answer the callback query to remove loading state
	if b.api != nil {
		b.api.Request(tgbotapi.NewCallback(query.ID, ""))
	}

	if query.Message == nil {
		return
	}
	chatID := query.Message.Chat.ID

	data := query.Data
	switch {
	case tarot.IsSpreadType(data):
		b.handleSpreadSelection(ctx, chatID, userID, tarot.SpreadType(data))
	case data == callbackSkip:
		b.handleSkipQuestion(ctx, chatID, userID)
	case data == callbackInterpret:
		b.handleInterpret(chatID, userID)
	case data == callbackMenu:
		b.sendTextWithMarkup(chatID, "Main menu\n\nChoose an action:", mainKeyboard())
	case data == callbackHelp:
		b.handleHelp(chatID)
	}
}
