package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tarotbot/internal/gateway"
	"tarotbot/internal/models"
	"tarotbot/internal/tarot"
)

// handleSpreadSelection reacts to a spread button. Spreads that prompt
// for a question move the session to AwaitingQuestion; everything else
// generates immediately.
func (b *Bot) handleSpreadSelection(ctx context.Context, chatID, userID int64, spreadType tarot.SpreadType) {
	def, err := tarot.Lookup(spreadType)
	if err != nil {
		b.logger.Error("Unknown spread selected", zap.String("spread", string(spreadType)), zap.Error(err))
		b.sendTextWithMarkup(chatID, "❌ Unknown spread type.", backToMenuKeyboard())
		return
	}

	if def.AsksQuestion {
		s := b.session(userID)
		s.Phase = PhaseAwaitingQuestion
		s.PendingSpread = spreadType

		text := fmt.Sprintf("🔮 You chose %s\n\n💭 Ask the question on your mind, or describe the situation.\nThe more specific the question, the more precise the answer!", def.Title)
		b.sendTextWithMarkup(chatID, text, questionKeyboard())
		return
	}

	b.generateSpread(ctx, chatID, userID, spreadType, "")
}

// handleSkipQuestion generates the pending spread without a question.
func (b *Bot) handleSkipQuestion(ctx context.Context, chatID, userID int64) {
	s := b.session(userID)
	if s.Phase != PhaseAwaitingQuestion {
		return
	}
	spreadType := s.PendingSpread
	s.Phase = PhaseIdle
	s.PendingSpread = ""

	b.generateSpread(ctx, chatID, userID, spreadType, "")
}

// handleInterpret answers the "interpret" follow-up for the live spread.
func (b *Bot) handleInterpret(chatID, userID int64) {
	text, err := b.interpretation(userID)
	if err != nil {
		b.sendTextWithMarkup(chatID, "❌ No spread to interpret. Generate one first:", mainKeyboard())
		return
	}
	b.sendTextWithMarkup(chatID, text, backToMenuKeyboard())
}

// interpretation formats the interpretation of the user's live spread.
func (b *Bot) interpretation(userID int64) (string, error) {
	s := b.session(userID)
	if s.LastSpread == nil {
		return "", ErrNoActiveSpread
	}
	def, err := tarot.Lookup(s.LastSpread.Type)
	if err != nil {
		return "", err
	}
	return tarot.Interpret(def, s.LastSpread.Cards, s.LastSpread.Reversed), nil
}

// generateSpread runs the whole pipeline for one spread request: rate
// gate, history entry, pool fetch, draw, journal, render. Every error
// becomes a user-visible reply; a render failure falls back to the
// text-only caption.
func (b *Bot) generateSpread(ctx context.Context, chatID, userID int64, spreadType tarot.SpreadType, question string) {
	def, err := tarot.Lookup(spreadType)
	if err != nil {
		b.logger.Error("Unknown spread requested", zap.String("spread", string(spreadType)), zap.Error(err))
		b.sendTextWithMarkup(chatID, "❌ Unknown spread type.", backToMenuKeyboard())
		return
	}

	if def.RateLimited && !b.limiter.Allow(userID) {
		b.logger.Debug("Rate limited", zap.Int64("user_id", userID), zap.String("spread", string(spreadType)))
		b.sendTextWithMarkup(chatID, "🕰 The Celtic Cross takes time to read. Please wait a while before asking again.", backToMenuKeyboard())
		return
	}

	// One history entry per generated spread; the question, when given,
	// rides along in the same entry.
	entry := def.Title
	if question != "" {
		entry += ": " + question
	}
	if err := b.cards.SaveRequest(ctx, userID, entry); err != nil {
		b.logger.Warn("Failed to save request history", zap.Int64("user_id", userID), zap.Error(err))
	}

	pool, err := b.cards.Cards(ctx)
	if err != nil {
		if errors.Is(err, gateway.ErrUnavailable) {
			b.logger.Error("Card backend unavailable", zap.Error(err))
		} else {
			b.logger.Error("Failed to fetch card pool", zap.Error(err))
		}
		b.sendTextWithMarkup(chatID, "😔 The cards are unavailable right now, please try again later.", backToMenuKeyboard())
		return
	}

	cards, reversed, err := tarot.Draw(pool, def.CardCount, b.rng)
	if err != nil {
		b.logger.Error("Failed to draw spread",
			zap.String("spread", string(spreadType)),
			zap.Int("pool", len(pool)),
			zap.Error(err),
		)
		b.sendTextWithMarkup(chatID, "😔 Not enough cards for this spread.", backToMenuKeyboard())
		return
	}

	s := b.session(userID)
	s.LastSpread = &tarot.Drawn{
		Type:     spreadType,
		Cards:    cards,
		Reversed: reversed,
		Question: question,
	}

	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.Name
	}
	if err := b.journal.SaveReading(ctx, models.Reading{
		Date:       time.Now(),
		UserID:     userID,
		SpreadType: string(spreadType),
		Question:   question,
		CardNames:  names,
		Reversed:   reversed,
	}); err != nil {
		b.logger.Warn("Failed to journal reading", zap.Int64("user_id", userID), zap.Error(err))
	}

	caption := tarot.FormatCaption(def, cards, reversed, question)

	image, filename, err := b.renderer.Render(ctx, def, cards, reversed)
	if err != nil {
		// Text-only fallback: the spread is already live, only the
		// picture is missing.
		b.logger.Error("Failed to render spread image",
			zap.String("spread", string(spreadType)),
			zap.Error(err),
		)
		b.sendTextWithMarkup(chatID, caption, interpretKeyboard())
		return
	}

	b.sendPhoto(chatID, image, filename, caption, interpretKeyboard())
}
