package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"tarotbot/internal/models"
)

// handleStart registers the user with the backend and shows the menu.
func (b *Bot) handleStart(ctx context.Context, message *tgbotapi.Message) {
	user := message.From

	err := b.cards.RegisterUser(ctx, models.User{
		TelegramID: user.ID,
		Username:   user.UserName,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
	})
	if err != nil {
		// Registration failure must not block the conversation.
		b.logger.Warn("Failed to register user", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	name := user.FirstName
	if name == "" {
		name = "friend"
	}
	text := fmt.Sprintf("Welcome, %s! 🔮\n\nI am a tarot reading bot. Choose an action:", name)
	b.sendTextWithMarkup(message.Chat.ID, text, mainKeyboard())
}

// handleHelp lists the available spreads.
func (b *Bot) handleHelp(chatID int64) {
	text := `🌟 Available spreads:

🎴 Single card - A quick answer to your question
🌅 Daily spread - Morning, Afternoon, Evening
💕 Love spread - Relationships and feelings
💼 Work spread - Career and business
🏰 Celtic Cross - A full analysis of the situation

Other commands:
/history - Your last readings

Just pick an option from the menu!`

	b.sendTextWithMarkup(chatID, text, mainKeyboard())
}

// handleHistory shows the user's last journal entries.
func (b *Bot) handleHistory(ctx context.Context, message *tgbotapi.Message) {
	readings, err := b.journal.GetLastReadings(ctx, message.From.ID, 5)
	if err != nil {
		b.logger.Error("Failed to load reading history", zap.Int64("user_id", message.From.ID), zap.Error(err))
		b.sendText(message.Chat.ID, "Could not load your history, please try again later.")
		return
	}

	if len(readings) == 0 {
		b.sendTextWithMarkup(message.Chat.ID, "No readings yet. Pick a spread to get started:", mainKeyboard())
		return
	}

	var text strings.Builder
	text.WriteString("🗂 Your last readings:\n\n")
	for i, r := range readings {
		text.WriteString(fmt.Sprintf("%d. %s: %s (%s)\n",
			i+1,
			r.Date.Format("2006-01-02 15:04"),
			r.SpreadType,
			strings.Join(r.CardNames, ", ")))
	}

	b.sendTextWithMarkup(message.Chat.ID, text.String(), backToMenuKeyboard())
}
