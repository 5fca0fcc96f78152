package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// sendMessage delivers any chattable, tolerating a nil API for tests.
func (b *Bot) sendMessage(c tgbotapi.Chattable) {
	if b.api == nil {
		return // For testing
	}
	if _, err := b.api.Send(c); err != nil {
		b.logger.Error("Failed to send message", zap.Error(err))
	}
}

// sendText is the common case: plain text to a chat.
func (b *Bot) sendText(chatID int64, text string) {
	b.sendMessage(tgbotapi.NewMessage(chatID, text))
}

// sendTextWithMarkup sends text with an inline keyboard.
func (b *Bot) sendTextWithMarkup(chatID int64, text string, markup tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	b.sendMessage(msg)
}

// sendPhoto sends image bytes with a caption and keyboard.
func (b *Bot) sendPhoto(chatID int64, data []byte, filename, caption string, markup tgbotapi.InlineKeyboardMarkup) {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: filename, Bytes: data})
	photo.Caption = caption
	photo.ReplyMarkup = markup
	b.sendMessage(photo)
}
