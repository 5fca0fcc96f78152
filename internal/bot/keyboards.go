package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback data values that are not spread types.
const (
	callbackHelp      = "help"
	callbackSkip      = "skip_question"
	callbackInterpret = "interpret_spread"
	callbackMenu      = "back_to_menu"
)

// mainKeyboard is the spread selection menu.
func mainKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎴 Single card", "single_card"),
			tgbotapi.NewInlineKeyboardButtonData("🌅 Day (3)", "daily_spread"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💕 Love (2)", "love_spread"),
			tgbotapi.NewInlineKeyboardButtonData("💼 Work (3)", "work_spread"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏰 Celtic Cross (10)", "celtic_cross_spread"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❓ Help", callbackHelp),
		),
	)
}

// questionKeyboard offers skipping the question prompt.
func questionKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏩ Skip the question", callbackSkip),
		),
	)
}

// interpretKeyboard follows every generated spread.
func interpretKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("↩️ Menu", callbackMenu),
			tgbotapi.NewInlineKeyboardButtonData("📖 Interpret", callbackInterpret),
		),
	)
}

// backToMenuKeyboard is attached to error replies.
func backToMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("↩️ Menu", callbackMenu),
		),
	)
}
