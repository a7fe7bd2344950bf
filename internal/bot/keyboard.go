package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/samulyakartem/family-expense-bot/internal/service"
)

// getMainKeyboard — постоянная клавиатура с единственной кнопкой
// статистики.
func (b *Bot) getMainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(service.StatsTrigger),
		),
	)
	keyboard.ResizeKeyboard = true
	return keyboard
}

// inlineKeyboard переводит кнопки ответа диалога в разметку Telegram.
func inlineKeyboard(rows [][]service.Button) tgbotapi.InlineKeyboardMarkup {
	var buttons [][]tgbotapi.InlineKeyboardButton
	for _, row := range rows {
		var line []tgbotapi.InlineKeyboardButton
		for _, btn := range row {
			line = append(line, tgbotapi.NewInlineKeyboardButtonData(btn.Label, btn.Data))
		}
		buttons = append(buttons, line)
	}
	return tgbotapi.NewInlineKeyboardMarkup(buttons...)
}
