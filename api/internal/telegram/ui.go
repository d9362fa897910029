package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"kids-lecture/api/internal/lecture"
)

const (
	cbGrade       = "grade:"
	cbTopic       = "topic:"
	cbRetry       = "retry"
	cbSpeakStart  = "speak:start"
	cbSpeakPause  = "speak:pause"
	cbSpeakResume = "speak:resume"
	cbSpeakStop   = "speak:stop"
	cbSave        = "save"

	// callback_data is limited to 64 bytes
	maxCallbackData = 64
)

// "1st Grade" … "5th Grade", three per row.
func makeGradeKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, g := range lecture.Grades() {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(lecture.Ordinal(g)+" Grade", cbGrade+g))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func makeRetryKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🔄 Retry", cbRetry)),
	)
}

func makeSuggestionsKeyboard(topics []string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(suggestionRows(topics)...)
}

func suggestionRows(topics []string) [][]tgbotapi.InlineKeyboardButton {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, t := range topics {
		data := cbTopic + t
		if len(data) > maxCallbackData {
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("💡 "+t, data)))
	}
	return rows
}

func saveRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("💾 Save", cbSave))
}

func playbackRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔊 Listen", cbSpeakStart),
		tgbotapi.NewInlineKeyboardButtonData("⏸", cbSpeakPause),
		tgbotapi.NewInlineKeyboardButtonData("▶️", cbSpeakResume),
		tgbotapi.NewInlineKeyboardButtonData("⏹", cbSpeakStop),
	)
}
