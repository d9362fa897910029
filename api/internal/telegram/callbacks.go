package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"kids-lecture/api/internal/lecture"
)

func (r *Router) handleCallback(cb tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	cid := cb.Message.Chat.ID
	data := cb.Data
	_, _ = r.Bot.Request(tgbotapi.NewCallback(cb.ID, "")) // ack

	switch {
	case strings.HasPrefix(data, cbGrade):
		grade, ok := lecture.ParseGrade(strings.TrimPrefix(data, cbGrade))
		if !ok {
			r.send(cid, "Grade must be between 1 and 5")
			return
		}
		r.onGrade(cid, grade)
	case strings.HasPrefix(data, cbTopic):
		r.onSuggestion(cid, strings.TrimPrefix(data, cbTopic))
	case data == cbRetry:
		r.onRetry(cid)
	case data == cbSave:
		r.onSave(cid)
	case data == cbSpeakStart:
		r.onSpeak(cid)
	case data == cbSpeakPause:
		r.state(cid).voice.Pause()
	case data == cbSpeakResume:
		r.state(cid).voice.Resume()
	case data == cbSpeakStop:
		r.state(cid).voice.Stop()
	}
}

func (r *Router) onSpeak(chatID int64) {
	st := r.state(chatID)
	if !st.voice.Supported() {
		r.send(chatID, "Listening is not available right now.")
		return
	}
	v := st.session.View()
	if v.Lecture == nil {
		r.send(chatID, "There is no lecture to read yet. Send me a topic first.")
		return
	}
	_, _ = r.Bot.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatUploadVoice))
	st.voice.Start(v.Lecture.Content)
}

// onSave sends the current lecture as a standalone HTML document.
func (r *Router) onSave(chatID int64) {
	v := r.state(chatID).session.View()
	if v.Lecture == nil {
		r.send(chatID, "There is no lecture to save yet. Send me a topic first.")
		return
	}
	_, _ = r.Bot.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatUploadDocument))
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  lecture.FileName(v.Lecture.Title),
		Bytes: []byte(lecture.Document(*v.Lecture)),
	})
	doc.Caption = v.Lecture.Title
	if _, err := r.Bot.Send(doc); err != nil {
		r.Log.Warn("telegram document send failed", "chat", chatID, "error", err)
		r.send(chatID, "Sorry, I could not send the file. Please try again.")
	}
}
