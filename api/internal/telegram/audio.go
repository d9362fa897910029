package telegram

import (
	"context"
	"fmt"
	"io"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"kids-lecture/api/internal/speech"
)

// audioSink posts each rendered narration part to the chat as an audio message.
func (r *Router) audioSink(chatID int64) speech.Sink {
	return func(ctx context.Context, u *speech.Utterance, part int, audio io.Reader) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg := tgbotapi.NewAudio(chatID, tgbotapi.FileReader{
			Name:   fmt.Sprintf("lecture-%s-%d.mp3", u.ID.String()[:8], part+1),
			Reader: audio,
		})
		msg.Title = fmt.Sprintf("Lecture, part %d", part+1)
		_, err := r.Bot.Send(msg)
		return err
	}
}
