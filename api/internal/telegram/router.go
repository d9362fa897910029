package telegram

import (
	"context"
	"errors"
	"fmt"
	"html"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"kids-lecture/api/internal/client"
	"kids-lecture/api/internal/lecture"
	"kids-lecture/api/internal/logger"
	"kids-lecture/api/internal/speech"
)

const suggestionCount = 3

// Sender is the subset of *tgbotapi.BotAPI the router uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Router struct {
	Bot Sender
	API client.Generator
	Log *logger.Logger

	// Voice builds a synthesizer that delivers audio through sink.
	// Nil disables the listen buttons.
	Voice func(sink speech.Sink) speech.Synthesizer

	// Timeout bounds one lecture request; zero means no limit.
	Timeout time.Duration

	chats sync.Map // chatID -> *chatState
	wg    sync.WaitGroup

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewRouter(bot Sender, api client.Generator, log *logger.Logger) *Router {
	if log == nil {
		log = logger.Nop()
	}
	return &Router{
		Bot: bot,
		API: api,
		Log: log.With("component", "telegram"),
		rnd: rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x6c656374)),
	}
}

// Wait blocks until every in-flight lecture request has finished.
func (r *Router) Wait() { r.wg.Wait() }

func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	if upd.CallbackQuery != nil {
		r.handleCallback(*upd.CallbackQuery)
		return
	}
	if upd.Message == nil {
		return
	}
	if upd.Message.IsCommand() {
		r.HandleCommand(upd)
		return
	}
	if text := strings.TrimSpace(upd.Message.Text); text != "" {
		r.onTopic(upd.Message.Chat.ID, text)
	}
}

func (r *Router) HandleCommand(upd tgbotapi.Update) {
	cid := upd.Message.Chat.ID
	switch upd.Message.Command() {
	case "start", "help":
		r.sendHTML(cid, introText, nil)
	case "topics":
		grade := lecture.DefaultGrade
		if g, ok := lecture.ParseGrade(upd.Message.CommandArguments()); ok {
			grade = g
		}
		kb := makeSuggestionsKeyboard(lecture.Topics(grade))
		r.sendHTML(cid, "Ideas for <b>"+lecture.Ordinal(grade)+" Grade</b>:", &kb)
	case "stop":
		r.state(cid).voice.Stop()
		r.send(cid, "Stopped.")
	case "health":
		r.send(cid, "✅ OK")
	default:
		r.send(cid, "Unknown command. Send me a topic, or /start.")
	}
}

const introText = "👋 <b>Kids Lecture Generator</b>\n" +
	"Send me any topic, like <i>volcanoes</i> or <i>how bees make honey</i>, " +
	"then pick a grade from 1 to 5 and I'll write a lecture for it.\n\n" +
	"/topics shows some ideas."

// onTopic remembers the topic and asks for a grade.
func (r *Router) onTopic(chatID int64, topic string) {
	st := r.state(chatID)
	st.setPending(topic)
	kb := makeGradeKeyboard()
	r.sendHTML(chatID, "Which grade is <b>"+html.EscapeString(topic)+"</b> for?", &kb)
}

func (r *Router) onGrade(chatID int64, grade string) {
	st := r.state(chatID)
	topic := st.takePending()
	if topic == "" {
		topic = st.session.View().Topic
	}
	r.generate(chatID, func(ctx context.Context) error {
		return st.session.Submit(ctx, topic, grade)
	}, topic, grade)
}

func (r *Router) onSuggestion(chatID int64, topic string) {
	st := r.state(chatID)
	grade := lecture.DefaultGrade
	if v := st.session.View(); v.Lecture != nil {
		grade = v.Lecture.GradeLevel
	} else if v.Grade != "" {
		grade = v.Grade
	}
	r.generate(chatID, func(ctx context.Context) error {
		return st.session.SelectSuggestion(ctx, topic)
	}, topic, grade)
}

func (r *Router) onRetry(chatID int64) {
	st := r.state(chatID)
	v := st.session.View()
	r.generate(chatID, st.session.Retry, v.Topic, v.Grade)
}

// generate runs submit in the background and renders the outcome.
func (r *Router) generate(chatID int64, submit func(context.Context) error, topic, grade string) {
	st := r.state(chatID)
	if !st.session.CanSubmit() {
		r.send(chatID, busyText)
		return
	}
	if strings.TrimSpace(topic) != "" {
		st.voice.Stop()
		r.sendHTML(chatID, fmt.Sprintf("⏳ Writing a lecture about <b>%s</b> for %s Grade…",
			html.EscapeString(topic), lecture.Ordinal(grade)), nil)
		_, _ = r.Bot.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping))
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx := context.Background()
		if r.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, r.Timeout)
			defer cancel()
		}

		err := submit(ctx)
		switch {
		case errors.Is(err, client.ErrBusy):
			r.send(chatID, busyText)
		case errors.Is(err, client.ErrEmptyTopic):
			// the session already told the user
		case err != nil:
			r.Log.Warn("lecture request failed", "chat", chatID, "error", err)
			kb := makeRetryKeyboard()
			r.sendHTML(chatID, "Tap <b>Retry</b> to try again.", &kb)
		default:
			r.showLecture(chatID, st.session.View())
		}
	}()
}

const busyText = "⏳ Still working on your last lecture, please wait…"

func (r *Router) showLecture(chatID int64, v client.View) {
	if v.Lecture == nil {
		return
	}
	lec := v.Lecture
	chunks := ChunkMessage(RenderLecture(*lec), maxMessageLen)
	for i, chunk := range chunks {
		var kb *tgbotapi.InlineKeyboardMarkup
		if i == len(chunks)-1 {
			m := r.lectureKeyboard(lec.GradeLevel)
			kb = &m
		}
		r.sendHTML(chatID, chunk, kb)
	}
}

func (r *Router) lectureKeyboard(grade string) tgbotapi.InlineKeyboardMarkup {
	r.rndMu.Lock()
	topics := lecture.SuggestTopics(grade, suggestionCount, r.rnd)
	r.rndMu.Unlock()

	rows := [][]tgbotapi.InlineKeyboardButton{saveRow()}
	if r.Voice != nil {
		rows = append([][]tgbotapi.InlineKeyboardButton{playbackRow()}, rows...)
	}
	rows = append(rows, suggestionRows(topics)...)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (r *Router) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := r.Bot.Send(msg); err != nil {
		r.Log.Warn("telegram send failed", "chat", chatID, "error", err)
	}
}

func (r *Router) sendHTML(chatID int64, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if kb != nil {
		msg.ReplyMarkup = *kb
	}
	if _, err := r.Bot.Send(msg); err != nil {
		r.Log.Warn("telegram send failed", "chat", chatID, "error", err)
	}
}
