package telegram

import (
	"html"
	"sync"

	"kids-lecture/api/internal/client"
	"kids-lecture/api/internal/speech"
)

// chatState is what one chat owns: its request session, its playback handle
// and the topic waiting for a grade.
type chatState struct {
	session *client.Session
	voice   *speech.Controller

	mu      sync.Mutex
	pending string
}

func (s *chatState) setPending(topic string) {
	s.mu.Lock()
	s.pending = topic
	s.mu.Unlock()
}

func (s *chatState) takePending() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.pending
	s.pending = ""
	return t
}

func (r *Router) state(chatID int64) *chatState {
	if v, ok := r.chats.Load(chatID); ok {
		return v.(*chatState)
	}
	notify := client.NotifierFunc(func(title, description string) {
		r.sendHTML(chatID, "<b>"+html.EscapeString(title)+"</b>\n"+html.EscapeString(description), nil)
	})
	var synth speech.Synthesizer
	if r.Voice != nil {
		synth = r.Voice(r.audioSink(chatID))
	}
	st := &chatState{
		session: client.NewSession(r.API, notify),
		voice:   speech.NewController(synth, r.Log.With("chat", chatID)),
	}
	v, _ := r.chats.LoadOrStore(chatID, st)
	return v.(*chatState)
}
