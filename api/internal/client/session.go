package client

import (
	"context"
	"errors"
	"strings"
	"sync"

	"kids-lecture/api/internal/lecture"
)

var (
	// ErrBusy is returned by Submit while a request is already in flight.
	ErrBusy = errors.New("client: a lecture is already being generated")
	// ErrEmptyTopic is returned by Submit for a blank topic; nothing is sent.
	ErrEmptyTopic = errors.New("client: topic is empty")
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Generator is satisfied by *Client.
type Generator interface {
	Generate(ctx context.Context, topic, grade string) (lecture.Lecture, error)
}

// Notifier shows a short-lived message to the user (a toast, a chat message).
type Notifier interface {
	Notify(title, description string)
}

type NotifierFunc func(title, description string)

func (f NotifierFunc) Notify(title, description string) { f(title, description) }

// View is a copy of the session state for rendering.
type View struct {
	State   State
	Lecture *lecture.Lecture
	Error   string
	Topic   string
	Grade   string
}

func (v View) Loading() bool { return v.State == StateLoading }

// Session is the request state machine for one user:
// idle -> loading -> success | error, and back to loading on each submission.
// Only one request is in flight at a time.
type Session struct {
	gen    Generator
	notify Notifier

	mu      sync.Mutex
	state   State
	lecture *lecture.Lecture
	errMsg  string
	topic   string
	grade   string
}

func NewSession(gen Generator, notify Notifier) *Session {
	if notify == nil {
		notify = NotifierFunc(func(string, string) {})
	}
	return &Session{gen: gen, notify: notify}
}

// Submit requests a lecture and blocks until it resolves. A blank topic is
// rejected locally and a call made while loading is ignored with ErrBusy; in
// both cases the state is left as it was.
func (s *Session) Submit(ctx context.Context, topic, grade string) error {
	if strings.TrimSpace(topic) == "" {
		s.notify.Notify("Missing topic", "Please enter a topic to generate a lecture.")
		return ErrEmptyTopic
	}

	s.mu.Lock()
	if s.state == StateLoading {
		s.mu.Unlock()
		return ErrBusy
	}
	s.state = StateLoading
	s.errMsg = ""
	s.topic, s.grade = topic, grade
	s.mu.Unlock()

	lec, err := s.gen.Generate(ctx, topic, grade)

	s.mu.Lock()
	if err != nil {
		msg := messageFor(err)
		s.state = StateError
		s.errMsg = msg
		s.mu.Unlock()
		s.notify.Notify("Error", msg)
		return err
	}
	s.state = StateSuccess
	s.lecture = &lec
	s.mu.Unlock()
	return nil
}

// SelectSuggestion submits topic at the grade of the lecture currently shown,
// or the last submitted grade when there is none.
func (s *Session) SelectSuggestion(ctx context.Context, topic string) error {
	s.mu.Lock()
	grade := s.grade
	if s.lecture != nil {
		grade = s.lecture.GradeLevel
	}
	s.mu.Unlock()
	if grade == "" {
		grade = lecture.DefaultGrade
	}
	return s.Submit(ctx, topic, grade)
}

// Retry resubmits the last topic and grade.
func (s *Session) Retry(ctx context.Context) error {
	s.mu.Lock()
	topic, grade := s.topic, s.grade
	s.mu.Unlock()
	return s.Submit(ctx, topic, grade)
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := View{State: s.state, Error: s.errMsg, Topic: s.topic, Grade: s.grade}
	if s.lecture != nil {
		l := *s.lecture
		v.Lecture = &l
	}
	return v
}

// CanSubmit reports whether the submit control should be enabled.
func (s *Session) CanSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state != StateLoading
}

func messageFor(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return FallbackMessage
}
