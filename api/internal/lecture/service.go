package lecture

import (
	"context"
	"errors"
	"strings"
	"time"

	"kids-lecture/api/internal/llm"
	"kids-lecture/api/internal/logger"
)

// GenerationFailedMessage is the only text a caller ever sees for a failed generation.
const GenerationFailedMessage = "Failed to generate lecture content. Please try again."

var ErrEmptyTopic = errors.New("lecture: topic is empty")

// GenerationError hides the downstream cause behind a fixed message.
// The cause is kept for logging and errors.Is checks.
type GenerationError struct {
	cause error
}

func (e *GenerationError) Error() string { return GenerationFailedMessage }
func (e *GenerationError) Unwrap() error { return e.cause }

type Service struct {
	engine llm.Engine
	log    *logger.Logger
}

func NewService(engine llm.Engine, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{engine: engine, log: log.With("component", "lecture")}
}

func (s *Service) EngineName() string {
	if s.engine == nil {
		return ""
	}
	return s.engine.Name()
}

// Generate asks the engine for a lecture on topic at grade. Unknown grades are
// not rejected here; they fall back to the default complexity profile.
func (s *Service) Generate(ctx context.Context, topic, grade string) (Lecture, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Lecture{}, s.fail(ErrEmptyTopic, topic, grade)
	}
	if s.engine == nil {
		return Lecture{}, s.fail(errors.New("lecture: no generation engine configured"), topic, grade)
	}

	start := time.Now()
	content, err := s.engine.Generate(ctx, BuildPrompt(topic, grade))
	if err != nil {
		return Lecture{}, s.fail(err, topic, grade)
	}
	if strings.TrimSpace(content) == "" {
		return Lecture{}, s.fail(errors.New("lecture: model returned empty content"), topic, grade)
	}

	hl := ExtractHeadline(content)
	if hl.Title == "" {
		hl.Title = DefaultTitle(topic, grade)
	}
	if hl.Subtitle == "" {
		hl.Subtitle = DefaultSubtitle(topic)
	}

	s.log.Debug("lecture generated",
		"engine", s.engine.Name(), "model", s.engine.GetModel(),
		"topic", topic, "grade", grade,
		"bytes", len(content), "took", time.Since(start))

	return Lecture{
		Title:      hl.Title,
		Subtitle:   hl.Subtitle,
		Content:    content,
		GradeLevel: grade,
		Topic:      topic,
	}, nil
}

func (s *Service) fail(cause error, topic, grade string) error {
	if errors.Is(cause, llm.ErrMissingAPIKey) {
		s.log.Error("generation engine is not configured", "engine", s.EngineName(), "error", cause)
	} else {
		s.log.Error("error generating lecture", "engine", s.EngineName(), "topic", topic, "grade", grade, "error", cause)
	}
	return &GenerationError{cause: cause}
}
