package handle

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"kids-lecture/api/internal/lecture"
	"kids-lecture/api/internal/logger"
	"kids-lecture/api/internal/sanitize"
)

// LectureGenerator is the part of lecture.Service the handlers need.
type LectureGenerator interface {
	Generate(ctx context.Context, topic, grade string) (lecture.Lecture, error)
	EngineName() string
}

type Handle struct {
	gen       LectureGenerator
	sanitizer *sanitize.Sanitizer
	validate  *requestValidator
	timeout   time.Duration
	log       *logger.Logger
}

// New builds the handlers. timeout <= 0 leaves generation bounded only by the
// request context.
func New(gen LectureGenerator, timeout time.Duration, log *logger.Logger) *Handle {
	if log == nil {
		log = logger.Nop()
	}
	return &Handle{
		gen:       gen,
		sanitizer: sanitize.New(),
		validate:  newRequestValidator(),
		timeout:   timeout,
		log:       log,
	}
}

type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Message: msg})
}

func (h *Handle) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
