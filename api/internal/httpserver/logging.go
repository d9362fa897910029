package httpserver

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"kids-lecture/api/internal/logger"
	"kids-lecture/api/internal/metrics"
)

const (
	maxLogLine   = 80
	maxTeeBuffer = 4 << 10
)

// limitedBuffer keeps the first maxTeeBuffer bytes and silently drops the rest.
type limitedBuffer struct {
	bytes.Buffer
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	if room := maxTeeBuffer - b.Len(); room > 0 {
		if len(p) > room {
			b.Buffer.Write(p[:room])
		} else {
			b.Buffer.Write(p)
		}
	}
	return len(p), nil
}

// APILogging logs one line per /api request with status, latency and the
// start of the JSON body, and records request metrics.
func APILogging(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, "/api") {
				next.ServeHTTP(w, r)
				return
			}
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			var body limitedBuffer
			ww.Tee(&body)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			took := time.Since(start)

			metrics.RecordRequest(r.Method, routeLabel(r), strconv.Itoa(status), took.Seconds())

			log.Info(FormatLogLine(r.Method, r.URL.Path, status, took, body.Bytes()),
				"request_id", chimiddleware.GetReqID(r.Context()))
		})
	}
}

// unmatchedRoute labels requests no route pattern matched, keeping raw paths out of metrics.
const unmatchedRoute = "unmatched"

func routeLabel(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return unmatchedRoute
}

// FormatLogLine renders "METHOD path status in Nms :: body", cut to 80 characters.
func FormatLogLine(method, path string, status int, took time.Duration, body []byte) string {
	line := fmt.Sprintf("%s %s %d in %dms", method, path, status, took.Milliseconds())
	if b := strings.TrimSpace(string(body)); b != "" {
		line += " :: " + b
	}
	if utf8.RuneCountInString(line) > maxLogLine {
		runes := []rune(line)
		line = string(runes[:maxLogLine-1]) + "…"
	}
	return line
}
