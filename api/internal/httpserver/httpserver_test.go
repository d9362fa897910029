package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kids-lecture/api/internal/handle"
	"kids-lecture/api/internal/lecture"
	"kids-lecture/api/internal/logger"
	"kids-lecture/api/internal/metrics"
)

type stubGenerator struct {
	lec lecture.Lecture
	err error
}

func (s stubGenerator) Generate(_ context.Context, topic, grade string) (lecture.Lecture, error) {
	if s.err != nil {
		return lecture.Lecture{}, s.err
	}
	l := s.lec
	l.Topic, l.GradeLevel = topic, grade
	return l, nil
}

func (s stubGenerator) EngineName() string { return "stub" }

func newTestServer(t *testing.T, gen handle.LectureGenerator) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewRouter(handle.New(gen, 0, logger.Nop()), logger.Nop()))
	t.Cleanup(srv.Close)
	return srv
}

func TestRouter_GenerateRoute(t *testing.T) {
	srv := newTestServer(t, stubGenerator{lec: lecture.Lecture{Title: "T", Subtitle: "S", Content: "<p>C</p>"}})

	resp, err := http.Post(srv.URL+"/api/lectures/generate", "application/json",
		strings.NewReader(`{"topic":"Dinosaurs","grade":"2"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Content-Type"))
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, stubGenerator{})

	resp, err := http.Get(srv.URL + "/api/lectures/generate")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRouter_FailureIsGeneric(t *testing.T) {
	srv := newTestServer(t, stubGenerator{err: errors.New("dial tcp: connection refused")})

	resp, err := http.Post(srv.URL+"/api/lectures/generate", "application/json",
		strings.NewReader(`{"topic":"Space","grade":"3"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, stubGenerator{})

	for _, path := range []string{"/healthz", "/metrics"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestFormatLogLine(t *testing.T) {
	short := FormatLogLine("POST", "/api/x", 400, 12*time.Millisecond, []byte(`{"message":"no"}`+"\n"))
	assert.Equal(t, `POST /api/x 400 in 12ms :: {"message":"no"}`, short)

	noBody := FormatLogLine("GET", "/api/y", 204, 0, nil)
	assert.Equal(t, "GET /api/y 204 in 0ms", noBody)

	long := FormatLogLine("POST", "/api/lectures/generate", 200, 3*time.Second,
		[]byte(`{"title":"`+strings.Repeat("é", 200)+`"}`))
	assert.Equal(t, 80, utf8.RuneCountInString(long))
	assert.True(t, strings.HasSuffix(long, "…"))
}

func TestLimitedBuffer(t *testing.T) {
	var b limitedBuffer
	n, err := b.Write([]byte(strings.Repeat("a", maxTeeBuffer+10)))
	require.NoError(t, err)
	assert.Equal(t, maxTeeBuffer+10, n)
	assert.Equal(t, maxTeeBuffer, b.Len())
}

func TestRouteLabel(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/nowhere/42", nil)
	assert.Equal(t, unmatchedRoute, routeLabel(req))

	srv := newTestServer(t, stubGenerator{})
	for _, p := range []string{"/api/nowhere/1", "/api/nowhere/2"} {
		resp, err := http.Post(srv.URL+p, "application/json", strings.NewReader(`{}`))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Zero(t, testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodPost, p, "404")))
	}
}
