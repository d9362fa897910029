package anthropic

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kids-lecture/api/internal/llm"
)

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant", r.Header.Get("X-Api-Key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id":"msg_1","type":"message","role":"assistant","model":"claude-3-5-haiku-latest",
			"content":[{"type":"text","text":"<h1>Bees</h1>"},{"type":"text","text":"<p>Bees make honey.</p>"}],
			"stop_reason":"end_turn","usage":{"input_tokens":10,"output_tokens":20}
		}`)
	}))
	defer srv.Close()

	e := New("sk-ant", "claude-3-5-haiku-latest", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	out, err := e.Generate(context.Background(), "Explain bees")
	require.NoError(t, err)
	assert.Equal(t, "<h1>Bees</h1><p>Bees make honey.</p>", out)
	assert.Equal(t, "anthropic", e.Name())
}

func TestGenerate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"type":"error","error":{"type":"api_error","message":"overloaded"}}`)
	}))
	defer srv.Close()

	e := New("sk-ant", "claude-3-5-haiku-latest", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	_, err := e.Generate(context.Background(), "p")
	assert.Error(t, err)
}

func TestGenerate_MissingKey(t *testing.T) {
	_, err := New("", "claude-3-5-haiku-latest").Generate(context.Background(), "p")
	assert.ErrorIs(t, err, llm.ErrMissingAPIKey)
}
