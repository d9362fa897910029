package speech

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type speechCall struct {
	Model  string  `json:"model"`
	Input  string  `json:"input"`
	Voice  string  `json:"voice"`
	Format string  `json:"response_format"`
	Speed  float64 `json:"speed"`
}

func newSpeechServer(t *testing.T) (*httptest.Server, *[]speechCall, *sync.Mutex) {
	t.Helper()
	var (
		mu    sync.Mutex
		calls []speechCall
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/speech" {
			http.NotFound(w, r)
			return
		}
		var c speechCall
		_ = json.NewDecoder(r.Body).Decode(&c)
		mu.Lock()
		calls = append(calls, c)
		mu.Unlock()
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = io.WriteString(w, "mp3:"+c.Input)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls, &mu
}

func TestOpenAISynthesizer_DeliversParts(t *testing.T) {
	srv, calls, mu := newSpeechServer(t)

	var (
		got  []string
		done = make(chan struct{})
	)
	sink := func(_ context.Context, _ *Utterance, part int, audio io.Reader) error {
		b, err := io.ReadAll(audio)
		assert.NoError(t, err)
		got = append(got, string(b))
		if part == 0 {
			close(done)
		}
		return nil
	}
	s := NewOpenAISynthesizerWithBaseURL("sk-test", srv.URL+"/v1", "", sink)

	voice := &Voice{Name: "nova (female)"}
	require.NoError(t, s.Speak(&Utterance{Text: "Plants need light.", Voice: voice, Rate: DefaultRate}))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("sink was not called")
	}
	require.Eventually(t, func() bool { return !s.Speaking() }, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, []string{"mp3:Plants need light."}, got)
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, *calls, 1)
	c := (*calls)[0]
	assert.Equal(t, "tts-1", c.Model)
	assert.Equal(t, "nova", c.Voice)
	assert.Equal(t, "mp3", c.Format)
	assert.InDelta(t, DefaultRate, c.Speed, 0.001)
}

func TestOpenAISynthesizer_PauseHoldsNextPart(t *testing.T) {
	srv, _, _ := newSpeechServer(t)

	first := make(chan struct{})
	release := make(chan struct{})
	var (
		mu    sync.Mutex
		parts []int
	)
	sink := func(_ context.Context, _ *Utterance, part int, audio io.Reader) error {
		_, _ = io.Copy(io.Discard, audio)
		mu.Lock()
		parts = append(parts, part)
		mu.Unlock()
		if part == 0 {
			close(first)
			<-release
		}
		return nil
	}
	s := NewOpenAISynthesizerWithBaseURL("sk-test", srv.URL+"/v1", "tts-1", sink)

	text := strings.Repeat("a", maxSpeechInput) + " tail"
	require.NoError(t, s.Speak(&Utterance{Text: text, Rate: 1}))

	<-first
	s.Pause()
	assert.True(t, s.Paused())
	close(release)

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	assert.Equal(t, []int{0}, parts)
	mu.Unlock()
	assert.True(t, s.Speaking())

	s.Resume()
	require.Eventually(t, func() bool { return !s.Speaking() }, 5*time.Second, 10*time.Millisecond)
	mu.Lock()
	assert.Equal(t, []int{0, 1}, parts)
	mu.Unlock()
}

func TestOpenAISynthesizer_CancelStops(t *testing.T) {
	srv, _, _ := newSpeechServer(t)

	first := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	sink := func(_ context.Context, _ *Utterance, part int, audio io.Reader) error {
		calls.Add(1)
		if part == 0 {
			close(first)
			<-release
		}
		return nil
	}
	s := NewOpenAISynthesizerWithBaseURL("sk-test", srv.URL+"/v1", "", sink)

	text := strings.Repeat("b", maxSpeechInput) + " tail"
	require.NoError(t, s.Speak(&Utterance{Text: text, Rate: 1}))
	<-first
	s.Cancel()
	assert.False(t, s.Speaking())
	close(release)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestOpenAISynthesizer_ReportsErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":{"message":"bad key","type":"invalid_request_error"}}`)
	}))
	defer srv.Close()

	s := NewOpenAISynthesizerWithBaseURL("sk-bad", srv.URL+"/v1", "", func(context.Context, *Utterance, int, io.Reader) error {
		return nil
	})
	errs := make(chan error, 1)
	require.NoError(t, s.Speak(&Utterance{Text: "hello", OnError: func(err error) { errs <- err }}))

	select {
	case err := <-errs:
		assert.Contains(t, err.Error(), "bad key")
	case <-time.After(5 * time.Second):
		t.Fatal("no error reported")
	}
}

func TestOpenAISynthesizer_RejectsEmpty(t *testing.T) {
	s := NewOpenAISynthesizer("sk", "", func(context.Context, *Utterance, int, io.Reader) error { return nil })
	assert.Error(t, s.Speak(&Utterance{Text: "  "}))
	assert.Error(t, s.Speak(nil))
	assert.False(t, s.Speaking())

	noSink := NewOpenAISynthesizer("sk", "", nil)
	assert.Error(t, noSink.Speak(&Utterance{Text: "hi"}))
}

func TestOpenAISynthesizer_Voices(t *testing.T) {
	s := NewOpenAISynthesizer("sk", "", nil)
	v := PickVoice(s.Voices())
	require.NotNil(t, v)
	assert.Equal(t, "nova (female)", v.Name)
	assert.Equal(t, "nova", string(voiceID(v)))
	assert.Equal(t, "alloy", string(voiceID(nil)))
}

func TestSplitText(t *testing.T) {
	assert.Equal(t, []string{"one two", "three"}, SplitText("one two three", 8))
	assert.Equal(t, []string{"line one\nline two"}, SplitText("line one\nline two", 100))
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, SplitText("abcdefghij", 4))
	assert.Nil(t, SplitText("   ", 10))
	assert.Nil(t, SplitText("text", 0))

	parts := SplitText("ééé", 3)
	assert.Equal(t, []string{"é", "é", "é"}, parts)

	long := strings.Repeat("word ", 2000)
	for _, p := range SplitText(long, maxSpeechInput) {
		assert.LessOrEqual(t, len(p), maxSpeechInput)
	}
}

func TestOpenAISynthesizer_ReportsLaterPartFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) > 1 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `{"error":{"message":"tts overloaded","type":"server_error"}}`)
			return
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = io.WriteString(w, "mp3")
	}))
	defer srv.Close()

	var delivered atomic.Int32
	s := NewOpenAISynthesizerWithBaseURL("sk-test", srv.URL+"/v1", "", func(_ context.Context, _ *Utterance, _ int, audio io.Reader) error {
		_, _ = io.Copy(io.Discard, audio)
		delivered.Add(1)
		return nil
	})
	errs := make(chan error, 1)
	text := strings.Repeat("c", maxSpeechInput) + " tail"
	require.NoError(t, s.Speak(&Utterance{Text: text, Rate: 1, OnError: func(err error) { errs <- err }}))

	select {
	case err := <-errs:
		assert.Contains(t, err.Error(), "part 1")
		assert.Contains(t, err.Error(), "tts overloaded")
	case <-time.After(5 * time.Second):
		t.Fatal("no error reported")
	}
	require.Eventually(t, func() bool { return !s.Speaking() }, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(1), delivered.Load())
}
