package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	goopenai "github.com/sashabaranov/go-openai"
)

// maxSpeechInput stays under the 4096 character input limit of the speech endpoint.
const maxSpeechInput = 4000

// Sink receives rendered audio, one part at a time, in order.
type Sink func(ctx context.Context, u *Utterance, part int, audio io.Reader) error

var openAIVoices = []Voice{
	{Name: "alloy", Lang: "en", Default: true},
	{Name: "echo", Lang: "en"},
	{Name: "fable", Lang: "en"},
	{Name: "onyx", Lang: "en"},
	{Name: "nova (female)", Lang: "en"},
	{Name: "shimmer (female)", Lang: "en"},
}

// OpenAISynthesizer renders narration with the OpenAI speech API and hands
// each rendered part to a Sink. Pause takes effect between parts.
type OpenAISynthesizer struct {
	client *goopenai.Client
	model  goopenai.SpeechModel
	sink   Sink

	mu       sync.Mutex
	gen      uint64
	cancel   context.CancelFunc
	speaking bool
	resume   chan struct{} // non-nil while paused
}

func NewOpenAISynthesizer(apiKey, model string, sink Sink) *OpenAISynthesizer {
	return NewOpenAISynthesizerWithBaseURL(apiKey, "", model, sink)
}

func NewOpenAISynthesizerWithBaseURL(apiKey, baseURL, model string, sink Sink) *OpenAISynthesizer {
	cfg := goopenai.DefaultConfig(strings.TrimSpace(apiKey))
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = string(goopenai.TTSModel1)
	}
	return &OpenAISynthesizer{
		client: goopenai.NewClientWithConfig(cfg),
		model:  goopenai.SpeechModel(model),
		sink:   sink,
	}
}

func (s *OpenAISynthesizer) Voices() []Voice {
	return append([]Voice(nil), openAIVoices...)
}

func (s *OpenAISynthesizer) Speak(u *Utterance) error {
	if u == nil || strings.TrimSpace(u.Text) == "" {
		return errors.New("speech: empty utterance")
	}
	if s.sink == nil {
		return errors.New("speech: no audio sink")
	}
	parts := SplitText(u.Text, maxSpeechInput)

	ctx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.stopLocked()
	s.gen++
	gen := s.gen
	s.cancel = cancel
	s.speaking = true
	s.mu.Unlock()

	go s.run(ctx, gen, u, parts)
	return nil
}

func (s *OpenAISynthesizer) run(ctx context.Context, gen uint64, u *Utterance, parts []string) {
	defer s.finish(gen)

	for i, part := range parts {
		if err := s.waitIfPaused(ctx); err != nil {
			return
		}
		resp, err := s.client.CreateSpeech(ctx, goopenai.CreateSpeechRequest{
			Model:          s.model,
			Input:          part,
			Voice:          voiceID(u.Voice),
			ResponseFormat: goopenai.SpeechResponseFormatMp3,
			Speed:          u.Rate,
		})
		if err != nil {
			if ctx.Err() == nil {
				u.reportError(fmt.Errorf("openai speech part %d: %w", i, err))
			}
			return
		}
		err = s.sink(ctx, u, i, resp)
		_ = resp.Close()
		if err != nil {
			if ctx.Err() == nil {
				u.reportError(fmt.Errorf("deliver speech part %d: %w", i, err))
			}
			return
		}
	}
}

func (s *OpenAISynthesizer) finish(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = nil
	s.speaking = false
	s.releaseLocked()
}

func (s *OpenAISynthesizer) waitIfPaused(ctx context.Context) error {
	s.mu.Lock()
	ch := s.resume
	s.mu.Unlock()
	if ch != nil {
		select {
		case <-ch:
		case <-ctx.Done():
		}
	}
	return ctx.Err()
}

func (s *OpenAISynthesizer) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.gen++
}

func (s *OpenAISynthesizer) stopLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.speaking = false
	s.releaseLocked()
}

func (s *OpenAISynthesizer) releaseLocked() {
	if s.resume != nil {
		close(s.resume)
		s.resume = nil
	}
}

func (s *OpenAISynthesizer) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.speaking && s.resume == nil {
		s.resume = make(chan struct{})
	}
}

func (s *OpenAISynthesizer) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseLocked()
}

func (s *OpenAISynthesizer) Speaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speaking
}

func (s *OpenAISynthesizer) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resume != nil
}

func voiceID(v *Voice) goopenai.SpeechVoice {
	if v == nil {
		return goopenai.VoiceAlloy
	}
	if f := strings.Fields(v.Name); len(f) > 0 {
		return goopenai.SpeechVoice(f[0])
	}
	return goopenai.VoiceAlloy
}

// SplitText packs text into parts of at most max bytes, breaking between
// words and keeping line breaks. Words longer than max are cut on rune boundaries.
func SplitText(text string, max int) []string {
	if max <= 0 {
		return nil
	}
	var (
		parts []string
		cur   strings.Builder
	)
	flush := func() {
		if p := strings.TrimSpace(cur.String()); p != "" {
			parts = append(parts, p)
		}
		cur.Reset()
	}
	add := func(sep, word string) {
		if cur.Len() > 0 && cur.Len()+len(sep)+len(word) > max {
			flush()
		}
		if cur.Len() > 0 {
			cur.WriteString(sep)
		}
		cur.WriteString(word)
	}

	for _, line := range strings.Split(text, "\n") {
		sep := "\n"
		for _, word := range strings.Fields(line) {
			for len(word) > max {
				cut := cutRunes(word, max)
				add(sep, word[:cut])
				sep = " "
				word = word[cut:]
			}
			add(sep, word)
			sep = " "
		}
	}
	flush()
	return parts
}

// cutRunes returns the largest index <= max that falls on a rune boundary.
func cutRunes(s string, max int) int {
	n := 0
	for i := range s {
		if i > max {
			break
		}
		n = i
	}
	if n == 0 {
		// a single rune wider than max; take it whole
		for i := range s {
			if i > 0 {
				return i
			}
		}
		return len(s)
	}
	return n
}
