package speech

import (
	"sync"

	"github.com/google/uuid"

	"kids-lecture/api/internal/logger"
	"kids-lecture/api/internal/sanitize"
)

// Controller is the playback handle a presentation session owns. It keeps at
// most one active utterance; starting a new one cancels the previous.
type Controller struct {
	synth Synthesizer
	log   *logger.Logger

	mu      sync.Mutex
	current *Utterance
	onError func(error)
}

// NewController wraps synth. A nil synth makes every call a no-op.
func NewController(synth Synthesizer, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{synth: synth, log: log.With("component", "speech")}
}

func (c *Controller) Supported() bool { return c.synth != nil }

// OnError registers fn to receive playback failures of later Starts. They are
// logged either way. fn may run on the synthesizer's goroutine.
func (c *Controller) OnError(fn func(error)) {
	c.mu.Lock()
	c.onError = fn
	c.mu.Unlock()
}

// Start narrates the plain text of htmlContent. Failures are logged, never returned.
func (c *Controller) Start(htmlContent string) {
	if c.synth == nil {
		c.log.Warn("text-to-speech is not supported")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.synth.Cancel()
	c.current = nil

	text := sanitize.PlainText(htmlContent)
	if text == "" {
		c.log.Debug("nothing to narrate")
		return
	}

	u := &Utterance{
		ID:     uuid.New(),
		Text:   text,
		Voice:  PickVoice(c.synth.Voices()),
		Rate:   DefaultRate,
		Pitch:  DefaultPitch,
		Volume: DefaultVolume,
	}
	ulog := c.log.With("utterance", u.ID.String())
	handler := c.onError
	u.OnError = func(err error) {
		ulog.Error("speech synthesis error", "error", err)
		if handler != nil {
			handler(err)
		}
	}

	if err := c.synth.Speak(u); err != nil {
		u.OnError(err)
		return
	}
	c.current = u
}

// Stop cancels playback. Safe to call when nothing is playing.
func (c *Controller) Stop() {
	if c.synth == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.synth.Cancel()
	c.current = nil
}

func (c *Controller) Pause() {
	if c.synth == nil {
		return
	}
	c.synth.Pause()
}

func (c *Controller) Resume() {
	if c.synth == nil {
		return
	}
	c.synth.Resume()
}

func (c *Controller) IsSpeaking() bool {
	if c.synth == nil {
		return false
	}
	return c.synth.Speaking()
}

// Current returns the utterance handed to the synthesizer by the last Start, if any.
func (c *Controller) Current() *Utterance {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}
