// Package speech narrates lecture HTML through a pluggable synthesizer.
package speech

import (
	"strings"

	"github.com/google/uuid"
)

// Narration defaults: a little slower than normal for young listeners.
const (
	DefaultRate   = 0.9
	DefaultPitch  = 1.0
	DefaultVolume = 1.0
)

var preferredVoiceHints = []string{"female", "girl", "child"}

type Voice struct {
	Name    string
	Lang    string
	Default bool
}

// Utterance is one narration request. The synthesizer that receives it owns it
// until it finishes or is cancelled.
type Utterance struct {
	ID     uuid.UUID
	Text   string
	Voice  *Voice
	Rate   float64
	Pitch  float64
	Volume float64

	// OnError is called from the synthesizer's goroutine on playback failures.
	OnError func(error)
}

func (u *Utterance) reportError(err error) {
	if u.OnError != nil && err != nil {
		u.OnError(err)
	}
}

// Synthesizer is the platform speech capability.
type Synthesizer interface {
	Voices() []Voice
	// Speak begins playback and returns without waiting for it to end.
	Speak(u *Utterance) error
	Cancel()
	Pause()
	Resume()
	Speaking() bool
}

// PickVoice returns the first voice whose name hints at a child-friendly or
// female voice, or nil to keep the platform default.
func PickVoice(voices []Voice) *Voice {
	for i := range voices {
		name := strings.ToLower(voices[i].Name)
		for _, hint := range preferredVoiceHints {
			if strings.Contains(name, hint) {
				v := voices[i]
				return &v
			}
		}
	}
	return nil
}
