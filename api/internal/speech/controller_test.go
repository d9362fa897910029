package speech

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSynth struct {
	mu       sync.Mutex
	voices   []Voice
	spoken   []*Utterance
	cancels  int
	paused   bool
	speaking bool
	speakErr error
}

func (f *fakeSynth) Voices() []Voice { return f.voices }

func (f *fakeSynth) Speak(u *Utterance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.speakErr != nil {
		return f.speakErr
	}
	f.spoken = append(f.spoken, u)
	f.speaking = true
	return nil
}

func (f *fakeSynth) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancels++
	f.speaking = false
	f.paused = false
}

func (f *fakeSynth) Pause() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paused = true
}

func (f *fakeSynth) Resume() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paused = false
}

func (f *fakeSynth) Speaking() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.speaking
}

func TestPickVoice(t *testing.T) {
	voices := []Voice{{Name: "Daniel"}, {Name: "Samantha Female"}, {Name: "Kid child"}}
	v := PickVoice(voices)
	require.NotNil(t, v)
	assert.Equal(t, "Samantha Female", v.Name)

	assert.Nil(t, PickVoice([]Voice{{Name: "Daniel"}, {Name: "Fred"}}))
	assert.Nil(t, PickVoice(nil))
}

func TestController_StartSpeaksPlainText(t *testing.T) {
	synth := &fakeSynth{voices: []Voice{{Name: "alloy"}, {Name: "nova (female)"}}}
	c := NewController(synth, nil)

	c.Start(`<h1>Plants</h1><p>Plants <strong>need</strong> light.</p><script>alert(1)</script>`)

	require.Len(t, synth.spoken, 1)
	u := synth.spoken[0]
	assert.Equal(t, "Plants\nPlants need light.", u.Text)
	assert.Equal(t, DefaultRate, u.Rate)
	assert.Equal(t, DefaultPitch, u.Pitch)
	assert.Equal(t, DefaultVolume, u.Volume)
	require.NotNil(t, u.Voice)
	assert.Equal(t, "nova (female)", u.Voice.Name)
	assert.Same(t, u, c.Current())
	assert.True(t, c.IsSpeaking())
	assert.Equal(t, 1, synth.cancels)
}

func TestController_StartCancelsPrevious(t *testing.T) {
	synth := &fakeSynth{}
	c := NewController(synth, nil)

	c.Start("<p>one</p>")
	c.Start("<p>two</p>")

	require.Len(t, synth.spoken, 2)
	assert.Equal(t, 2, synth.cancels)
	assert.Equal(t, "two", c.Current().Text)
	assert.Nil(t, c.Current().Voice)
}

func TestController_SpeakFailureIsSwallowed(t *testing.T) {
	synth := &fakeSynth{speakErr: errors.New("device busy")}
	c := NewController(synth, nil)

	assert.NotPanics(t, func() { c.Start("<p>hello</p>") })
	assert.Nil(t, c.Current())
}

func TestController_EmptyTextDoesNotSpeak(t *testing.T) {
	synth := &fakeSynth{}
	c := NewController(synth, nil)

	c.Start("<div>   </div>")
	assert.Empty(t, synth.spoken)
	assert.Nil(t, c.Current())
}

func TestController_PauseResumeStop(t *testing.T) {
	synth := &fakeSynth{}
	c := NewController(synth, nil)
	c.Start("<p>hello</p>")

	c.Pause()
	assert.True(t, synth.paused)
	c.Resume()
	assert.False(t, synth.paused)

	c.Stop()
	assert.False(t, c.IsSpeaking())
	assert.Nil(t, c.Current())

	assert.NotPanics(t, c.Stop)
}

func TestController_Unsupported(t *testing.T) {
	c := NewController(nil, nil)
	assert.False(t, c.Supported())
	assert.NotPanics(t, func() {
		c.Start("<p>hello</p>")
		c.Pause()
		c.Resume()
		c.Stop()
	})
	assert.False(t, c.IsSpeaking())
	assert.Nil(t, c.Current())
}

func TestController_OnErrorReceivesFailures(t *testing.T) {
	synth := &fakeSynth{}
	c := NewController(synth, nil)
	var got []error
	c.OnError(func(err error) { got = append(got, err) })

	c.Start("<p>hello</p>")
	require.Len(t, synth.spoken, 1)
	synth.spoken[0].reportError(errors.New("part 2 failed"))

	synth.speakErr = errors.New("device busy")
	c.Start("<p>again</p>")

	require.Len(t, got, 2)
	assert.EqualError(t, got[0], "part 2 failed")
	assert.EqualError(t, got[1], "device busy")
}
