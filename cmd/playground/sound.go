package main

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const soundSampleRate = beep.SampleRate(44100)

// toneFreqs maps the effect sound names used by the demo scene to sine
// frequencies.
var toneFreqs = map[string]float64{
	"bounce": 880,
	"boost":  1320,
	"escape": 440,
}

// beepSounds realizes the engine's sound intents with short generated sine
// tones. Toggled sounds are held in the mixer behind a Ctrl so a second
// toggle can pause them.
type beepSounds struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	held        map[string]*beep.Ctrl
	initialized bool
}

func newBeepSounds() *beepSounds {
	s := &beepSounds{
		mixer: &beep.Mixer{},
		held:  make(map[string]*beep.Ctrl),
	}
	if err := speaker.Init(soundSampleRate, soundSampleRate.N(time.Second/10)); err != nil {
		// Non-fatal, the playground runs silent without a device.
		return s
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return s
}

func (s *beepSounds) tone(name string) beep.Streamer {
	freq, ok := toneFreqs[name]
	if !ok {
		freq = 660
	}
	sine, err := generators.SineTone(soundSampleRate, freq)
	if err != nil {
		return nil
	}
	return sine
}

func (s *beepSounds) Play(name string) {
	if !s.initialized {
		return
	}
	sine := s.tone(name)
	if sine == nil {
		return
	}
	duration := soundSampleRate.N(50 * time.Millisecond)
	speaker.Lock()
	s.mixer.Add(beep.Take(duration, sine))
	speaker.Unlock()
}

func (s *beepSounds) Toggle(name string) {
	if !s.initialized {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ctrl, ok := s.held[name]; ok {
		speaker.Lock()
		ctrl.Paused = !ctrl.Paused
		speaker.Unlock()
		return
	}

	sine := s.tone(name)
	if sine == nil {
		return
	}
	ctrl := &beep.Ctrl{Streamer: sine}
	s.held[name] = ctrl
	speaker.Lock()
	s.mixer.Add(ctrl)
	speaker.Unlock()
}
