package main

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// oscillator generates a fixed-length sine tone.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
}

func newTone(freq float64, d time.Duration) beep.Streamer {
	return &oscillator{freq: freq, duration: sampleRate.N(d)}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}
		val := 0.3 * math.Sin(2*math.Pi*o.phase)
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(sampleRate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// SoundManager plays the two audio cues the game has: a blip on line
// clear and a descending buzz on game over. Muted managers are valid and
// do nothing.
type SoundManager struct {
	mixer       *beep.Mixer
	initialized bool
}

func NewSoundManager() *SoundManager {
	return &SoundManager{mixer: &beep.Mixer{}}
}

// Initialize sets up the speaker. Failure leaves the manager muted.
func (sm *SoundManager) Initialize() error {
	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops playback.
func (sm *SoundManager) Cleanup() {
	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

// PlayClear plays a short rising blip for cleared rows.
func (sm *SoundManager) PlayClear(rows int) {
	if !sm.initialized {
		return
	}
	freq := 520.0 + 120.0*float64(rows)
	speaker.Lock()
	sm.mixer.Add(newTone(freq, 120*time.Millisecond))
	speaker.Unlock()
}

// PlayGameOver plays a low buzz.
func (sm *SoundManager) PlayGameOver() {
	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Add(beep.Seq(
		newTone(220, 150*time.Millisecond),
		newTone(147, 300*time.Millisecond),
	))
	speaker.Unlock()
}
