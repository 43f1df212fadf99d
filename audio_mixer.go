// audio_mixer.go - small voice mixer driven at variable rate by the loop

/*
Zest - a fixed-timestep, palette-indexed game runtime.

(c) 2019-2026 by Marco Lizza (marco.lizza@gmail.com)
License: MIT
*/

package main

import (
	"fmt"
	"math"
	"sync"
)

// Waveform selects the oscillator shape of a voice.
type Waveform int

const (
	WaveSquare Waveform = iota
	WaveSine
	WaveTriangle
	WaveSawtooth
)

// ParseWaveform maps a script-facing name to a Waveform.
func ParseWaveform(name string) (Waveform, error) {
	switch name {
	case "square":
		return WaveSquare, nil
	case "sine":
		return WaveSine, nil
	case "triangle":
		return WaveTriangle, nil
	case "sawtooth":
		return WaveSawtooth, nil
	}
	return WaveSquare, fmt.Errorf("unknown waveform `%s`", name)
}

type voice struct {
	active    bool
	waveform  Waveform
	frequency float64
	volume    float64
	phase     float64
	remaining float64 // seconds left; negative means until stopped
}

// SoundMixer synthesizes a fixed set of voices. The audio backend
// pulls samples from it on its own goroutine; the engine loop ages
// voice durations once per iteration with the variable elapsed time.
type SoundMixer struct {
	mutex      sync.Mutex
	sampleRate int
	voices     []voice
}

// NewSoundMixer allocates `voices` silent voices.
func NewSoundMixer(sampleRate, voices int) (*SoundMixer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}
	if voices <= 0 {
		return nil, fmt.Errorf("invalid voice count %d", voices)
	}
	return &SoundMixer{
		sampleRate: sampleRate,
		voices:     make([]voice, voices),
	}, nil
}

// SampleRate reports the mixing rate in Hz.
func (m *SoundMixer) SampleRate() int {
	return m.sampleRate
}

// Voices reports the number of voices.
func (m *SoundMixer) Voices() int {
	return len(m.voices)
}

// Play starts (or retriggers) a voice. A non-positive duration keeps
// the voice running until Stop.
func (m *SoundMixer) Play(index int, waveform Waveform, frequency, volume, duration float64) error {
	if index < 0 || index >= len(m.voices) {
		return fmt.Errorf("voice #%d out of range (have %d)", index, len(m.voices))
	}
	if frequency <= 0 {
		return fmt.Errorf("invalid frequency %g", frequency)
	}
	volume = math.Max(0, math.Min(1, volume))

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.voices[index] = voice{
		active:    true,
		waveform:  waveform,
		frequency: frequency,
		volume:    volume,
		remaining: duration,
	}
	if duration <= 0 {
		m.voices[index].remaining = -1
	}
	return nil
}

// Stop silences a voice immediately.
func (m *SoundMixer) Stop(index int) {
	if index < 0 || index >= len(m.voices) {
		return
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.voices[index].active = false
}

// StopAll silences every voice.
func (m *SoundMixer) StopAll() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for i := range m.voices {
		m.voices[i].active = false
	}
}

// Advance ages timed voices by the iteration's elapsed wall-clock
// time, expiring the ones whose duration ran out.
func (m *SoundMixer) Advance(elapsed float64) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for i := range m.voices {
		v := &m.voices[i]
		if !v.active || v.remaining < 0 {
			continue
		}
		v.remaining -= elapsed
		if v.remaining <= 0 {
			v.active = false
		}
	}
}

// ReadSamples fills `out` with mixed mono samples, advancing voice
// phases. Inactive voices contribute silence.
func (m *SoundMixer) ReadSamples(out []float32) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	step := 1.0 / float64(m.sampleRate)
	for i := range out {
		sample := 0.0
		for j := range m.voices {
			v := &m.voices[j]
			if !v.active {
				continue
			}
			sample += v.sample() * v.volume
			v.phase += v.frequency * step
			if v.phase >= 1.0 {
				v.phase -= math.Floor(v.phase)
			}
		}
		if sample > 1.0 {
			sample = 1.0
		} else if sample < -1.0 {
			sample = -1.0
		}
		out[i] = float32(sample)
	}
}

func (v *voice) sample() float64 {
	switch v.waveform {
	case WaveSine:
		return math.Sin(2 * math.Pi * v.phase)
	case WaveTriangle:
		if v.phase < 0.5 {
			return 4*v.phase - 1
		}
		return 3 - 4*v.phase
	case WaveSawtooth:
		return 2*v.phase - 1
	default: // WaveSquare
		if v.phase < 0.5 {
			return 1
		}
		return -1
	}
}

// AudioOutput is the contract an audio backend must implement; it pulls
// samples from the mixer on its own schedule.
type AudioOutput interface {
	Start() error
	Stop() error
	Close() error
	IsStarted() bool
}
