//go:build headless

// audio_backend_headless.go - audio stub for headless builds

/*
Zest - a fixed-timestep, palette-indexed game runtime.

(c) 2019-2026 by Marco Lizza (marco.lizza@gmail.com)
License: MIT
*/

package main

type headlessAudioOutput struct {
	started bool
}

// NewOtoOutput in headless builds discards samples entirely; the mixer
// still runs so scripts behave identically.
func NewOtoOutput(mixer *SoundMixer) (AudioOutput, error) {
	return &headlessAudioOutput{}, nil
}

func (h *headlessAudioOutput) Start() error {
	h.started = true
	return nil
}

func (h *headlessAudioOutput) Stop() error {
	h.started = false
	return nil
}

func (h *headlessAudioOutput) Close() error {
	h.started = false
	return nil
}

func (h *headlessAudioOutput) IsStarted() bool {
	return h.started
}
