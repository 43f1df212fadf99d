//go:build !headless

// audio_backend_oto.go - OTO v3 audio output implementation

/*
Zest - a fixed-timestep, palette-indexed game runtime.

(c) 2019-2026 by Marco Lizza (marco.lizza@gmail.com)
License: MIT
*/

package main

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// OtoOutput streams the mixer through an OTO context. OTO pulls
// samples on its own goroutine via Read; the only shared state with
// the loop lives inside the mixer.
type OtoOutput struct {
	ctx       *oto.Context
	player    *oto.Player
	mixer     *SoundMixer
	sampleBuf []float32
	started   bool
	mutex     sync.Mutex
}

// NewOtoOutput opens an OTO context matching the mixer's rate.
func NewOtoOutput(mixer *SoundMixer) (AudioOutput, error) {
	op := &oto.NewContextOptions{
		SampleRate:   mixer.SampleRate(),
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	out := &OtoOutput{
		ctx:       ctx,
		mixer:     mixer,
		sampleBuf: make([]float32, 4096),
	}
	out.player = ctx.NewPlayer(out)
	return out, nil
}

// Read is the OTO pull path: mix into the pre-allocated buffer, then
// encode as little-endian float32.
func (o *OtoOutput) Read(p []byte) (int, error) {
	numSamples := len(p) / 4
	if len(o.sampleBuf) < numSamples {
		o.sampleBuf = make([]float32, numSamples)
	}
	samples := o.sampleBuf[:numSamples]
	o.mixer.ReadSamples(samples)

	for i, s := range samples {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s))
	}
	return numSamples * 4, nil
}

func (o *OtoOutput) Start() error {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	if !o.started && o.player != nil {
		o.player.Play()
		o.started = true
	}
	return nil
}

func (o *OtoOutput) Stop() error {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	if o.started && o.player != nil {
		o.player.Pause()
		o.started = false
	}
	return nil
}

func (o *OtoOutput) Close() error {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	if o.player != nil {
		o.player.Close()
		o.player = nil
	}
	o.started = false
	return nil
}

func (o *OtoOutput) IsStarted() bool {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	return o.started
}
