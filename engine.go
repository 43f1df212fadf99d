// engine.go - subsystem lifecycle and wiring for the Zest runtime

/*
Zest - a fixed-timestep, palette-indexed game runtime.

(c) 2019-2026 by Marco Lizza (marco.lizza@gmail.com)
License: MIT
*/

package main

import (
	"fmt"
	"path/filepath"
	"time"
)

// engineState is the loop's lifecycle. Stopping finishes the current
// iteration's remaining phases before the loop exits.
type engineState int

const (
	engineRunning engineState = iota
	engineStopping
	engineTerminated
)

// Callbacks are the collaborator-provided simulation hooks. Returning
// false from any of them requests a stop; the scheduler latches it and
// skips further callback invocations for the iteration while still
// completing the side-effecting phases.
type Callbacks interface {
	Process() bool
	Update(dt float64) bool
	Render(alpha float64) bool
}

// Engine owns every subsystem and the frame scheduler. All of its
// state is confined to the loop goroutine; the display and audio
// backends run their own goroutines behind their interfaces.
type Engine struct {
	config Config

	context   *RenderContext
	display   DisplayOutput
	input     InputCapable // nil when the backend has no input devices
	presenter *Presenter
	mixer     *SoundMixer
	audio     AudioOutput
	script    *ScriptHost
	callbacks Callbacks

	state          engineState
	quit           bool
	simulationTime float64
	lag            float64
	fps            float64
	fpsRing        fpsCounter
	inputState     InputState

	// Clock and sleep are swappable for tests.
	now   func() time.Time
	sleep func(time.Duration)

	// Acquired resources, released in reverse order.
	teardown []func()
}

// NewEngine initializes every subsystem in order: configuration,
// canvas, display, audio, scripting. On any failure the subsystems
// already built are torn down in exact reverse order and the error is
// returned; nothing is left half-initialized.
func NewEngine(basePath string) (*Engine, error) {
	config, err := LoadConfig(filepath.Join(basePath, "zest.yml"))
	if err != nil {
		return nil, fmt.Errorf("can't load configuration: %w", err)
	}
	if config.Debug {
		SetLogLevel(LogDebug)
	}

	e := &Engine{
		config: config,
		now:    time.Now,
		sleep:  time.Sleep,
		state:  engineRunning,
	}

	context, err := NewRenderContext(config.Width, config.Height)
	if err != nil {
		return nil, fmt.Errorf("can't initialize canvas: %w", err)
	}
	e.context = context
	e.pushTeardown(context.Destroy)

	if colors, err := config.PaletteColors(); err != nil {
		e.runTeardown()
		return nil, fmt.Errorf("can't load palette: %w", err)
	} else if colors != nil {
		if err := context.SetPalette(colors); err != nil {
			e.runTeardown()
			return nil, fmt.Errorf("can't load palette: %w", err)
		}
	}

	display, err := NewDisplayOutput(DISPLAY_BACKEND_EBITEN)
	if err != nil {
		e.runTeardown()
		return nil, fmt.Errorf("can't initialize display: %w", err)
	}
	if err := display.SetDisplayConfig(DisplayConfig{
		Title:      config.Title,
		Width:      config.Width,
		Height:     config.Height,
		Scale:      config.Scale,
		Fullscreen: config.Fullscreen,
		VSync:      config.VSync,
		HideCursor: config.HideCursor,
	}); err != nil {
		e.runTeardown()
		return nil, fmt.Errorf("can't configure display: %w", err)
	}
	if err := display.Start(); err != nil {
		e.runTeardown()
		return nil, fmt.Errorf("can't start display: %w", err)
	}
	e.display = display
	e.pushTeardown(func() { _ = display.Close() })
	e.input, _ = display.(InputCapable)

	order, err := ParsePixelOrder(config.PixelOrder)
	if err != nil {
		e.runTeardown()
		return nil, err
	}
	e.presenter = NewPresenter(context, display, order)

	mixer, err := NewSoundMixer(config.SampleRate, config.Voices)
	if err != nil {
		e.runTeardown()
		return nil, fmt.Errorf("can't initialize audio: %w", err)
	}
	audio, err := NewOtoOutput(mixer)
	if err != nil {
		e.runTeardown()
		return nil, fmt.Errorf("can't initialize audio: %w", err)
	}
	if err := audio.Start(); err != nil {
		e.runTeardown()
		return nil, fmt.Errorf("can't start audio: %w", err)
	}
	e.mixer = mixer
	e.audio = audio
	e.pushTeardown(func() { _ = audio.Close() })

	script, err := NewScriptHost(filepath.Join(basePath, config.Boot), context, mixer, e)
	if err != nil {
		e.runTeardown()
		return nil, fmt.Errorf("can't initialize interpreter: %w", err)
	}
	e.script = script
	e.callbacks = script
	e.pushTeardown(script.Close)

	return e, nil
}

// Terminate releases every subsystem in reverse initialization order.
// Safe to call once after Run returns; further calls are no-ops.
func (e *Engine) Terminate() {
	if e.state == engineTerminated {
		return
	}
	e.runTeardown()
	e.state = engineTerminated
}

// Quit requests a cooperative stop; the loop honors it at the next
// iteration boundary. Part of the ScriptEnvironment contract.
func (e *Engine) Quit() {
	e.quit = true
}

// Time reports the committed simulation time, a monotonic sum of fixed
// steps.
func (e *Engine) Time() float64 {
	return e.simulationTime
}

// FPS reports the rolling frame-rate estimate.
func (e *Engine) FPS() float64 {
	return e.fps
}

// Input returns the current iteration's input snapshot.
func (e *Engine) Input() InputState {
	return e.inputState
}

func (e *Engine) pushTeardown(fn func()) {
	e.teardown = append(e.teardown, fn)
}

func (e *Engine) runTeardown() {
	for i := len(e.teardown) - 1; i >= 0; i-- {
		e.teardown[i]()
	}
	e.teardown = nil
}
