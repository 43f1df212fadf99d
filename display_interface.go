// display_interface.go - display backend interface for the Zest runtime

/*
Zest - a fixed-timestep, palette-indexed game runtime.

(c) 2019-2026 by Marco Lizza (marco.lizza@gmail.com)
License: MIT
*/

package main

import "fmt"

// DisplayError provides detailed error context for display operations.
type DisplayError struct {
	Operation string // What operation was being attempted
	Details   string // Additional error context
	Err       error  // Underlying error if any
}

func (e *DisplayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("display %s failed: %s: %v", e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("display %s failed: %s", e.Operation, e.Details)
}

func (e *DisplayError) Unwrap() error {
	return e.Err
}

// DisplayConfig is the hardware-independent display setup. Width and
// Height are the native canvas size, not the window size; the backend
// derives window geometry from them.
type DisplayConfig struct {
	Title      string
	Width      int
	Height     int
	Scale      int // 0 = auto-fit to the largest integer scale
	Fullscreen bool
	VSync      bool
	HideCursor bool
}

// DisplayOutput is the minimal contract a presentation backend must
// implement. UpdateFrame takes packed 32-bit color pixels only; the
// indexed buffer never crosses this boundary.
type DisplayOutput interface {
	Start() error
	Stop() error
	Close() error
	IsStarted() bool

	SetDisplayConfig(config DisplayConfig) error
	GetDisplayConfig() DisplayConfig

	// UpdateFrame uploads a packed-color frame; Present flushes it to
	// the screen. ShouldClose reports a close request from the window
	// system.
	UpdateFrame(buffer []byte) error
	Present() error
	ShouldClose() bool

	// Advance moves backend housekeeping forward by variable elapsed
	// time; the loop calls it once per iteration.
	Advance(elapsed float64)
}

// InputCapable is an optional backend capability: polling a snapshot of
// the input devices. Backends without real input (headless) simply
// don't implement it.
type InputCapable interface {
	PollInput() InputState
}

// Predefined display backend types.
const (
	DISPLAY_BACKEND_EBITEN = iota // GPU-backed Ebiten backend
	DISPLAY_BACKEND_NULL          // discards frames, for tests and tools
)

// NewDisplayOutput creates a display output instance using the
// specified backend.
func NewDisplayOutput(backend int) (DisplayOutput, error) {
	switch backend {
	case DISPLAY_BACKEND_EBITEN:
		return NewEbitenDisplay()
	case DISPLAY_BACKEND_NULL:
		return NewNullDisplay(), nil
	}
	return nil, &DisplayError{
		Operation: "backend creation",
		Details:   fmt.Sprintf("unknown backend type: %d", backend),
	}
}

// NullDisplay discards every frame. It backs tests and the headless
// build, and doubles as the reference implementation of the interface.
type NullDisplay struct {
	started    bool
	config     DisplayConfig
	frameCount uint64
	lastFrame  []byte
}

func NewNullDisplay() *NullDisplay {
	return &NullDisplay{}
}

func (d *NullDisplay) Start() error {
	d.started = true
	return nil
}

func (d *NullDisplay) Stop() error {
	d.started = false
	return nil
}

func (d *NullDisplay) Close() error {
	return d.Stop()
}

func (d *NullDisplay) IsStarted() bool {
	return d.started
}

func (d *NullDisplay) SetDisplayConfig(config DisplayConfig) error {
	d.config = config
	return nil
}

func (d *NullDisplay) GetDisplayConfig() DisplayConfig {
	return d.config
}

func (d *NullDisplay) UpdateFrame(buffer []byte) error {
	if d.lastFrame == nil || len(d.lastFrame) != len(buffer) {
		d.lastFrame = make([]byte, len(buffer))
	}
	copy(d.lastFrame, buffer)
	return nil
}

func (d *NullDisplay) Present() error {
	d.frameCount++
	return nil
}

func (d *NullDisplay) ShouldClose() bool {
	return false
}

func (d *NullDisplay) Advance(elapsed float64) {}

// FrameCount reports how many frames were presented; tests use it to
// assert the presentation phase ran.
func (d *NullDisplay) FrameCount() uint64 {
	return d.frameCount
}

// LastFrame exposes the most recent uploaded frame for inspection.
func (d *NullDisplay) LastFrame() []byte {
	return d.lastFrame
}
