//go:build !headless

// display_backend_ebiten.go - Ebiten display backend for the Zest runtime

/*
Zest - a fixed-timestep, palette-indexed game runtime.

(c) 2019-2026 by Marco Lizza (marco.lizza@gmail.com)
License: MIT
*/

package main

import (
	"errors"
	"fmt"
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// EbitenDisplay presents packed-color frames through an Ebiten window.
// Ebiten owns its own render goroutine; the engine loop talks to it
// only through the frame buffer (mutex-guarded) and a few atomics.
type EbitenDisplay struct {
	running bool
	config  DisplayConfig

	canvas      *ebiten.Image
	frameBuffer []byte
	bufferMutex sync.RWMutex

	physicalW   int
	physicalH   int
	scale       int
	destination Quad

	input InputState

	frameCount     uint64
	closeRequested atomic.Bool
	showOverlay    bool
	overlayFPS     float64

	vsyncChan chan struct{}
	done      chan struct{}
}

// NewEbitenDisplay creates the GPU-backed display output.
func NewEbitenDisplay() (DisplayOutput, error) {
	return &EbitenDisplay{
		config: DisplayConfig{
			Width:  320,
			Height: 240,
			Scale:  1,
		},
		frameBuffer: make([]byte, 320*240*4),
		vsyncChan:   make(chan struct{}, 1),
		done:        make(chan struct{}),
	}, nil
}

func (d *EbitenDisplay) Start() error {
	if d.running {
		return nil
	}
	d.running = true

	ebiten.SetWindowTitle(d.config.Title)
	ebiten.SetVsyncEnabled(d.config.VSync)
	ebiten.SetRunnableOnUnfocused(true)
	if d.config.HideCursor {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}
	if d.config.Fullscreen {
		ebiten.SetFullscreen(true)
	} else {
		ebiten.SetWindowSize(d.physicalW, d.physicalH)
	}

	go func() {
		defer func() {
			d.running = false
			d.closeRequested.Store(true)
			close(d.done)
		}()
		if err := ebiten.RunGame(d); err != nil && !errors.Is(err, ebiten.Termination) {
			Logf(LogError, "display", "ebiten terminated: %v", err)
		}
	}()

	// Wait for the first Draw so that callers see a live window.
	<-d.vsyncChan
	return nil
}

func (d *EbitenDisplay) Stop() error {
	d.running = false
	return nil
}

func (d *EbitenDisplay) Close() error {
	return d.Stop()
}

func (d *EbitenDisplay) IsStarted() bool {
	return d.running
}

func (d *EbitenDisplay) SetDisplayConfig(config DisplayConfig) error {
	if config.Width <= 0 || config.Height <= 0 {
		return &DisplayError{
			Operation: "configuration",
			Details:   fmt.Sprintf("invalid canvas size %dx%d", config.Width, config.Height),
		}
	}

	monitorW, monitorH := ebiten.Monitor().Size()
	windowW, windowH, scale, destination, err := ComputeWindowGeometry(monitorW, monitorH, config.Width, config.Height, config.Scale, config.Fullscreen)
	if err != nil {
		return &DisplayError{Operation: "configuration", Details: "window geometry", Err: err}
	}

	d.bufferMutex.Lock()
	defer d.bufferMutex.Unlock()

	d.config = config
	d.scale = scale
	d.destination = destination
	if config.Fullscreen {
		d.physicalW = monitorW
		d.physicalH = monitorH
	} else {
		d.physicalW = windowW
		d.physicalH = windowH
	}

	size := config.Width * config.Height * 4
	if len(d.frameBuffer) != size {
		d.frameBuffer = make([]byte, size)
	}
	if d.canvas != nil {
		d.canvas.Deallocate()
		d.canvas = nil
	}

	Logf(LogDebug, "display", "window size is %dx%d (x%d)", windowW, windowH, scale)
	return nil
}

func (d *EbitenDisplay) GetDisplayConfig() DisplayConfig {
	d.bufferMutex.RLock()
	defer d.bufferMutex.RUnlock()
	config := d.config
	config.Scale = d.scale
	return config
}

// UpdateFrame stores the packed frame for the next Draw.
func (d *EbitenDisplay) UpdateFrame(buffer []byte) error {
	d.bufferMutex.Lock()
	defer d.bufferMutex.Unlock()
	if len(buffer) != len(d.frameBuffer) {
		return &DisplayError{
			Operation: "frame upload",
			Details:   fmt.Sprintf("frame is %d bytes, display wants %d", len(buffer), len(d.frameBuffer)),
		}
	}
	copy(d.frameBuffer, buffer)
	return nil
}

// Present is implicit with Ebiten (the render goroutine swaps); the
// call only tracks pacing bookkeeping.
func (d *EbitenDisplay) Present() error {
	return nil
}

func (d *EbitenDisplay) ShouldClose() bool {
	return d.closeRequested.Load()
}

func (d *EbitenDisplay) Advance(elapsed float64) {
	// Nothing to integrate; frame statistics come from Ebiten itself.
}

// SetOverlayFPS feeds the loop's rolling FPS estimate to the debug
// overlay.
func (d *EbitenDisplay) SetOverlayFPS(fps float64) {
	d.bufferMutex.Lock()
	d.overlayFPS = fps
	d.bufferMutex.Unlock()
}

// PollInput snapshots the logical buttons. Key state is sampled on the
// Ebiten goroutine and copied out here.
func (d *EbitenDisplay) PollInput() InputState {
	d.bufferMutex.RLock()
	defer d.bufferMutex.RUnlock()
	return d.input
}

// Update is the ebiten.Game hook: window housekeeping plus input
// sampling. The simulation never runs here; the engine loop owns it.
func (d *EbitenDisplay) Update() error {
	if ebiten.IsWindowBeingClosed() {
		d.closeRequested.Store(true)
		return ebiten.Termination
	}
	if !d.running {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		d.bufferMutex.Lock()
		d.config.Fullscreen = !d.config.Fullscreen
		ebiten.SetFullscreen(d.config.Fullscreen)
		if !d.config.Fullscreen {
			ebiten.SetWindowSize(d.physicalW, d.physicalH)
		}
		d.bufferMutex.Unlock()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		d.bufferMutex.Lock()
		d.showOverlay = !d.showOverlay
		d.bufferMutex.Unlock()
	}

	state := InputState{
		Up:     ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		Down:   ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS),
		Left:   ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right:  ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		A:      ebiten.IsKeyPressed(ebiten.KeyZ),
		B:      ebiten.IsKeyPressed(ebiten.KeyX),
		X:      ebiten.IsKeyPressed(ebiten.KeyC),
		Y:      ebiten.IsKeyPressed(ebiten.KeyV),
		Start:  ebiten.IsKeyPressed(ebiten.KeyEnter),
		Select: ebiten.IsKeyPressed(ebiten.KeyShiftRight),
		Quit:   ebiten.IsKeyPressed(ebiten.KeyEscape),
	}

	d.bufferMutex.Lock()
	d.input = state
	d.bufferMutex.Unlock()
	return nil
}

// Draw uploads the latest packed frame to the GPU texture and draws it
// as a single scaled quad at the destination rectangle.
func (d *EbitenDisplay) Draw(screen *ebiten.Image) {
	d.bufferMutex.RLock()
	if d.canvas == nil {
		d.canvas = ebiten.NewImage(d.config.Width, d.config.Height)
	}
	d.canvas.WritePixels(d.frameBuffer)
	destination := d.destination
	scale := d.scale
	showOverlay := d.showOverlay
	overlayFPS := d.overlayFPS
	d.bufferMutex.RUnlock()

	options := &ebiten.DrawImageOptions{}
	options.GeoM.Scale(float64(scale), float64(scale))
	options.GeoM.Translate(float64(destination.X0), float64(destination.Y0))
	screen.DrawImage(d.canvas, options)

	if showOverlay {
		d.drawOverlay(screen, overlayFPS)
	}

	d.frameCount++
	select {
	case d.vsyncChan <- struct{}{}:
	default:
	}
}

// Layout fixes the logical screen to the physical window size so that
// the destination quad is addressed in physical pixels.
func (d *EbitenDisplay) Layout(_, _ int) (int, int) {
	d.bufferMutex.RLock()
	defer d.bufferMutex.RUnlock()
	return d.physicalW, d.physicalH
}

func (d *EbitenDisplay) drawOverlay(screen *ebiten.Image, fps float64) {
	face := basicfont.Face7x13
	label := fmt.Sprintf("%.0f FPS", fps)
	text.Draw(screen, label, face, 6, 16, color.RGBA{0, 220, 90, 255})
}
