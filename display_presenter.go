// display_presenter.go - indexed buffer to packed-color presentation bridge

/*
Zest - a fixed-timestep, palette-indexed game runtime.

(c) 2019-2026 by Marco Lizza (marco.lizza@gmail.com)
License: MIT
*/

package main

import "fmt"

// PixelOrder selects the channel layout of the packed frame handed to
// the display backend. It is decided once at startup; the indexed
// buffer itself never stores colors.
type PixelOrder int

const (
	OrderRGBA PixelOrder = iota
	OrderBGRA
)

// ParsePixelOrder maps the configuration string to a PixelOrder.
func ParsePixelOrder(s string) (PixelOrder, error) {
	switch s {
	case "", "rgba":
		return OrderRGBA, nil
	case "bgra":
		return OrderBGRA, nil
	}
	return OrderRGBA, fmt.Errorf("unknown pixel-order `%s`", s)
}

// Presenter converts the context's indexed buffer to a packed-color
// frame once per iteration and pushes it to the display backend. It is
// a pure transform plus a side-effecting upload; the only state is the
// pre-allocated frame and the channel order.
type Presenter struct {
	context *RenderContext
	output  DisplayOutput
	order   PixelOrder
	frame   []byte
}

// NewPresenter wires a render context to a display output.
func NewPresenter(context *RenderContext, output DisplayOutput, order PixelOrder) *Presenter {
	return &Presenter{
		context: context,
		output:  output,
		order:   order,
		frame:   make([]byte, context.Width()*context.Height()*4),
	}
}

// Present resolves every indexed pixel through the current palette,
// uploads the packed frame and flushes the backend.
func (p *Presenter) Present() error {
	p.Resolve(p.frame)
	if err := p.output.UpdateFrame(p.frame); err != nil {
		return fmt.Errorf("can't upload frame: %w", err)
	}
	if err := p.output.Present(); err != nil {
		return fmt.Errorf("can't present frame: %w", err)
	}
	return nil
}

// Resolve packs the indexed buffer into `frame` using the current
// palette. The destination must be width*height*4 bytes.
func (p *Presenter) Resolve(frame []byte) {
	pixels := p.context.Pixels()
	palette := &p.context.palette

	if p.order == OrderBGRA {
		for i, pixel := range pixels {
			color := palette.Color(pixel)
			offset := i * 4
			frame[offset] = color.B
			frame[offset+1] = color.G
			frame[offset+2] = color.R
			frame[offset+3] = color.A
		}
		return
	}

	for i, pixel := range pixels {
		color := palette.Color(pixel)
		offset := i * 4
		frame[offset] = color.R
		frame[offset+1] = color.G
		frame[offset+2] = color.B
		frame[offset+3] = color.A
	}
}

// ComputeWindowGeometry derives the window size and the destination
// quad for the presented frame from the physical display size and the
// native canvas size.
//
// A requested scale of 0 picks the largest integer scale that fits the
// display; an explicit scale is clamped to that maximum. In windowed
// mode the quad covers the whole window; in fullscreen the scaled
// canvas is centered and letterboxed on the physical display.
func ComputeWindowGeometry(displayWidth, displayHeight, canvasWidth, canvasHeight, requestedScale int, fullscreen bool) (windowWidth, windowHeight, scale int, destination Quad, err error) {
	if canvasWidth <= 0 || canvasHeight <= 0 {
		return 0, 0, 0, Quad{}, fmt.Errorf("invalid canvas size %dx%d", canvasWidth, canvasHeight)
	}

	maxScale := min(displayWidth/canvasWidth, displayHeight/canvasHeight)
	if maxScale == 0 {
		return 0, 0, 0, Quad{}, fmt.Errorf("canvas %dx%d can't fit display %dx%d", canvasWidth, canvasHeight, displayWidth, displayHeight)
	}

	scale = requestedScale
	if scale == 0 {
		scale = maxScale
	} else if scale > maxScale {
		Logf(LogWarning, "display", "requested scaling x%d too big, forcing to x%d", scale, maxScale)
		scale = maxScale
	}

	windowWidth = canvasWidth * scale
	windowHeight = canvasHeight * scale

	if !fullscreen {
		destination = Quad{0, 0, windowWidth, windowHeight}
		return windowWidth, windowHeight, scale, destination, nil
	}

	x := (displayWidth - windowWidth) / 2
	y := (displayHeight - windowHeight) / 2
	destination = Quad{x, y, x + windowWidth, y + windowHeight}
	return windowWidth, windowHeight, scale, destination, nil
}
