// gfx_context.go - indexed rendering context (off-screen canvas) for Zest

/*
Zest - a fixed-timestep, palette-indexed game runtime.

(c) 2019-2026 by Marco Lizza (marco.lizza@gmail.com)
License: MIT
*/

package main

import "fmt"

// RenderContext owns the off-screen pixel buffer together with the
// palette, the shifting table and the transparency table used by every
// drawing primitive and blit.
//
// The buffer stores palette indices end-to-end; colors are resolved
// only when the Presenter converts the canvas for upload. Every drawing
// operation follows the same contract: remap the source index through
// the shifting table, test the remapped index for transparency, and
// only then write.
type RenderContext struct {
	width, height int
	pixels        []Pixel
	rowIndex      []int

	palette     Palette
	shifting    [PaletteMaxColors]Pixel
	transparent [PaletteMaxColors]bool
	background  Pixel
}

// MaxContextPixels bounds the canvas allocation; anything larger than
// this is a configuration mistake, not a drawable target.
const MaxContextPixels = 8192 * 8192

// NewRenderContext allocates the pixel buffer and the row-offset table
// for a canvas of the given size. The palette starts as a full
// greyscale ramp, shifting as identity, and only index 0 transparent.
func NewRenderContext(width, height int) (*RenderContext, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid context size %dx%d", width, height)
	}
	if width*height > MaxContextPixels {
		return nil, fmt.Errorf("context size %dx%d exceeds the maximum buffer size", width, height)
	}

	ctx := &RenderContext{
		width:    width,
		height:   height,
		pixels:   make([]Pixel, width*height),
		rowIndex: make([]int, height),
	}
	for y := 0; y < height; y++ {
		ctx.rowIndex[y] = y * width
	}

	ctx.palette = NewGreyscalePalette(PaletteMaxColors)
	for i := 0; i < PaletteMaxColors; i++ {
		ctx.shifting[i] = Pixel(i)
	}
	ctx.transparent[0] = true
	ctx.background = 0

	Logf(LogDebug, "gfx", "canvas allocated (%dx%d)", width, height)
	return ctx, nil
}

// Destroy releases the pixel buffer and the row table together. The
// context is not usable afterwards; calling it twice is a no-op.
func (ctx *RenderContext) Destroy() {
	ctx.pixels = nil
	ctx.rowIndex = nil
	ctx.width = 0
	ctx.height = 0
}

// Width reports the canvas width in pixels.
func (ctx *RenderContext) Width() int {
	return ctx.width
}

// Height reports the canvas height in pixels.
func (ctx *RenderContext) Height() int {
	return ctx.height
}

// Pixels exposes the indexed buffer for presentation. Callers must not
// retain the slice across a Destroy.
func (ctx *RenderContext) Pixels() []Pixel {
	return ctx.pixels
}

// Palette returns the active palette entries.
func (ctx *RenderContext) Palette() []Color {
	return ctx.palette.Colors()
}

// ColorAt resolves a palette slot through the active palette, without
// remapping.
func (ctx *RenderContext) ColorAt(index Pixel) Color {
	return ctx.palette.Color(index)
}

// SetPalette replaces the palette. A sequence longer than the capacity
// is rejected and the current palette is left untouched.
func (ctx *RenderContext) SetPalette(colors []Color) error {
	return ctx.palette.SetColors(colors)
}

// SetBackground selects the index used by Clear.
func (ctx *RenderContext) SetBackground(index Pixel) {
	ctx.background = index
}

// SetShift remaps a single source index; drawing `from` will behave as
// if `to` had been drawn.
func (ctx *RenderContext) SetShift(from, to Pixel) {
	ctx.shifting[from] = to
}

// ResetShift restores the identity remapping.
func (ctx *RenderContext) ResetShift() {
	for i := 0; i < PaletteMaxColors; i++ {
		ctx.shifting[i] = Pixel(i)
	}
}

// SetTransparent marks an index as transparent (writes skipped) or
// opaque. The test happens after shifting.
func (ctx *RenderContext) SetTransparent(index Pixel, enabled bool) {
	ctx.transparent[index] = enabled
}

// ResetTransparent restores the default table: index 0 transparent,
// everything else opaque.
func (ctx *RenderContext) ResetTransparent() {
	for i := 0; i < PaletteMaxColors; i++ {
		ctx.transparent[i] = false
	}
	ctx.transparent[0] = true
}

// Clear fills the whole buffer with the background index. No remapping
// or transparency applies; clearing is unconditional.
func (ctx *RenderContext) Clear() {
	background := ctx.background
	for i := range ctx.pixels {
		ctx.pixels[i] = background
	}
}

// visible is the clip predicate every primitive consults before
// writing.
func (ctx *RenderContext) visible(position Point) bool {
	return position.X >= 0 && position.X < ctx.width && position.Y >= 0 && position.Y < ctx.height
}

// clipBlit narrows a source tile and destination origin so that both
// stay inside the surface and the canvas. Returns false when nothing
// survives the clip.
func (ctx *RenderContext) clipBlit(surface *Surface, tile *Rectangle, position *Point) bool {
	if tile.X < 0 {
		tile.Width += tile.X
		position.X -= tile.X
		tile.X = 0
	}
	if tile.Y < 0 {
		tile.Height += tile.Y
		position.Y -= tile.Y
		tile.Y = 0
	}
	if tile.X+tile.Width > surface.width {
		tile.Width = surface.width - tile.X
	}
	if tile.Y+tile.Height > surface.height {
		tile.Height = surface.height - tile.Y
	}

	if position.X < 0 {
		tile.X -= position.X
		tile.Width += position.X
		position.X = 0
	}
	if position.Y < 0 {
		tile.Y -= position.Y
		tile.Height += position.Y
		position.Y = 0
	}
	if position.X+tile.Width > ctx.width {
		tile.Width = ctx.width - position.X
	}
	if position.Y+tile.Height > ctx.height {
		tile.Height = ctx.height - position.Y
	}

	return tile.Width > 0 && tile.Height > 0
}

// Blit copies a tile of the surface onto the canvas at the given
// position. Each source pixel is remapped through the shifting table;
// transparent indices leave the destination untouched. Geometry is
// clipped against both the surface and the canvas.
func (ctx *RenderContext) Blit(surface *Surface, tile Rectangle, position Point) {
	if surface == nil || !ctx.clipBlit(surface, &tile, &position) {
		return
	}

	shifting := &ctx.shifting
	transparent := &ctx.transparent

	for i := 0; i < tile.Height; i++ {
		src := surface.Row(tile.Y + i)[tile.X : tile.X+tile.Width]
		dst := ctx.pixels[ctx.rowIndex[position.Y+i]+position.X:]
		for j, pixel := range src {
			index := shifting[pixel]
			if transparent[index] {
				continue
			}
			dst[j] = index
		}
	}
}

// BlitEx is Blit with scaling and rotation parameters reserved for a
// future extension. They are accepted and ignored: the tile is copied
// 1:1 whatever values are passed.
func (ctx *RenderContext) BlitEx(surface *Surface, tile Rectangle, position Point, scale, rotation float64) {
	_ = scale
	_ = rotation
	ctx.Blit(surface, tile, position)
}

// resolve runs the remap-then-transparency steps shared by all
// primitives. The boolean is false when the whole operation must be
// skipped.
func (ctx *RenderContext) resolve(color Pixel) (Pixel, bool) {
	index := ctx.shifting[color]
	if ctx.transparent[index] {
		return 0, false
	}
	return index, true
}

// Point plots a single pixel.
func (ctx *RenderContext) Point(position Point, color Pixel) {
	if !ctx.visible(position) {
		return
	}
	index, opaque := ctx.resolve(color)
	if !opaque {
		return
	}
	ctx.pixels[ctx.rowIndex[position.Y]+position.X] = index
}

// HLine draws a horizontal run of `width` pixels starting at origin,
// clipped to the canvas.
func (ctx *RenderContext) HLine(origin Point, width int, color Pixel) {
	index, opaque := ctx.resolve(color)
	if !opaque {
		return
	}
	if origin.Y < 0 || origin.Y >= ctx.height {
		return
	}
	x0 := origin.X
	x1 := origin.X + width
	if x0 < 0 {
		x0 = 0
	}
	if x1 > ctx.width {
		x1 = ctx.width
	}
	row := ctx.pixels[ctx.rowIndex[origin.Y]:]
	for x := x0; x < x1; x++ {
		row[x] = index
	}
}

// VLine draws a vertical run of `height` pixels starting at origin,
// clipped to the canvas.
func (ctx *RenderContext) VLine(origin Point, height int, color Pixel) {
	index, opaque := ctx.resolve(color)
	if !opaque {
		return
	}
	if origin.X < 0 || origin.X >= ctx.width {
		return
	}
	y0 := origin.Y
	y1 := origin.Y + height
	if y0 < 0 {
		y0 = 0
	}
	if y1 > ctx.height {
		y1 = ctx.height
	}
	for y := y0; y < y1; y++ {
		ctx.pixels[ctx.rowIndex[y]+origin.X] = index
	}
}

// Line rasterizes an arbitrary segment with Bresenham's algorithm.
func (ctx *RenderContext) Line(from, to Point, color Pixel) {
	index, opaque := ctx.resolve(color)
	if !opaque {
		return
	}

	dx := abs(to.X - from.X)
	dy := -abs(to.Y - from.Y)
	sx := 1
	if from.X > to.X {
		sx = -1
	}
	sy := 1
	if from.Y > to.Y {
		sy = -1
	}
	err := dx + dy

	x, y := from.X, from.Y
	for {
		if p := (Point{x, y}); ctx.visible(p) {
			ctx.pixels[ctx.rowIndex[y]+x] = index
		}
		if x == to.X && y == to.Y {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// Rectangle draws the outline of a rectangle.
func (ctx *RenderContext) Rectangle(rectangle Rectangle, color Pixel) {
	if rectangle.Width <= 0 || rectangle.Height <= 0 {
		return
	}
	ctx.HLine(Point{rectangle.X, rectangle.Y}, rectangle.Width, color)
	ctx.HLine(Point{rectangle.X, rectangle.Y + rectangle.Height - 1}, rectangle.Width, color)
	if rectangle.Height > 2 {
		ctx.VLine(Point{rectangle.X, rectangle.Y + 1}, rectangle.Height-2, color)
		ctx.VLine(Point{rectangle.X + rectangle.Width - 1, rectangle.Y + 1}, rectangle.Height-2, color)
	}
}

// FilledRectangle fills a rectangle with horizontal scanlines.
func (ctx *RenderContext) FilledRectangle(rectangle Rectangle, color Pixel) {
	for y := 0; y < rectangle.Height; y++ {
		ctx.HLine(Point{rectangle.X, rectangle.Y + y}, rectangle.Width, color)
	}
}

// Circle draws the outline of a circle with the midpoint algorithm.
func (ctx *RenderContext) Circle(center Point, radius int, color Pixel) {
	if radius < 0 {
		return
	}
	if radius == 0 {
		ctx.Point(center, color)
		return
	}

	x, y := radius, 0
	err := 1 - radius
	for x >= y {
		ctx.circleOctants(center, x, y, color)
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

func (ctx *RenderContext) circleOctants(center Point, x, y int, color Pixel) {
	ctx.Point(Point{center.X + x, center.Y + y}, color)
	ctx.Point(Point{center.X - x, center.Y + y}, color)
	ctx.Point(Point{center.X + x, center.Y - y}, color)
	ctx.Point(Point{center.X - x, center.Y - y}, color)
	ctx.Point(Point{center.X + y, center.Y + x}, color)
	ctx.Point(Point{center.X - y, center.Y + x}, color)
	ctx.Point(Point{center.X + y, center.Y - x}, color)
	ctx.Point(Point{center.X - y, center.Y - x}, color)
}

// FilledCircle fills a circle with horizontal spans, one pair per
// midpoint step.
func (ctx *RenderContext) FilledCircle(center Point, radius int, color Pixel) {
	if radius < 0 {
		return
	}
	if radius == 0 {
		ctx.Point(center, color)
		return
	}

	x, y := radius, 0
	err := 1 - radius
	for x >= y {
		ctx.HLine(Point{center.X - x, center.Y + y}, 2*x+1, color)
		ctx.HLine(Point{center.X - x, center.Y - y}, 2*x+1, color)
		ctx.HLine(Point{center.X - y, center.Y + x}, 2*y+1, color)
		ctx.HLine(Point{center.X - y, center.Y - x}, 2*y+1, color)
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
