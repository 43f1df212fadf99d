// gfx_context_test.go - tests for the indexed rendering context

/*
Zest - a fixed-timestep, palette-indexed game runtime.

(c) 2019-2026 by Marco Lizza (marco.lizza@gmail.com)
License: MIT
*/

package main

import "testing"

func newTestContext(t *testing.T, width, height int) *RenderContext {
	t.Helper()
	ctx, err := NewRenderContext(width, height)
	if err != nil {
		t.Fatalf("context creation failed: %v", err)
	}
	return ctx
}

func pixelAt(ctx *RenderContext, x, y int) Pixel {
	return ctx.Pixels()[y*ctx.Width()+x]
}

func TestContextDefaults(t *testing.T) {
	ctx := newTestContext(t, 8, 4)

	if ctx.Width() != 8 || ctx.Height() != 4 {
		t.Fatalf("expected 8x4 canvas, got %dx%d", ctx.Width(), ctx.Height())
	}
	if len(ctx.Pixels()) != 32 {
		t.Fatalf("expected 32 pixels, got %d", len(ctx.Pixels()))
	}
	if got := len(ctx.Palette()); got != PaletteMaxColors {
		t.Fatalf("expected a full greyscale palette, got %d entries", got)
	}
	for i := 0; i < PaletteMaxColors; i++ {
		if ctx.shifting[i] != Pixel(i) {
			t.Fatalf("expected identity shifting at %d, got %d", i, ctx.shifting[i])
		}
	}
	if !ctx.transparent[0] {
		t.Fatalf("expected index 0 transparent by default")
	}
	for i := 1; i < PaletteMaxColors; i++ {
		if ctx.transparent[i] {
			t.Fatalf("expected index %d opaque by default", i)
		}
	}
}

func TestContextInvalidSize(t *testing.T) {
	if _, err := NewRenderContext(0, 10); err == nil {
		t.Fatalf("expected error for zero width")
	}
	if _, err := NewRenderContext(10, -1); err == nil {
		t.Fatalf("expected error for negative height")
	}
	if _, err := NewRenderContext(8192, 8193); err == nil {
		t.Fatalf("expected error for oversized canvas")
	}
}

func TestContextClearIsUnconditional(t *testing.T) {
	ctx := newTestContext(t, 4, 4)

	// Background 0 is transparent for drawing, yet Clear must still
	// fill with it.
	ctx.SetBackground(0)
	for i := range ctx.Pixels() {
		ctx.Pixels()[i] = 7
	}
	ctx.Clear()
	for i, pixel := range ctx.Pixels() {
		if pixel != 0 {
			t.Fatalf("expected pixel %d cleared to 0, got %d", i, pixel)
		}
	}

	ctx.SetBackground(3)
	ctx.Clear()
	if got := pixelAt(ctx, 2, 2); got != 3 {
		t.Fatalf("expected background 3 after clear, got %d", got)
	}
}

func TestContextPoint(t *testing.T) {
	ctx := newTestContext(t, 4, 4)

	ctx.Point(Point{1, 2}, 5)
	if got := pixelAt(ctx, 1, 2); got != 5 {
		t.Fatalf("expected index 5 at (1,2), got %d", got)
	}

	// Index 0 is transparent; the write must be skipped.
	ctx.Point(Point{1, 2}, 0)
	if got := pixelAt(ctx, 1, 2); got != 5 {
		t.Fatalf("expected transparent write skipped, got %d", got)
	}

	// Out-of-bounds plots are discarded, not wrapped.
	ctx.Point(Point{-1, 0}, 5)
	ctx.Point(Point{4, 0}, 5)
	ctx.Point(Point{0, 4}, 5)
	if got := pixelAt(ctx, 3, 0); got != 0 {
		t.Fatalf("expected clipped plot to leave (3,0) untouched, got %d", got)
	}
}

func TestContextShifting(t *testing.T) {
	ctx := newTestContext(t, 4, 4)

	ctx.SetShift(1, 9)
	ctx.Point(Point{0, 0}, 1)
	if got := pixelAt(ctx, 0, 0); got != 9 {
		t.Fatalf("expected shifted index 9, got %d", got)
	}

	// Transparency is tested after the remap: shifting an opaque index
	// onto a transparent one suppresses the write.
	ctx.SetTransparent(9, true)
	ctx.Point(Point{1, 0}, 1)
	if got := pixelAt(ctx, 1, 0); got != 0 {
		t.Fatalf("expected remapped-to-transparent write skipped, got %d", got)
	}

	ctx.ResetShift()
	ctx.Point(Point{2, 0}, 1)
	if got := pixelAt(ctx, 2, 0); got != 1 {
		t.Fatalf("expected identity after reset, got %d", got)
	}
}

func TestContextTransparencyTable(t *testing.T) {
	ctx := newTestContext(t, 4, 4)

	ctx.SetTransparent(0, false)
	ctx.Point(Point{0, 0}, 0)
	ctx.Pixels()[0] = 7
	ctx.Point(Point{0, 0}, 0)
	if got := pixelAt(ctx, 0, 0); got != 0 {
		t.Fatalf("expected opaque index 0 written, got %d", got)
	}

	ctx.ResetTransparent()
	ctx.Pixels()[0] = 7
	ctx.Point(Point{0, 0}, 0)
	if got := pixelAt(ctx, 0, 0); got != 7 {
		t.Fatalf("expected index 0 transparent again after reset, got %d", got)
	}
}

func TestContextBlit(t *testing.T) {
	ctx := newTestContext(t, 4, 4)

	surface, err := NewSurface(2, 2, []Pixel{1, 0, 2, 0})
	if err != nil {
		t.Fatalf("surface creation failed: %v", err)
	}

	ctx.Clear()
	ctx.Blit(surface, Rectangle{0, 0, 2, 2}, Point{0, 0})

	if got := pixelAt(ctx, 0, 0); got != 1 {
		t.Fatalf("expected index 1 at (0,0), got %d", got)
	}
	if got := pixelAt(ctx, 1, 0); got != 0 {
		t.Fatalf("expected transparent source to leave (1,0) at 0, got %d", got)
	}
	if got := pixelAt(ctx, 0, 1); got != 2 {
		t.Fatalf("expected index 2 at (0,1), got %d", got)
	}
	if got := pixelAt(ctx, 1, 1); got != 0 {
		t.Fatalf("expected transparent source to leave (1,1) at 0, got %d", got)
	}
}

func TestContextBlitShiftingAndTransparency(t *testing.T) {
	ctx := newTestContext(t, 4, 4)

	surface, err := NewSurface(2, 1, []Pixel{1, 2})
	if err != nil {
		t.Fatalf("surface creation failed: %v", err)
	}

	ctx.SetShift(1, 5)
	ctx.SetTransparent(5, true)
	ctx.Blit(surface, Rectangle{0, 0, 2, 1}, Point{0, 0})

	if got := pixelAt(ctx, 0, 0); got != 0 {
		t.Fatalf("expected shifted-to-transparent pixel skipped, got %d", got)
	}
	if got := pixelAt(ctx, 1, 0); got != 2 {
		t.Fatalf("expected index 2 copied, got %d", got)
	}
}

func TestContextBlitClipping(t *testing.T) {
	ctx := newTestContext(t, 4, 4)

	pixels := make([]Pixel, 16)
	for i := range pixels {
		pixels[i] = 3
	}
	surface, err := NewSurface(4, 4, pixels)
	if err != nil {
		t.Fatalf("surface creation failed: %v", err)
	}

	// Half the tile hangs off the top-left corner.
	ctx.Blit(surface, Rectangle{0, 0, 4, 4}, Point{-2, -2})
	if got := pixelAt(ctx, 0, 0); got != 3 {
		t.Fatalf("expected clipped blit to cover (0,0), got %d", got)
	}
	if got := pixelAt(ctx, 2, 2); got != 0 {
		t.Fatalf("expected (2,2) outside the clipped blit, got %d", got)
	}

	// A tile extending past the surface is narrowed to what exists.
	ctx.Clear()
	ctx.Blit(surface, Rectangle{2, 2, 4, 4}, Point{0, 0})
	if got := pixelAt(ctx, 1, 1); got != 3 {
		t.Fatalf("expected narrowed tile to cover (1,1), got %d", got)
	}
	if got := pixelAt(ctx, 2, 2); got != 0 {
		t.Fatalf("expected (2,2) beyond the narrowed tile, got %d", got)
	}

	// Fully off-canvas: nothing written.
	ctx.Clear()
	ctx.Blit(surface, Rectangle{0, 0, 4, 4}, Point{10, 10})
	for i, pixel := range ctx.Pixels() {
		if pixel != 0 {
			t.Fatalf("expected untouched canvas, found %d at %d", pixel, i)
		}
	}
}

func TestContextBlitExIgnoresTransform(t *testing.T) {
	ctx := newTestContext(t, 4, 4)

	surface, err := NewSurface(2, 2, []Pixel{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("surface creation failed: %v", err)
	}

	ctx.BlitEx(surface, Rectangle{0, 0, 2, 2}, Point{0, 0}, 3.0, 45.0)

	expected := []Pixel{1, 2, 3, 4}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := pixelAt(ctx, x, y); got != expected[y*2+x] {
				t.Fatalf("expected 1:1 copy at (%d,%d), got %d", x, y, got)
			}
		}
	}
}

func TestContextHLineVLineClipping(t *testing.T) {
	ctx := newTestContext(t, 4, 4)

	ctx.HLine(Point{-2, 1}, 8, 5)
	for x := 0; x < 4; x++ {
		if got := pixelAt(ctx, x, 1); got != 5 {
			t.Fatalf("expected hline at (%d,1), got %d", x, got)
		}
	}
	if got := pixelAt(ctx, 0, 0); got != 0 {
		t.Fatalf("expected row 0 untouched, got %d", got)
	}

	ctx.VLine(Point{2, -2}, 8, 6)
	for y := 0; y < 4; y++ {
		if got := pixelAt(ctx, 2, y); got != 6 {
			t.Fatalf("expected vline at (2,%d), got %d", y, got)
		}
	}

	// Spans fully outside the canvas are dropped.
	ctx.Clear()
	ctx.HLine(Point{0, 9}, 4, 5)
	ctx.VLine(Point{9, 0}, 4, 5)
	for i, pixel := range ctx.Pixels() {
		if pixel != 0 {
			t.Fatalf("expected untouched canvas, found %d at %d", pixel, i)
		}
	}
}

func TestContextLine(t *testing.T) {
	ctx := newTestContext(t, 8, 8)

	ctx.Line(Point{0, 0}, Point{7, 7}, 1)
	for i := 0; i < 8; i++ {
		if got := pixelAt(ctx, i, i); got != 1 {
			t.Fatalf("expected diagonal pixel at (%d,%d), got %d", i, i, got)
		}
	}

	// Endpoints are always drawn, whatever the direction.
	ctx.Clear()
	ctx.Line(Point{6, 2}, Point{1, 5}, 2)
	if got := pixelAt(ctx, 6, 2); got != 2 {
		t.Fatalf("expected start endpoint drawn, got %d", got)
	}
	if got := pixelAt(ctx, 1, 5); got != 2 {
		t.Fatalf("expected end endpoint drawn, got %d", got)
	}

	// Segments crossing the edge are clipped per pixel.
	ctx.Clear()
	ctx.Line(Point{-3, 4}, Point{4, 4}, 3)
	if got := pixelAt(ctx, 0, 4); got != 3 {
		t.Fatalf("expected clipped line to reach (0,4), got %d", got)
	}
}

func TestContextRectangle(t *testing.T) {
	ctx := newTestContext(t, 8, 8)

	ctx.Rectangle(Rectangle{1, 1, 4, 3}, 2)
	corners := []Point{{1, 1}, {4, 1}, {1, 3}, {4, 3}}
	for _, corner := range corners {
		if got := pixelAt(ctx, corner.X, corner.Y); got != 2 {
			t.Fatalf("expected outline corner at (%d,%d), got %d", corner.X, corner.Y, got)
		}
	}
	if got := pixelAt(ctx, 2, 2); got != 0 {
		t.Fatalf("expected hollow interior, got %d", got)
	}

	ctx.Clear()
	ctx.FilledRectangle(Rectangle{1, 1, 4, 3}, 2)
	if got := pixelAt(ctx, 2, 2); got != 2 {
		t.Fatalf("expected filled interior, got %d", got)
	}
	if got := pixelAt(ctx, 5, 1); got != 0 {
		t.Fatalf("expected fill to stop at the rectangle edge, got %d", got)
	}

	// Degenerate rectangles draw nothing.
	ctx.Clear()
	ctx.Rectangle(Rectangle{1, 1, 0, 3}, 2)
	ctx.FilledRectangle(Rectangle{1, 1, 4, -1}, 2)
	for i, pixel := range ctx.Pixels() {
		if pixel != 0 {
			t.Fatalf("expected untouched canvas, found %d at %d", pixel, i)
		}
	}
}

func TestContextCircle(t *testing.T) {
	ctx := newTestContext(t, 16, 16)

	ctx.Circle(Point{8, 8}, 4, 1)
	cardinals := []Point{{12, 8}, {4, 8}, {8, 12}, {8, 4}}
	for _, p := range cardinals {
		if got := pixelAt(ctx, p.X, p.Y); got != 1 {
			t.Fatalf("expected circle pixel at (%d,%d), got %d", p.X, p.Y, got)
		}
	}
	if got := pixelAt(ctx, 8, 8); got != 0 {
		t.Fatalf("expected hollow circle center, got %d", got)
	}

	ctx.Clear()
	ctx.FilledCircle(Point{8, 8}, 4, 1)
	if got := pixelAt(ctx, 8, 8); got != 1 {
		t.Fatalf("expected filled circle center, got %d", got)
	}
	if got := pixelAt(ctx, 12, 8); got != 1 {
		t.Fatalf("expected filled circle rim, got %d", got)
	}
	if got := pixelAt(ctx, 14, 8); got != 0 {
		t.Fatalf("expected pixel outside the circle untouched, got %d", got)
	}

	// Radius zero degenerates to a point; negative draws nothing.
	ctx.Clear()
	ctx.Circle(Point{2, 2}, 0, 1)
	if got := pixelAt(ctx, 2, 2); got != 1 {
		t.Fatalf("expected zero-radius circle to plot its center, got %d", got)
	}
	ctx.Clear()
	ctx.Circle(Point{2, 2}, -1, 1)
	for i, pixel := range ctx.Pixels() {
		if pixel != 0 {
			t.Fatalf("expected untouched canvas, found %d at %d", pixel, i)
		}
	}
}

func TestContextSetPaletteRejection(t *testing.T) {
	ctx := newTestContext(t, 4, 4)

	before := ctx.ColorAt(10)
	oversized := make([]Color, PaletteMaxColors+1)
	if err := ctx.SetPalette(oversized); err == nil {
		t.Fatalf("expected oversized palette rejected")
	}
	if got := ctx.ColorAt(10); got != before {
		t.Fatalf("expected palette untouched after rejection, got %+v", got)
	}

	if err := ctx.SetPalette([]Color{{R: 255, A: 255}, {B: 255, A: 255}}); err != nil {
		t.Fatalf("palette replacement failed: %v", err)
	}
	if got := len(ctx.Palette()); got != 2 {
		t.Fatalf("expected 2 palette entries, got %d", got)
	}
	if got := ctx.ColorAt(0); got.R != 255 {
		t.Fatalf("expected red at slot 0, got %+v", got)
	}
}
