// gfx_palette_test.go - tests for the palette

/*
Zest - a fixed-timestep, palette-indexed game runtime.

(c) 2019-2026 by Marco Lizza (marco.lizza@gmail.com)
License: MIT
*/

package main

import "testing"

func TestGreyscalePaletteRamp(t *testing.T) {
	p := NewGreyscalePalette(256)
	if p.Count() != 256 {
		t.Fatalf("expected 256 entries, got %d", p.Count())
	}
	if got := p.Color(0); got != (Color{R: 0, G: 0, B: 0, A: 255}) {
		t.Fatalf("expected black at slot 0, got %+v", got)
	}
	if got := p.Color(255); got != (Color{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("expected white at slot 255, got %+v", got)
	}

	// A degenerate request is clamped, not rejected.
	p = NewGreyscalePalette(0)
	if p.Count() != 1 {
		t.Fatalf("expected clamp to 1 entry, got %d", p.Count())
	}
	p = NewGreyscalePalette(1000)
	if p.Count() != PaletteMaxColors {
		t.Fatalf("expected clamp to %d entries, got %d", PaletteMaxColors, p.Count())
	}
}

func TestPaletteSetColors(t *testing.T) {
	p := NewGreyscalePalette(256)

	if err := p.SetColors(nil); err == nil {
		t.Fatalf("expected empty palette rejected")
	}
	if err := p.SetColors(make([]Color, PaletteMaxColors+1)); err == nil {
		t.Fatalf("expected oversized palette rejected")
	}
	if p.Count() != 256 {
		t.Fatalf("expected palette untouched after rejection, got %d entries", p.Count())
	}

	colors := []Color{{R: 10, A: 255}, {G: 20, A: 255}, {B: 30, A: 255}}
	if err := p.SetColors(colors); err != nil {
		t.Fatalf("replacement failed: %v", err)
	}
	if p.Count() != 3 {
		t.Fatalf("expected 3 entries, got %d", p.Count())
	}
	if got := p.Color(1); got.G != 20 {
		t.Fatalf("expected green at slot 1, got %+v", got)
	}
}

func TestPaletteColorsIsACopy(t *testing.T) {
	p := NewGreyscalePalette(4)
	out := p.Colors()
	out[0] = Color{R: 99}
	if got := p.Color(0); got.R == 99 {
		t.Fatalf("expected Colors to return a copy, palette was mutated")
	}
}
