// gfx_palette.go - color palette for the indexed rendering pipeline

/*
Zest - a fixed-timestep, palette-indexed game runtime.

(c) 2019-2026 by Marco Lizza (marco.lizza@gmail.com)
License: MIT
*/

package main

import "fmt"

// PaletteMaxColors is the palette capacity; a Pixel can address no more
// than this many slots.
const PaletteMaxColors = 256

// Palette is an ordered sequence of up to PaletteMaxColors RGBA entries.
// Insertion order is the palette slot, which is what indexed pixels
// store.
type Palette struct {
	colors [PaletteMaxColors]Color
	count  int
}

// NewGreyscalePalette builds a deterministic greyscale ramp of `count`
// entries, darkest first.
func NewGreyscalePalette(count int) Palette {
	if count < 1 {
		count = 1
	}
	if count > PaletteMaxColors {
		count = PaletteMaxColors
	}
	p := Palette{count: count}
	for i := 0; i < count; i++ {
		level := uint8(0)
		if count > 1 {
			level = uint8((i * 255) / (count - 1))
		}
		p.colors[i] = Color{R: level, G: level, B: level, A: 255}
	}
	return p
}

// SetColors replaces the whole palette. A sequence longer than the
// capacity is rejected without touching the current entries.
func (p *Palette) SetColors(colors []Color) error {
	if len(colors) > PaletteMaxColors {
		return fmt.Errorf("palette of %d entries exceeds capacity of %d", len(colors), PaletteMaxColors)
	}
	if len(colors) == 0 {
		return fmt.Errorf("palette can't be empty")
	}
	copy(p.colors[:], colors)
	p.count = len(colors)
	return nil
}

// Color resolves a palette slot. Every Pixel value is addressable since
// the backing array spans the full index range; slots past `count` hold
// zero-value colors.
func (p *Palette) Color(index Pixel) Color {
	return p.colors[index]
}

// Colors returns a copy of the active entries.
func (p *Palette) Colors() []Color {
	out := make([]Color, p.count)
	copy(out, p.colors[:p.count])
	return out
}

// Count reports the number of active entries.
func (p *Palette) Count() int {
	return p.count
}
