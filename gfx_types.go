// gfx_types.go - geometry and pixel value types for the Zest runtime

/*
Zest - a fixed-timestep, palette-indexed game runtime.

(c) 2019-2026 by Marco Lizza (marco.lizza@gmail.com)
License: MIT
*/

package main

// Pixel is a palette slot index, not a color. The whole rendering
// pipeline moves these around; colors appear only at the presentation
// boundary.
type Pixel uint8

// Color is an RGBA palette entry with 8-bit channels. Channel order on
// the wire (RGBA vs BGRA) is decided once by the presenter.
type Color struct {
	R, G, B, A uint8
}

// Point locates a single pixel in context or surface coordinates.
type Point struct {
	X, Y int
}

// Rectangle is an offset plus extents, used both for source tiles
// within a surface and for drawing primitives.
type Rectangle struct {
	X, Y          int
	Width, Height int
}

// Quad is a pair of corners, used for the presentation destination
// rectangle.
type Quad struct {
	X0, Y0 int
	X1, Y1 int
}
