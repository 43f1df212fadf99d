//go:build headless

// display_backend_headless.go - display stub for headless builds

/*
Zest - a fixed-timestep, palette-indexed game runtime.

(c) 2019-2026 by Marco Lizza (marco.lizza@gmail.com)
License: MIT
*/

package main

// NewEbitenDisplay in headless builds hands out the frame-discarding
// display so the runtime (and its tests) never touch a window system.
func NewEbitenDisplay() (DisplayOutput, error) {
	return NewNullDisplay(), nil
}
