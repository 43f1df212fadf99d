// input.go - input snapshot shared between the loop and the scripting host

/*
Zest - a fixed-timestep, palette-indexed game runtime.

(c) 2019-2026 by Marco Lizza (marco.lizza@gmail.com)
License: MIT
*/

package main

// InputState is the per-iteration snapshot of the (small, gamepad-like)
// set of logical buttons the runtime exposes. The loop polls it once at
// the top of every iteration; scripts read it through the `input`
// module.
type InputState struct {
	Up, Down, Left, Right bool
	A, B, X, Y            bool
	Start, Select         bool
	Quit                  bool // exit key (Escape), honored when enabled
}

// IsDown resolves a logical button by name; unknown names read as
// released.
func (s *InputState) IsDown(name string) bool {
	switch name {
	case "up":
		return s.Up
	case "down":
		return s.Down
	case "left":
		return s.Left
	case "right":
		return s.Right
	case "a":
		return s.A
	case "b":
		return s.B
	case "x":
		return s.X
	case "y":
		return s.Y
	case "start":
		return s.Start
	case "select":
		return s.Select
	case "quit":
		return s.Quit
	}
	return false
}
