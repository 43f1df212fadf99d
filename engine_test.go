// engine_test.go - tests for subsystem lifecycle management

/*
Zest - a fixed-timestep, palette-indexed game runtime.

(c) 2019-2026 by Marco Lizza (marco.lizza@gmail.com)
License: MIT
*/

package main

import "testing"

func TestTeardownReverseOrder(t *testing.T) {
	e := &Engine{}

	var order []string
	e.pushTeardown(func() { order = append(order, "canvas") })
	e.pushTeardown(func() { order = append(order, "display") })
	e.pushTeardown(func() { order = append(order, "audio") })

	e.runTeardown()

	if len(order) != 3 {
		t.Fatalf("expected 3 teardown calls, got %d", len(order))
	}
	if order[0] != "audio" || order[1] != "display" || order[2] != "canvas" {
		t.Fatalf("expected reverse initialization order, got %v", order)
	}
}

func TestTerminateIsIdempotent(t *testing.T) {
	e := &Engine{}

	calls := 0
	e.pushTeardown(func() { calls++ })

	e.Terminate()
	e.Terminate()
	e.Terminate()

	if calls != 1 {
		t.Fatalf("expected a single teardown run, got %d", calls)
	}
	if e.state != engineTerminated {
		t.Fatalf("expected terminated state, got %d", e.state)
	}
}

func TestEngineScriptEnvironment(t *testing.T) {
	e := &Engine{
		simulationTime: 1.25,
		fps:            59.5,
		inputState:     InputState{A: true},
	}

	if e.Time() != 1.25 {
		t.Fatalf("expected simulation time 1.25, got %g", e.Time())
	}
	if e.FPS() != 59.5 {
		t.Fatalf("expected FPS 59.5, got %g", e.FPS())
	}
	if !e.Input().A {
		t.Fatalf("expected input snapshot exposed")
	}

	e.Quit()
	if !e.quit {
		t.Fatalf("expected quit requested")
	}
}
