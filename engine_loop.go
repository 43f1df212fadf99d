// engine_loop.go - fixed-timestep frame scheduler

/*
Zest - a fixed-timestep, palette-indexed game runtime.

(c) 2019-2026 by Marco Lizza (marco.lizza@gmail.com)
License: MIT
*/

package main

import (
	"runtime"
	"time"
)

// FPSAverageSamples is the sliding-window size of the frame-rate
// estimator.
const FPSAverageSamples = 128

// fpsCounter keeps a fixed-capacity ring of per-frame elapsed times
// plus their running sum; the estimate is capacity/sum, a sliding
// window rate, not an exponential average.
type fpsCounter struct {
	samples [FPSAverageSamples]float64
	index   int
	sum     float64
}

func (f *fpsCounter) update(elapsed float64) float64 {
	f.sum -= f.samples[f.index]
	f.sum += elapsed
	f.samples[f.index] = elapsed
	f.index = (f.index + 1) % FPSAverageSamples
	return FPSAverageSamples / f.sum
}

// Run drives the loop until a stop is requested. Per iteration, in
// order: clock sample, FPS estimate, input poll, process callback,
// bounded fixed-step catch-up, variable-rate subsystem updates, render
// callback with the interpolation alpha, presentation, pacing wait.
//
// The fixed-step budget (`skippable-frames`) bounds worst-case
// catch-up work per iteration; on a slow host excess lag is dropped
// and the simulation falls behind wall clock instead of stalling the
// loop.
func (e *Engine) Run() {
	fixedStep := e.config.FixedStep()
	skippable := e.config.SkippableFrames
	referenceTime := e.config.ReferenceTime()
	Logf(LogInfo, "engine", "now running, update-time is %.6fs w/ %d skippable frames, reference-time is %.6fs",
		fixedStep, skippable, referenceTime)

	overlay, _ := e.display.(interface{ SetOverlayFPS(float64) })

	previous := e.now()
	frameCount := 0

	for e.state == engineRunning {
		current := e.now()
		elapsed := current.Sub(previous).Seconds()
		previous = current

		e.fps = e.fpsRing.update(elapsed)
		if overlay != nil {
			overlay.SetOverlayFPS(e.fps)
		}
		if e.config.Debug {
			if frameCount++; frameCount == 250 {
				Logf(LogDebug, "engine", "currently running at %.0f FPS", e.fps)
				frameCount = 0
			}
		}

		if e.input != nil {
			e.inputState = e.input.PollInput()
			if e.config.ExitKeyEnabled && e.inputState.Quit {
				e.quit = true
			}
		}

		running := e.callbacks.Process()

		// Consume lag in fixed steps, at most `skippable` per
		// iteration. Once a stop is latched the callback is skipped
		// but time bookkeeping continues unchanged.
		e.lag += elapsed
		for frames := skippable; frames > 0 && e.lag >= fixedStep; frames-- {
			e.simulationTime += fixedStep
			if running {
				running = e.callbacks.Update(fixedStep)
			}
			e.lag -= fixedStep
		}

		e.mixer.Advance(elapsed)
		e.display.Advance(elapsed)

		if running {
			running = e.callbacks.Render(e.lag / fixedStep)
		}

		if err := e.presenter.Present(); err != nil {
			Logf(LogError, "engine", "presentation failed: %v", err)
			running = false
		}

		if !running || e.quit || e.display.ShouldClose() {
			e.state = engineStopping
		}

		frameTime := e.now().Sub(current).Seconds()
		if leftover := referenceTime - frameTime; leftover > 0 {
			e.waitFor(leftover)
		}
	}
}

// waitFor blocks for the pacing remainder, yielding the processor when
// the remainder rounds below timer resolution.
func (e *Engine) waitFor(seconds float64) {
	micros := int64(seconds * 1e6)
	if micros == 0 {
		runtime.Gosched()
		return
	}
	e.sleep(time.Duration(micros) * time.Microsecond)
}
