// script_host.go - Lua scripting host providing the loop callbacks

/*
Zest - a fixed-timestep, palette-indexed game runtime.

(c) 2019-2026 by Marco Lizza (marco.lizza@gmail.com)
License: MIT
*/

package main

import (
	"fmt"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
)

// ScriptEnvironment is what the host lets scripts observe and touch
// outside the canvas: the quit flag, simulation time, the FPS estimate
// and the current input snapshot.
type ScriptEnvironment interface {
	Quit()
	Time() float64
	FPS() float64
	Input() InputState
}

// ScriptHost runs the game's boot script and dispatches the
// process/update/render callbacks the scheduler needs. A callback the
// script doesn't define is a successful no-op; a callback that raises
// an error reports failure, which the loop turns into a stop request.
type ScriptHost struct {
	state   *lua.LState
	baseDir string

	process lua.LValue
	update  lua.LValue
	render  lua.LValue
}

const surfaceTypeName = "zest.surface"

// NewScriptHost loads and executes the boot script, binding the canvas,
// input, sound and system modules first so the script's top level can
// already use them.
func NewScriptHost(path string, context *RenderContext, mixer *SoundMixer, env ScriptEnvironment) (*ScriptHost, error) {
	state := lua.NewState()

	host := &ScriptHost{
		state:   state,
		baseDir: filepath.Dir(path),
	}

	host.registerSurfaceType()
	host.registerCanvas(context)
	host.registerInput(env)
	host.registerSound(mixer)
	host.registerSystem(env)

	if err := state.DoFile(path); err != nil {
		state.Close()
		return nil, fmt.Errorf("can't load script `%s`: %w", path, err)
	}

	host.process = state.GetGlobal("process")
	host.update = state.GetGlobal("update")
	host.render = state.GetGlobal("render")

	if setup := state.GetGlobal("setup"); setup.Type() == lua.LTFunction {
		if err := state.CallByParam(lua.P{Fn: setup, NRet: 0, Protect: true}); err != nil {
			state.Close()
			return nil, fmt.Errorf("script setup failed: %w", err)
		}
	}

	Logf(LogInfo, "script", "script `%s` loaded", path)
	return host, nil
}

// Close releases the Lua state. Safe to call at most once.
func (h *ScriptHost) Close() {
	h.state.Close()
}

// Process dispatches the per-iteration event callback.
func (h *ScriptHost) Process() bool {
	return h.call(h.process)
}

// Update dispatches one fixed-step update.
func (h *ScriptHost) Update(dt float64) bool {
	return h.call(h.update, lua.LNumber(dt))
}

// Render dispatches the render callback with the interpolation alpha.
func (h *ScriptHost) Render(alpha float64) bool {
	return h.call(h.render, lua.LNumber(alpha))
}

func (h *ScriptHost) call(fn lua.LValue, args ...lua.LValue) bool {
	if fn == nil || fn.Type() != lua.LTFunction {
		return true
	}
	if err := h.state.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, args...); err != nil {
		Logf(LogError, "script", "callback failed: %v", err)
		return false
	}
	return true
}

func (h *ScriptHost) registerSurfaceType() {
	state := h.state
	mt := state.NewTypeMetatable(surfaceTypeName)
	state.SetField(mt, "__index", state.SetFuncs(state.NewTable(), map[string]lua.LGFunction{
		"width": func(L *lua.LState) int {
			L.Push(lua.LNumber(checkSurface(L).Width()))
			return 1
		},
		"height": func(L *lua.LState) int {
			L.Push(lua.LNumber(checkSurface(L).Height()))
			return 1
		},
	}))
}

func checkSurface(L *lua.LState) *Surface {
	ud := L.CheckUserData(1)
	if surface, ok := ud.Value.(*Surface); ok {
		return surface
	}
	L.ArgError(1, "surface expected")
	return nil
}

func (h *ScriptHost) registerCanvas(context *RenderContext) {
	state := h.state
	canvas := state.SetFuncs(state.NewTable(), map[string]lua.LGFunction{
		"width": func(L *lua.LState) int {
			L.Push(lua.LNumber(context.Width()))
			return 1
		},
		"height": func(L *lua.LState) int {
			L.Push(lua.LNumber(context.Height()))
			return 1
		},
		"clear": func(L *lua.LState) int {
			context.Clear()
			return 0
		},
		"background": func(L *lua.LState) int {
			context.SetBackground(Pixel(L.CheckInt(1)))
			return 0
		},
		"palette": func(L *lua.LState) int {
			table := L.CheckTable(1)
			colors := make([]Color, 0, table.Len())
			var parseErr error
			table.ForEach(func(_, value lua.LValue) {
				if parseErr != nil {
					return
				}
				color, err := parseColor(lua.LVAsString(value))
				if err != nil {
					parseErr = err
					return
				}
				colors = append(colors, color)
			})
			if parseErr == nil {
				parseErr = context.SetPalette(colors)
			}
			if parseErr != nil {
				L.RaiseError("%v", parseErr)
			}
			return 0
		},
		"shift": func(L *lua.LState) int {
			if L.GetTop() == 0 {
				context.ResetShift()
				return 0
			}
			context.SetShift(Pixel(L.CheckInt(1)), Pixel(L.CheckInt(2)))
			return 0
		},
		"transparent": func(L *lua.LState) int {
			if L.GetTop() == 0 {
				context.ResetTransparent()
				return 0
			}
			context.SetTransparent(Pixel(L.CheckInt(1)), L.CheckBool(2))
			return 0
		},
		"point": func(L *lua.LState) int {
			context.Point(Point{L.CheckInt(1), L.CheckInt(2)}, Pixel(L.CheckInt(3)))
			return 0
		},
		"hline": func(L *lua.LState) int {
			context.HLine(Point{L.CheckInt(1), L.CheckInt(2)}, L.CheckInt(3), Pixel(L.CheckInt(4)))
			return 0
		},
		"vline": func(L *lua.LState) int {
			context.VLine(Point{L.CheckInt(1), L.CheckInt(2)}, L.CheckInt(3), Pixel(L.CheckInt(4)))
			return 0
		},
		"line": func(L *lua.LState) int {
			context.Line(Point{L.CheckInt(1), L.CheckInt(2)}, Point{L.CheckInt(3), L.CheckInt(4)}, Pixel(L.CheckInt(5)))
			return 0
		},
		"rectangle": func(L *lua.LState) int {
			mode := L.CheckString(1)
			rectangle := Rectangle{L.CheckInt(2), L.CheckInt(3), L.CheckInt(4), L.CheckInt(5)}
			color := Pixel(L.CheckInt(6))
			if mode == "fill" {
				context.FilledRectangle(rectangle, color)
			} else {
				context.Rectangle(rectangle, color)
			}
			return 0
		},
		"circle": func(L *lua.LState) int {
			mode := L.CheckString(1)
			center := Point{L.CheckInt(2), L.CheckInt(3)}
			radius := L.CheckInt(4)
			color := Pixel(L.CheckInt(5))
			if mode == "fill" {
				context.FilledCircle(center, radius, color)
			} else {
				context.Circle(center, radius, color)
			}
			return 0
		},
		"surface": func(L *lua.LState) int {
			path := filepath.Join(h.baseDir, L.CheckString(1))
			surface, err := LoadSurface(path)
			if err != nil {
				L.RaiseError("%v", err)
				return 0
			}
			ud := L.NewUserData()
			ud.Value = surface
			L.SetMetatable(ud, L.GetTypeMetatable(surfaceTypeName))
			L.Push(ud)
			return 1
		},
		"blit": func(L *lua.LState) int {
			surface := checkSurface(L)
			position := Point{L.CheckInt(2), L.CheckInt(3)}
			tile := Rectangle{0, 0, surface.Width(), surface.Height()}
			if L.GetTop() >= 7 {
				tile = Rectangle{L.CheckInt(4), L.CheckInt(5), L.CheckInt(6), L.CheckInt(7)}
			}
			context.Blit(surface, tile, position)
			return 0
		},
	})
	state.SetGlobal("canvas", canvas)
}

func (h *ScriptHost) registerInput(env ScriptEnvironment) {
	state := h.state
	input := state.SetFuncs(state.NewTable(), map[string]lua.LGFunction{
		"is_down": func(L *lua.LState) int {
			snapshot := env.Input()
			L.Push(lua.LBool(snapshot.IsDown(L.CheckString(1))))
			return 1
		},
	})
	state.SetGlobal("input", input)
}

func (h *ScriptHost) registerSound(mixer *SoundMixer) {
	state := h.state
	sound := state.SetFuncs(state.NewTable(), map[string]lua.LGFunction{
		"play": func(L *lua.LState) int {
			waveform, err := ParseWaveform(L.CheckString(2))
			if err != nil {
				L.RaiseError("%v", err)
				return 0
			}
			index := L.CheckInt(1)
			frequency := float64(L.CheckNumber(3))
			volume := float64(L.OptNumber(4, 1.0))
			duration := float64(L.OptNumber(5, -1.0))
			if err := mixer.Play(index, waveform, frequency, volume, duration); err != nil {
				L.RaiseError("%v", err)
			}
			return 0
		},
		"stop": func(L *lua.LState) int {
			if L.GetTop() == 0 {
				mixer.StopAll()
				return 0
			}
			mixer.Stop(L.CheckInt(1))
			return 0
		},
	})
	state.SetGlobal("sound", sound)
}

func (h *ScriptHost) registerSystem(env ScriptEnvironment) {
	state := h.state
	system := state.SetFuncs(state.NewTable(), map[string]lua.LGFunction{
		"quit": func(L *lua.LState) int {
			env.Quit()
			return 0
		},
		"time": func(L *lua.LState) int {
			L.Push(lua.LNumber(env.Time()))
			return 1
		},
		"fps": func(L *lua.LState) int {
			L.Push(lua.LNumber(env.FPS()))
			return 1
		},
	})
	state.SetGlobal("system", system)
}
