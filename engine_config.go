// engine_config.go - runtime configuration loading and defaults

/*
Zest - a fixed-timestep, palette-indexed game runtime.

(c) 2019-2026 by Marco Lizza (marco.lizza@gmail.com)
License: MIT
*/

package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config drives every subsystem. Loaded once at startup from the game
// folder; a missing file means "all defaults".
type Config struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Scale      int    `yaml:"scale"` // 0 = largest integer scale that fits the display
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	HideCursor bool   `yaml:"hide-cursor"`

	FPS             int `yaml:"fps"`              // fixed simulation rate
	FPSCap          int `yaml:"fps-cap"`          // pacing cap, independent of vsync
	SkippableFrames int `yaml:"skippable-frames"` // per-iteration fixed-update budget

	PixelOrder string   `yaml:"pixel-order"` // "rgba" (default) or "bgra"
	Palette    []string `yaml:"palette"`     // optional "#RRGGBB" entries, slot order

	Boot string `yaml:"boot"` // entry script, relative to the game folder

	SampleRate int `yaml:"sample-rate"`
	Voices     int `yaml:"voices"`

	ExitKeyEnabled bool `yaml:"exit-key-enabled"`
	Debug          bool `yaml:"debug"`
}

// DefaultConfig mirrors the engine's built-in defaults; LoadConfig
// starts from these and overlays whatever the file provides.
func DefaultConfig() Config {
	return Config{
		Title:           "Zest",
		Width:           320,
		Height:          240,
		Scale:           0,
		Fullscreen:      false,
		VSync:           false,
		FPS:             60,
		FPSCap:          60,
		SkippableFrames: 5,
		PixelOrder:      "rgba",
		Boot:            "boot.lua",
		SampleRate:      44100,
		Voices:          8,
		ExitKeyEnabled:  true,
	}
}

// LoadConfig reads a YAML configuration file. A missing file is not an
// error; a malformed one is.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return config, fmt.Errorf("can't read configuration `%s`: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("can't parse configuration `%s`: %w", path, err)
	}
	return config, config.validate()
}

func (c *Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid canvas size %dx%d", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("invalid fps %d", c.FPS)
	}
	if c.FPSCap <= 0 {
		return fmt.Errorf("invalid fps-cap %d", c.FPSCap)
	}
	if c.SkippableFrames <= 0 {
		return fmt.Errorf("invalid skippable-frames %d", c.SkippableFrames)
	}
	if c.Scale < 0 {
		return fmt.Errorf("invalid scale %d", c.Scale)
	}
	switch c.PixelOrder {
	case "rgba", "bgra":
	default:
		return fmt.Errorf("unknown pixel-order `%s`", c.PixelOrder)
	}
	if len(c.Palette) > PaletteMaxColors {
		return fmt.Errorf("palette of %d entries exceeds capacity of %d", len(c.Palette), PaletteMaxColors)
	}
	return nil
}

// FixedStep derives the simulation time increment from the configured
// rate.
func (c *Config) FixedStep() float64 {
	return 1.0 / float64(c.FPS)
}

// ReferenceTime derives the pacing interval from the frame-rate cap.
func (c *Config) ReferenceTime() float64 {
	return 1.0 / float64(c.FPSCap)
}

// PaletteColors parses the optional palette entries. Entries are
// "#RRGGBB" or "#RRGGBBAA"; alpha defaults to opaque.
func (c *Config) PaletteColors() ([]Color, error) {
	if len(c.Palette) == 0 {
		return nil, nil
	}
	colors := make([]Color, len(c.Palette))
	for i, entry := range c.Palette {
		color, err := parseColor(entry)
		if err != nil {
			return nil, fmt.Errorf("palette entry #%d: %w", i, err)
		}
		colors[i] = color
	}
	return colors, nil
}

func parseColor(s string) (Color, error) {
	if len(s) == 0 || s[0] != '#' {
		return Color{}, fmt.Errorf("malformed color `%s`", s)
	}
	hex := s[1:]
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("malformed color `%s`", s)
	}
	var channels [4]uint8
	channels[3] = 255
	for i := 0; i < len(hex)/2; i++ {
		hi, ok1 := hexNibble(hex[i*2])
		lo, ok2 := hexNibble(hex[i*2+1])
		if !ok1 || !ok2 {
			return Color{}, fmt.Errorf("malformed color `%s`", s)
		}
		channels[i] = hi<<4 | lo
	}
	return Color{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}, nil
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
