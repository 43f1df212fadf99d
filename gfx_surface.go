// gfx_surface.go - read-only indexed pixel source for blitting

/*
Zest - a fixed-timestep, palette-indexed game runtime.

(c) 2019-2026 by Marco Lizza (marco.lizza@gmail.com)
License: MIT
*/

package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
)

// Surface is an immutable indexed image: the render context borrows it
// during blits and never writes through it. Row addressing uses the
// same offset-table scheme as the context so that "start of row y" is
// O(1).
type Surface struct {
	width, height int
	pixels        []Pixel
	rowIndex      []int
}

// NewSurface wraps raw indexed pixel data. The data length must match
// the geometry exactly.
func NewSurface(width, height int, pixels []Pixel) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	if len(pixels) != width*height {
		return nil, fmt.Errorf("surface data is %d pixels, geometry wants %d", len(pixels), width*height)
	}
	s := &Surface{
		width:    width,
		height:   height,
		pixels:   pixels,
		rowIndex: make([]int, height),
	}
	for y := 0; y < height; y++ {
		s.rowIndex[y] = y * width
	}
	return s, nil
}

// LoadSurface decodes a paletted image file (PNG, GIF or BMP) into a
// surface. The image's own palette slots become the pixel indices; the
// caller is expected to install a matching palette on the context.
func LoadSurface(path string) (*Surface, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("can't open surface file: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("can't decode surface file `%s`: %w", path, err)
	}

	paletted, ok := img.(*image.Paletted)
	if !ok {
		return nil, fmt.Errorf("surface file `%s` (%s) is not palette-indexed", path, format)
	}
	if len(paletted.Palette) > PaletteMaxColors {
		return nil, fmt.Errorf("surface file `%s` has %d colors, more than the %d supported", path, len(paletted.Palette), PaletteMaxColors)
	}

	bounds := paletted.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixels := make([]Pixel, width*height)
	for y := 0; y < height; y++ {
		row := paletted.Pix[y*paletted.Stride : y*paletted.Stride+width]
		for x, index := range row {
			pixels[y*width+x] = Pixel(index)
		}
	}

	Logf(LogDebug, "gfx", "surface `%s` loaded (%dx%d, %d colors)", path, width, height, len(paletted.Palette))
	return NewSurface(width, height, pixels)
}

// SurfacePalette extracts the color table of a paletted image file so
// it can be installed on a render context.
func SurfacePalette(path string) ([]Color, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("can't open surface file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("can't decode surface file `%s`: %w", path, err)
	}
	paletted, ok := img.(*image.Paletted)
	if !ok {
		return nil, fmt.Errorf("surface file `%s` is not palette-indexed", path)
	}

	colors := make([]Color, len(paletted.Palette))
	for i, c := range paletted.Palette {
		r, g, b, a := c.RGBA()
		colors[i] = Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
	}
	return colors, nil
}

// Width reports the surface width in pixels.
func (s *Surface) Width() int {
	return s.width
}

// Height reports the surface height in pixels.
func (s *Surface) Height() int {
	return s.height
}

// Row returns the indexed pixels of row y. The slice aliases the
// surface data; callers must treat it as read-only.
func (s *Surface) Row(y int) []Pixel {
	offset := s.rowIndex[y]
	return s.pixels[offset : offset+s.width]
}

// PixelAt reads a single pixel, bounds-checked.
func (s *Surface) PixelAt(position Point) Pixel {
	if position.X < 0 || position.X >= s.width || position.Y < 0 || position.Y >= s.height {
		return 0
	}
	return s.pixels[s.rowIndex[position.Y]+position.X]
}
