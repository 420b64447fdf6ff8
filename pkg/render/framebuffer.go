// Package render is a CPU triangle pipeline: a vertex stage, an edge-function
// rasterizer that shades fragments with the shade archetypes, and a
// depth-tested framebuffer that can be shown in a terminal or saved as PNG.
package render

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
)

// Framebuffer is a packed 0xRRGGBB colour buffer with a float64 depth buffer.
// In the terminal each pair of rows becomes one half-block cell, so Height is
// twice the number of terminal rows.
type Framebuffer struct {
	width, height int
	background    uint32
	pixels        []uint32
	depth         []float64
}

// NewFramebuffer creates a cleared framebuffer.
func NewFramebuffer(width, height int) *Framebuffer {
	width, height = max(width, 0), max(height, 0)
	fb := &Framebuffer{
		width:  width,
		height: height,
		pixels: make([]uint32, width*height),
		depth:  make([]float64, width*height),
	}
	fb.Clear()
	return fb
}

func (fb *Framebuffer) Width() int  { return fb.width }
func (fb *Framebuffer) Height() int { return fb.height }

// SetBackground sets the colour Clear fills with.
func (fb *Framebuffer) SetBackground(c uint32) {
	fb.background = c & 0xFFFFFF
}

// Clear fills colour with the background and depth with +Inf.
func (fb *Framebuffer) Clear() {
	inf := math.Inf(1)
	for i := range fb.pixels {
		fb.pixels[i] = fb.background
		fb.depth[i] = inf
	}
}

// Point writes c at (x, y) if depth lies in [0, 1] and is nearer than the
// stored depth. It reports whether the pixel was written.
func (fb *Framebuffer) Point(x, y int, depth float64, c uint32) bool {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return false
	}
	if !(depth >= 0 && depth <= 1) {
		return false
	}
	i := y*fb.width + x
	if depth >= fb.depth[i] {
		return false
	}
	fb.depth[i] = depth
	fb.pixels[i] = c & 0xFFFFFF
	return true
}

// Pixel returns the colour at (x, y), or 0 out of bounds.
func (fb *Framebuffer) Pixel(x, y int) uint32 {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return 0
	}
	return fb.pixels[y*fb.width+x]
}

// Depth returns the stored depth at (x, y), or +Inf out of bounds.
func (fb *Framebuffer) Depth(x, y int) float64 {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return math.Inf(1)
	}
	return fb.depth[y*fb.width+x]
}

// DrawLine draws a depth-tested line from (x0, y0) to (x1, y1) at a constant
// depth, using Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, depth float64, c uint32) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.Point(x0, y0, depth, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// rgba unpacks a 0xRRGGBB pixel.
func rgba(p uint32) color.RGBA {
	return color.RGBA{uint8(p >> 16), uint8(p >> 8), uint8(p), 255}
}

// ToImage converts the colour buffer to an opaque image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			img.SetRGBA(x, y, rgba(fb.pixels[y*fb.width+x]))
		}
	}
	return img
}

// SavePNG writes the colour buffer to path.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, fb.ToImage()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
