// Package shade synthesizes surface colors procedurally. Each body archetype
// is a pure function of position, normal, light direction and time built from
// ordered noise-driven layers and a final lighting pass.
package shade

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit-per-channel RGB value. Arithmetic happens in float64 and
// saturates back to [0, 255] by truncation.
type Color struct {
	R, G, B uint8
}

// Invalid marks a shader lookup that did not resolve to a real archetype.
var Invalid = Color{255, 0, 255}

// New creates a Color.
func New(r, g, b uint8) Color {
	return Color{r, g, b}
}

// Black returns (0, 0, 0).
func Black() Color {
	return Color{}
}

// White returns (255, 255, 255).
func White() Color {
	return Color{255, 255, 255}
}

// FromHex unpacks a 0xRRGGBB value.
func FromHex(h uint32) Color {
	return Color{uint8(h >> 16), uint8(h >> 8), uint8(h)}
}

// ParseHex parses "#rrggbb" or "#rgb".
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		// colorful only accepts the leading '#' form.
		c, err = colorful.Hex("#" + s)
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
	}
	r, g, b := c.RGB255()
	return Color{r, g, b}, nil
}

// Hex packs the color as (r<<16)|(g<<8)|b.
func (c Color) Hex() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// RGBA converts to an opaque image/color value.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{c.R, c.G, c.B, 255}
}

// String formats the color as #rrggbb.
func (c Color) String() string {
	return fmt.Sprintf("#%06x", c.Hex())
}

// Lerp blends a toward b by t, clamped to [0, 1].
func Lerp(a, b Color, t float64) Color {
	t = clamp(t, 0, 1)
	s := 1 - t
	return Color{
		channel(float64(a.R)*s + float64(b.R)*t),
		channel(float64(a.G)*s + float64(b.G)*t),
		channel(float64(a.B)*s + float64(b.B)*t),
	}
}

// Scale multiplies every channel by f.
func (c Color) Scale(f float64) Color {
	return Color{
		channel(float64(c.R) * f),
		channel(float64(c.G) * f),
		channel(float64(c.B) * f),
	}
}

// Add returns the saturating per-channel sum.
func (c Color) Add(o Color) Color {
	return Color{
		channel(float64(c.R) + float64(o.R)),
		channel(float64(c.G) + float64(o.G)),
		channel(float64(c.B) + float64(o.B)),
	}
}

// AddScalar adds v to every channel, saturating.
func (c Color) AddScalar(v float64) Color {
	return Color{
		channel(float64(c.R) + v),
		channel(float64(c.G) + v),
		channel(float64(c.B) + v),
	}
}

// channel truncates v into a byte. NaN becomes 0.
func channel(v float64) uint8 {
	return uint8(clamp(v, 0, 255))
}

func clamp(v, lo, hi float64) float64 {
	switch {
	case !(v > lo):
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}
