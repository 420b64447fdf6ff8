package scene

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// Star is a point on the sky sphere.
type Star struct {
	Dir   math3d.Vec3 // unit direction from the viewer
	Color uint32
	Size  int
}

// hash is a 32-bit integer mixer. The same seed always gives the same sky.
func hash(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x45d9f3b
	x ^= x >> 16
	x *= 0x45d9f3b
	x ^= x >> 16
	return x
}

func unit(x uint32) float64 {
	return float64(x) / math.MaxUint32
}

// Starfield generates c.Count stars spread uniformly over the sky, tinted and
// sized by the percentages in c.
func Starfield(c Stars) []Star {
	stars := make([]Star, max(c.Count, 0))
	for i := range stars {
		s := uint32(i)*1000 + c.Seed
		h1, h2, h3, h4 := hash(s), hash(s+1), hash(s+2), hash(s+3)

		theta := unit(h1) * 2 * math.Pi
		phi := math.Acos(unit(h2)*2 - 1)
		sinP, cosP := math.Sincos(phi)
		sinT, cosT := math.Sincos(theta)

		b := int(255 * (unit(h3)*0.8 + 0.2))
		var r, g, bl int
		kind := int(h4 % 100)
		switch {
		case kind < c.Blue:
			r, g, bl = 150+b/2, 180+b/3, b
		case kind < c.Blue+c.Red:
			r, g, bl = b, b/2, b/3
		default:
			r, g, bl = b, b, b
		}

		size := 1
		if kind < c.Large {
			size = 2
		}
		stars[i] = Star{
			Dir:   math3d.V3(sinP*cosT, cosP, sinP*sinT),
			Color: pack(r, g, bl),
			Size:  size,
		}
	}
	return stars
}

func pack(r, g, b int) uint32 {
	c := func(v int) uint32 { return uint32(min(max(v, 0), 255)) }
	return c(r)<<16 | c(g)<<8 | c(b)
}

// Sky projects stars through a rotation-only view: stars sit at infinity, so
// only the viewing direction matters.
type Sky struct {
	right, up, forward math3d.Vec3
	scaleX, scaleY     float64
	width, height      int
}

// NewSky sets up projection for a viewer looking along forward with the
// given vertical field of view onto a w x h screen.
func NewSky(forward math3d.Vec3, fovY float64, w, h int) Sky {
	f := forward.Normalize()
	right := f.Cross(math3d.Up()).Normalize()
	if right.LenSq() == 0 {
		right = math3d.V3(1, 0, 0)
	}
	t := math.Tan(fovY / 2)
	aspect := float64(w) / float64(max(h, 1))
	return Sky{
		right:   right,
		up:      right.Cross(f).Normalize(),
		forward: f,
		scaleX:  0.5 / (t * aspect),
		scaleY:  0.5 / t,
		width:   w,
		height:  h,
	}
}

// Project returns the pixel a star lands on. ok is false for stars behind
// the viewer or off screen.
func (s Sky) Project(st Star) (x, y int, ok bool) {
	z := st.Dir.Dot(s.forward)
	if z <= 0.1 {
		return 0, 0, false
	}
	sx := (st.Dir.Dot(s.right)/z*s.scaleX + 0.5) * float64(s.width)
	sy := (-st.Dir.Dot(s.up)/z*s.scaleY + 0.5) * float64(s.height)
	x, y = int(math.Floor(sx)), int(math.Floor(sy))
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return 0, 0, false
	}
	return x, y, true
}
