// Package noise implements the deterministic value noise that drives every
// procedural surface. All functions are pure: equal inputs give bit-identical
// outputs and nothing is cached between calls.
package noise

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// Noise3D hashes p to a pseudo-random scalar in [0, 1].
func Noise3D(p math3d.Vec3) float64 {
	h := math.Sin(p.X*127.1+p.Y*311.7+p.Z*74.7) * 43758.5453
	h -= math.Floor(h)
	return math.Abs(h*2 - 1)
}

// Fractal sums octaves of Noise3D, doubling frequency and halving amplitude at
// each step, and clamps the total to [0, 1]. Zero or negative octaves yield 0.
func Fractal(p math3d.Vec3, octaves int) float64 {
	var (
		value     float64
		amplitude = 1.0
		frequency = 1.0
	)
	for range max(octaves, 0) {
		value += Noise3D(p.Scale(frequency)) * amplitude
		frequency *= 2
		amplitude *= 0.5
		p = p.Scale(2)
	}
	return clamp01(value)
}

// Continent is a low-frequency land mask.
func Continent(p math3d.Vec3) float64 {
	return clamp01(Fractal(p.Scale(0.6), 2)*0.7 + Fractal(p.Scale(1.2), 3)*0.3)
}

// Cloud is a slowly drifting cloud density at time t.
func Cloud(p math3d.Vec3, t float64) float64 {
	m := p.Add(math3d.V3(t*0.02, 0, t*0.01))
	return clamp01(Fractal(m.Scale(1.5), 4) + Fractal(m.Scale(4), 2)*0.3)
}

// Sun is the boiling turbulence of a stellar surface.
func Sun(p math3d.Vec3, t float64) float64 {
	return Fractal(p.Add(math3d.V3(t*0.5, t*0.3, t*0.2)).Scale(4), 5)
}

// GasBands is latitude banding perturbed by drifting turbulence.
func GasBands(p math3d.Vec3, t float64) float64 {
	bands := math.Sin(p.Y*8+t*0.2)*0.5 + 0.5
	turbulence := Fractal(p.Scale(2).Add(math3d.V3(t*0.1, 0, 0)), 3)
	return clamp01(bands + turbulence*0.3)
}

// clamp01 also maps NaN to 0 so a bad input cannot poison a shader.
func clamp01(v float64) float64 {
	switch {
	case !(v > 0):
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
