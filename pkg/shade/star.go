package shade

import (
	"math"

	"github.com/taigrr/orrery/pkg/noise"
)

var (
	starCore  = New(255, 255, 100)
	starHot   = New(255, 150, 50)
	starFlare = New(255, 50, 0)
)

var starLayers = []Layer{
	{
		Name: "sunspots",
		Mask: func(in Input) float64 {
			return above(noise.Fractal(in.Position.Scale(1.5), 3), 0.8, 0.2, 0.5)
		},
		Color: New(150, 80, 20),
	},
	{Name: "corona", Mask: fresnelMask(2, 0.6), Color: New(255, 200, 100), Additive: true},
}

// photosphere picks the base color from surface turbulence.
func photosphere(turbulence float64) Color {
	switch {
	case turbulence < 0.3:
		return starCore
	case turbulence < 0.7:
		return Lerp(starCore, starHot, (turbulence-0.3)/0.4)
	default:
		return starFlare
	}
}

// Pulse is the star's global brightness oscillation at time t.
func Pulse(t float64) float64 {
	return math.Sin(t*3)*0.1 + 0.9
}

// star is self-luminous: the pulse replaces the lighting pass.
func star(in Input) Color {
	base := photosphere(noise.Sun(in.Position, in.Time))
	return Compose(base, in, starLayers).Scale(Pulse(in.Time))
}
