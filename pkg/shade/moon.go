package shade

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/noise"
)

// Named maria, positioned on the unit sphere.
var maria = []radial{
	{center: math3d.V3(0.3, 0.1, 0.2), radius: 0.15, strength: 0.9},    // Tranquillitatis
	{center: math3d.V3(-0.2, 0.05, 0.25), radius: 0.12, strength: 0.85}, // Imbrium
	{center: math3d.V3(0.15, -0.08, 0.3), radius: 0.1, strength: 0.8},   // Serenitatis
	{center: math3d.V3(-0.35, 0, 0.1), radius: 0.2, strength: 0.7},      // Procellarum
}

// mareSpot is a noise-driven dark patch.
type mareSpot struct {
	scale    float64
	offset   math3d.Vec3
	octaves  int
	edge     float64
	strength float64
}

var mareSpots = []mareSpot{
	{scale: 2, octaves: 4, edge: 0.7, strength: 0.6},
	{scale: 4, offset: math3d.V3(50, 0, 50), octaves: 3, edge: 0.75, strength: 0.5},
	{scale: 8, offset: math3d.V3(100, 100, 0), octaves: 2, edge: 0.8, strength: 0.4},
}

// MariaFactor is the darkening of the lunar seas at sp: the strongest of all
// named and noise features, capped at 1.
func MariaFactor(sp math3d.Vec3) float64 {
	var f float64
	for _, m := range maria {
		f = math.Max(f, m.factor(sp))
	}
	for _, s := range mareSpots {
		n := noise.Fractal(sp.Scale(s.scale).Add(s.offset), s.octaves)
		f = math.Max(f, above(n, s.edge, 1-s.edge, s.strength))
	}
	return math.Min(f, 1)
}

var moonLayers = []Layer{
	{
		Name: "bright craters",
		Mask: func(in Input) float64 {
			sp := in.Sphere()
			n1 := noise.Fractal(sp.Scale(10), 3)
			n2 := noise.Fractal(sp.Scale(20).Add(math3d.V3(200, 0, 200)), 2)
			if !(n1 > 0.8 && n2 > 0.7) {
				return 0
			}
			return (n1 - 0.8) / 0.2 * (n2 - 0.7) / 0.3 * 0.3
		},
		Color:     New(245, 245, 240),
		Threshold: 0.05,
	},
	{
		Name:      "maria",
		Mask:      func(in Input) float64 { return MariaFactor(in.Sphere()) },
		Color:     New(80, 80, 80),
		Threshold: 0.1,
	},
	{
		Name: "warm tone",
		Mask: func(in Input) float64 {
			return above(noise.Fractal(in.Sphere().Scale(1.5), 2), 0.6, 0.4, 1)
		},
		Color: New(255, 253, 248),
	},
}

// High albedo: intensity may exceed 1 and saturate the channels.
var moonLight = Lighting{Diffuse: 1.1, Ambient: 0.6, Max: 1.2}

// specular is a Blinn term against the fixed view direction. When the light
// points straight at the viewer the half vector is zero and so is the term.
func specular(normal, light math3d.Vec3) float64 {
	half := light.Add(viewDir).Normalize()
	return math.Pow(math.Max(normal.Dot(half), 0), 32) * 0.3
}

func moon(in Input) Color {
	c := Compose(White(), in, moonLayers)
	c = moonLight.Apply(c, in.Normal, in.Light)
	if s := specular(in.Normal, in.Light); s > 0.1 {
		c = c.AddScalar(20 * s)
	}
	return c
}
