package shade

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/noise"
)

var rockyIce = polarIce(0.75, 0.85)

var rockyLayers = []Layer{
	{
		Name: "highlands",
		Mask: func(in Input) float64 {
			cv := noise.Fractal(in.Sphere().Scale(1.5), 3)
			if !(cv > 0.5) {
				return 0
			}
			return math.Min((cv-0.5)*2, 0.4)
		},
		Color: New(220, 100, 40),
	},
	{Name: "ice", Mask: rockyIce, Color: New(245, 240, 235), Threshold: 0.1},
	{
		Name: "craters",
		Mask: func(in Input) float64 {
			sp := in.Sphere()
			n1 := noise.Fractal(sp.Scale(8), 3)
			n2 := noise.Fractal(sp.Scale(12).Add(math3d.V3(100, 100, 100)), 2)
			if !(n1 > 0.8 && n2 > 0.75) {
				return 0
			}
			return (n1 - 0.8) / 0.2 * (n2 - 0.75) / 0.25 * 0.35
		},
		Color:     New(120, 50, 30),
		Threshold: 0.05,
	},
	{
		Name: "canyons",
		Mask: func(in Input) float64 {
			sp := in.Sphere()
			if math.Abs(sp.Y) >= 0.4 {
				return 0
			}
			return above(noise.Fractal(sp.Scale(3), 4), 0.65, 0.35, 0.4)
		},
		Color:     New(140, 55, 25),
		Threshold: 0.1,
	},
	{
		Name: "volcanic plains",
		Mask: func(in Input) float64 {
			sp := in.Sphere()
			v := noise.Fractal(sp.Scale(2.5), 4)
			vd := noise.Fractal(sp.Scale(5).Add(math3d.V3(50, 50, 50)), 2)
			if !(v > 0.6 && vd > 0.55) || rockyIce(in) >= 0.1 {
				return 0
			}
			return (v - 0.6) / 0.4 * ((vd - 0.55) / 0.45) * 0.5
		},
		Color:     New(100, 45, 25),
		Threshold: 0.15,
	},
	{
		Name: "dunes",
		Mask: func(in Input) float64 {
			return above(noise.Fractal(in.Sphere().Scale(15), 3), 0.7, 0.3, 0.2)
		},
		Color:     New(210, 95, 35),
		Threshold: 0.05,
	},
	{
		Name: "dust storms",
		Mask: func(in Input) float64 {
			p := in.Sphere().Scale(1.5).Add(math3d.V3(in.Time*0.03, 0, in.Time*0.02))
			return above(noise.Fractal(p, 4), 0.75, 0.25, 0.2)
		},
		Color:     New(210, 120, 70),
		Threshold: 0.08,
	},
}

// Thin atmosphere: less ambient fill than the oceanic world.
var rockyLight = Lighting{Diffuse: 0.75, Ambient: 0.35, Max: 1}

func rocky(in Input) Color {
	c := Compose(New(193, 68, 14), in, rockyLayers)
	return rockyLight.Apply(c, in.Normal, in.Light)
}
