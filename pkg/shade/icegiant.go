package shade

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/noise"
)

var darkSpot = radial{center: math3d.V3(0.4, 0.2, 0), radius: 0.25, strength: 0.8}

var iceGiantLayers = []Layer{
	{
		Name: "bands",
		Mask: func(in Input) float64 {
			lat := in.Sphere().Y
			band := math.Sin(lat*12+in.Time*0.1)*0.5 + 0.5
			equator := math.Max(1-math.Abs(lat)*2, 0)
			return band * equator * 0.7
		},
		Color:     New(80, 120, 220),
		Threshold: 0.1,
	},
	{
		Name: "methane",
		Mask: func(in Input) float64 {
			sp := in.Sphere()
			d1 := noise.Fractal(sp.Scale(6), 3)
			d2 := noise.Fractal(sp.Scale(12).Add(math3d.V3(in.Time*0.02, 0, 0)), 2)
			return above((d1*0.7+d2*0.3)*0.4, 0.2, 0.8, 1)
		},
		Color: New(40, 100, 200),
	},
	{
		Name:      "dark spot",
		Mask:      func(in Input) float64 { return darkSpot.factor(in.Sphere()) },
		Color:     New(20, 40, 100),
		Threshold: 0.1,
	},
	{
		Name: "white clouds",
		Mask: func(in Input) float64 {
			p := in.Sphere().Scale(3).Add(math3d.V3(in.Time*0.05, 0, 0))
			return above(noise.Fractal(p, 4), 0.75, 0.25, 0.6)
		},
		Color:     New(200, 220, 255),
		Threshold: 0.1,
	},
	{
		Name: "swirls",
		Mask: func(in Input) float64 {
			p := in.Sphere().Scale(8).Add(math3d.V3(0, in.Time*0.03, 0))
			return above(noise.Fractal(p, 3), 0.7, 0.3, 0.4)
		},
		Color:     New(60, 90, 180),
		Threshold: 0.1,
	},
	{
		Name: "rings",
		Mask: func(in Input) float64 {
			sp := in.Sphere()
			m := math.Max(1-math.Abs(sp.Y)*8, 0)
			return m * m * math.Abs(math.Sin(sp.X*20+in.Time*0.1)) * 0.15
		},
		Color:     New(70, 100, 180),
		Threshold: 0.05,
	},
	{Name: "glow", Mask: fresnelMask(3, 0.4), Color: New(100, 150, 255)},
}

// Scattering dominates deep atmospheres: weak diffuse, strong ambient.
var iceGiantLight = Lighting{Diffuse: 0.6, Ambient: 0.4, Max: 1}

func iceGiant(in Input) Color {
	c := Compose(New(30, 60, 150), in, iceGiantLayers)
	return iceGiantLight.Apply(c, in.Normal, in.Light)
}
