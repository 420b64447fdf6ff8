package shade

import (
	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/noise"
)

var greatSpot = radial{center: math3d.V3(0.3, 0, 0), radius: 0.3, strength: 0.7}

var gasGiantLayers = []Layer{
	{
		Name: "storms",
		Mask: func(in Input) float64 {
			p := in.Position.Scale(2).Add(math3d.V3(in.Time*0.1, 0, 0))
			return above(noise.Fractal(p, 4), 0.7, 0.3, 0.4)
		},
		Color: New(220, 200, 180),
	},
	{
		Name:  "great spot",
		Mask:  func(in Input) float64 { return greatSpot.factor(in.Position) },
		Color: New(180, 80, 60),
	},
	{Name: "haze", Mask: fresnelMask(4, 0.3), Color: New(200, 180, 160)},
}

var gasGiantLight = Lighting{Diffuse: 0.8, Ambient: 0.3, Max: 1}

func gasBand(g float64) Color {
	switch {
	case g < 0.33:
		return New(200, 150, 100)
	case g < 0.66:
		return New(150, 100, 80)
	default:
		return New(100, 80, 120)
	}
}

func gasGiant(in Input) Color {
	base := gasBand(noise.GasBands(in.Position, in.Time))
	c := Compose(base, in, gasGiantLayers)
	return gasGiantLight.Apply(c, in.Normal, in.Light)
}
