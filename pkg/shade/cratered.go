package shade

import (
	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/noise"
)

var (
	crateredDark   = New(90, 50, 20)
	crateredOrange = New(180, 90, 40)
	crateredBright = New(230, 140, 50)
	crateredYellow = New(255, 190, 80)
)

// crateredRamp walks a four-tone palette with the same noise value used as the
// blend weight inside each segment.
func crateredRamp(v float64) Color {
	switch {
	case v < 0.3:
		return crateredDark
	case v < 0.55:
		return Lerp(crateredDark, crateredOrange, v)
	case v < 0.8:
		return Lerp(crateredOrange, crateredBright, v)
	default:
		return Lerp(crateredBright, crateredYellow, v)
	}
}

var crateredLayers = []Layer{
	{
		Name: "craters",
		Mask: func(in Input) float64 {
			return above(noise.Fractal(in.Sphere().Scale(20), 4), 0.75, 1, 3)
		},
		Color: New(50, 30, 15),
	},
}

var crateredLight = Lighting{Diffuse: 0.85, Ambient: 0.25, Max: 1}

func cratered(in Input) Color {
	sp := in.Sphere()
	coarse := noise.Fractal(sp.Scale(1.5), 5)
	fine := noise.Fractal(sp.Scale(10).Add(math3d.V3(in.Time*0.05, 0, 0)), 3)
	base := crateredRamp(clamp01(coarse*0.7 + fine*0.3))

	c := Compose(base, in, crateredLayers)
	return crateredLight.Apply(c, in.Normal, in.Light)
}
