package shade

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/noise"
)

// ridge is one continent shape: three broad sine/cosine lobes plus coastline
// and fine detail, shifted by its own offset on the x/z plane.
type ridge struct {
	ox, oz     float64
	a1, a2     float64
	b1, b2, b3 float64
	c1, c2, c3 float64
	d1, d2, d3 float64 // coast
	e1, e2, e3 float64 // coast along latitude
	e4         float64
	f1, f2, f3 float64 // fine detail
}

func (r ridge) density(sp math3d.Vec3) float64 {
	x, y, z := sp.X+r.ox, sp.Y, sp.Z+r.oz
	broad := math.Sin(x*r.a1)*math.Cos(z*r.a2)*0.5 +
		math.Cos(y*r.b1+z*r.b2)*math.Sin(x*r.b3)*0.35 +
		math.Sin(z*r.c1)*math.Cos(y*r.c2+x*r.c3)*0.15
	coast := math.Sin(x*r.d1)*math.Cos(z*r.d2)*r.d3 +
		math.Sin(x*r.e1+z*r.e2)*math.Cos(y*r.e3)*r.e4
	fine := math.Sin(x*r.f1) * math.Cos(z*r.f2) * r.f3
	return broad + coast + fine
}

var (
	africa = ridge{
		a1: 2, a2: 1.5, b1: 1, b2: 2.5, b3: 1.8, c1: 2.2, c2: 1.5, c3: 1.3,
		d1: 8, d2: 10, d3: 0.2, e1: 12, e2: 8, e3: 15, e4: 0.15, f1: 25, f2: 30, f3: 0.08,
	}
	southAmerica = ridge{
		ox: -1.5, oz: 0.8,
		a1: 2.1, a2: 1.6, b1: 0.9, b2: 2.3, b3: 1.9, c1: 2.4, c2: 1.4, c3: 1.6,
		d1: 9, d2: 11, d3: 0.18, e1: 13, e3: 16, e4: 0.14, f1: 26, f2: 31, f3: 0.07,
	}
	northAmerica = ridge{
		ox: 0.8, oz: -1.2,
		a1: 1.9, a2: 1.7, b1: 1.1, b2: 2.1, b3: 2.0, c1: 2.3, c2: 1.6, c3: 1.5,
		d1: 8.5, d2: 10.5, d3: 0.19, e1: 12.5, e3: 15.5, e4: 0.16, f1: 24, f2: 29, f3: 0.09,
	}
	australia = ridge{
		ox: 1.2, oz: 1.5,
		a1: 2.2, a2: 1.8, b1: 0.8, b2: 2.4, b3: 1.85, c1: 2.6, c2: 1.3, c3: 1.7,
		d1: 9.5, d2: 11.5, d3: 0.17, e1: 13.5, e3: 14.5, e4: 0.14, f1: 27, f2: 32, f3: 0.08,
	}
	eurasia = ridge{
		ox: -0.5, oz: -0.6,
		a1: 1.95, a2: 1.65, b1: 1.05, b2: 2.15, b3: 2.05, c1: 2.35, c2: 1.55, c3: 1.45,
		d1: 8.8, d2: 10.8, d3: 0.185, e1: 12.8, e3: 15.8, e4: 0.155, f1: 25.5, f2: 30.5, f3: 0.075,
	}
	pangaea = ridge{
		ox: 0.3, oz: 0.5,
		a1: 2.15, a2: 1.75, b1: 0.95, b2: 2.35, b3: 1.88, c1: 2.55, c2: 1.35, c3: 1.65,
		d1: 9.2, d2: 11.2, d3: 0.175, e1: 13.2, e3: 14.8, e4: 0.145, f1: 26.5, f2: 31.5, f3: 0.08,
	}

	greenLands = []ridge{southAmerica, northAmerica, eurasia}
	brownLands = []ridge{africa, australia, pangaea}
)

// landMask merges a continent group by max and turns the result into a
// blend factor, keeping land away from the poles.
func landMask(group []ridge) Mask {
	return func(in Input) float64 {
		sp := in.Sphere()
		if math.Abs(sp.Y) >= 0.7 {
			return 0
		}
		d := math.Inf(-1)
		for _, r := range group {
			d = math.Max(d, r.density(sp))
		}
		if !(d > 0.1) {
			return 0
		}
		f := clamp01((d - 0.1) / 0.9)
		if f > 0.2 {
			return f * 0.95
		}
		return f * 0.65
	}
}

// polarIce ramps from edge latitude to the pole, scaled by strength.
func polarIce(edge, strength float64) Mask {
	return func(in Input) float64 {
		lat := math.Abs(in.Sphere().Y)
		if !(lat > edge) {
			return 0
		}
		return clamp01((lat-edge)/(1-edge)) * strength
	}
}

var oceanicLayers = []Layer{
	{Name: "ice", Mask: polarIce(0.8, 0.9), Color: White(), Threshold: 0.1},
	{Name: "green continents", Mask: landMask(greenLands), Color: New(20, 160, 40), Threshold: 0.15},
	{Name: "brown continents", Mask: landMask(brownLands), Color: New(220, 150, 60), Threshold: 0.15},
	{
		Name: "clouds",
		Mask: func(in Input) float64 {
			c := noise.Cloud(in.Sphere(), in.Time)
			if !(c > 0.6) {
				return 0
			}
			return clamp01((c-0.6)/0.4) * 0.5
		},
		Color:     White(),
		Threshold: 0.15,
	},
}

var oceanicLight = Lighting{Diffuse: 0.7, Ambient: 0.5, Max: 1}

func oceanic(in Input) Color {
	c := Compose(New(0, 50, 150), in, oceanicLayers)
	return oceanicLight.Apply(c, in.Normal, in.Light)
}
