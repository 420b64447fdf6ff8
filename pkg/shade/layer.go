package shade

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// Input is everything a shader may depend on. Position is in the body's own
// object space so surface patterns stay attached while it orbits and spins.
type Input struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	Light    math3d.Vec3
	Time     float64
}

// Sphere returns Position projected onto the unit sphere.
func (in Input) Sphere() math3d.Vec3 {
	return in.Position.Normalize()
}

// Shader maps a surface sample to a color.
type Shader func(Input) Color

// Mask computes a blend factor for one layer. Zero means the layer is absent.
type Mask func(Input) float64

// Layer is one step of a surface recipe.
type Layer struct {
	Name      string
	Mask      Mask
	Color     Color
	Threshold float64 // the layer applies only where Mask > Threshold
	Additive  bool    // add Color*factor instead of blending toward Color
}

// Compose folds layers left to right over base.
func Compose(base Color, in Input, layers []Layer) Color {
	c := base
	for _, l := range layers {
		f := l.Mask(in)
		if !(f > l.Threshold) {
			continue
		}
		if l.Additive {
			c = Color{
				channel(float64(c.R) + float64(l.Color.R)*f),
				channel(float64(c.G) + float64(l.Color.G)*f),
				channel(float64(c.B) + float64(l.Color.B)*f),
			}
			continue
		}
		c = Lerp(c, l.Color, f)
	}
	return c
}

// Lighting is a diffuse plus ambient term with an upper bound on intensity.
type Lighting struct {
	Diffuse float64
	Ambient float64
	Max     float64
}

// Apply scales c by clamp(Diffuse*max(n.l, 0) + Ambient, 0, Max).
func (l Lighting) Apply(c Color, normal, light math3d.Vec3) Color {
	d := math.Max(normal.Dot(light), 0)
	return c.Scale(clamp(l.Diffuse*d+l.Ambient, 0, l.Max))
}

// viewDir is the fixed eye direction used for rim and specular terms.
var viewDir = math3d.V3(0, 0, 1)

// Fresnel grows from 0 facing the viewer to 1 at grazing angles.
func Fresnel(n math3d.Vec3) float64 {
	return 1 - math.Abs(n.Dot(viewDir))
}

// fresnelMask returns a mask of Fresnel(normal)^power*strength.
func fresnelMask(power, strength float64) Mask {
	return func(in Input) float64 {
		return math.Pow(Fresnel(in.Normal), power) * strength
	}
}

// radial is a feature centred on a fixed point of the unit sphere that fades
// linearly to nothing at radius.
type radial struct {
	center   math3d.Vec3
	radius   float64
	strength float64
}

func (r radial) factor(sp math3d.Vec3) float64 {
	d := sp.Distance(r.center)
	if d >= r.radius {
		return 0
	}
	return (1 - d/r.radius) * r.strength
}

// above maps v in (edge, edge+span] onto (0, strength], and anything at or
// below edge to 0. Most noise gates in this package have this shape.
func above(v, edge, span, strength float64) float64 {
	if !(v > edge) {
		return 0
	}
	return (v - edge) / span * strength
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}
