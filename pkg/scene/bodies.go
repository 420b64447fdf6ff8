package scene

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/render"
	"github.com/taigrr/orrery/pkg/shade"
)

// Moons circle their planet at twice its scale, at a fixed angular speed.
const (
	moonOrbit     = 2.0
	moonScale     = 0.27
	moonSpeed     = 2.0
	moonSpinSpeed = 0.5
)

// Body is one object placed at a moment in time.
type Body struct {
	Name      string
	Position  math3d.Vec3
	Scale     float64 // radius of the unit sphere after the model transform
	Model     math3d.Mat4
	Archetype shade.Archetype
	Moon      bool
}

// Uniforms returns the draw parameters for b.
func (b *Body) Uniforms(viewProj math3d.Mat4, t float64, w, h int) render.Uniforms {
	return render.Uniforms{
		Model:          b.Model,
		ViewProjection: viewProj,
		Time:           t,
		Shader:         b.Archetype,
		Moon:           b.Moon,
		ScreenWidth:    w,
		ScreenHeight:   h,
	}
}

func newBody(name string, pos math3d.Vec3, spin, scale float64, a shade.Archetype, moon bool) Body {
	return Body{
		Name:      name,
		Position:  pos,
		Scale:     scale,
		Model:     math3d.TRS(pos, math3d.V3(0, spin, 0), scale),
		Archetype: a,
		Moon:      moon,
	}
}

// orbit is the point at angle on a circle of radius r in the XZ plane.
func orbit(center math3d.Vec3, r, angle float64) math3d.Vec3 {
	sin, cos := math.Sincos(angle)
	return math3d.V3(center.X+r*cos, center.Y, center.Z+r*sin)
}

// Bodies places the sun, then each planet followed by its moon, at time t.
func (s *System) Bodies(t float64) []Body {
	out := make([]Body, 0, 1+2*len(s.Planets))
	out = append(out, newBody("sun", math3d.Zero3(), t*s.Sun.RotationSpeed, s.Sun.Scale, s.Sun.Archetype, false))

	for _, p := range s.Planets {
		pos := orbit(math3d.Zero3(), p.OrbitRadius, t*p.OrbitSpeed)
		out = append(out, newBody(p.Name, pos, t*p.RotationSpeed, p.Scale, p.Archetype, false))
		if p.Moon {
			mpos := orbit(pos, p.Scale*moonOrbit, t*moonSpeed)
			out = append(out, newBody(p.Name+" moon", mpos, t*moonSpinSpeed, p.Scale*moonScale, shade.Moon, true))
		}
	}
	return out
}

// Orbits returns every planet's orbit radius in order.
func (s *System) Orbits() []float64 {
	r := make([]float64, len(s.Planets))
	for i, p := range s.Planets {
		r[i] = p.OrbitRadius
	}
	return r
}

// OrbitSegments is the resolution orbit rings are drawn at.
const OrbitSegments = 128

// OrbitRing returns segments points evenly spaced on a circle of radius r
// around the origin in the XZ plane. segments is raised to at least 3.
func OrbitRing(r float64, segments int) []math3d.Vec3 {
	segments = max(segments, 3)
	pts := make([]math3d.Vec3, segments)
	for i := range pts {
		pts[i] = orbit(math3d.Zero3(), r, float64(i)/float64(segments)*2*math.Pi)
	}
	return pts
}
