package render

import (
	"image"
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/shade"
)

// minArea is the smallest signed area, in pixels, of a triangle worth drawing.
const minArea = 0.1

// LightDir is the fixed direction light travels in view of every shader.
var LightDir = math3d.V3(0, 0, -1).Normalize()

// Fragment is one shaded pixel candidate, not yet depth tested.
type Fragment struct {
	X, Y  int
	Color shade.Color
	Depth float64
}

// Cull says why a triangle produced no fragments.
type Cull uint8

const (
	Accepted     Cull = iota
	CullDepth         // wholly in front of the near plane or behind the far plane
	CullOffscreen     // bounding box misses the screen
	CullDegenerate    // collinear or sub-pixel
	CullBackface      // clockwise on screen

	cullCount
)

func (c Cull) String() string {
	switch c {
	case Accepted:
		return "accepted"
	case CullDepth:
		return "depth"
	case CullOffscreen:
		return "offscreen"
	case CullDegenerate:
		return "degenerate"
	case CullBackface:
		return "backface"
	default:
		return "unknown"
	}
}

// EdgeFunction is the signed parallelogram area spanned by a->b and a->p. Its
// sign tells which side of the line a->b the point p falls on.
func EdgeFunction(a, b, p math3d.Vec2) float64 {
	return (p.X-a.X)*(b.Y-a.Y) - (p.Y-a.Y)*(b.X-a.X)
}

// edge holds the coefficients of EdgeFunction(a, b, p) = A*p.x + B*p.y + C.
type edge struct {
	A, B, C float64
}

func newEdge(a, b math3d.Vec2) edge {
	return edge{
		A: b.Y - a.Y,
		B: a.X - b.X,
		C: a.Y*b.X - a.X*b.Y,
	}
}

func (e edge) at(x, y float64) float64 {
	return e.A*x + e.B*y + e.C
}

// setup is a triangle that survived culling, ready to scan.
type setup struct {
	v      [3]*Vertex
	e      [3]edge // opposite v[0], v[1], v[2]
	invA   float64
	bounds image.Rectangle // inclusive-exclusive pixel box, clamped to screen
	shader shade.Shader
	time   float64
}

// prepare runs every cull against a transformed triangle.
func prepare(a, b, c *Vertex, u *Uniforms) (setup, Cull) {
	za, zb, zc := a.Screen.Z, b.Screen.Z, c.Screen.Z
	if (za < 0 && zb < 0 && zc < 0) || (za > 1 && zb > 1 && zc > 1) {
		return setup{}, CullDepth
	}

	minX := math.Floor(min(a.Screen.X, b.Screen.X, c.Screen.X))
	maxX := math.Ceil(max(a.Screen.X, b.Screen.X, c.Screen.X))
	minY := math.Floor(min(a.Screen.Y, b.Screen.Y, c.Screen.Y))
	maxY := math.Ceil(max(a.Screen.Y, b.Screen.Y, c.Screen.Y))

	w, h := float64(u.ScreenWidth), float64(u.ScreenHeight)
	if maxX < 0 || maxY < 0 || minX > w-1 || minY > h-1 || !(maxX >= minX && maxY >= minY) {
		return setup{}, CullOffscreen
	}

	pa, pb, pc := screen2(a), screen2(b), screen2(c)
	area := EdgeFunction(pa, pb, pc)
	if !(math.Abs(area) >= minArea) {
		return setup{}, CullDegenerate
	}
	if area < 0 {
		return setup{}, CullBackface
	}

	return setup{
		v:    [3]*Vertex{a, b, c},
		e:    [3]edge{newEdge(pb, pc), newEdge(pc, pa), newEdge(pa, pb)},
		invA: 1 / area,
		bounds: image.Rect(
			int(math.Max(minX, 0)), int(math.Max(minY, 0)),
			int(math.Min(maxX, w-1))+1, int(math.Min(maxY, h-1))+1,
		),
		shader: u.Archetype().Shader(),
		time:   u.Time,
	}, Accepted
}

// scan emits the fragments of s that fall inside clip.
func (s *setup) scan(dst []Fragment, clip image.Rectangle) []Fragment {
	r := s.bounds.Intersect(clip)
	if r.Empty() {
		return dst
	}
	a, b, c := s.v[0], s.v[1], s.v[2]

	for y := r.Min.Y; y < r.Max.Y; y++ {
		py := float64(y) + 0.5
		px := float64(r.Min.X) + 0.5
		// Evaluate at the row start and step along x.
		e0 := s.e[0].at(px, py)
		e1 := s.e[1].at(px, py)
		e2 := s.e[2].at(px, py)

		for x := r.Min.X; x < r.Max.X; x++ {
			w1, w2, w3 := e0*s.invA, e1*s.invA, e2*s.invA
			e0 += s.e[0].A
			e1 += s.e[1].A
			e2 += s.e[2].A
			if w1 < 0 || w2 < 0 || w3 < 0 {
				continue
			}

			in := shade.Input{
				Position: math3d.Blend3(a.Position, b.Position, c.Position, w1, w2, w3),
				Normal:   math3d.Blend3(a.WorldNormal, b.WorldNormal, c.WorldNormal, w1, w2, w3).Normalize(),
				Light:    LightDir,
				Time:     s.time,
			}
			dst = append(dst, Fragment{
				X:     x,
				Y:     y,
				Color: s.shader(in),
				Depth: a.Screen.Z*w1 + b.Screen.Z*w2 + c.Screen.Z*w3,
			})
		}
	}
	return dst
}

// Rasterize appends the fragments of triangle (a, b, c) to dst. The vertices
// must already be through the transform stage. Only pixels inside clip are
// emitted; pass Screen(u) for the whole target. Culled triangles append
// nothing, and the returned Cull says why.
func Rasterize(dst []Fragment, a, b, c *Vertex, u *Uniforms, clip image.Rectangle) ([]Fragment, Cull) {
	s, cull := prepare(a, b, c, u)
	if cull != Accepted {
		return dst, cull
	}
	return s.scan(dst, clip), Accepted
}

// Screen is the full pixel rectangle described by u.
func Screen(u *Uniforms) image.Rectangle {
	return image.Rect(0, 0, u.ScreenWidth, u.ScreenHeight)
}

func screen2(v *Vertex) math3d.Vec2 {
	return math3d.V2(v.Screen.X, v.Screen.Y)
}
