package render

import (
	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/shade"
)

// minClipW keeps the perspective divide finite for vertices at or behind the
// eye plane.
const minClipW = 0.001

// Vertex is a mesh vertex. Position, Normal and TexCoord are the object-space
// input; Screen and WorldNormal are filled in by the transform stage and are
// only valid for the draw call that produced them.
type Vertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	TexCoord math3d.Vec2

	Screen      math3d.Vec3 // x, y in pixels; z is depth, nominally [0, 1]
	WorldNormal math3d.Vec3 // unit length
}

// Uniforms are the per-object, per-frame draw parameters.
type Uniforms struct {
	Model          math3d.Mat4
	ViewProjection math3d.Mat4
	Time           float64
	Shader         shade.Archetype
	Moon           bool // shade as a moon regardless of Shader
	ScreenWidth    int
	ScreenHeight   int
}

// NormalMatrix is the inverse-transpose of the model's linear part.
func (u *Uniforms) NormalMatrix() math3d.Mat3 {
	return u.Model.UpperLeft3().NormalMatrix()
}

// Archetype resolves the shader to use, honouring the moon override.
func (u *Uniforms) Archetype() shade.Archetype {
	if u.Moon {
		return shade.Moon
	}
	return u.Shader
}

// TransformVertex runs the vertex stage for a single vertex.
func TransformVertex(v Vertex, u *Uniforms) Vertex {
	return transformVertex(v, u, u.ViewProjection.Mul(u.Model), u.NormalMatrix())
}

// TransformVertices runs the vertex stage over src, reusing dst's storage.
func TransformVertices(dst, src []Vertex, u *Uniforms) []Vertex {
	dst = dst[:0]
	mvp := u.ViewProjection.Mul(u.Model)
	nm := u.NormalMatrix()
	for _, v := range src {
		dst = append(dst, transformVertex(v, u, mvp, nm))
	}
	return dst
}

func transformVertex(v Vertex, u *Uniforms, mvp math3d.Mat4, nm math3d.Mat3) Vertex {
	clip := mvp.MulVec4(math3d.V4FromV3(v.Position, 1))
	ndc := clip.DivideW(minClipW)

	// NDC y points up, screen y points down. Depth is left unclamped so the
	// rasterizer can tell near/far rejects apart.
	v.Screen = math3d.V3(
		(ndc.X+1)*0.5*float64(u.ScreenWidth),
		(1-ndc.Y)*0.5*float64(u.ScreenHeight),
		(ndc.Z+1)*0.5,
	)
	v.WorldNormal = nm.MulVec3(v.Normal).Normalize()
	return v
}
