// Package models holds triangle meshes for the renderer: procedural spheres
// and cubes, and loaders for Wavefront OBJ and binary glTF files.
package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/render"
)

// ErrEmptyMesh is returned for a mesh with no triangles.
var ErrEmptyMesh = errors.New("mesh has no triangles")

// Mesh is an indexed triangle list. Front faces wind counter-clockwise when
// seen from outside.
type Mesh struct {
	Name     string
	Vertices []render.Vertex
	Indices  []uint32

	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// Validate checks that the mesh is drawable. The pipeline does no index
// checking of its own.
func (m *Mesh) Validate() error {
	if len(m.Indices) == 0 {
		return fmt.Errorf("%s: %w", m.Name, ErrEmptyMesh)
	}
	if err := render.ValidateIndices(len(m.Vertices), m.Indices); err != nil {
		return fmt.Errorf("%s: %w", m.Name, err)
	}
	return nil
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// Radius is the distance from Center to the farthest vertex.
func (m *Mesh) Radius() float64 {
	c := m.Center()
	r := 0.0
	for _, v := range m.Vertices {
		r = math.Max(r, v.Position.Distance(c))
	}
	return r
}

func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }
func (m *Mesh) VertexCount() int   { return len(m.Vertices) }

// CalculateSmoothNormals replaces every normal with the area-weighted average
// of the faces sharing its vertex.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Zero3()
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		v0 := m.Vertices[i0].Position
		v1 := m.Vertices[i1].Position
		v2 := m.Vertices[i2].Position

		n := v1.Sub(v0).Cross(v2.Sub(v0))
		m.Vertices[i0].Normal = m.Vertices[i0].Normal.Add(n)
		m.Vertices[i1].Normal = m.Vertices[i1].Normal.Add(n)
		m.Vertices[i2].Normal = m.Vertices[i2].Normal.Add(n)
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// hasNormals reports whether any vertex carries a usable normal.
func (m *Mesh) hasNormals() bool {
	for _, v := range m.Vertices {
		if v.Normal.LenSq() > 1e-6 {
			return true
		}
	}
	return false
}

// Transform bakes mat into the mesh. Normals go through the inverse-transpose
// so non-uniform scales keep them perpendicular.
func (m *Mesh) Transform(mat math3d.Mat4) {
	nm := mat.UpperLeft3().NormalMatrix()
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulVec3(m.Vertices[i].Position)
		m.Vertices[i].Normal = nm.MulVec3(m.Vertices[i].Normal).Normalize()
	}
	m.CalculateBounds()
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	c := *m
	c.Vertices = append([]render.Vertex(nil), m.Vertices...)
	c.Indices = append([]uint32(nil), m.Indices...)
	return &c
}

// Sphere builds a UV sphere of the given radius with segments rings and
// segments+1 vertices per ring. segments is raised to at least 3.
func Sphere(radius float64, segments int) *Mesh {
	segments = max(segments, 3)
	m := NewMesh("sphere")
	m.Vertices = make([]render.Vertex, 0, (segments+1)*(segments+1))
	m.Indices = make([]uint32, 0, 6*segments*segments)

	for lat := 0; lat <= segments; lat++ {
		theta := float64(lat) * math.Pi / float64(segments)
		sinT, cosT := math.Sincos(theta)
		for lon := 0; lon <= segments; lon++ {
			phi := float64(lon) * 2 * math.Pi / float64(segments)
			sinP, cosP := math.Sincos(phi)

			n := math3d.V3(sinT*cosP, cosT, sinT*sinP)
			m.Vertices = append(m.Vertices, render.Vertex{
				Position: n.Scale(radius),
				Normal:   n,
				TexCoord: math3d.V2(float64(lon)/float64(segments), float64(lat)/float64(segments)),
			})
		}
	}

	for lat := range segments {
		for lon := range segments {
			first := uint32(lat*(segments+1) + lon)
			second := first + uint32(segments) + 1
			m.Indices = append(m.Indices,
				first, first+1, second,
				second, first+1, second+1,
			)
		}
	}

	// Odd segment counts leave the vertex box off-centre; the surface itself
	// always spans [-radius, radius] on every axis.
	r := math.Abs(radius)
	m.BoundsMin = math3d.V3(-r, -r, -r)
	m.BoundsMax = math3d.V3(r, r, r)
	return m
}

// Cube builds an axis-aligned cube centred on the origin with flat normals.
func Cube(size float64) *Mesh {
	h := size / 2
	x, y, z := math3d.V3(1, 0, 0), math3d.V3(0, 1, 0), math3d.V3(0, 0, 1)
	// Each face is spanned by (u, v) with u x v = n, so corners listed
	// (-,-) (+,-) (+,+) (-,+) wind counter-clockwise from outside.
	faces := [6][3]math3d.Vec3{
		{x, y, z},
		{x.Negate(), z, y},
		{y, z, x},
		{y.Negate(), x, z},
		{z, x, y},
		{z.Negate(), y, x},
	}

	m := NewMesh("cube")
	for _, f := range faces {
		n, u, v := f[0], f[1], f[2]
		base := uint32(len(m.Vertices))
		for _, c := range [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			p := n.Add(u.Scale(c[0])).Add(v.Scale(c[1])).Scale(h)
			m.Vertices = append(m.Vertices, render.Vertex{
				Position: p,
				Normal:   n,
				TexCoord: math3d.V2((c[0]+1)/2, (c[1]+1)/2),
			})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}

	m.CalculateBounds()
	return m
}
