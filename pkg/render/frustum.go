package render

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// Plane is the half-space Normal·p + D >= 0.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// Normalize rescales the plane so Normal has unit length.
func (p *Plane) Normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1 / l)
	p.D /= l
}

// DistanceToPoint is the signed distance from the plane to point. Positive is
// on the normal's side.
func (p Plane) DistanceToPoint(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum is six inward-facing planes.
type Frustum struct {
	Planes [6]Plane
}

const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// NewFrustumFromMatrix extracts the planes of a view-projection matrix with
// the Gribb/Hartmann method.
func NewFrustumFromMatrix(m math3d.Mat4) Frustum {
	row := func(i int) (float64, float64, float64, float64) {
		return m[i], m[i+4], m[i+8], m[i+12]
	}
	wx, wy, wz, ww := row(3)

	var f Frustum
	for i := range 3 {
		x, y, z, w := row(i)
		f.Planes[2*i] = Plane{Normal: math3d.V3(wx+x, wy+y, wz+z), D: ww + w}
		f.Planes[2*i+1] = Plane{Normal: math3d.V3(wx-x, wy-y, wz-z), D: ww - w}
	}
	for i := range f.Planes {
		f.Planes[i].Normalize()
	}
	return f
}

// ContainsPoint reports whether p is inside every plane.
func (f Frustum) ContainsPoint(p math3d.Vec3) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceToPoint(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectsSphere reports whether any part of the sphere may be inside.
func (f Frustum) IntersectsSphere(center math3d.Vec3, radius float64) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceToPoint(center) < -radius {
			return false
		}
	}
	return true
}

// BoundingSphere maps an object-space sphere through model. The radius grows
// by the largest axis scale so the result always encloses the transformed
// sphere.
func BoundingSphere(model math3d.Mat4, center math3d.Vec3, radius float64) (math3d.Vec3, float64) {
	sx := math3d.V3(model[0], model[1], model[2]).Len()
	sy := math3d.V3(model[4], model[5], model[6]).Len()
	sz := math3d.V3(model[8], model[9], model[10]).Len()
	return model.MulVec3(center), radius * math.Max(sx, math.Max(sy, sz))
}

// Visible reports whether an object with the given object-space bounding
// sphere can appear through f once placed by model.
func (f Frustum) Visible(model math3d.Mat4, center math3d.Vec3, radius float64) bool {
	c, r := BoundingSphere(model, center, radius)
	return f.IntersectsSphere(c, r)
}
