package math3d

import "math"

// Mat3 is a 3x3 matrix stored in column-major order, matching Mat4: element
// (row, col) lives at index row+col*3.
//
// | 0 3 6 |
// | 1 4 7 |
// | 2 5 8 |
type Mat3 [9]float64

// singularEpsilon is the determinant magnitude below which a Mat3 is treated as
// non-invertible.
const singularEpsilon = 1e-12

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// At returns the element at (row, col).
func (m Mat3) At(row, col int) float64 {
	return m[row+col*3]
}

// Transpose returns the transposed matrix.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Inverse returns the inverse of m and true, or the identity and false when m
// is singular.
func (m Mat3) Inverse() (Mat3, bool) {
	a, b, c := m.At(0, 0), m.At(0, 1), m.At(0, 2)
	d, e, f := m.At(1, 0), m.At(1, 1), m.At(1, 2)
	g, h, i := m.At(2, 0), m.At(2, 1), m.At(2, 2)

	// Cofactors, named after the element they belong to.
	ca := e*i - f*h
	cb := -(d*i - f*g)
	cc := d*h - e*g

	det := a*ca + b*cb + c*cc
	if math.Abs(det) < singularEpsilon || math.IsNaN(det) {
		return Identity3(), false
	}

	cd := -(b*i - c*h)
	ce := a*i - c*g
	cf := -(a*h - b*g)
	cg := b*f - c*e
	ch := -(a*f - c*d)
	ci := a*e - b*d

	// The inverse is the transposed cofactor matrix over det. Laid out
	// column-major, its columns are (ca,cb,cc), (cd,ce,cf) and (cg,ch,ci).
	inv := 1 / det
	return Mat3{
		ca * inv, cb * inv, cc * inv,
		cd * inv, ce * inv, cf * inv,
		cg * inv, ch * inv, ci * inv,
	}, true
}

// NormalMatrix returns the inverse-transpose of m, which keeps transformed
// normals perpendicular to transformed surfaces under non-uniform scale.
// A singular m yields the identity.
func (m Mat3) NormalMatrix() Mat3 {
	inv, ok := m.Inverse()
	if !ok {
		return Identity3()
	}
	return inv.Transpose()
}

// MulVec3 returns m * v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}
