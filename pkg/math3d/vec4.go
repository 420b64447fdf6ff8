package math3d

// Vec4 is a homogeneous point or a clip-space position.
type Vec4 struct {
	X, Y, Z, W float64
}

// V4 creates a new Vec4.
func V4(x, y, z, w float64) Vec4 {
	return Vec4{x, y, z, w}
}

// V4FromV3 extends v with the given W.
func V4FromV3(v Vec3, w float64) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}

// DivideW divides X, Y and Z by W after raising W to at least minW.
// Points on or behind the eye plane are pushed to a tiny positive W instead of
// dividing by zero or flipping sign.
func (v Vec4) DivideW(minW float64) Vec3 {
	w := v.W
	if w < minW {
		w = minW
	}
	return Vec3{v.X / w, v.Y / w, v.Z / w}
}
