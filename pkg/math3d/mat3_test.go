package math3d

import (
	"math"
	"testing"
)

func approxVec3(a, b Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func TestUpperLeft3Layout(t *testing.T) {
	// Distinct values so a row/column mixup shows up.
	var m Mat4
	for i := range m {
		m[i] = float64(i + 1)
	}
	u := m.UpperLeft3()

	for row := range 3 {
		for col := range 3 {
			if got, want := u.At(row, col), m[row+col*4]; got != want {
				t.Errorf("At(%d,%d) = %v, want %v", row, col, got, want)
			}
		}
	}
}

func TestMat3MulMatchesMat4(t *testing.T) {
	m := RotateZ(0.7).Mul(RotateX(0.3)).Mul(Scale(V3(2, 3, 0.5)))
	v := V3(0.3, -1.2, 2.5)

	got := m.UpperLeft3().MulVec3(v)
	want := m.MulVec3Dir(v)
	if !approxVec3(got, want, 1e-12) {
		t.Errorf("Mat3 product = %v, Mat4 direction product = %v", got, want)
	}
}

func TestMat3Inverse(t *testing.T) {
	m := TRS(V3(5, 6, 7), V3(0.4, 1.1, -0.3), 3).UpperLeft3()
	inv, ok := m.Inverse()
	if !ok {
		t.Fatal("Inverse reported singular for an invertible matrix")
	}

	for _, v := range []Vec3{V3(1, 0, 0), V3(0, 1, 0), V3(0.2, -0.7, 3)} {
		back := inv.MulVec3(m.MulVec3(v))
		if !approxVec3(back, v, 1e-9) {
			t.Errorf("inv(m)*m*%v = %v", v, back)
		}
	}
}

func TestMat3InverseSingular(t *testing.T) {
	tests := []struct {
		name string
		m    Mat3
	}{
		{"zero", Mat3{}},
		{"flattened", Scale(V3(1, 0, 1)).UpperLeft3()},
		{"repeated column", Mat3{1, 2, 3, 1, 2, 3, 0, 0, 1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inv, ok := tc.m.Inverse()
			if ok {
				t.Fatal("expected singular")
			}
			if inv != Identity3() {
				t.Errorf("singular inverse = %v, want identity", inv)
			}
			if tc.m.NormalMatrix() != Identity3() {
				t.Error("NormalMatrix of singular matrix should be identity")
			}
		})
	}
}

// A rotation combined with non-uniform scale separates the inverse-transpose
// from both the plain matrix and the plain inverse.
func TestNormalMatrixRotationScale(t *testing.T) {
	m := RotateZ(math.Pi / 2).Mul(Scale(V3(2, 1, 1))).UpperLeft3()
	n := V3(1, 1, 0).Normalize()

	got := m.NormalMatrix().MulVec3(n).Normalize()
	want := V3(-1, 0.5, 0).Normalize()
	if !approxVec3(got, want, 1e-9) {
		t.Fatalf("normal = %v, want %v", got, want)
	}

	// The transformed normal must stay perpendicular to a transformed tangent.
	tangent := V3(1, -1, 0)
	if d := got.Dot(m.MulVec3(tangent)); math.Abs(d) > 1e-9 {
		t.Errorf("normal . tangent = %v, want 0", d)
	}

	naive := m.MulVec3(n).Normalize()
	if approxVec3(naive, want, 1e-3) {
		t.Error("plain matrix product should differ from inverse-transpose here")
	}
	inv, _ := m.Inverse()
	if approxVec3(inv.MulVec3(n).Normalize(), want, 1e-3) {
		t.Error("plain inverse should differ from inverse-transpose here")
	}
}

func TestDivideW(t *testing.T) {
	tests := []struct {
		name string
		v    Vec4
		want Vec3
	}{
		{"regular", V4(2, 4, 6, 2), V3(1, 2, 3)},
		{"zero w", V4(1, 1, 1, 0), V3(1000, 1000, 1000)},
		{"negative w", V4(1, 0, 0, -5), V3(1000, 0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.v.DivideW(0.001); !approxVec3(got, tc.want, 1e-9) {
				t.Errorf("DivideW = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBlend3(t *testing.T) {
	a, b, c := V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1)
	got := Blend3(a, b, c, 0.2, 0.3, 0.5)
	if !approxVec3(got, V3(0.2, 0.3, 0.5), 1e-12) {
		t.Errorf("Blend3 = %v", got)
	}
}
