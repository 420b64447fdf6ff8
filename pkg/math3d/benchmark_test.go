package math3d

import (
	"math"
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := RotateY(0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulVec4(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5))
	v := V4(1, 2, 3, 1)

	for b.Loop() {
		_ = m.MulVec4(v)
	}
}

func BenchmarkTRS(b *testing.B) {
	for b.Loop() {
		_ = TRS(V3(700, 0, 30), V3(0, 1.2, 0), 85)
	}
}

func BenchmarkNormalMatrix(b *testing.B) {
	m := TRS(V3(1, 2, 3), V3(0.1, 0.5, 0.2), 85).UpperLeft3()

	for b.Loop() {
		_ = m.NormalMatrix()
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = v.Normalize()
	}
}

func BenchmarkViewProjection(b *testing.B) {
	view := LookAt(V3(0, 40, 100), V3(0, 0, 0), V3(0, 1, 0))
	proj := Perspective(math.Pi/3, 1.333, 1, 10000)

	for b.Loop() {
		_ = proj.Mul(view)
	}
}
