package math3d

import (
	"math"
	"testing"
)

// modelView mirrors a fitted model seen from the default orbit position.
func modelView() (model, viewProj Mat4) {
	model = Translate(V3(-0.5, -1, 0.25)).Mul(ScaleUniform(0.75))
	view := LookAt(V3(6, 6, 6), Zero3(), Up())
	proj := Perspective(75*math.Pi/180, 80.0/48.0, 0.1, 1000)
	return model, proj.Mul(view)
}

func BenchmarkProjectVertex(b *testing.B) {
	model, viewProj := modelView()
	mvp := viewProj.Mul(model)
	p := V3(0.3, 1.2, -0.7)

	for b.Loop() {
		_ = mvp.MulVec4(V4FromV3(p, 1))
	}
}

func BenchmarkNormalMatrix(b *testing.B) {
	m := Compose(V3(1, 2, 3), [4]float64{0, 0.3826834, 0, 0.9238795}, V3(1, 2, 0.5))

	for b.Loop() {
		_ = m.NormalMatrix()
	}
}

func BenchmarkTransformNormal(b *testing.B) {
	nm := Compose(V3(1, 2, 3), [4]float64{0, 0.3826834, 0, 0.9238795}, V3(1, 2, 0.5)).NormalMatrix()
	n := V3(0, 1, 0)

	for b.Loop() {
		_ = nm.MulVec3Dir(n).Normalize()
	}
}

func BenchmarkAABBTransform(b *testing.B) {
	model, _ := modelView()
	box := NewAABB(V3(-1, -2, -0.5), V3(1, 2, 0.5))

	for b.Loop() {
		_ = box.Transform(model)
	}
}

func BenchmarkShadowViewProjection(b *testing.B) {
	light := V3(10, 10, 5)

	for b.Loop() {
		view := LookAt(light, Zero3(), Up())
		proj := Orthographic(-2, 2, -2, 2, 0.5, 50)
		_ = proj.Mul(view)
	}
}

func BenchmarkOrbitStep(b *testing.B) {
	s := SphericalFromVec3(V3(6, 6, 6))

	for b.Loop() {
		s.Theta += 0.01
		s = s.Clamp(1, 50, 1e-3, math.Pi/2)
		_ = s.Vec3()
	}
}
