package viewer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestLightSpaceLooksAtOrigin(t *testing.T) {
	dir := mgl32.Vec3{-9.09, 9.39, -1.80}
	ls := LightSpace(dir, mgl32.Ident4())

	want := mgl32.Ortho(-20, 20, -20, 20, 0.5, 100).Mul4(mgl32.LookAtV(dir, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}))
	assert.True(t, ls.ApproxEqualThreshold(want, 1e-6))

	origin := ls.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0, origin.X(), 1e-5)
	assert.InDelta(t, 0, origin.Y(), 1e-5)
}

func TestLightSpaceRotation(t *testing.T) {
	dir := mgl32.Vec3{1, 5, 0}
	rot := mgl32.HomogRotate3DY(mgl32.DegToRad(90))
	ls := LightSpace(dir, rot)

	eye := rot.Mat3().Inv().Transpose().Mul3x1(dir)
	want := mgl32.Ortho(-20, 20, -20, 20, 0.5, 100).Mul4(mgl32.LookAtV(eye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}))
	assert.True(t, ls.ApproxEqualThreshold(want, 1e-5))
	assert.False(t, ls.ApproxEqualThreshold(LightSpace(dir, mgl32.Ident4()), 1e-3))
}

func TestNormalMatrix(t *testing.T) {
	model := mgl32.Translate3D(4, 5, 6)
	assert.True(t, NormalMatrix(mgl32.Ident4(), model).ApproxEqual(mgl32.Ident3()))

	scale := mgl32.Scale3D(2, 1, 1)
	n := NormalMatrix(mgl32.Ident4(), scale)
	assert.InDelta(t, 0.5, n.At(0, 0), 1e-6)
	assert.InDelta(t, 1, n.At(1, 1), 1e-6)

	assert.Equal(t, mgl32.Ident3(), inverseTranspose3(mgl32.Mat3{}))
}

func TestEyeLightDir(t *testing.T) {
	dir := mgl32.Vec3{1, 2, 3}
	assert.Equal(t, dir, EyeLightDir(mgl32.Ident4(), mgl32.Ident4(), dir))

	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 3}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	assert.True(t, dir.ApproxEqualThreshold(EyeLightDir(view, mgl32.Ident4(), dir), 1e-6), "translation does not affect directions")
}

func TestRotateAboutKeepsPivot(t *testing.T) {
	m := RotateAbout(AsteroidPivot, 37)
	got := m.Mul4x1(AsteroidPivot.Vec4(1)).Vec3()
	assert.True(t, got.ApproxEqualThreshold(AsteroidPivot, 1e-5))

	p := AsteroidPivot.Add(mgl32.Vec3{1, 0, 0})
	half := RotateAbout(AsteroidPivot, 180).Mul4x1(p.Vec4(1)).Vec3()
	assert.True(t, half.ApproxEqualThreshold(AsteroidPivot.Sub(mgl32.Vec3{1, 0, 0}), 1e-5))
}

func TestProjectionAspect(t *testing.T) {
	wide := Projection(45, 1920.0/1080.0)
	square := Projection(45, 1)
	assert.InDelta(t, square.At(0, 0)/(1920.0/1080.0), wide.At(0, 0), 1e-6)
	assert.Equal(t, square.At(1, 1), wide.At(1, 1))
}

func BenchmarkNormalMatrix(b *testing.B) {
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 3}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	model := mgl32.Translate3D(1, 2, 3)
	for i := 0; i < b.N; i++ {
		_ = NormalMatrix(view, model)
	}
}
