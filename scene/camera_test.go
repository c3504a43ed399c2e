package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const vecTol = 1e-5

func assertVec3(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], vecTol, "component %d of %v", i, got)
	}
}

func TestCameraInitialBasis(t *testing.T) {
	c := NewDefaultCamera()
	assertVec3(t, mgl32.Vec3{0, 0, 3}, c.Position())
	assertVec3(t, mgl32.Vec3{0, 0, -1}, c.Front())
	assertVec3(t, mgl32.Vec3{1, 0, 0}, c.Right())
	assertVec3(t, mgl32.Vec3{0, 1, 0}, c.Up())
}

func TestCameraMove(t *testing.T) {
	tests := []struct {
		dir  Direction
		want mgl32.Vec3
	}{
		{MoveForward, mgl32.Vec3{0, 0, 1}},
		{MoveBackward, mgl32.Vec3{0, 0, 5}},
		{MoveRight, mgl32.Vec3{2, 0, 3}},
		{MoveLeft, mgl32.Vec3{-2, 0, 3}},
		{MoveUp, mgl32.Vec3{0, 2, 3}},
		{MoveDown, mgl32.Vec3{0, -2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			c := NewDefaultCamera()
			c.Move(tt.dir, 2)
			assertVec3(t, tt.want, c.Position())
			assertVec3(t, mgl32.Vec3{0, 0, -1}, c.Front())
		})
	}
}

func TestCameraRotate(t *testing.T) {
	c := NewDefaultCamera()

	c.Rotate(0, -90)
	assertVec3(t, mgl32.Vec3{0, 0, -1}, c.Front())
	assertVec3(t, mgl32.Vec3{1, 0, 0}, c.Right())

	c.Rotate(0, 0)
	assertVec3(t, mgl32.Vec3{1, 0, 0}, c.Front())
	assertVec3(t, mgl32.Vec3{0, 0, 1}, c.Right())

	c.Rotate(45, -90)
	assert.InDelta(t, 1, c.Front().Len(), vecTol)
	assert.InDelta(t, 0.70710678, c.Front().Y(), vecTol)
	assertVec3(t, mgl32.Vec3{0, 1, 0}, c.Up())
}

func TestCameraReset(t *testing.T) {
	c := NewDefaultCamera()
	c.Move(MoveForward, 4)
	c.Rotate(30, 10)
	c.SetPosition(mgl32.Vec3{9, 9, 9})

	c.Reset()
	assertVec3(t, DefaultCameraPosition, c.Position())
	assertVec3(t, DefaultCameraTarget, c.Target())
	assertVec3(t, mgl32.Vec3{0, 0, -1}, c.Front())
	assertVec3(t, mgl32.Vec3{1, 0, 0}, c.Right())
}

func TestCameraResetIsIdempotent(t *testing.T) {
	c := NewDefaultCamera()
	c.Rotate(30, 10)
	c.Move(MoveRight, 3)

	c.Reset()
	once := *c
	c.Reset()
	assert.Equal(t, once, *c)
	assertVec3(t, once.Position(), c.Position())
	assertVec3(t, once.Target(), c.Target())
	assertVec3(t, once.Up(), c.Up())
	assertVec3(t, once.Front(), c.Front())
	assertVec3(t, once.Right(), c.Right())
}

func TestCameraSetFront(t *testing.T) {
	c := NewDefaultCamera()
	c.SetFront(mgl32.Vec3{2, 0, 0})
	assertVec3(t, mgl32.Vec3{1, 0, 0}, c.Front())
	assertVec3(t, mgl32.Vec3{0, 0, 1}, c.Right())
}

func TestCameraViewMatrix(t *testing.T) {
	c := NewDefaultCamera()
	view := c.ViewMatrix()

	eye := view.Mul4x1(c.Position().Vec4(1)).Vec3()
	assertVec3(t, mgl32.Vec3{}, eye)

	origin := view.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	assertVec3(t, mgl32.Vec3{0, 0, -3}, origin)
}
