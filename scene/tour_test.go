package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestTourFirstPose(t *testing.T) {
	tour := NewTour(nil)
	cam := NewDefaultCamera()

	tour.Tick(cam, 1)
	assertVec3(t, mgl32.Vec3{18, 1, 14}, cam.Position())
	assertVec3(t, mgl32.Vec3{-0.58, -0.12, -0.80}.Normalize(), cam.Front())
	assert.Equal(t, 0, tour.Step())
	assert.Equal(t, 1, tour.Counter())
}

func TestTourStepBoundaries(t *testing.T) {
	tour := NewTour(nil)
	cam := NewDefaultCamera()

	for i := 0; i < 10; i++ {
		tour.Tick(cam, 1)
	}
	assert.Equal(t, 0, tour.Step(), "pose holds while counter <= 10")
	assert.Equal(t, 10, tour.Counter())

	tour.Tick(cam, 1)
	assert.Equal(t, 1, tour.Step())
	assert.Equal(t, 0, tour.Counter())

	for i := 0; i < 920; i++ {
		tour.Tick(cam, 0.01)
	}
	assert.Equal(t, 1, tour.Step())
	tour.Tick(cam, 0.01)
	assert.Equal(t, 2, tour.Step(), "move left ends after 921 ticks")
	assert.Equal(t, 0, tour.Counter())
}

func TestTourMoveStepUsesCameraBasis(t *testing.T) {
	tour := NewTour(nil)
	cam := NewDefaultCamera()
	for i := 0; i < 11; i++ {
		tour.Tick(cam, 1)
	}
	start := cam.Position()
	right := cam.Right()

	tour.Tick(cam, 0.5)
	assertVec3(t, start.Sub(right.Mul(0.5)), cam.Position())
}

func TestTourWraps(t *testing.T) {
	tour := NewTour(nil)
	cam := NewDefaultCamera()

	cycle := 0
	for _, s := range DefaultTourSteps {
		cycle += s.Limit + 1
	}
	for i := 0; i < cycle; i++ {
		tour.Tick(cam, 0.001)
	}
	assert.Equal(t, 0, tour.Step())
	assert.Equal(t, 0, tour.Counter())

	tour.Tick(cam, 0.001)
	assertVec3(t, mgl32.Vec3{18, 1, 14}, cam.Position())
}

func TestTourReset(t *testing.T) {
	tour := NewTour(nil)
	cam := NewDefaultCamera()
	for i := 0; i < 40; i++ {
		tour.Tick(cam, 1)
	}
	tour.Reset()
	assert.Equal(t, 0, tour.Step())
	assert.Equal(t, 0, tour.Counter())
}

func TestTourCustomSteps(t *testing.T) {
	tour := NewTour([]TourStep{{Move: MoveUp, Limit: 0}, {Move: MoveDown, Limit: 0}})
	cam := NewDefaultCamera()
	tour.Tick(cam, 1)
	assertVec3(t, mgl32.Vec3{0, 1, 3}, cam.Position())
	assert.Equal(t, 1, tour.Step())
	tour.Tick(cam, 1)
	assertVec3(t, mgl32.Vec3{0, 0, 3}, cam.Position())
	assert.Equal(t, 0, tour.Step())
	assert.Equal(t, 2, tour.Len())
}
