package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func triangle() []Vertex {
	return []Vertex{
		{Position: mgl32.Vec3{0, 0, 0}, Normal: mgl32.Vec3{0, 0, 1}},
		{Position: mgl32.Vec3{2, 0, 0}, Normal: mgl32.Vec3{0, 0, 1}},
		{Position: mgl32.Vec3{0, 4, -1}, Normal: mgl32.Vec3{0, 0, 1}},
	}
}

func TestNewMeshGeneratesIndices(t *testing.T) {
	m := NewMesh("tri", triangle(), nil)
	assert.Equal(t, []uint32{0, 1, 2}, m.Indices)
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, m.Bounds.Min)
	assert.Equal(t, mgl32.Vec3{2, 4, 0}, m.Bounds.Max)
	assert.Equal(t, mgl32.Vec3{1, 2, -0.5}, m.Bounds.Center())
	assert.NotNil(t, m.Material)
}

func TestMeshTransform(t *testing.T) {
	m := NewMesh("tri", triangle(), nil)
	assert.Same(t, m, m.Transform(mgl32.Ident4()))

	moved := m.Transform(mgl32.Translate3D(1, 2, 3).Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(90))))
	assertVec3(t, mgl32.Vec3{1, 2, 3}, moved.Vertices[0].Position)
	assertVec3(t, mgl32.Vec3{1, 2, 1}, moved.Vertices[1].Position)
	assertVec3(t, mgl32.Vec3{1, 0, 0}, moved.Vertices[0].Normal)
	assert.Same(t, m.Material, moved.Material)
	assertVec3(t, mgl32.Vec3{0, 0, 0}, m.Vertices[0].Position)
}
