package opengl

import (
	"testing"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformCacheLooksUpOnce(t *testing.T) {
	calls := map[string]int{}
	c := newUniformCache("basic", func(name string) int32 {
		calls[name]++
		if name == "model" {
			return 4
		}
		return -1
	})

	for i := 0; i < 3; i++ {
		assert.Equal(t, int32(4), c.location("model"))
		assert.Equal(t, int32(-1), c.location("missing"))
	}
	assert.Equal(t, 1, calls["model"])
	assert.Equal(t, 1, calls["missing"], "misses are cached too")
}

func TestDrainErrors(t *testing.T) {
	queue := []uint32{gl.INVALID_ENUM, gl.INVALID_OPERATION}
	next := func() uint32 {
		if len(queue) == 0 {
			return gl.NO_ERROR
		}
		code := queue[0]
		queue = queue[1:]
		return code
	}
	assert.Equal(t, uint32(gl.INVALID_OPERATION), drainErrors("test", next))
	assert.Empty(t, queue)
	assert.Equal(t, uint32(gl.NO_ERROR), drainErrors("test", next))
}

func TestDrainErrorsIsBounded(t *testing.T) {
	n := 0
	code := drainErrors("lost context", func() uint32 {
		n++
		return gl.OUT_OF_MEMORY
	})
	assert.Equal(t, uint32(gl.OUT_OF_MEMORY), code)
	assert.Equal(t, maxDrainedErrors, n)
}

func TestErrorName(t *testing.T) {
	assert.Equal(t, "INVALID_VALUE", ErrorName(gl.INVALID_VALUE))
	assert.Equal(t, "NO_ERROR", ErrorName(gl.NO_ERROR))
	assert.Equal(t, "0x1234", ErrorName(0x1234))
}

func TestSkyViewDropsTranslation(t *testing.T) {
	view := mgl32.LookAtV(mgl32.Vec3{5, 3, 9}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	sky := SkyView(view)

	assert.Equal(t, mgl32.Vec3{}, sky.Col(3).Vec3())
	assert.Equal(t, float32(1), sky.At(3, 3))
	assert.Equal(t, view.Mat3(), sky.Mat3())
}

func TestSkyboxCube(t *testing.T) {
	require.Len(t, skyboxVerts, 36*3)
	for _, c := range skyboxVerts {
		assert.Contains(t, []float32{-1, 1}, c)
	}
}

func TestColorTexturesAreSRGB(t *testing.T) {
	assert.EqualValues(t, gl.SRGB8_ALPHA8, colorInternalFormat)
	assert.EqualValues(t, colorInternalFormat, skyboxFaceFormat)
}
