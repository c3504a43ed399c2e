package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// One triangle under a child node scaled by 2 and moved 5 along z, with
// the buffer embedded as a data URI.
const triangleGLTF = `{
  "asset": {"version": "2.0"},
  "scene": 0,
  "scenes": [{"nodes": [0]}],
  "nodes": [
    {"translation": [0, 0, 0], "children": [1]},
    {"mesh": 0, "translation": [0, 0, 5], "scale": [2, 2, 2]}
  ],
  "meshes": [{"name": "tri", "primitives": [{"attributes": {"POSITION": 0}, "indices": 1, "material": 0}]}],
  "materials": [{"name": "red", "pbrMetallicRoughness": {"baseColorFactor": [1, 0, 0, 1], "metallicFactor": 0, "roughnessFactor": 1}}],
  "buffers": [{"byteLength": 44, "uri": "data:application/octet-stream;base64,AAAAAAAAAAAAAAAAAACAPwAAAAAAAAAAAAAAAAAAgD8AAAAAAAABAAIAAAA="}],
  "bufferViews": [
    {"buffer": 0, "byteOffset": 0, "byteLength": 36, "target": 34962},
    {"buffer": 0, "byteOffset": 36, "byteLength": 6, "target": 34963}
  ],
  "accessors": [
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3", "min": [0, 0, 0], "max": [1, 1, 0]},
    {"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"}
  ]
}`

func writeGLTF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tri.gltf")
	require.NoError(t, os.WriteFile(path, []byte(triangleGLTF), 0o644))
	return path
}

func TestLoadGLTFBakesNodeTransforms(t *testing.T) {
	meshes, err := LoadGLTF(writeGLTF(t))
	require.NoError(t, err)
	require.Len(t, meshes, 1)

	m := meshes[0]
	assert.Equal(t, "tri_p0", m.Name)
	assert.Equal(t, []uint32{0, 1, 2}, m.Indices)
	require.Len(t, m.Vertices, 3)
	assertVec3(t, mgl32.Vec3{0, 0, 5}, m.Vertices[0].Position)
	assertVec3(t, mgl32.Vec3{2, 0, 5}, m.Vertices[1].Position)
	assertVec3(t, mgl32.Vec3{0, 2, 5}, m.Vertices[2].Position)
	for _, v := range m.Vertices {
		assertVec3(t, mgl32.Vec3{0, 0, 1}, v.Normal)
	}
}

func TestLoadGLTFMaterial(t *testing.T) {
	meshes, err := LoadGLTF(writeGLTF(t))
	require.NoError(t, err)

	mat := meshes[0].Material
	require.NotNil(t, mat)
	assert.Equal(t, "red", mat.Name)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, mat.Diffuse)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, mat.Specular)
	assert.InDelta(t, 1, mat.Shininess, 1e-6)
	assert.Nil(t, mat.DiffuseTexture)
}

func TestLoadModelDispatchesGLTF(t *testing.T) {
	m, err := LoadModel(writeGLTF(t))
	require.NoError(t, err)
	assert.Equal(t, "tri", m.Name)
	assert.Equal(t, 3, m.VertexCount())
}

func TestLoadGLTFMissingFile(t *testing.T) {
	_, err := LoadGLTF(filepath.Join(t.TempDir(), "nope.glb"))
	assert.Error(t, err)
}
