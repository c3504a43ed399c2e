package renderer

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-viewer/scene"
	"scene-viewer/viewer"
)

const triangleOBJ = `v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1
`

func writeAssetTree(t *testing.T, skipFace int) string {
	t.Helper()
	root := t.TempDir()
	for id := viewer.MeshID(0); id < viewer.MeshCount; id++ {
		path := filepath.Join(root, id.ModelPath())
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(triangleOBJ), 0o644))
	}
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	for i, face := range viewer.SkyboxFaces {
		if i == skipFace {
			continue
		}
		path := filepath.Join(root, face)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		f, err := os.Create(path)
		require.NoError(t, err)
		require.NoError(t, png.Encode(f, img))
		require.NoError(t, f.Close())
	}
	return root
}

func TestLoadAssets(t *testing.T) {
	root := writeAssetTree(t, -1)

	a, err := LoadAssets(root)
	require.NoError(t, err)
	for id, m := range a.Models {
		require.NotNil(t, m, viewer.MeshID(id).String())
		assert.Len(t, m.Meshes, 1)
	}
	for _, f := range a.Faces {
		require.NotNil(t, f)
		assert.Equal(t, 2, f.Width)
		assert.Len(t, f.Pixels, 2*2*4)
	}
	assert.Equal(t, byte(255), a.Faces[0].Pixels[0])
}

func TestLoadAssetsMissingFace(t *testing.T) {
	root := writeAssetTree(t, 3)
	_, err := LoadAssets(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "skybox face 3")
}

func TestLoadAssetsMissingModel(t *testing.T) {
	root := writeAssetTree(t, -1)
	require.NoError(t, os.Remove(filepath.Join(root, viewer.MeshEarth.ModelPath())))
	_, err := LoadAssets(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load earth")
}

func TestShaderPaths(t *testing.T) {
	vert, frag := ShaderPaths("assets", ProgramDepth)
	assert.Equal(t, filepath.Join("assets", "shaders", "depthMap.vert"), vert)
	assert.Equal(t, filepath.Join("assets", "shaders", "depthMap.frag"), frag)
}

func TestPolygonMode(t *testing.T) {
	assert.Equal(t, uint32(gl.FILL), polygonMode(viewer.ModeFill))
	assert.Equal(t, uint32(gl.LINE), polygonMode(viewer.ModeLines))
	assert.Equal(t, uint32(gl.POINT), polygonMode(viewer.ModePoints))
}

func TestVisibleItems(t *testing.T) {
	var bounds [viewer.MeshCount]scene.Bounds
	for i := range bounds {
		bounds[i] = scene.Bounds{Min: mgl32.Vec3{-0.5, -0.5, -0.5}, Max: mgl32.Vec3{0.5, 0.5, 0.5}}
	}
	plan := &viewer.FramePlan{
		View:       mgl32.LookAtV(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}),
		Projection: viewer.Projection(45, 1),
		Items: []viewer.DrawItem{
			{Mesh: viewer.MeshLandscape, Model: mgl32.Translate3D(0, 0, -5)},
			{Mesh: viewer.MeshFlake, Model: mgl32.Translate3D(0, 0, 5)},
			{Mesh: viewer.MeshFlake, Model: mgl32.Translate3D(1, 0, -20)},
		},
	}

	assert.Equal(t, []int{0, 2}, visibleItems(plan, &bounds, true, nil))
	assert.Equal(t, []int{0, 1, 2}, visibleItems(plan, &bounds, false, nil))
}
