package renderer

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"scene-viewer/scene"
	"scene-viewer/viewer"
)

// Program names under <root>/shaders.
const (
	ProgramBasic  = "basic"
	ProgramDepth  = "depthMap"
	ProgramSkybox = "skybox"
)

// Assets is the CPU side of everything the scene draws.
type Assets struct {
	Models [viewer.MeshCount]*scene.Model
	Faces  [6]*scene.Texture
}

// ShaderPaths returns the vertex and fragment source paths of program name.
func ShaderPaths(root, name string) (vert, frag string) {
	base := filepath.Join(root, "shaders", name)
	return base + ".vert", base + ".frag"
}

// LoadAssets reads every model and skybox face below root. Any missing
// or malformed file is an error.
func LoadAssets(root string) (*Assets, error) {
	a := &Assets{}
	for id := viewer.MeshID(0); id < viewer.MeshCount; id++ {
		path := filepath.Join(root, id.ModelPath())
		m, err := scene.LoadModel(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", id, err)
		}
		slog.Info("model loaded", "mesh", id.String(), "path", path,
			"meshes", len(m.Meshes), "vertices", m.VertexCount(), "textures", len(m.Textures()))
		a.Models[id] = m
	}
	for i, face := range viewer.SkyboxFaces {
		tex, err := scene.LoadTexture(filepath.Join(root, face))
		if err != nil {
			return nil, fmt.Errorf("skybox face %d: %w", i, err)
		}
		a.Faces[i] = tex
	}
	return a, nil
}
