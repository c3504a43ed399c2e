package scene

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Model is a named group of meshes loaded from one file.
type Model struct {
	Name   string
	Meshes []*Mesh
}

// LoadModel loads path with the loader matching its extension:
// .obj (with .mtl materials), .gltf or .glb.
func LoadModel(path string) (*Model, error) {
	var (
		meshes []*Mesh
		err    error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		meshes, err = LoadOBJ(path)
	case ".gltf", ".glb":
		meshes, err = LoadGLTF(path)
	default:
		return nil, fmt.Errorf("model %q: unsupported format %q", path, ext)
	}
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &Model{Name: name, Meshes: meshes}, nil
}

// Textures returns every distinct texture the model's materials use.
func (m *Model) Textures() []*Texture {
	seen := map[*Texture]bool{}
	var out []*Texture
	add := func(t *Texture) {
		if t != nil && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	for _, mesh := range m.Meshes {
		if mesh.Material == nil {
			continue
		}
		add(mesh.Material.DiffuseTexture)
		add(mesh.Material.SpecularTexture)
	}
	return out
}

// VertexCount sums the vertices of all meshes.
func (m *Model) VertexCount() int {
	n := 0
	for _, mesh := range m.Meshes {
		n += len(mesh.Vertices)
	}
	return n
}

// Bounds is the union of the meshes' local bounds.
func (m *Model) Bounds() Bounds {
	var b Bounds
	for i, mesh := range m.Meshes {
		if i == 0 {
			b = mesh.Bounds
			continue
		}
		b = b.Union(mesh.Bounds)
	}
	return b
}
