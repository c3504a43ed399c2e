package scene

import "github.com/go-gl/mathgl/mgl32"

// Vertex is the interleaved layout every mesh uploads: position, normal,
// texture coordinate.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// Bounds is an axis-aligned box in mesh-local space.
type Bounds struct {
	Min, Max mgl32.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Mesh holds CPU-side vertex/index data.
// GPU upload is managed by the renderer backend.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds

	// Material is never nil for meshes returned by the loaders.
	Material *Material

	// GPUData is set by the renderer backend (e.g. *opengl.GPUMesh).
	GPUData any
}

// NewMesh builds a Mesh and pre-computes its local bounds. A mesh without
// indices is drawn as a plain triangle list.
func NewMesh(name string, vertices []Vertex, indices []uint32) *Mesh {
	if len(indices) == 0 {
		indices = make([]uint32, len(vertices))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	m := &Mesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
		Material: DefaultMaterial(),
	}
	if len(vertices) > 0 {
		m.Bounds = computeBounds(vertices)
	}
	return m
}

// TriangleCount returns the number of indexed triangles.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

func computeBounds(vertices []Vertex) Bounds {
	lo := vertices[0].Position
	hi := vertices[0].Position
	for _, v := range vertices[1:] {
		for a := 0; a < 3; a++ {
			if v.Position[a] < lo[a] {
				lo[a] = v.Position[a]
			}
			if v.Position[a] > hi[a] {
				hi[a] = v.Position[a]
			}
		}
	}
	return Bounds{Min: lo, Max: hi}
}

// Transform returns a copy of the mesh with positions moved by xf and
// normals by its inverse transpose.
func (m *Mesh) Transform(xf mgl32.Mat4) *Mesh {
	if xf == mgl32.Ident4() {
		return m
	}
	normal := xf.Mat3().Inv().Transpose()
	out := make([]Vertex, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = Vertex{
			Position: xf.Mul4x1(v.Position.Vec4(1)).Vec3(),
			Normal:   normal.Mul3x1(v.Normal).Normalize(),
			UV:       v.UV,
		}
	}
	t := NewMesh(m.Name, out, m.Indices)
	t.Material = m.Material
	return t
}
