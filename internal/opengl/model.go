package opengl

import (
	"fmt"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"scene-viewer/scene"
)

// Texture units the basic program samples from.
const (
	UnitDiffuse  = 0
	UnitSpecular = 1
	UnitShadow   = 3
)

// GPUMesh holds the OpenGL buffer objects for an uploaded mesh.
type GPUMesh struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
	Material   *scene.Material
}

// Model is a scene.Model resident on the GPU.
type Model struct {
	Name   string
	Meshes []*GPUMesh

	textures []*scene.Texture
}

// UploadModel uploads every mesh and texture of m. On failure whatever
// was already uploaded is freed.
func UploadModel(m *scene.Model) (*Model, error) {
	gm := &Model{Name: m.Name}
	for _, tex := range m.Textures() {
		if err := UploadTexture(tex); err != nil {
			gm.Destroy()
			return nil, fmt.Errorf("model %s: %w", m.Name, err)
		}
		gm.textures = append(gm.textures, tex)
	}
	for _, mesh := range m.Meshes {
		if len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
			continue
		}
		gm.Meshes = append(gm.Meshes, uploadMesh(mesh))
	}
	if len(gm.Meshes) == 0 {
		gm.Destroy()
		return nil, fmt.Errorf("model %s: no drawable meshes", m.Name)
	}
	return gm, nil
}

func uploadMesh(mesh *scene.Mesh) *GPUMesh {
	stride := int32(unsafe.Sizeof(scene.Vertex{}))

	gpu := &GPUMesh{
		IndexCount: int32(len(mesh.Indices)),
		Material:   mesh.Material,
	}
	if gpu.Material == nil {
		gpu.Material = scene.DefaultMaterial()
	}

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.GenBuffers(1, &gpu.VBO)
	gl.BindVertexArray(gpu.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER,
		len(mesh.Vertices)*int(stride),
		gl.Ptr(mesh.Vertices),
		gl.STATIC_DRAW)

	var v scene.Vertex
	posOff := int(unsafe.Offsetof(v.Position))
	normOff := int(unsafe.Offsetof(v.Normal))
	uvOff := int(unsafe.Offsetof(v.UV))

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(posOff))

	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(normOff))

	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(uvOff))

	gl.GenBuffers(1, &gpu.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER,
		len(mesh.Indices)*4,
		gl.Ptr(mesh.Indices),
		gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	mesh.GPUData = gpu
	return gpu
}

// Draw issues every mesh with its material bound on prog. The caller has
// already made prog current and set the per-draw matrices.
func (m *Model) Draw(prog *Program) {
	for _, gpu := range m.Meshes {
		applyMaterial(prog, gpu.Material)
		gpu.draw()
	}
}

// DrawDepth issues every mesh without touching material state, for the
// shadow pass.
func (m *Model) DrawDepth() {
	for _, gpu := range m.Meshes {
		gpu.draw()
	}
}

func (gpu *GPUMesh) draw() {
	gl.BindVertexArray(gpu.VAO)
	gl.DrawElements(gl.TRIANGLES, gpu.IndexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func applyMaterial(prog *Program, mat *scene.Material) {
	prog.SetVec3("matDiffuse", mat.Diffuse)
	prog.SetVec3("matSpecular", mat.Specular)
	prog.SetFloat("matShininess", mat.Shininess)

	if tex := mat.DiffuseTexture; tex != nil && tex.GLID != 0 {
		gl.ActiveTexture(gl.TEXTURE0 + UnitDiffuse)
		gl.BindTexture(gl.TEXTURE_2D, tex.GLID)
		prog.SetBool("hasDiffuseTexture", true)
	} else {
		prog.SetBool("hasDiffuseTexture", false)
	}

	if tex := mat.SpecularTexture; tex != nil && tex.GLID != 0 {
		gl.ActiveTexture(gl.TEXTURE0 + UnitSpecular)
		gl.BindTexture(gl.TEXTURE_2D, tex.GLID)
		prog.SetBool("hasSpecularTexture", true)
	} else {
		prog.SetBool("hasSpecularTexture", false)
	}
}

// Destroy frees the model's buffers and textures.
func (m *Model) Destroy() {
	for _, gpu := range m.Meshes {
		gl.DeleteVertexArrays(1, &gpu.VAO)
		gl.DeleteBuffers(1, &gpu.VBO)
		gl.DeleteBuffers(1, &gpu.EBO)
	}
	m.Meshes = nil
	for _, tex := range m.textures {
		DeleteTexture(tex)
	}
	m.textures = nil
}
