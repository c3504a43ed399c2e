package opengl

import (
	"fmt"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"scene-viewer/scene"
)

// Skybox draws a cube map around the camera. The vertex shader uses the
// xyww trick (gl_Position.z = gl_Position.w) so every fragment lands at
// NDC depth 1.0, behind all scene geometry.
type Skybox struct {
	vao     uint32
	vbo     uint32
	cubeMap uint32
}

// 36 positions (xyz) for a unit cube, wound to be seen from inside.
var skyboxVerts = []float32{
	// -Z face
	-1, 1, -1, -1, -1, -1, 1, -1, -1,
	1, -1, -1, 1, 1, -1, -1, 1, -1,
	// -X face
	-1, -1, 1, -1, -1, -1, -1, 1, -1,
	-1, 1, -1, -1, 1, 1, -1, -1, 1,
	// +X face
	1, -1, -1, 1, -1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, -1, 1, -1, -1,
	// +Z face
	-1, -1, 1, -1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, -1, 1, -1, -1, 1,
	// +Y face
	-1, 1, -1, 1, 1, -1, 1, 1, 1,
	1, 1, 1, -1, 1, 1, -1, 1, -1,
	// -Y face
	-1, -1, -1, -1, -1, 1, 1, -1, -1,
	1, -1, -1, -1, -1, 1, 1, -1, 1,
}

// NewSkybox uploads six faces, ordered +X, -X, +Y, -Y, +Z, -Z, into a
// cube map and the cube geometry into a VAO.
func NewSkybox(faces [6]*scene.Texture) (*Skybox, error) {
	for i, f := range faces {
		if f == nil || len(f.Pixels) == 0 {
			return nil, fmt.Errorf("skybox face %d has no pixel data", i)
		}
		if len(f.Pixels) < f.Width*f.Height*4 {
			return nil, fmt.Errorf("skybox face %q: %d bytes for %dx%d", f.Name, len(f.Pixels), f.Width, f.Height)
		}
	}

	sb := &Skybox{}
	gl.GenTextures(1, &sb.cubeMap)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, sb.cubeMap)
	for i, f := range faces {
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, skyboxFaceFormat,
			int32(f.Width), int32(f.Height), 0, gl.RGBA, gl.UNSIGNED_BYTE,
			unsafe.Pointer(&f.Pixels[0]))
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	gl.GenVertexArrays(1, &sb.vao)
	gl.GenBuffers(1, &sb.vbo)
	gl.BindVertexArray(sb.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, sb.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(skyboxVerts)*4, gl.Ptr(skyboxVerts), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 12, gl.PtrOffset(0))
	gl.BindVertexArray(0)

	return sb, nil
}

// SkyView strips the translation from view so the sky stays centred on
// the camera.
func SkyView(view mgl32.Mat4) mgl32.Mat4 {
	return view.Mat3().Mat4()
}

// Draw renders the sky with prog, which must sample "skybox" and take
// "view" and "projection" uniforms.
func (sb *Skybox) Draw(prog *Program, view, projection mgl32.Mat4) {
	// LEQUAL so depth=1.0 fragments pass against the cleared depth value.
	gl.DepthFunc(gl.LEQUAL)
	gl.DepthMask(false)
	gl.Disable(gl.CULL_FACE)

	prog.Use()
	prog.SetMat4("view", SkyView(view))
	prog.SetMat4("projection", projection)
	prog.SetInt("skybox", 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, sb.cubeMap)
	gl.BindVertexArray(sb.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(skyboxVerts)/3))
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	gl.Enable(gl.CULL_FACE)
	gl.DepthMask(true)
	gl.DepthFunc(gl.LESS)
}

// Destroy frees all GPU resources owned by this skybox.
func (sb *Skybox) Destroy() {
	gl.DeleteVertexArrays(1, &sb.vao)
	gl.DeleteBuffers(1, &sb.vbo)
	gl.DeleteTextures(1, &sb.cubeMap)
}
