package opengl

import (
	"fmt"
	"log/slog"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// ClearGrey is the colour the default framebuffer is cleared to.
const ClearGrey = 0.7

// Init loads the GL function pointers for the current context and sets
// the fixed pipeline state the viewer relies on. Call it once, after the
// window's context is made current.
func Init() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	slog.Info("opengl ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
		"glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)))

	gl.ClearColor(ClearGrey, ClearGrey, ClearGrey, 1)
	gl.Enable(gl.FRAMEBUFFER_SRGB)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	if code := CheckError("init"); code != gl.NO_ERROR {
		return fmt.Errorf("opengl init: %s", ErrorName(code))
	}
	return nil
}

// PolygonMode sets the rasterisation mode for both faces: gl.FILL,
// gl.LINE or gl.POINT.
func PolygonMode(mode uint32) {
	gl.PolygonMode(gl.FRONT_AND_BACK, mode)
}

// Viewport sizes the default framebuffer viewport.
func Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// ClearFrame clears colour and depth of the bound framebuffer.
func ClearFrame() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}
