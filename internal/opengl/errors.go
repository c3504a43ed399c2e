package opengl

import (
	"fmt"
	"log/slog"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// ErrorName maps a glGetError code to its symbolic name.
func ErrorName(code uint32) string {
	switch code {
	case gl.NO_ERROR:
		return "NO_ERROR"
	case gl.INVALID_ENUM:
		return "INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "INVALID_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "OUT_OF_MEMORY"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "INVALID_FRAMEBUFFER_OPERATION"
	}
	return fmt.Sprintf("0x%X", code)
}

// maxDrainedErrors bounds the drain loop; a lost context can report an
// error on every call.
const maxDrainedErrors = 16

// CheckError drains the GL error queue, logging each code with where,
// and returns the last code seen (NO_ERROR when the queue was empty).
func CheckError(where string) uint32 {
	return drainErrors(where, gl.GetError)
}

func drainErrors(where string, next func() uint32) uint32 {
	last := uint32(gl.NO_ERROR)
	for i := 0; i < maxDrainedErrors; i++ {
		code := next()
		if code == gl.NO_ERROR {
			break
		}
		slog.Warn("gl error", "where", where, "code", ErrorName(code))
		last = code
	}
	return last
}
