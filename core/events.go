package core

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"scene-viewer/input"
)

// Handler receives translated window events.
type Handler interface {
	OnKey(key input.Key, action input.Action)
	OnCursor(x, y float64)
	OnScroll(xoff, yoff float64)
	OnMouseButton(button input.MouseButton, action input.Action)
	OnResize(width, height int)
}

var keyMap = map[glfw.Key]input.Key{
	glfw.KeyEscape:      input.KeyEscape,
	glfw.KeyF11:         input.KeyF11,
	glfw.Key1:           input.Key1,
	glfw.Key6:           input.Key6,
	glfw.Key7:           input.Key7,
	glfw.Key8:           input.Key8,
	glfw.KeyW:           input.KeyW,
	glfw.KeyA:           input.KeyA,
	glfw.KeyS:           input.KeyS,
	glfw.KeyD:           input.KeyD,
	glfw.KeyQ:           input.KeyQ,
	glfw.KeyE:           input.KeyE,
	glfw.KeyR:           input.KeyR,
	glfw.KeyB:           input.KeyB,
	glfw.KeyV:           input.KeyV,
	glfw.KeyF:           input.KeyF,
	glfw.KeyG:           input.KeyG,
	glfw.KeySpace:       input.KeySpace,
	glfw.KeyLeftControl: input.KeyLeftControl,
	glfw.KeyLeftShift:   input.KeyLeftShift,
	glfw.KeyUp:          input.KeyUp,
	glfw.KeyDown:        input.KeyDown,
	glfw.KeyLeft:        input.KeyLeft,
	glfw.KeyRight:       input.KeyRight,
	glfw.KeyKP1:         input.KeyKP1,
	glfw.KeyKP3:         input.KeyKP3,
	glfw.KeyKP4:         input.KeyKP4,
	glfw.KeyKP5:         input.KeyKP5,
	glfw.KeyKP6:         input.KeyKP6,
	glfw.KeyKP7:         input.KeyKP7,
	glfw.KeyKP8:         input.KeyKP8,
	glfw.KeyKP9:         input.KeyKP9,
}

// TranslateKey maps a GLFW key to the viewer's vocabulary; unbound keys
// become input.KeyUnknown.
func TranslateKey(k glfw.Key) input.Key {
	if key, ok := keyMap[k]; ok {
		return key
	}
	return input.KeyUnknown
}

func TranslateAction(a glfw.Action) input.Action {
	switch a {
	case glfw.Press:
		return input.Press
	case glfw.Repeat:
		return input.Repeat
	}
	return input.Release
}

// TranslateButton reports false for buttons other than left, right and middle.
func TranslateButton(b glfw.MouseButton) (input.MouseButton, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return input.MouseLeft, true
	case glfw.MouseButtonRight:
		return input.MouseRight, true
	case glfw.MouseButtonMiddle:
		return input.MouseMiddle, true
	}
	return 0, false
}

// SetHandler routes key, cursor, scroll, mouse button and framebuffer
// resize events to h. Unbound keys are dropped here.
func (w *Window) SetHandler(h Handler) {
	w.Handle.SetKeyCallback(func(_ *glfw.Window, k glfw.Key, _ int, a glfw.Action, _ glfw.ModifierKey) {
		if key := TranslateKey(k); key != input.KeyUnknown {
			h.OnKey(key, TranslateAction(a))
		}
	})
	w.Handle.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		h.OnCursor(x, y)
	})
	w.Handle.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		h.OnScroll(xoff, yoff)
	})
	w.Handle.SetMouseButtonCallback(func(_ *glfw.Window, b glfw.MouseButton, a glfw.Action, _ glfw.ModifierKey) {
		if button, ok := TranslateButton(b); ok {
			h.OnMouseButton(button, TranslateAction(a))
		}
	})
	w.Handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.Width, w.Height = width, height
		h.OnResize(width, height)
	})
}
