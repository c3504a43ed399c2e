package core

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

// Windowed placement used when leaving fullscreen.
const (
	windowedX      = 100
	windowedY      = 100
	windowedWidth  = 800
	windowedHeight = 600
)

// Window is a GLFW window owning an OpenGL 4.1 core context.
type Window struct {
	Handle *glfw.Window
	Width  int
	Height int
	Title  string

	fullscreen bool
}

type WindowConfig struct {
	Width      int
	Height     int
	Title      string
	Resizable  bool
	VSync      bool
	Fullscreen bool
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:     1024,
		Height:    768,
		Title:     "Snowfall",
		Resizable: true,
		VSync:     true,
	}
}

// NewWindow initialises GLFW, opens the window and makes its context
// current on the calling (locked) thread.
func NewWindow(config WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolToInt(config.Resizable))
	glfw.WindowHint(glfw.SRGBCapable, glfw.True)

	monitor := (*glfw.Monitor)(nil)
	width, height := config.Width, config.Height
	if config.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		if mode := monitor.GetVideoMode(); mode != nil {
			width, height = mode.Width, mode.Height
		}
	}

	handle, err := glfw.CreateWindow(width, height, config.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	handle.MakeContextCurrent()
	glfw.SwapInterval(boolToInt(config.VSync))

	window := &Window{
		Handle:     handle,
		Title:      config.Title,
		fullscreen: config.Fullscreen,
	}
	window.Width, window.Height = handle.GetFramebufferSize()

	slog.Info("window created", "width", window.Width, "height", window.Height,
		"fullscreen", config.Fullscreen, "vsync", config.VSync)
	return window, nil
}

func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

// SetShouldClose asks the frame loop to stop after the current frame.
func (w *Window) SetShouldClose(close bool) {
	w.Handle.SetShouldClose(close)
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.Handle.SwapBuffers()
}

func (w *Window) GetFramebufferSize() (int, int) {
	return w.Handle.GetFramebufferSize()
}

// Now returns seconds since GLFW was initialised.
func (w *Window) Now() float64 {
	return glfw.GetTime()
}

// SetFullscreen moves the window onto the primary monitor at its current
// video mode, or back to an 800x600 window at (100, 100).
func (w *Window) SetFullscreen(on bool) {
	if on == w.fullscreen {
		return
	}
	w.fullscreen = on
	if on {
		monitor := glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()
		if mode == nil {
			slog.Warn("fullscreen unavailable: no video mode")
			w.fullscreen = false
			return
		}
		w.Handle.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
		return
	}
	w.Handle.SetMonitor(nil, windowedX, windowedY, windowedWidth, windowedHeight, glfw.DontCare)
}

// CaptureCursor hides the cursor and reports unbounded relative motion.
func (w *Window) CaptureCursor() {
	w.Handle.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
}

func (w *Window) SetTitle(title string) {
	w.Handle.SetTitle(title)
	w.Title = title
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
