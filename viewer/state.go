// Package viewer holds the viewer's simulation state and the frame
// orchestrator. Nothing here touches GL or the window system directly;
// both are reached through the Renderer and Window interfaces.
package viewer

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"scene-viewer/input"
	"scene-viewer/scene"
)

// RenderMode selects the GL polygon mode for the main pass.
type RenderMode int

const (
	ModeFill RenderMode = iota
	ModeLines
	ModePoints
)

func (m RenderMode) String() string {
	switch m {
	case ModeFill:
		return "fill"
	case ModeLines:
		return "lines"
	case ModePoints:
		return "points"
	}
	return "unknown"
}

// ControlMode says who drives the camera.
type ControlMode int

const (
	// ControlFree: the user flies the camera with keys and mouse.
	ControlFree ControlMode = iota
	// ControlTouring: the scripted tour moves the camera every frame.
	ControlTouring
)

func (c ControlMode) String() string {
	if c == ControlTouring {
		return "touring"
	}
	return "free"
}

// Limits and steps for the user-adjustable scalars.
const (
	MinFOV      = 1
	MaxFOV      = 90
	MaxPitch    = 89
	FogStep     = 0.01
	LightStep   = 0.7
	ModelStep   = 1 // degrees per frame while Q or E is held
	DefaultYaw  = -90
	DefaultFog  = 0.01
	zoomNoPrior = -1
)

// DefaultLightDir is the sun direction at startup and after a light reset.
var DefaultLightDir = mgl32.Vec3{-9.09, 9.39, -1.80}

// Toggles is every flag and scalar the user changes through input.
type Toggles struct {
	Fullscreen bool
	Flashlight bool
	Snow       bool
	Greyscale  bool
	Wind       scene.Wind
	Control    ControlMode
	Mode       RenderMode

	FOV        float32 // degrees, [MinFOV, MaxFOV]
	FogDensity float32
	Yaw        float32 // degrees
	Pitch      float32 // degrees, [-MaxPitch, MaxPitch]
	ModelAngle float32 // degrees about y for the static scenery
	LightDir   mgl32.Vec3
}

// DefaultToggles returns the startup flags for a camera opening at fov.
func DefaultToggles(fov float32) Toggles {
	return Toggles{
		FOV:        clamp(fov, MinFOV, MaxFOV),
		FogDensity: DefaultFog,
		Yaw:        DefaultYaw,
		LightDir:   DefaultLightDir,
	}
}

// Touring reports whether the scripted tour owns the camera.
func (t Toggles) Touring() bool { return t.Control == ControlTouring }

// Settings are the fixed tuning values the state is built with.
type Settings struct {
	BaseSpeed   float32
	BoostSpeed  float32
	Sensitivity float32
	FOV         float32
	ZoomFOV     float32
	Width       int
	Height      int
	SnowSeed    int64
	TickRate    float32
	SunYaw      float32 // degrees about y applied to the sun direction
}

// DefaultSettings mirrors config.Default.
func DefaultSettings() Settings {
	return Settings{
		BaseSpeed:   5,
		BoostSpeed:  15,
		Sensitivity: 0.1,
		FOV:         45,
		ZoomFOV:     15,
		Width:       1024,
		Height:      768,
		SnowSeed:    1,
		TickRate:    scene.DefaultTickRate,
	}
}

// State is the whole mutable simulation: camera, tour, particles,
// toggles, held keys and the derived transforms. Input handlers and
// Frame mutate it; nothing else does.
type State struct {
	Settings Settings
	Camera   *scene.Camera
	Tour     *scene.Tour
	Field    *scene.Field
	Toggles  Toggles

	Width, Height int
	Aspect        float32
	View          mgl32.Mat4
	Projection    mgl32.Mat4

	AsteroidAngle float32
	EarthAngle    float32
	LightAngle    float32 // sun rotation about y, degrees

	held      [input.KeyCount]bool
	firstLook bool
	lastX     float64
	lastY     float64
	zoomPrior float32
}

// NewState builds the startup state.
func NewState(s Settings) *State {
	st := &State{
		Settings:  s,
		Camera:    scene.NewDefaultCamera(),
		Tour:      scene.NewTour(nil),
		Field:     scene.NewField(s.SnowSeed, s.TickRate),
		Toggles:   DefaultToggles(s.FOV),
		firstLook: true,
		zoomPrior: zoomNoPrior,

		LightAngle: s.SunYaw,
	}
	st.resize(s.Width, s.Height)
	st.updateView()
	return st
}

// Held reports whether key is currently down.
func (s *State) Held(k input.Key) bool {
	return k.Valid() && s.held[k]
}

func (s *State) resize(w, h int) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	s.Width, s.Height = w, h
	s.Aspect = float32(w) / float32(h)
	s.updateProjection()
	return true
}

// syncLookAngles derives yaw and pitch from the camera's front so mouse
// look continues from wherever the tour left the camera.
func (s *State) syncLookAngles() {
	f := s.Camera.Front()
	s.Toggles.Yaw = mgl32.RadToDeg(math32.Atan2(f.Z(), f.X()))
	s.Toggles.Pitch = clamp(mgl32.RadToDeg(math32.Asin(clamp(f.Y(), -1, 1))), -MaxPitch, MaxPitch)
}

func (s *State) updateProjection() {
	s.Projection = Projection(s.Toggles.FOV, s.Aspect)
}

func (s *State) updateView() {
	s.View = s.Camera.ViewMatrix()
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
