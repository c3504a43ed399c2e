package viewer

import (
	"github.com/go-gl/mathgl/mgl32"

	"scene-viewer/input"
	"scene-viewer/scene"
)

// Clock is a monotonic time source in seconds.
type Clock interface {
	Now() float64
}

// Renderer draws the passes of one frame. Implementations must not keep
// the plan past the call.
type Renderer interface {
	SetViewport(width, height int)
	SetPolygonMode(mode RenderMode)
	ShadowPass(plan *FramePlan)
	MainPass(plan *FramePlan)
	SkyboxPass(view, projection mgl32.Mat4)
}

// Window is the part of the window the viewer controls.
type Window interface {
	SetFullscreen(on bool)
	SetShouldClose(close bool)
}

// DrawItem is one draw call: a mesh and its transforms.
type DrawItem struct {
	Mesh   MeshID
	Model  mgl32.Mat4
	Normal mgl32.Mat3
}

// Spotlight cone, as cosines.
const (
	SpotCutOff      = 0.3
	SpotOuterCutOff = 0.1
)

// FramePlan is everything the passes need for one frame. The light-space
// matrix is computed once and used by both the shadow and main pass.
type FramePlan struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	LightSpace mgl32.Mat4

	Items []DrawItem

	// LightDir is the world-space light direction of the main pass: the
	// sun, or a point offset from the camera while the flashlight is on.
	LightDir    mgl32.Vec3
	LightDirEye mgl32.Vec3
	LightColor  mgl32.Vec3

	CameraPos   mgl32.Vec3
	CameraFront mgl32.Vec3
	CutOff      float32
	OuterCutOff float32

	FogDensity float32
	Flashlight bool
	Greyscale  bool
}

var moveBindings = []struct {
	key input.Key
	dir scene.Direction
}{
	{input.KeyW, scene.MoveForward},
	{input.KeyS, scene.MoveBackward},
	{input.KeyA, scene.MoveLeft},
	{input.KeyD, scene.MoveRight},
	{input.KeySpace, scene.MoveUp},
	{input.KeyLeftControl, scene.MoveDown},
}

// Viewer runs frames against a renderer and routes input into State.
type Viewer struct {
	State *State

	clock    Clock
	renderer Renderer
	window   Window

	plan    FramePlan
	last    float64
	started bool
	frames  uint64
}

// New wires a viewer and pushes the initial viewport and polygon mode.
func New(state *State, clock Clock, r Renderer, w Window) *Viewer {
	v := &Viewer{
		State:    state,
		clock:    clock,
		renderer: r,
		window:   w,
	}
	v.plan.Items = make([]DrawItem, 0, int(MeshFlake)+scene.MaxParticles)
	r.SetViewport(state.Width, state.Height)
	r.SetPolygonMode(state.Toggles.Mode)
	return v
}

// Frames returns how many frames have run.
func (v *Viewer) Frames() uint64 { return v.frames }

// Apply carries out the side effects an input handler asked for.
func (v *Viewer) Apply(e Effect) {
	if e.Has(EffectClose) {
		v.window.SetShouldClose(true)
	}
	if e.Has(EffectFullscreen) {
		v.window.SetFullscreen(v.State.Toggles.Fullscreen)
	}
	if e.Has(EffectPolygonMode) {
		v.renderer.SetPolygonMode(v.State.Toggles.Mode)
	}
	if e.Has(EffectProjection) {
		v.renderer.SetViewport(v.State.Width, v.State.Height)
	}
}

func (v *Viewer) OnKey(k input.Key, a input.Action) { v.Apply(v.State.HandleKey(k, a)) }
func (v *Viewer) OnCursor(x, y float64)             { v.Apply(v.State.HandleCursor(x, y)) }
func (v *Viewer) OnScroll(x, y float64)             { v.Apply(v.State.HandleScroll(x, y)) }
func (v *Viewer) OnResize(w, h int)                 { v.Apply(v.State.HandleResize(w, h)) }

func (v *Viewer) OnMouseButton(b input.MouseButton, a input.Action) {
	v.Apply(v.State.HandleMouseButton(b, a))
}

// Frame advances the state by the time since the previous frame, draws
// the shadow, main and skybox passes, then steps the snow. The returned
// plan is reused by the next call.
func (v *Viewer) Frame() *FramePlan {
	now := v.clock.Now()
	var dt float32
	if v.started && now > v.last {
		dt = float32(now - v.last)
	}
	v.last, v.started = now, true

	s := v.State
	s.control(s.speed(dt))
	s.animate(dt)
	s.plan(&v.plan)

	v.renderer.ShadowPass(&v.plan)
	v.renderer.MainPass(&v.plan)
	v.renderer.SkyboxPass(v.plan.View, v.plan.Projection)

	s.Field.Advance(dt, s.Toggles.Wind)
	v.frames++
	return &v.plan
}

// control moves the camera for one frame: the tour while touring,
// otherwise every held movement key. Scenery rotation works in both modes.
func (s *State) control(speed float32) {
	moved := false
	if s.Toggles.Touring() {
		s.Tour.Tick(s.Camera, speed*scene.TourSpeedScale)
		moved = true
	} else {
		for _, b := range moveBindings {
			if s.Held(b.key) {
				s.Camera.Move(b.dir, speed)
				moved = true
			}
		}
	}
	if moved {
		s.updateView()
	}

	if s.Held(input.KeyQ) {
		s.Toggles.ModelAngle -= ModelStep
	}
	if s.Held(input.KeyE) {
		s.Toggles.ModelAngle += ModelStep
	}
}

func (s *State) animate(dt float32) {
	s.AsteroidAngle += AsteroidSpin * dt
	s.EarthAngle += EarthSpin * dt
}

// LightRotation spins the sun about the vertical axis.
func (s *State) LightRotation() mgl32.Mat4 {
	return mgl32.HomogRotate3DY(mgl32.DegToRad(s.LightAngle))
}

func (s *State) plan(p *FramePlan) {
	t := &s.Toggles
	rot := s.LightRotation()

	p.View = s.View
	p.Projection = s.Projection
	p.LightSpace = LightSpace(t.LightDir, rot)

	scenery := mgl32.HomogRotate3DY(mgl32.DegToRad(t.ModelAngle))
	p.Items = p.Items[:0]
	p.add(MeshLandscape, scenery)
	p.add(MeshUnmovable, scenery)
	p.add(MeshAsteroid, RotateAbout(AsteroidPivot, s.AsteroidAngle))
	p.add(MeshEarth, RotateAbout(EarthPivot, s.EarthAngle))
	if t.Snow {
		for _, f := range s.Field.Particles() {
			if f.Alive {
				p.add(MeshFlake, mgl32.Translate3D(f.Position[0], f.Position[1], f.Position[2]))
			}
		}
	}

	p.CameraPos = s.Camera.Position()
	p.CameraFront = s.Camera.Front()
	p.LightDir = t.LightDir
	if t.Flashlight {
		p.LightDir = p.CameraPos.Add(FlashlightOffset)
	}
	p.LightDirEye = EyeLightDir(p.View, rot, p.LightDir)
	p.LightColor = mgl32.Vec3{1, 1, 1}
	p.CutOff = SpotCutOff
	p.OuterCutOff = SpotOuterCutOff
	p.FogDensity = t.FogDensity
	p.Flashlight = t.Flashlight
	p.Greyscale = t.Greyscale
}

func (p *FramePlan) add(id MeshID, model mgl32.Mat4) {
	p.Items = append(p.Items, DrawItem{
		Mesh:   id,
		Model:  model,
		Normal: NormalMatrix(p.View, model),
	})
}
