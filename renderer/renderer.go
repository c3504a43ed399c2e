package renderer

import (
	"errors"
	"fmt"
	"log/slog"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"scene-viewer/internal/opengl"
	"scene-viewer/scene"
	"scene-viewer/viewer"
)

// Scene is the OpenGL implementation of viewer.Renderer: the shadow,
// main and skybox passes over the loaded models.
type Scene struct {
	models [viewer.MeshCount]*opengl.Model
	bounds [viewer.MeshCount]scene.Bounds

	basic  *opengl.Program
	depth  *opengl.Program
	sky    *opengl.Program
	shadow *opengl.ShadowMap
	skybox *opengl.Skybox

	width, height int

	FrustumCulling bool
	visible        []int

	// Per-frame stats (populated during MainPass)
	lastDraws  int
	lastCulled int
}

var _ viewer.Renderer = (*Scene)(nil)

// New uploads assets, compiles the three programs from root/shaders and
// creates a shadow map of shadowSize². The GL context must be current.
func New(root string, assets *Assets, shadowSize int) (*Scene, error) {
	s := &Scene{FrustumCulling: true}
	if err := s.init(root, assets, shadowSize); err != nil {
		s.Destroy()
		return nil, err
	}
	return s, nil
}

func (s *Scene) init(root string, assets *Assets, shadowSize int) error {
	var err error
	if s.basic, err = loadProgram(root, ProgramBasic); err != nil {
		return err
	}
	if s.depth, err = loadProgram(root, ProgramDepth); err != nil {
		return err
	}
	if s.sky, err = loadProgram(root, ProgramSkybox); err != nil {
		return err
	}

	for id, m := range assets.Models {
		if m == nil {
			return fmt.Errorf("model %s not loaded", viewer.MeshID(id))
		}
		if s.models[id], err = opengl.UploadModel(m); err != nil {
			return err
		}
		s.bounds[id] = m.Bounds()
	}

	if s.skybox, err = opengl.NewSkybox(assets.Faces); err != nil {
		return fmt.Errorf("skybox: %w", err)
	}
	if s.shadow, err = opengl.NewShadowMap(shadowSize); err != nil {
		return err
	}
	slog.Info("shadow map ready", "size", shadowSize)

	s.basic.Use()
	s.basic.SetInt("diffuseTexture", opengl.UnitDiffuse)
	s.basic.SetInt("specularTexture", opengl.UnitSpecular)
	s.basic.SetInt("shadowMap", opengl.UnitShadow)

	if code := opengl.CheckError("renderer init"); code != gl.NO_ERROR {
		return errors.New("renderer init: " + opengl.ErrorName(code))
	}
	return nil
}

func loadProgram(root, name string) (*opengl.Program, error) {
	vert, frag := ShaderPaths(root, name)
	return opengl.LoadProgram(name, vert, frag)
}

// SetViewport records the window size and resizes the GL viewport.
func (s *Scene) SetViewport(width, height int) {
	s.width, s.height = width, height
	opengl.Viewport(width, height)
}

// SetPolygonMode switches between filled, line and point rasterisation.
func (s *Scene) SetPolygonMode(mode viewer.RenderMode) {
	opengl.PolygonMode(polygonMode(mode))
}

func polygonMode(mode viewer.RenderMode) uint32 {
	switch mode {
	case viewer.ModeLines:
		return gl.LINE
	case viewer.ModePoints:
		return gl.POINT
	}
	return gl.FILL
}

// ShadowPass renders every item's depth from the light into the shadow map.
func (s *Scene) ShadowPass(plan *viewer.FramePlan) {
	s.shadow.Begin()
	s.depth.Use()
	s.depth.SetMat4("lightSpaceTrMatrix", plan.LightSpace)
	for i := range plan.Items {
		it := &plan.Items[i]
		s.depth.SetMat4("model", it.Model)
		s.models[it.Mesh].DrawDepth()
	}
	s.shadow.End()
	opengl.CheckError("shadow pass")
}

// MainPass draws every item lit, fogged and shadowed into the window.
func (s *Scene) MainPass(plan *viewer.FramePlan) {
	opengl.Viewport(s.width, s.height)
	opengl.ClearFrame()

	p := s.basic
	p.Use()
	s.shadow.BindTexture(opengl.UnitShadow)

	p.SetMat4("view", plan.View)
	p.SetMat4("projection", plan.Projection)
	p.SetMat4("lightSpaceTrMatrix", plan.LightSpace)
	p.SetVec3("lightDir", plan.LightDirEye)
	p.SetVec3("lightColor", plan.LightColor)
	p.SetVec3("cameraPos", plan.CameraPos)
	p.SetVec3("cameraFront", plan.CameraFront)
	p.SetFloat("cutOff", plan.CutOff)
	p.SetFloat("outerCutOff", plan.OuterCutOff)
	p.SetFloat("fogDensity", plan.FogDensity)
	p.SetBool("flash", plan.Flashlight)
	p.SetBool("grey", plan.Greyscale)

	s.visible = visibleItems(plan, &s.bounds, s.FrustumCulling, s.visible[:0])
	for _, i := range s.visible {
		it := &plan.Items[i]
		p.SetMat4("model", it.Model)
		p.SetMat3("normalMatrix", it.Normal)
		s.models[it.Mesh].Draw(p)
	}
	s.lastDraws = len(s.visible)
	s.lastCulled = len(plan.Items) - len(s.visible)
	opengl.CheckError("main pass")
}

// visibleItems appends to dst the index of every item whose world bounds
// touch the camera frustum, or of every item when culling is off.
func visibleItems(plan *viewer.FramePlan, bounds *[viewer.MeshCount]scene.Bounds, cull bool, dst []int) []int {
	if !cull {
		for i := range plan.Items {
			dst = append(dst, i)
		}
		return dst
	}
	f := scene.FrustumFromVP(plan.Projection.Mul4(plan.View))
	for i := range plan.Items {
		it := &plan.Items[i]
		if bounds[it.Mesh].Transform(it.Model).Intersects(&f) {
			dst = append(dst, i)
		}
	}
	return dst
}

// SkyboxPass draws the star field behind everything already drawn.
func (s *Scene) SkyboxPass(view, projection mgl32.Mat4) {
	s.skybox.Draw(s.sky, view, projection)
	opengl.CheckError("skybox pass")
}

// DrawStats returns how many items the most recent MainPass drew and
// how many it skipped as outside the view.
func (s *Scene) DrawStats() (drawn, culled int) { return s.lastDraws, s.lastCulled }

// Destroy releases all GPU resources. Safe on a partially built Scene.
func (s *Scene) Destroy() {
	for i, m := range s.models {
		if m != nil {
			m.Destroy()
			s.models[i] = nil
		}
	}
	if s.skybox != nil {
		s.skybox.Destroy()
		s.skybox = nil
	}
	if s.shadow != nil {
		s.shadow.Destroy()
		s.shadow = nil
	}
	for _, p := range []*opengl.Program{s.basic, s.depth, s.sky} {
		if p != nil {
			p.Destroy()
		}
	}
}
