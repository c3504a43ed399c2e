package viewer

import "github.com/go-gl/mathgl/mgl32"

// Projection and light frustum bounds.
const (
	NearPlane = 0.1
	FarPlane  = 100

	lightExtent = 20
	lightNear   = 0.5
	lightFar    = 100
)

var worldUp = mgl32.Vec3{0, 1, 0}

// FlashlightOffset places the flashlight relative to the camera.
var FlashlightOffset = mgl32.Vec3{0, 5, 10}

// Projection returns the perspective matrix for fov degrees.
func Projection(fov, aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(fov), aspect, NearPlane, FarPlane)
}

// LightSpace maps world positions into the shadow map's clip space. The
// light sits at lightDir, rotated by the inverse transpose of rotation,
// and looks at the origin through an orthographic box.
func LightSpace(lightDir mgl32.Vec3, rotation mgl32.Mat4) mgl32.Mat4 {
	eye := inverseTranspose3(rotation.Mat3()).Mul3x1(lightDir)
	view := mgl32.LookAtV(eye, mgl32.Vec3{}, worldUp)
	proj := mgl32.Ortho(-lightExtent, lightExtent, -lightExtent, lightExtent, lightNear, lightFar)
	return proj.Mul4(view)
}

// NormalMatrix is the inverse transpose of the upper 3x3 of view*model.
func NormalMatrix(view, model mgl32.Mat4) mgl32.Mat3 {
	return inverseTranspose3(view.Mul4(model).Mat3())
}

// EyeLightDir moves a world light direction into eye space the way
// normals are moved, so the shader can compare them directly.
func EyeLightDir(view, rotation mgl32.Mat4, dir mgl32.Vec3) mgl32.Vec3 {
	return inverseTranspose3(view.Mul4(rotation).Mat3()).Mul3x1(dir)
}

// RotateAbout spins by degrees about the vertical axis through pivot.
func RotateAbout(pivot mgl32.Vec3, degrees float32) mgl32.Mat4 {
	return mgl32.Translate3D(pivot[0], pivot[1], pivot[2]).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(degrees))).
		Mul4(mgl32.Translate3D(-pivot[0], -pivot[1], -pivot[2]))
}

// inverseTranspose3 returns (m^-1)^T, or identity when m is singular.
func inverseTranspose3(m mgl32.Mat3) mgl32.Mat3 {
	if m.Det() == 0 {
		return mgl32.Ident3()
	}
	return m.Inv().Transpose()
}
