package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Direction selects the camera axis a Move call travels along.
type Direction int

const (
	MoveForward Direction = iota
	MoveBackward
	MoveRight
	MoveLeft
	MoveUp
	MoveDown
)

func (d Direction) String() string {
	switch d {
	case MoveForward:
		return "forward"
	case MoveBackward:
		return "backward"
	case MoveRight:
		return "right"
	case MoveLeft:
		return "left"
	case MoveUp:
		return "up"
	case MoveDown:
		return "down"
	}
	return "unknown"
}

// Initial camera pose.
var (
	DefaultCameraPosition = mgl32.Vec3{0, 0, 3}
	DefaultCameraTarget   = mgl32.Vec3{0, 0, -10}
	DefaultCameraUp       = mgl32.Vec3{0, 1, 0}
)

// Camera is a first-person fly camera described by a position and a
// front/right/up basis. Up stays the world up the camera was built with;
// front and right are re-derived on every orientation change.
type Camera struct {
	position mgl32.Vec3
	target   mgl32.Vec3
	front    mgl32.Vec3
	right    mgl32.Vec3
	up       mgl32.Vec3

	initPosition mgl32.Vec3
	initTarget   mgl32.Vec3
	initUp       mgl32.Vec3
}

// NewCamera builds a camera at position looking at target. The pose is
// remembered so Reset can restore it.
func NewCamera(position, target, up mgl32.Vec3) *Camera {
	c := &Camera{
		initPosition: position,
		initTarget:   target,
		initUp:       up,
	}
	c.Reset()
	return c
}

// NewDefaultCamera returns the camera at the viewer's start pose.
func NewDefaultCamera() *Camera {
	return NewCamera(DefaultCameraPosition, DefaultCameraTarget, DefaultCameraUp)
}

// Move translates the camera along one of its axes. The basis is unchanged.
func (c *Camera) Move(dir Direction, speed float32) {
	switch dir {
	case MoveForward:
		c.position = c.position.Add(c.front.Mul(speed))
	case MoveBackward:
		c.position = c.position.Sub(c.front.Mul(speed))
	case MoveRight:
		c.position = c.position.Add(c.right.Mul(speed))
	case MoveLeft:
		c.position = c.position.Sub(c.right.Mul(speed))
	case MoveUp:
		c.position = c.position.Add(c.up.Mul(speed))
	case MoveDown:
		c.position = c.position.Sub(c.up.Mul(speed))
	}
}

// Rotate points the camera along the spherical direction given by pitch
// (rotation about x) and yaw (rotation about y), both in degrees. Callers
// clamp pitch below ±90 so front never becomes parallel to up.
func (c *Camera) Rotate(pitch, yaw float32) {
	p := mgl32.DegToRad(pitch)
	y := mgl32.DegToRad(yaw)
	dir := mgl32.Vec3{
		math32.Cos(y) * math32.Cos(p),
		math32.Sin(p),
		math32.Sin(y) * math32.Cos(p),
	}
	c.front = dir.Normalize()
	c.right = c.front.Cross(c.up).Normalize()
}

// Reset restores the start pose and rebuilds the whole basis from it.
func (c *Camera) Reset() {
	c.position = c.initPosition
	c.target = c.initTarget
	c.up = c.initUp
	c.front = c.target.Sub(c.position).Normalize()
	c.right = c.front.Cross(c.up).Normalize()
}

// ViewMatrix returns the look-at matrix for the current pose.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.front), c.up)
}

func (c *Camera) Position() mgl32.Vec3 { return c.position }
func (c *Camera) Target() mgl32.Vec3   { return c.target }
func (c *Camera) Front() mgl32.Vec3    { return c.front }
func (c *Camera) Right() mgl32.Vec3    { return c.right }
func (c *Camera) Up() mgl32.Vec3       { return c.up }

// SetPosition places the camera without touching its orientation.
func (c *Camera) SetPosition(pos mgl32.Vec3) {
	c.position = pos
}

// SetFront overrides the viewing direction. Right is re-derived so later
// strafing moves stay perpendicular to the new direction.
func (c *Camera) SetFront(front mgl32.Vec3) {
	c.front = front.Normalize()
	c.right = c.front.Cross(c.up).Normalize()
}
