package scene

import "github.com/go-gl/mathgl/mgl32"

// TourSpeedScale slows the tour relative to free flight.
const TourSpeedScale = 0.2

// TourStep is one entry of the scripted tour. A pose step snaps the
// camera to Position/Front; a move step travels along Move. Either way
// the step lasts while the tick counter stays at or below Limit.
type TourStep struct {
	Pose     bool
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Move     Direction
	Limit    int
}

// DefaultTourSteps is the camera path the viewer plays.
var DefaultTourSteps = []TourStep{
	{Pose: true, Position: mgl32.Vec3{18, 1, 14}, Front: mgl32.Vec3{-0.58, -0.12, -0.80}, Limit: 10},
	{Move: MoveLeft, Limit: 920},
	{Pose: true, Position: mgl32.Vec3{-9.274306, -0.943014, 1.866937}, Front: mgl32.Vec3{0.327038, -0.033155, -0.944429}, Limit: 10},
	{Move: MoveRight, Limit: 800},
	{Pose: true, Position: mgl32.Vec3{1.406184, -0.910371, -0.164452}, Front: mgl32.Vec3{-0.998873, -0.027922, 0.038373}, Limit: 10},
	{Move: MoveBackward, Limit: 900},
}

// Tour plays a cyclic list of steps against a camera, one step per tick.
type Tour struct {
	steps   []TourStep
	step    int
	counter int
}

// NewTour returns a tour over steps, or over DefaultTourSteps when steps
// is empty.
func NewTour(steps []TourStep) *Tour {
	if len(steps) == 0 {
		steps = DefaultTourSteps
	}
	return &Tour{steps: steps}
}

// Tick applies the current step to cam and advances the counter. When
// the counter passes the step's limit the tour moves to the next step,
// wrapping after the last one.
func (t *Tour) Tick(cam *Camera, speed float32) {
	s := t.steps[t.step]
	if s.Pose {
		cam.SetPosition(s.Position)
		cam.SetFront(s.Front)
	} else {
		cam.Move(s.Move, speed)
	}

	t.counter++
	if t.counter > s.Limit {
		t.counter = 0
		t.step = (t.step + 1) % len(t.steps)
	}
}

// Reset rewinds the tour to its first step.
func (t *Tour) Reset() {
	t.step = 0
	t.counter = 0
}

func (t *Tour) Step() int    { return t.step }
func (t *Tour) Counter() int { return t.counter }
func (t *Tour) Len() int     { return len(t.steps) }
