package viewer

import (
	"strings"

	"scene-viewer/input"
)

// Effect lists side effects an input event asks the caller to apply
// outside the state: window changes, GL state, matrix uploads.
type Effect uint8

const (
	EffectClose Effect = 1 << iota
	EffectFullscreen
	EffectPolygonMode
	EffectProjection
	EffectView
)

// Has reports whether every bit of o is set in e.
func (e Effect) Has(o Effect) bool { return e&o == o }

func (e Effect) String() string {
	if e == 0 {
		return "none"
	}
	names := []string{"close", "fullscreen", "polygon-mode", "projection", "view"}
	var parts []string
	for i, n := range names {
		if e&(1<<i) != 0 {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, "|")
}

// HandleKey applies one key transition. Boolean toggles flip only on
// Press so holding a key never makes them flicker; fog and light nudges
// also step on Repeat.
func (s *State) HandleKey(key input.Key, action input.Action) Effect {
	if !key.Valid() {
		return 0
	}
	switch action {
	case input.Press:
		s.held[key] = true
	case input.Release:
		s.held[key] = false
		return 0
	}

	t := &s.Toggles
	if action == input.Repeat {
		return s.nudge(key)
	}

	switch key {
	case input.KeyEscape:
		return EffectClose
	case input.KeyF11:
		t.Fullscreen = !t.Fullscreen
		return EffectFullscreen
	case input.Key6:
		t.Mode = ModeLines
		return EffectPolygonMode
	case input.Key7:
		t.Mode = ModePoints
		return EffectPolygonMode
	case input.Key8:
		t.Mode = ModeFill
		return EffectPolygonMode
	case input.Key1:
		if t.Touring() {
			t.Control = ControlFree
			s.syncLookAngles()
		} else {
			t.Control = ControlTouring
		}
		s.Tour.Reset()
	case input.KeyR:
		s.Camera.Reset()
		t.Yaw, t.Pitch = DefaultYaw, 0
		s.updateView()
		return EffectView
	case input.KeyF:
		t.Flashlight = !t.Flashlight
	case input.KeyG:
		t.Snow = !t.Snow
	case input.KeyKP9:
		t.Greyscale = !t.Greyscale
	case input.KeyUp:
		t.Wind.North = !t.Wind.North
	case input.KeyDown:
		t.Wind.South = !t.Wind.South
	case input.KeyRight:
		t.Wind.East = !t.Wind.East
	case input.KeyLeft:
		t.Wind.West = !t.Wind.West
	case input.KeyKP7:
		t.LightDir = DefaultLightDir
	default:
		return s.nudge(key)
	}
	return 0
}

// nudge handles the keys that step a scalar on press and on repeat.
func (s *State) nudge(key input.Key) Effect {
	t := &s.Toggles
	switch key {
	case input.KeyB:
		t.FogDensity += FogStep
	case input.KeyV:
		t.FogDensity -= FogStep
	case input.KeyKP8:
		t.LightDir[1] -= LightStep
	case input.KeyKP5:
		t.LightDir[1] += LightStep
	case input.KeyKP4:
		t.LightDir[0] -= LightStep
	case input.KeyKP6:
		t.LightDir[0] += LightStep
	case input.KeyKP1:
		t.LightDir[2] -= LightStep
	case input.KeyKP3:
		t.LightDir[2] += LightStep
	}
	return 0
}

// HandleCursor turns mouse motion into yaw and pitch. The first event
// only records the position. While touring the motion is tracked but
// does not steer.
func (s *State) HandleCursor(x, y float64) Effect {
	if s.firstLook {
		s.lastX, s.lastY = x, y
		s.firstLook = false
		return 0
	}
	dx := float32(x-s.lastX) * s.Settings.Sensitivity
	dy := float32(s.lastY-y) * s.Settings.Sensitivity
	s.lastX, s.lastY = x, y

	if s.Toggles.Touring() || (dx == 0 && dy == 0) {
		return 0
	}
	t := &s.Toggles
	t.Yaw += dx
	t.Pitch = clamp(t.Pitch+dy, -MaxPitch, MaxPitch)
	s.Camera.Rotate(t.Pitch, t.Yaw)
	s.updateView()
	return EffectView
}

// HandleScroll narrows the field of view on scroll up.
func (s *State) HandleScroll(_, yoff float64) Effect {
	t := &s.Toggles
	fov := clamp(t.FOV-float32(yoff), MinFOV, MaxFOV)
	if fov == t.FOV {
		return 0
	}
	t.FOV = fov
	s.updateProjection()
	return EffectProjection
}

// HandleMouseButton zooms while the right button is down and restores
// the previous field of view on release.
func (s *State) HandleMouseButton(b input.MouseButton, action input.Action) Effect {
	if b != input.MouseRight {
		return 0
	}
	t := &s.Toggles
	switch action {
	case input.Press:
		if s.zoomPrior == zoomNoPrior {
			s.zoomPrior = t.FOV
		}
		t.FOV = clamp(s.Settings.ZoomFOV, MinFOV, MaxFOV)
	case input.Release:
		if s.zoomPrior == zoomNoPrior {
			return 0
		}
		t.FOV = s.zoomPrior
		s.zoomPrior = zoomNoPrior
	default:
		return 0
	}
	s.updateProjection()
	return EffectProjection
}

// HandleResize tracks the framebuffer size. A zero height (minimised
// window) is ignored so the aspect ratio never divides by zero.
func (s *State) HandleResize(w, h int) Effect {
	if !s.resize(w, h) {
		return 0
	}
	return EffectProjection
}

// speed is the per-frame movement distance for dt seconds.
func (s *State) speed(dt float32) float32 {
	base := s.Settings.BaseSpeed
	if s.Held(input.KeyLeftShift) {
		base = s.Settings.BoostSpeed
	}
	return base * s.Aspect * dt
}
