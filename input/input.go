// Package input defines the window-system independent key and mouse
// vocabulary the viewer reacts to. The GLFW window in package core
// translates its native codes into these values.
package input

// Key identifies a keyboard key the viewer binds.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyF11
	Key1
	Key6
	Key7
	Key8
	KeyW
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyR
	KeyB
	KeyV
	KeyF
	KeyG
	KeySpace
	KeyLeftControl
	KeyLeftShift
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyKP1
	KeyKP3
	KeyKP4
	KeyKP5
	KeyKP6
	KeyKP7
	KeyKP8
	KeyKP9

	// KeyCount is the number of known keys; it sizes held-key tables.
	KeyCount
)

var keyNames = [KeyCount]string{
	KeyUnknown:     "unknown",
	KeyEscape:      "escape",
	KeyF11:         "f11",
	Key1:           "1",
	Key6:           "6",
	Key7:           "7",
	Key8:           "8",
	KeyW:           "w",
	KeyA:           "a",
	KeyS:           "s",
	KeyD:           "d",
	KeyQ:           "q",
	KeyE:           "e",
	KeyR:           "r",
	KeyB:           "b",
	KeyV:           "v",
	KeyF:           "f",
	KeyG:           "g",
	KeySpace:       "space",
	KeyLeftControl: "left-control",
	KeyLeftShift:   "left-shift",
	KeyUp:          "up",
	KeyDown:        "down",
	KeyLeft:        "left",
	KeyRight:       "right",
	KeyKP1:         "kp1",
	KeyKP3:         "kp3",
	KeyKP4:         "kp4",
	KeyKP5:         "kp5",
	KeyKP6:         "kp6",
	KeyKP7:         "kp7",
	KeyKP8:         "kp8",
	KeyKP9:         "kp9",
}

func (k Key) String() string {
	if k < 0 || k >= KeyCount {
		return "invalid"
	}
	return keyNames[k]
}

// Valid reports whether k indexes a held-key table.
func (k Key) Valid() bool {
	return k > KeyUnknown && k < KeyCount
}

// Action is the transition reported for a key or mouse button.
type Action int

const (
	Release Action = iota
	Press
	Repeat
)

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)
