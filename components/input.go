package components

import "github.com/yohamta/donburi"

// InputData is one frame of camera input, already mapped from devices.
type InputData struct {
	Right, Forward float64 // Movement axes in [-1, 1]
	LookYaw        float64 // Cursor delta while rotating
	LookPitch      float64
	Zoom           float64 // Wheel notches, positive zooms in

	Rotating        bool
	RotateStarted   bool
	RotateEnded     bool
	ToggleDebugDraw bool

	lastCursorX, lastCursorY int
	cursorKnown              bool
}

// CursorDelta stores the new cursor position and returns how far it moved
// since the previous call.
func (d *InputData) CursorDelta(x, y int) (float64, float64) {
	if !d.cursorKnown {
		d.lastCursorX, d.lastCursorY = x, y
		d.cursorKnown = true
		return 0, 0
	}
	dx, dy := x-d.lastCursorX, y-d.lastCursorY
	d.lastCursorX, d.lastCursorY = x, y
	return float64(dx), float64(dy)
}

var Input = donburi.NewComponentType[InputData]()
