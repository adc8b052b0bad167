package campawn

import "github.com/automoto/stratcam/shared/gamemath"

// InputMode is how the window treats the mouse.
type InputMode int

const (
	// InputModeRTS shows a free cursor that can leave the window.
	InputModeRTS InputMode = iota
	// InputModeGameOnly hides and captures the cursor for look input.
	InputModeGameOnly
)

// CursorController is the window's mouse cursor.
type CursorController interface {
	CursorVisible() bool
	SetCursorVisible(visible bool)
	// CursorPosition reports the cursor in window pixels; ok is false when
	// the cursor is outside the window.
	CursorPosition() (x, y int, ok bool)
	// SetCursorPosition warps the cursor. Returns false if unsupported.
	SetCursorPosition(x, y int) bool
	SetInputMode(mode InputMode)
}

// Controller owns the control rotation of the pawn it possesses. A local
// controller belongs to this process's player and drives the cursor; a remote
// one stands in for a player on another machine.
type Controller struct {
	local    bool
	cursor   CursorController
	rotation gamemath.Rotator

	cursorSnapshot struct {
		x, y int
		ok   bool
	}
}

// NewLocalController returns the controller for this process's player.
func NewLocalController(cursor CursorController) *Controller {
	return &Controller{local: true, cursor: cursor}
}

// NewRemoteController returns a controller for a player on another machine.
func NewRemoteController() *Controller {
	return &Controller{}
}

func (c *Controller) IsLocal() bool {
	return c.local
}

func (c *Controller) ControlRotation() gamemath.Rotator {
	return c.rotation
}

func (c *Controller) SetControlRotation(r gamemath.Rotator) {
	c.rotation = r
}

func (c *Controller) addYawInput(v float64) {
	c.rotation.Yaw = gamemath.NormalizeAxis(c.rotation.Yaw + v)
}

func (c *Controller) addPitchInput(v float64) {
	c.rotation.Pitch += v
}

// clampPitch keeps the control pitch inside [lo, hi]. Pitch is clamped on
// every change, so it never needs wrapping.
func (c *Controller) clampPitch(lo, hi float64) {
	c.rotation.Yaw = gamemath.NormalizeAxis(c.rotation.Yaw)
	c.rotation.Pitch = gamemath.Clamp(c.rotation.Pitch, lo, hi)
}

func (c *Controller) mustCursor() CursorController {
	if c.cursor == nil {
		panic("campawn: local controller has no cursor")
	}
	return c.cursor
}

// enterRTSMode frees the cursor.
func (c *Controller) enterRTSMode() {
	cur := c.mustCursor()
	cur.SetInputMode(InputModeRTS)
	cur.SetCursorVisible(true)
}

// captureCursor hides the cursor for look input and remembers where it was.
// Does nothing if the cursor is already hidden.
func (c *Controller) captureCursor() {
	cur := c.mustCursor()
	if !cur.CursorVisible() {
		return
	}
	cur.SetCursorVisible(false)
	x, y, ok := cur.CursorPosition()
	c.cursorSnapshot.x, c.cursorSnapshot.y, c.cursorSnapshot.ok = x, y, ok
	cur.SetInputMode(InputModeGameOnly)
}

// releaseCursor returns to RTS mode and puts the cursor back where it was
// captured.
func (c *Controller) releaseCursor() {
	cur := c.mustCursor()
	c.enterRTSMode()
	if c.cursorSnapshot.ok {
		cur.SetCursorPosition(c.cursorSnapshot.x, c.cursorSnapshot.y)
	}
}
