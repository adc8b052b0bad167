package campawn

import "github.com/automoto/stratcam/shared/gamemath"

// Move queues movement along the actor's right and forward axes. The value is
// normalised, so diagonal input is no faster than straight input.
func (p *Pawn) Move(right, forward float64) {
	right, forward = gamemath.SafeNormal2D(right, forward)
	fx, fy := gamemath.Forward2D(p.yaw)
	rx, ry := gamemath.Right2D(p.yaw)
	p.pendingX += fx*forward + rx*right
	p.pendingY += fy*forward + ry*right
}

// Look turns the control rotation; pitch stays inside the configured range.
func (p *Pawn) Look(yaw, pitch float64) {
	c := p.mustController()
	cam := p.deps.Camera
	if cam.InvertPitch {
		pitch = -pitch
	}
	c.addYawInput(yaw * cam.LookSensitivity)
	c.addPitchInput(pitch * cam.LookSensitivity)
	c.clampPitch(cam.MinPitch, cam.MaxPitch)
}

// Zoom changes the desired arm length by a step proportional to the current
// one, so zooming feels equally fast near and far.
func (p *Pawn) Zoom(value float64) {
	cam := p.deps.Camera
	delta := max(p.armLength/gamemath.GoldenRatio, cam.ZoomStepMin)
	p.zoomLevel = gamemath.Clamp(p.zoomLevel+delta*value, cam.MinZoom, cam.MaxZoom)
	p.updateMoveSpeed()
}

// SetZoomLevel jumps straight to an arm length, e.g. a saved preference.
func (p *Pawn) SetZoomLevel(level float64) {
	cam := p.deps.Camera
	p.zoomLevel = gamemath.Clamp(level, cam.MinZoom, cam.MaxZoom)
	p.armLength = p.zoomLevel
	p.updateMoveSpeed()
}

// RotateStarted captures the cursor for look input.
func (p *Pawn) RotateStarted() {
	p.mustController().captureCursor()
}

// RotateEnded releases the cursor where it was captured.
func (p *Pawn) RotateEnded() {
	p.mustController().releaseCursor()
}

func (p *Pawn) updateMoveSpeed() {
	cam := p.deps.Camera
	alpha := gamemath.ZoomAlpha(p.zoomLevel, cam.MinZoom, cam.MaxZoom)
	p.moveSpeed = gamemath.Lerp(cam.MinMoveSpeed, cam.MaxMoveSpeed, alpha)
}

func (p *Pawn) mustController() *Controller {
	if p.controller == nil {
		panic("campawn: camera input without a controller")
	}
	return p.controller
}
