package campawn

import (
	"github.com/automoto/stratcam/shared/gamemath"
	"github.com/automoto/stratcam/shared/netcomponents"
	"github.com/automoto/stratcam/shared/netconfig"
	"github.com/automoto/stratcam/shared/schedule"
	"github.com/automoto/stratcam/shared/terrain"
	"github.com/rs/zerolog"
)

var (
	_ Tickable      = (*Pawn)(nil)
	_ Replicable    = (*Pawn)(nil)
	_ InputReceiver = (*Pawn)(nil)
)

// Spawn is the initial actor transform.
type Spawn struct {
	Location gamemath.Vec3
	Yaw      float64
}

// Pawn is one camera pawn. The same type serves the controlling side, the
// authority holding another player's pawn and plain observers; which code
// path runs each tick depends on IsLocallyControlled.
type Pawn struct {
	deps  Deps
	log   zerolog.Logger
	label string
	role  netconfig.Role

	controller *Controller

	// Presented transform
	location gamemath.Vec3
	yaw      float64
	armPitch float64

	// Where the controlling side wants to be. groundZ is kept apart from the
	// clipping lift so the lift never accumulates across ticks.
	target    gamemath.Vec3
	groundZ   float64
	groundHit terrain.Hit
	hasGround bool
	lastProbe Probe
	lastClip  ClipResult

	zoomLevel float64 // Desired arm length
	armLength float64 // Smoothed toward zoomLevel
	moveSpeed float64

	pendingX, pendingY float64 // World-space movement input since the last tick

	stored   netcomponents.NetMovementData // Last accepted state
	outgoing netcomponents.NetMovementData // Mirror the send timer pushes

	traceTimer schedule.Handle
	sendTimer  schedule.Handle
	destroyed  bool

	sampler terrainSampler
	clipper clipResolver

	// OnReplicated runs after an incoming state was accepted, with the state
	// it replaced.
	OnReplicated func(old, cur netcomponents.NetMovementData)
}

// New creates a pawn at spawn. Collision and Timers must be set.
func New(label string, role netconfig.Role, spawn Spawn, deps Deps) *Pawn {
	if deps.Collision == nil || deps.Timers == nil {
		panic("campawn: pawn needs a collision query and a timer service")
	}

	cam := deps.Camera
	p := &Pawn{
		deps:     deps,
		log:      deps.Logger.With().Str("pawn", label).Str("role", role.String()).Logger(),
		label:    label,
		role:     role,
		location: spawn.Location,
		yaw:      gamemath.NormalizeAxis(spawn.Yaw),
		armPitch: cam.InitialArmPitch,
		target:   spawn.Location,
		groundZ:  spawn.Location.Z,
		sampler: terrainSampler{
			query:   deps.Collision,
			channel: cam.TraceChannel,
			radius:  cam.TraceRadius,
			extent:  cam.TraceExtent,
		},
		clipper: clipResolver{
			query:     deps.Collision,
			channel:   cam.TraceChannel,
			extent:    cam.TraceExtent,
			clearance: cam.CameraClearance,
		},
	}

	p.zoomLevel = gamemath.Clamp(cam.DefaultZoom, cam.MinZoom, cam.MaxZoom)
	p.armLength = p.zoomLevel
	p.updateMoveSpeed()

	p.stored = netcomponents.NetMovementData{
		X:   spawn.Location.X,
		Y:   spawn.Location.Y,
		Z:   spawn.Location.Z,
		Yaw: p.yaw,
	}
	p.outgoing = p.stored
	return p
}

func (p *Pawn) Label() string {
	return p.label
}

func (p *Pawn) Role() netconfig.Role {
	return p.role
}

func (p *Pawn) HasAuthority() bool {
	return p.role == netconfig.RoleAuthority
}

func (p *Pawn) Controller() *Controller {
	return p.controller
}

// IsLocallyControlled reports whether this process's player drives the pawn.
func (p *Pawn) IsLocallyControlled() bool {
	return p.controller != nil && p.controller.IsLocal()
}

// Possess hands the pawn to c, replacing any previous controller. A local
// controller starts with the arm's pitch, switches the cursor to RTS mode and
// arms the terrain and send timers.
func (p *Pawn) Possess(c *Controller) {
	if p.destroyed {
		return
	}
	if p.controller != nil {
		p.Unpossess()
	}
	p.controller = c
	if c == nil || !c.IsLocal() {
		return
	}

	c.SetControlRotation(gamemath.Rotator{Pitch: p.armPitch, Yaw: p.yaw})
	c.clampPitch(p.deps.Camera.MinPitch, p.deps.Camera.MaxPitch)
	c.enterRTSMode()

	p.target = p.location
	p.outgoing = p.stored
	p.traceTimer = p.deps.Timers.SetTimer(1/p.deps.Camera.TraceFrequency, p.traceTerrain)
	p.startSending()

	p.log.Debug().Msg("possessed by local controller")
}

// Unpossess drops the controller and stops both timers.
func (p *Pawn) Unpossess() {
	p.stopTimers()
	p.controller = nil
	p.pendingX, p.pendingY = 0, 0
}

// Destroy ends the pawn. Further calls to Tick do nothing.
func (p *Pawn) Destroy() {
	p.Unpossess()
	p.destroyed = true
}

func (p *Pawn) stopTimers() {
	if p.traceTimer != 0 {
		p.deps.Timers.ClearTimer(p.traceTimer)
		p.traceTimer = 0
	}
	if p.sendTimer != 0 {
		p.deps.Timers.ClearTimer(p.sendTimer)
		p.sendTimer = 0
	}
}

// Tick advances the pawn by dt seconds.
func (p *Pawn) Tick(dt float64) {
	if p.destroyed || dt <= 0 {
		return
	}
	if p.IsLocallyControlled() {
		p.tickLocal(dt)
	} else {
		p.tickRemote(dt)
	}
}

func (p *Pawn) tickLocal(dt float64) {
	cam := p.deps.Camera
	c := p.controller

	p.armLength = gamemath.InterpTo(p.armLength, p.zoomLevel, dt, cam.ZoomLagSpeed)

	dx, dy := p.consumeInput()
	p.target.X += dx * p.moveSpeed * dt
	p.target.Y += dy * p.moveSpeed * dt

	if p.deps.Bounds != nil {
		p.target.X, p.target.Y = p.deps.Bounds.Clamp(p.target.X, p.target.Y)
	}

	p.target.Z = p.groundZ

	c.clampPitch(cam.MinPitch, cam.MaxPitch)
	control := c.ControlRotation()

	p.lastClip = p.clipper.resolve(p.target, control, p.armLength)
	if p.lastClip.Clipping {
		p.target.Z += p.lastClip.Offset
	}

	p.location = gamemath.VInterpTo(p.location, p.target, dt, cam.LagSpeed)
	if p.lastClip.Clipping {
		p.location.Z = p.target.Z
	}

	current := gamemath.Rotator{Pitch: p.armPitch, Yaw: p.yaw}
	smoothed := gamemath.QInterpTo(current, gamemath.Rotator{Pitch: control.Pitch, Yaw: control.Yaw}, dt, cam.RotationLagSpeed)
	p.armPitch = smoothed.Pitch
	p.yaw = gamemath.NormalizeAxis(smoothed.Yaw)

	p.outgoing.X = p.target.X
	p.outgoing.Y = p.target.Y
	p.outgoing.Z = p.groundZ
	p.outgoing.Yaw = control.Yaw
}

// tickRemote follows the last accepted state. The sender's height is
// trusted, so no terrain or clipping work happens here.
func (p *Pawn) tickRemote(dt float64) {
	p.pendingX, p.pendingY = 0, 0
	p.target = gamemath.Vec3{X: p.stored.X, Y: p.stored.Y, Z: p.stored.Z}
	p.location = gamemath.VInterpTo(p.location, p.target, dt, p.deps.Camera.LagSpeed)
	p.yaw = gamemath.NormalizeAxis(p.stored.Yaw)
}

func (p *Pawn) consumeInput() (float64, float64) {
	x, y := p.pendingX, p.pendingY
	p.pendingX, p.pendingY = 0, 0
	return x, y
}

// traceTerrain is the terrain timer callback.
func (p *Pawn) traceTerrain() {
	hit, ok, probe := p.sampler.sample(p.target)
	p.lastProbe = probe
	if !ok {
		return
	}
	p.groundHit = hit
	p.hasGround = true
	p.groundZ = hit.Location.Z
}

// ReplicatedState returns the last accepted movement state.
func (p *Pawn) ReplicatedState() netcomponents.NetMovementData {
	return p.stored
}

// OutgoingState returns the state the send timer will push next, before its
// sequence bump.
func (p *Pawn) OutgoingState() netcomponents.NetMovementData {
	return p.outgoing
}

// ApplyReplicated runs the accept rule on a state from the network. It must
// not be called for a locally controlled pawn: the owner never takes its own
// movement back.
func (p *Pawn) ApplyReplicated(incoming netcomponents.NetMovementData) bool {
	if p.IsLocallyControlled() {
		panic("campawn: ApplyReplicated on a locally controlled pawn")
	}
	old := p.stored
	if !Accept(&p.stored, incoming) {
		logRejected(p.log, p.deps.Network.LogRejectedUpdates, old, incoming)
		return false
	}
	p.replicated(old)
	return true
}

func (p *Pawn) replicated(old netcomponents.NetMovementData) {
	if !p.IsLocallyControlled() {
		p.target = gamemath.Vec3{X: p.stored.X, Y: p.stored.Y, Z: p.stored.Z}
	}
	if p.OnReplicated != nil {
		p.OnReplicated(old, p.stored)
	}
}

// Accessors used by rendering, persistence and tests.

func (p *Pawn) Location() gamemath.Vec3       { return p.location }
func (p *Pawn) TargetLocation() gamemath.Vec3 { return p.target }
func (p *Pawn) Yaw() float64                  { return p.yaw }
func (p *Pawn) ArmPitch() float64             { return p.armPitch }
func (p *Pawn) ArmLength() float64            { return p.armLength }
func (p *Pawn) ZoomLevel() float64            { return p.zoomLevel }
func (p *Pawn) MoveSpeed() float64            { return p.moveSpeed }
func (p *Pawn) LastProbe() Probe              { return p.lastProbe }
func (p *Pawn) LastClip() ClipResult          { return p.lastClip }

// GroundHit returns the last terrain hit; ok is false until the first one.
func (p *Pawn) GroundHit() (terrain.Hit, bool) {
	return p.groundHit, p.hasGround
}

// ArmRotation is the camera's view rotation: arm pitch on actor yaw.
func (p *Pawn) ArmRotation() gamemath.Rotator {
	return gamemath.Rotator{Pitch: p.armPitch, Yaw: p.yaw}
}

// CameraLocation is where the camera sits at the end of the arm.
func (p *Pawn) CameraLocation() gamemath.Vec3 {
	return p.location.Sub(p.ArmRotation().Vector().Scale(p.armLength))
}
