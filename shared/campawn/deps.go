// Package campawn implements the RTS camera pawn: client-side movement with
// terrain following and anti-clipping, smoothed presentation, and the
// sequence-guarded replication of its movement state.
//
// Everything runs on one goroutine. The host calls Tick every frame and
// advances the injected TimerService from the same loop; network layers hand
// states to ApplyReplicated on that goroutine too.
package campawn

import (
	"github.com/automoto/stratcam/config"
	"github.com/automoto/stratcam/shared/gamemath"
	"github.com/automoto/stratcam/shared/leveldata"
	"github.com/automoto/stratcam/shared/netcomponents"
	"github.com/automoto/stratcam/shared/schedule"
	"github.com/automoto/stratcam/shared/terrain"
	"github.com/rs/zerolog"
	dmath "github.com/yohamta/donburi/features/math"
)

// Tickable advances per frame.
type Tickable interface {
	Tick(dt float64)
}

// Replicable exposes the replicated movement state and the accept rule.
type Replicable interface {
	ReplicatedState() netcomponents.NetMovementData
	ApplyReplicated(incoming netcomponents.NetMovementData) bool
}

// InputReceiver takes the camera actions. Move and Look carry 2D values,
// Zoom a scalar, RotateStarted/RotateEnded are edges of the rotate modifier.
type InputReceiver interface {
	Move(right, forward float64)
	Look(yaw, pitch float64)
	Zoom(value float64)
	RotateStarted()
	RotateEnded()
}

// CollisionQuery sweeps spheres against named channels. Hits come back
// nearest-to-farthest from start.
type CollisionQuery interface {
	SweepMulti(start, end gamemath.Vec3, radius float64, channel string) []terrain.Hit
	SweepSingle(start, end gamemath.Vec3, radius float64, channel string) (terrain.Hit, bool)
}

// TimerService runs repeating callbacks on the tick goroutine.
type TimerService interface {
	SetTimer(period float64, fn func()) schedule.Handle
	ClearTimer(h schedule.Handle)
}

// MovementSender delivers movement states to the authority, best effort.
type MovementSender interface {
	SendMovement(state netcomponents.NetMovementData) error
}

// Bounds clamps the target location horizontally.
type Bounds struct {
	Min, Max dmath.Vec2
}

// Clamp limits x and y to the rectangle.
func (b Bounds) Clamp(x, y float64) (float64, float64) {
	return gamemath.Clamp(x, b.Min.X, b.Max.X), gamemath.Clamp(y, b.Min.Y, b.Max.Y)
}

// Deps are the host services and tunables a pawn needs. Collision and Timers
// are required; Sender only for pawns that send movement to a remote
// authority. Bounds is optional.
type Deps struct {
	Collision CollisionQuery
	Timers    TimerService
	Sender    MovementSender
	Camera    config.CameraConfig
	Network   config.NetworkConfig
	Bounds    *Bounds
	Logger    zerolog.Logger
}

// DefaultDeps fills the tunables from the global config. Bounds enabled in
// the config win over mapBounds, the playable area read from the map; with
// neither the pawn roams freely.
func DefaultDeps(collision CollisionQuery, timers TimerService, mapBounds *leveldata.Bounds, logger zerolog.Logger) Deps {
	d := Deps{
		Collision: collision,
		Timers:    timers,
		Camera:    config.Camera,
		Network:   config.Network,
		Logger:    logger,
	}
	switch {
	case config.Map.BoundsEnabled:
		d.Bounds = &Bounds{
			Min: dmath.Vec2{X: config.Map.MinX, Y: config.Map.MinY},
			Max: dmath.Vec2{X: config.Map.MaxX, Y: config.Map.MaxY},
		}
	case mapBounds != nil:
		d.Bounds = &Bounds{
			Min: dmath.Vec2{X: mapBounds.MinX, Y: mapBounds.MinY},
			Max: dmath.Vec2{X: mapBounds.MaxX, Y: mapBounds.MaxY},
		}
	}
	return d
}
