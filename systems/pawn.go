package systems

import (
	"github.com/automoto/stratcam/components"
	"github.com/automoto/stratcam/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// frameDelta is the fixed update step.
func frameDelta() float64 {
	return 1 / float64(ebiten.TPS())
}

// UpdatePawns fires due pawn timers, then ticks every pawn.
func UpdatePawns(e *ecs.ECS) {
	StepPawns(e, frameDelta())
}

// StepPawns is UpdatePawns with an explicit step.
func StepPawns(e *ecs.ECS, dt float64) {
	levelEntry, ok := components.Level.First(e.World)
	if !ok {
		return
	}
	components.Level.Get(levelEntry).Timers.Advance(dt)

	tags.Pawn.Each(e.World, func(entry *donburi.Entry) {
		components.Pawn.Get(entry).Pawn.Tick(dt)
	})
}
