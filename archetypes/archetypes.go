package archetypes

import (
	"github.com/automoto/stratcam/components"
	cfg "github.com/automoto/stratcam/config"
	"github.com/automoto/stratcam/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Pawn = newArchetype(
		tags.Pawn,
		components.Pawn,
	)
	LocalPawn = newArchetype(
		tags.Pawn,
		tags.LocalPawn,
		components.Pawn,
	)
	Ghost = newArchetype(
		tags.Pawn,
		tags.Ghost,
		components.Pawn,
	)
	Level = newArchetype(
		components.Level,
	)
	Camera = newArchetype(
		components.Camera,
	)
	Controls = newArchetype(
		components.Input,
		components.HUD,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
