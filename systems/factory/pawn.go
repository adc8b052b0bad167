package factory

import (
	"fmt"

	"github.com/automoto/stratcam/archetypes"
	"github.com/automoto/stratcam/components"
	"github.com/automoto/stratcam/logging"
	"github.com/automoto/stratcam/shared/campawn"
	"github.com/automoto/stratcam/shared/netconfig"
	"github.com/automoto/stratcam/shared/playercolor"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// PawnSpec describes one pawn to spawn into a client world.
type PawnSpec struct {
	Index    int
	Role     netconfig.Role
	Mode     netconfig.NetMode
	Spawn    campawn.Spawn
	Local    bool // Possessed by this process's player
	Ghost    bool
	ClientID string
	Sender   campawn.MovementSender
	Cursor   campawn.CursorController
	OnScreen logging.OnScreen
}

// CreatePawn spawns a camera pawn with its player colour. Local pawns get a
// local controller driving cursor; every other pawn gets a remote one.
func CreatePawn(ecs *ecs.ECS, level *components.LevelData, spec PawnSpec, logger zerolog.Logger) *donburi.Entry {
	deps := campawn.DefaultDeps(level.World, level.Timers, level.Terrain.Bounds, logger)
	deps.Sender = spec.Sender

	label := fmt.Sprintf("CameraPawn_%d", spec.Index)
	pawn := campawn.New(label, spec.Role, spec.Spawn, deps)

	ctx := logging.Context{
		Mode:     spec.Mode,
		Instance: spec.Index,
		Label:    fmt.Sprintf("PlayerState_%d", spec.Index),
		OnScreen: spec.OnScreen,
	}
	colour := playercolor.New(ctx, logger, spec.Role == netconfig.RoleAuthority)

	arch := archetypes.Pawn
	switch {
	case spec.Local:
		arch = archetypes.LocalPawn
	case spec.Ghost:
		arch = archetypes.Ghost
	}
	entry := arch.Spawn(ecs)
	components.Pawn.Set(entry, &components.PawnData{
		Pawn:     pawn,
		Color:    colour,
		ClientID: spec.ClientID,
	})

	if spec.Local {
		pawn.Possess(campawn.NewLocalController(spec.Cursor))
	} else {
		pawn.Possess(campawn.NewRemoteController())
	}
	return entry
}

// DestroyPawn stops the pawn's timers and removes its entity.
func DestroyPawn(entry *donburi.Entry) {
	components.Pawn.Get(entry).Pawn.Destroy()
	entry.Remove()
}
