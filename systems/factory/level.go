package factory

import (
	"github.com/automoto/stratcam/archetypes"
	"github.com/automoto/stratcam/components"
	"github.com/automoto/stratcam/logging"
	"github.com/automoto/stratcam/shared/leveldata"
	"github.com/automoto/stratcam/shared/schedule"
	"github.com/automoto/stratcam/shared/terrain"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateLevel builds the collision world for data and the shared timer
// service for the scene's pawns.
func CreateLevel(ecs *ecs.ECS, data *leveldata.TerrainData) *donburi.Entry {
	level := archetypes.Level.Spawn(ecs)
	components.Level.Set(level, &components.LevelData{
		Terrain: data,
		World:   terrain.NewWorld(data),
		Timers:  schedule.New(),
	})
	return level
}

// CreateControls spawns the input and HUD singleton.
func CreateControls(ecs *ecs.ECS, messages *logging.OnScreenBuffer, debugDraw bool) *donburi.Entry {
	controls := archetypes.Controls.Spawn(ecs)
	components.HUD.Set(controls, &components.HUDData{Messages: messages, DebugDraw: debugDraw})
	return controls
}
