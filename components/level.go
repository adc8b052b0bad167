package components

import (
	"github.com/automoto/stratcam/shared/leveldata"
	"github.com/automoto/stratcam/shared/schedule"
	"github.com/automoto/stratcam/shared/terrain"
	"github.com/yohamta/donburi"
)

// LevelData is the loaded map: floors for drawing, the collision world for
// pawn queries and the timer service the pawns share.
type LevelData struct {
	Terrain *leveldata.TerrainData
	World   *terrain.World
	Timers  *schedule.Scheduler
}

var Level = donburi.NewComponentType[LevelData]()
