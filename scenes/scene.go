package scenes

import (
	"github.com/automoto/stratcam/config"
	"github.com/automoto/stratcam/logging"
	"github.com/automoto/stratcam/shared/leveldata"
	"github.com/automoto/stratcam/systems"
	"github.com/automoto/stratcam/systems/factory"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

type SceneChanger interface {
	ChangeScene(scene interface{})
}

// newCameraWorld builds the ECS world both scenes share: level, view camera,
// controls and the systems that drive and draw camera pawns. extra systems
// run after the pawns tick and before the view follows them.
func newCameraWorld(data *leveldata.TerrainData, messages *logging.OnScreenBuffer, prefs *systems.Preferences, extra ...ecs.System) *ecs.ECS {
	e := ecs.NewECS(donburi.NewWorld())

	factory.CreateLevel(e, data)
	factory.CreateCamera(e)
	factory.CreateControls(e, messages, config.Debug.DrawMarkers)

	e.AddSystem(systems.UpdateInput)
	e.AddSystem(systems.ApplyInput)
	e.AddSystem(systems.UpdatePawns)
	for _, s := range extra {
		e.AddSystem(s)
	}
	e.AddSystem(systems.UpdateCamera)
	e.AddSystem(systems.NewPreferenceSaver(prefs))

	e.AddRenderer(config.Default, systems.DrawTerrain)
	e.AddRenderer(config.Default, systems.DrawPawns)
	e.AddRenderer(config.Default, systems.DrawDebugMarkers)
	e.AddRenderer(config.Default, systems.DrawHUD)
	return e
}
