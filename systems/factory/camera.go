package factory

import (
	"github.com/automoto/stratcam/archetypes"
	"github.com/automoto/stratcam/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// DefaultViewScale shows roughly a 16000 unit wide slice of the map.
const DefaultViewScale = 0.06

func CreateCamera(ecs *ecs.ECS) *donburi.Entry {
	camera := archetypes.Camera.Spawn(ecs)
	components.Camera.Set(camera, &components.CameraData{Scale: DefaultViewScale})
	return camera
}
