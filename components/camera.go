package components

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// CameraData is the top-down view onto the map. Position is the world point
// at the centre of the screen.
type CameraData struct {
	Position math.Vec2
	Scale    float64 // Screen pixels per world unit
}

var Camera = donburi.NewComponentType[CameraData]()
