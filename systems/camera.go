package systems

import (
	"math"

	"github.com/automoto/stratcam/components"
	"github.com/automoto/stratcam/config"
	"github.com/automoto/stratcam/shared/gamemath"
	"github.com/automoto/stratcam/systems/factory"
	"github.com/automoto/stratcam/tags"
	"github.com/yohamta/donburi/ecs"
)

// UpdateCamera centres the top-down view on the local pawn. The view scale
// follows the arm length, so zooming the pawn zooms the map.
func UpdateCamera(e *ecs.ECS) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return
	}
	camera := components.Camera.Get(cameraEntry)

	pawnEntry, ok := tags.LocalPawn.First(e.World)
	if !ok {
		return
	}
	pawn := components.Pawn.Get(pawnEntry).Pawn

	loc := pawn.Location()
	camera.Position.X = loc.X
	camera.Position.Y = loc.Y

	camera.Scale = viewScale(pawn.ArmLength())

	levelEntry, ok := components.Level.First(e.World)
	if !ok {
		return
	}
	level := components.Level.Get(levelEntry)

	// Keep the map filling the screen where it is big enough to.
	visibleW := float64(config.C.Width) / camera.Scale
	visibleH := float64(config.C.Height) / camera.Scale
	camera.Position.X = clampView(camera.Position.X, visibleW, level.Terrain.MapWidth)
	camera.Position.Y = clampView(camera.Position.Y, visibleH, level.Terrain.MapHeight)
}

// viewScale maps the arm length onto screen pixels per world unit: the
// default zoom shows the map at factory.DefaultViewScale.
func viewScale(armLength float64) float64 {
	cam := config.Camera
	if armLength <= 0 || cam.DefaultZoom <= 0 {
		return factory.DefaultViewScale
	}
	scale := factory.DefaultViewScale * cam.DefaultZoom / armLength
	return gamemath.Clamp(scale, factory.DefaultViewScale/8, factory.DefaultViewScale*4)
}

func clampView(centre, visible, size float64) float64 {
	if visible >= size {
		return size / 2
	}
	return math.Max(visible/2, math.Min(size-visible/2, centre))
}

// worldToScreen projects a world point through the view.
func worldToScreen(camera *components.CameraData, x, y float64) (float32, float32) {
	sx := (x-camera.Position.X)*camera.Scale + float64(config.C.Width)/2
	sy := (y-camera.Position.Y)*camera.Scale + float64(config.C.Height)/2
	return float32(sx), float32(sy)
}
