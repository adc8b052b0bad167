package systems

import (
	"image/color"
	"math"

	"github.com/automoto/stratcam/components"
	"github.com/automoto/stratcam/config"
	"github.com/automoto/stratcam/shared/gamemath"
	"github.com/automoto/stratcam/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const (
	pawnRadius   = 6
	ghostRadius  = 9
	coneLength   = 40
	coneHalfDeg  = 20
	markerRadius = 4
)

// DrawTerrain fills each floor footprint, brighter the higher it is.
func DrawTerrain(e *ecs.ECS, screen *ebiten.Image) {
	camera, ok := firstCamera(e)
	if !ok {
		return
	}
	levelEntry, ok := components.Level.First(e.World)
	if !ok {
		return
	}
	level := components.Level.Get(levelEntry)

	top := 1.0
	for _, f := range level.Terrain.Floors {
		top = math.Max(top, f.Z)
	}

	for _, f := range level.Terrain.Floors {
		x, y := worldToScreen(camera, f.X, f.Y)
		w := float32(f.W * camera.Scale)
		h := float32(f.H * camera.Scale)
		vector.DrawFilledRect(screen, x, y, w, h, floorColor(f.Z/top, f.Channel == config.Camera.TraceChannel), false)
	}
}

func floorColor(height float64, traced bool) color.RGBA {
	if !traced {
		return color.RGBA{R: 30, G: 60, B: 120, A: 255}
	}
	v := uint8(40 + gamemath.Clamp(height, 0, 1)*140)
	return color.RGBA{R: v / 2, G: v, B: v / 2, A: 255}
}

// DrawPawns draws every pawn in its player colour, with its facing.
func DrawPawns(e *ecs.ECS, screen *ebiten.Image) {
	camera, ok := firstCamera(e)
	if !ok {
		return
	}

	tags.Pawn.Each(e.World, func(entry *donburi.Entry) {
		data := components.Pawn.Get(entry)
		p := data.Pawn
		loc := p.Location()
		x, y := worldToScreen(camera, loc.X, loc.Y)

		c := data.Color.Color()
		if c.A == 0 {
			c = config.Gray
		}

		if entry.HasComponent(tags.Ghost) {
			vector.StrokeCircle(screen, x, y, ghostRadius, 1, c, true)
			return
		}
		vector.DrawFilledCircle(screen, x, y, pawnRadius, c, true)
		fx, fy := gamemath.Forward2D(p.Yaw())
		vector.StrokeLine(screen, x, y, x+float32(fx)*pawnRadius*2, y+float32(fy)*pawnRadius*2, 2, c, true)
	})
}

// DrawDebugMarkers shows the local pawn's target, its lagged location, the
// look, actor and arm directions and the last terrain probe.
func DrawDebugMarkers(e *ecs.ECS, screen *ebiten.Image) {
	hudEntry, ok := components.HUD.First(e.World)
	if !ok || !components.HUD.Get(hudEntry).DebugDraw {
		return
	}
	camera, ok := firstCamera(e)
	if !ok {
		return
	}
	pawnEntry, ok := tags.LocalPawn.First(e.World)
	if !ok {
		return
	}
	p := components.Pawn.Get(pawnEntry).Pawn

	target := p.TargetLocation()
	tx, ty := worldToScreen(camera, target.X, target.Y)
	vector.StrokeCircle(screen, tx, ty, markerRadius*2, 1, config.Yellow, true)

	loc := p.Location()
	lx, ly := worldToScreen(camera, loc.X, loc.Y)
	vector.StrokeCircle(screen, lx, ly, markerRadius, 1, config.Green, true)

	if c := p.Controller(); c != nil {
		drawCone(screen, tx, ty, c.ControlRotation().Yaw, config.Yellow)
	}
	drawCone(screen, lx, ly, p.Yaw(), config.Orange)

	cam := p.CameraLocation()
	cx, cy := worldToScreen(camera, cam.X, cam.Y)
	vector.StrokeLine(screen, cx, cy, lx, ly, 1, config.Red, true)
	vector.DrawFilledCircle(screen, cx, cy, markerRadius, config.Red, true)

	probe := p.LastProbe()
	if probe.Radius > 0 {
		px, py := worldToScreen(camera, probe.Start.X, probe.Start.Y)
		c := config.Gray
		if len(probe.Hits) > 0 {
			c = config.DarkGreen
		}
		vector.StrokeCircle(screen, px, py, float32(probe.Radius*camera.Scale)+1, 1, c, true)
	}
}

func drawCone(screen *ebiten.Image, x, y float32, yaw float64, c color.RGBA) {
	for _, d := range []float64{-coneHalfDeg, coneHalfDeg} {
		fx, fy := gamemath.Forward2D(yaw + d)
		vector.StrokeLine(screen, x, y, x+float32(fx)*coneLength, y+float32(fy)*coneLength, 1, c, true)
	}
}

func firstCamera(e *ecs.ECS) (*components.CameraData, bool) {
	entry, ok := components.Camera.First(e.World)
	if !ok {
		return nil, false
	}
	return components.Camera.Get(entry), true
}
