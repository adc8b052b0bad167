package systems

import (
	"github.com/automoto/stratcam/components"
	"github.com/automoto/stratcam/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/yohamta/donburi/ecs"
)

var (
	forwardKeys = []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}
	backKeys    = []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}
	leftKeys    = []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}
	rightKeys   = []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}
)

const (
	rotateButton   = ebiten.MouseButtonRight
	debugDrawKey   = ebiten.KeyF3
	keyZoomIn      = ebiten.KeyEqual
	keyZoomOut     = ebiten.KeyMinus
	keyboardTurn   = 4.0 // Look units per frame for Q/E
	keyboardZoom   = 0.1 // Wheel notches per frame for +/-
	wheelZoomScale = 1.0
)

// UpdateInput polls devices into the Input component. Must run before
// ApplyInput.
func UpdateInput(e *ecs.ECS) {
	entry, ok := components.Input.First(e.World)
	if !ok {
		return
	}
	in := components.Input.Get(entry)

	in.Right = axis(rightKeys, leftKeys)
	in.Forward = axis(forwardKeys, backKeys)

	_, wheelY := ebiten.Wheel()
	in.Zoom = wheelY * wheelZoomScale
	if ebiten.IsKeyPressed(keyZoomIn) {
		in.Zoom += keyboardZoom
	}
	if ebiten.IsKeyPressed(keyZoomOut) {
		in.Zoom -= keyboardZoom
	}

	in.RotateStarted = inpututil.IsMouseButtonJustPressed(rotateButton)
	in.RotateEnded = inpututil.IsMouseButtonJustReleased(rotateButton)
	in.Rotating = ebiten.IsMouseButtonPressed(rotateButton)

	dx, dy := in.CursorDelta(ebiten.CursorPosition())
	in.LookYaw, in.LookPitch = 0, 0
	if in.Rotating && !in.RotateStarted {
		// Dragging up tilts the camera down onto the map.
		in.LookYaw, in.LookPitch = dx, -dy
	}
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		in.LookYaw -= keyboardTurn
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		in.LookYaw += keyboardTurn
	}

	in.ToggleDebugDraw = inpututil.IsKeyJustPressed(debugDrawKey)
}

// ApplyInput feeds the polled input to the local pawn.
func ApplyInput(e *ecs.ECS) {
	entry, ok := components.Input.First(e.World)
	if !ok {
		return
	}
	in := components.Input.Get(entry)

	if in.ToggleDebugDraw {
		if hud, ok := components.HUD.First(e.World); ok {
			h := components.HUD.Get(hud)
			h.DebugDraw = !h.DebugDraw
		}
	}

	pawnEntry, ok := tags.LocalPawn.First(e.World)
	if !ok {
		return
	}
	pawn := components.Pawn.Get(pawnEntry).Pawn

	if in.RotateStarted {
		pawn.RotateStarted()
	}
	if in.Right != 0 || in.Forward != 0 {
		pawn.Move(in.Right, in.Forward)
	}
	if in.LookYaw != 0 || in.LookPitch != 0 {
		pawn.Look(in.LookYaw, in.LookPitch)
	}
	if in.Zoom != 0 {
		// Wheel up brings the camera closer.
		pawn.Zoom(-in.Zoom)
	}
	if in.RotateEnded {
		pawn.RotateEnded()
	}
}

func axis(positive, negative []ebiten.Key) float64 {
	v := 0.0
	if anyKeyPressed(positive) {
		v++
	}
	if anyKeyPressed(negative) {
		v--
	}
	return v
}

func anyKeyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}
