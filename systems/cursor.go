package systems

import (
	"github.com/automoto/stratcam/config"
	"github.com/automoto/stratcam/shared/campawn"
	"github.com/hajimehoshi/ebiten/v2"
)

// Cursor drives the ebiten window cursor for a local controller.
type Cursor struct{}

var _ campawn.CursorController = Cursor{}

func (Cursor) CursorVisible() bool {
	return ebiten.CursorMode() == ebiten.CursorModeVisible
}

func (Cursor) SetCursorVisible(visible bool) {
	if visible {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
		return
	}
	if ebiten.CursorMode() == ebiten.CursorModeVisible {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}
}

func (Cursor) CursorPosition() (int, int, bool) {
	x, y := ebiten.CursorPosition()
	inside := x >= 0 && y >= 0 && x < config.C.Width && y < config.C.Height
	return x, y, inside
}

// SetCursorPosition is unsupported: ebiten cannot warp the OS cursor. A
// captured cursor reappears where it was hidden on most platforms anyway.
func (Cursor) SetCursorPosition(int, int) bool {
	return false
}

func (Cursor) SetInputMode(mode campawn.InputMode) {
	switch mode {
	case campawn.InputModeGameOnly:
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	default:
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
}
