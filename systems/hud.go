package systems

import (
	"fmt"
	"strings"

	"github.com/automoto/stratcam/components"
	"github.com/automoto/stratcam/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

const (
	hudMargin     = 10
	hudLineHeight = 16
	hudSwatch     = 8
)

// DrawHUD prints the local pawn's state and the live on-screen messages.
func DrawHUD(e *ecs.ECS, screen *ebiten.Image) {
	y := hudMargin

	if entry, ok := tags.LocalPawn.First(e.World); ok {
		data := components.Pawn.Get(entry)
		p := data.Pawn
		loc := p.Location()
		out := p.OutgoingState()
		rot := p.ArmRotation()

		vector.DrawFilledRect(screen, hudMargin, float32(y)+4, hudSwatch, hudSwatch, data.Color.Color(), false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  %s", p.Label(), p.Role()), hudMargin+hudSwatch+6, y)
		y += hudLineHeight
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("pos %.0f %.0f %.0f  yaw %.1f  pitch %.1f", loc.X, loc.Y, loc.Z, rot.Yaw, rot.Pitch), hudMargin, y)
		y += hudLineHeight
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("zoom %.0f  arm %.0f  speed %.0f  seq %d", p.ZoomLevel(), p.ArmLength(), p.MoveSpeed(), out.Sequence), hudMargin, y)
		y += hudLineHeight
		if p.LastClip().Clipping {
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("camera lifted %.0f", p.LastClip().Offset), hudMargin, y)
			y += hudLineHeight
		}
	}

	hudEntry, ok := components.HUD.First(e.World)
	if !ok {
		return
	}
	hud := components.HUD.Get(hudEntry)
	if hud.Messages == nil {
		return
	}

	y += hudLineHeight / 2
	for _, msg := range hud.Messages.Messages() {
		vector.DrawFilledRect(screen, hudMargin, float32(y)+4, hudSwatch, hudSwatch, msg.Color, false)
		ebitenutil.DebugPrintAt(screen, strings.ReplaceAll(msg.Text, "\t", "  "), hudMargin+hudSwatch+6, y)
		y += hudLineHeight
	}
}
