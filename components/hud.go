package components

import (
	"github.com/automoto/stratcam/logging"
	"github.com/yohamta/donburi"
)

// HUDData holds the on-screen message sink and the debug draw toggle.
type HUDData struct {
	Messages  *logging.OnScreenBuffer
	DebugDraw bool
}

var HUD = donburi.NewComponentType[HUDData]()
