package netcomponents

import (
	"image/color"

	"github.com/yohamta/donburi"
)

type NetPlayerColorData struct {
	R, G, B, A uint8
}

var NetPlayerColor = donburi.NewComponentType[NetPlayerColorData]()

func (c NetPlayerColorData) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func ColorFromRGBA(c color.RGBA) NetPlayerColorData {
	return NetPlayerColorData{R: c.R, G: c.G, B: c.B, A: c.A}
}
