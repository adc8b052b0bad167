package tags

import "github.com/yohamta/donburi"

var (
	Pawn      = donburi.NewTag().SetName("Pawn")
	LocalPawn = donburi.NewTag().SetName("LocalPawn")
	Ghost     = donburi.NewTag().SetName("Ghost") // Offline observer fed through the loopback link
)
