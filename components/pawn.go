package components

import (
	"github.com/automoto/stratcam/shared/campawn"
	"github.com/automoto/stratcam/shared/playercolor"
	"github.com/yohamta/donburi"
)

// PawnData binds a camera pawn and its player colour to an entity.
type PawnData struct {
	Pawn     *campawn.Pawn
	Color    *playercolor.State
	ClientID string // Owner; empty offline
}

var Pawn = donburi.NewComponentType[PawnData]()
