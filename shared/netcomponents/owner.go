package netcomponents

import "github.com/yohamta/donburi"

// NetOwnerData ties a pawn to the client that controls it. Clients skip
// replicated movement for pawns carrying their own ClientID.
type NetOwnerData struct {
	ClientID string
}

var NetOwner = donburi.NewComponentType[NetOwnerData]()
