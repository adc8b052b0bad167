package protocol

import (
	"github.com/automoto/stratcam/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDNetMovement    uint = 10
	SyncIDNetOwner       uint = 11
	SyncIDNetPlayerColor uint = 12
)

// RegisterComponents registers all network components with necs for serialization.
// This must be called by both server and client before any network operations.
//
// Movement is registered without an interpolation function: clients smooth
// pawns themselves and must see the exact accepted state, sequence included.
func RegisterComponents() error {
	if err := esync.RegisterComponent(
		SyncIDNetMovement,
		netcomponents.NetMovementData{},
		netcomponents.NetMovement,
	); err != nil {
		return err
	}

	if err := esync.RegisterComponent(
		SyncIDNetOwner,
		netcomponents.NetOwnerData{},
		netcomponents.NetOwner,
	); err != nil {
		return err
	}

	if err := esync.RegisterComponent(
		SyncIDNetPlayerColor,
		netcomponents.NetPlayerColorData{},
		netcomponents.NetPlayerColor,
	); err != nil {
		return err
	}

	return nil
}
