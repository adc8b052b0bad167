package netcomponents

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-msgpack/v2/codec"
	"github.com/yohamta/donburi"
)

// NetMovementData is the replicated movement state of a camera pawn.
// Z is the ground height under the pawn, never the clipping-corrected height.
type NetMovementData struct {
	X, Y, Z  float64
	Yaw      float64
	Sequence uint32 // Bumped by the controlling side before every send
}

var NetMovement = donburi.NewComponentType[NetMovementData]()

// Supersedes reports whether m may replace stored. Equal sequences are
// rejected, so re-delivering the same state is a no-op.
func (m NetMovementData) Supersedes(stored NetMovementData) bool {
	return m.Sequence > stored.Sequence
}

// ErrEmptyPayload is returned when decoding zero bytes.
var ErrEmptyPayload = errors.New("decode movement: empty payload")

var movementHandle = &codec.MsgpackHandle{}

// EncodeMovement serialises a movement state for an unreliable channel.
func EncodeMovement(m NetMovementData) ([]byte, error) {
	var b []byte
	if err := codec.NewEncoderBytes(&b, movementHandle).Encode(m); err != nil {
		return nil, fmt.Errorf("encode movement: %w", err)
	}
	return b, nil
}

// DecodeMovement is the inverse of EncodeMovement.
func DecodeMovement(b []byte) (NetMovementData, error) {
	var m NetMovementData
	if len(b) == 0 {
		return m, ErrEmptyPayload
	}
	if err := codec.NewDecoderBytes(b, movementHandle).Decode(&m); err != nil {
		return m, fmt.Errorf("decode movement: %w", err)
	}
	return m, nil
}
