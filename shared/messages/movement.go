package messages

// MovementUpdate carries a pawn's movement state from its controlling client
// to the server. It is fire-and-forget: the server never answers, and stale
// updates are dropped by sequence.
type MovementUpdate struct {
	X, Y, Z  float64
	Yaw      float64
	Sequence uint32
}
