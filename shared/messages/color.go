package messages

// SetPlayerColor asks the server to change the sender's player colour.
type SetPlayerColor struct {
	R, G, B, A uint8
}
