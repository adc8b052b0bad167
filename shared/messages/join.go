package messages

// JoinRequest is sent by a client after connecting to request a camera pawn.
// ClientID is generated once per client process and comes back on the pawn's
// NetOwner component so the client can recognise its own pawn in snapshots.
type JoinRequest struct {
	ClientID   string
	Version    string
	PlayerName string
}
