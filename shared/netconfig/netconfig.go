// Package netconfig defines lightweight types shared between client and server
// for network serialization. It must have zero dependencies on ebiten or any
// graphics library so the dedicated server binary stays headless.
package netconfig

// NetMode describes how the running process takes part in the session.
type NetMode int

const (
	Standalone      NetMode = iota // Offline, owns everything
	ListenServer                   // Authority with a local player
	DedicatedServer                // Headless authority
	Client                         // Connected to a remote authority
)

// String is the short label used in log lines. Clients are further
// distinguished by instance number where one is known.
func (m NetMode) String() string {
	switch m {
	case ListenServer:
		return "Server L"
	case DedicatedServer:
		return "Server D"
	case Client:
		return "Client"
	default:
		return "Standalone"
	}
}

// IsServer reports whether the process owns authoritative state.
func (m NetMode) IsServer() bool {
	return m == Standalone || m == ListenServer || m == DedicatedServer
}

// Role is a single pawn's relationship to the local process.
type Role int

const (
	RoleNone Role = iota
	RoleSimulatedProxy
	RoleAutonomousProxy
	RoleAuthority
)

func (r Role) String() string {
	switch r {
	case RoleSimulatedProxy:
		return "SimulatedProxy"
	case RoleAutonomousProxy:
		return "AutonomousProxy"
	case RoleAuthority:
		return "Authority"
	default:
		return "None"
	}
}
