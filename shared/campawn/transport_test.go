package campawn

import (
	"testing"

	"github.com/automoto/stratcam/shared/netcomponents"
	"github.com/automoto/stratcam/shared/netconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mv(seq uint32, x float64) netcomponents.NetMovementData {
	return netcomponents.NetMovementData{X: x, Sequence: seq}
}

func TestAccept_OrderIndependent(t *testing.T) {
	pairs := [][2]netcomponents.NetMovementData{
		{mv(1, 10), mv(2, 20)},
		{mv(5, -3), mv(9, 7)},
		{mv(0, 0), mv(1, 1)},
	}
	for _, pair := range pairs {
		a, b := pair[0], pair[1]

		var inOrder netcomponents.NetMovementData
		Accept(&inOrder, a)
		Accept(&inOrder, b)

		var reversed netcomponents.NetMovementData
		Accept(&reversed, b)
		Accept(&reversed, a)

		if b.Sequence > 0 {
			assert.Equal(t, b, inOrder)
			assert.Equal(t, b, reversed)
		}
	}
}

func TestAccept_AnyPermutationConverges(t *testing.T) {
	states := []netcomponents.NetMovementData{mv(3, 3), mv(1, 1), mv(4, 4), mv(2, 2)}
	perms := [][]int{{0, 1, 2, 3}, {3, 2, 1, 0}, {1, 3, 0, 2}, {2, 0, 3, 1}}

	for _, perm := range perms {
		var stored netcomponents.NetMovementData
		for _, i := range perm {
			Accept(&stored, states[i])
		}
		assert.Equal(t, mv(4, 4), stored, "perm %v", perm)
	}
}

func TestAccept_Idempotent(t *testing.T) {
	stored := mv(7, 70)
	same := mv(7, 70)
	assert.False(t, Accept(&stored, same))
	assert.False(t, Accept(&stored, same))
	assert.Equal(t, mv(7, 70), stored)

	// Equal sequence with different payload is still stale.
	assert.False(t, Accept(&stored, mv(7, 999)))
	assert.Equal(t, mv(7, 70), stored)
}

// Authority holds seq 5 and receives seq 5 again.
func TestAuthority_RejectsEqualSequence(t *testing.T) {
	h := newHarness()
	p := h.pawn(netconfig.RoleAuthority, at(0, 0, 0))
	p.Possess(NewRemoteController())

	require.True(t, p.ApplyReplicated(netcomponents.NetMovementData{X: 1, Sequence: 5}))
	before := p.ReplicatedState()
	h.logs.Reset()

	assert.False(t, p.ApplyReplicated(netcomponents.NetMovementData{X: 99, Sequence: 5}))
	assert.Equal(t, before, p.ReplicatedState())
	assert.Contains(t, h.logs.String(), "rejected stale movement")
	assert.Contains(t, h.logs.String(), `"incoming_seq":5`)
}

// Authority holds seq 5 and receives seq 6 at (10,0,0).
func TestAuthority_AcceptsNewerSequence(t *testing.T) {
	h := newHarness()
	p := h.pawn(netconfig.RoleAuthority, at(0, 0, 0))
	p.Possess(NewRemoteController())
	require.True(t, p.ApplyReplicated(netcomponents.NetMovementData{Sequence: 5}))

	incoming := netcomponents.NetMovementData{X: 10, Y: 0, Z: 0, Sequence: 6}
	assert.True(t, p.ApplyReplicated(incoming))
	assert.Equal(t, incoming, p.ReplicatedState())
	assert.Equal(t, at(10, 0, 0), p.TargetLocation())
}

func TestRejectedLogIsOptional(t *testing.T) {
	h := newHarness()
	h.deps.Network.LogRejectedUpdates = false
	p := h.pawn(netconfig.RoleSimulatedProxy, at(0, 0, 0))

	p.ApplyReplicated(mv(2, 0))
	h.logs.Reset()
	p.ApplyReplicated(mv(1, 0))
	assert.Empty(t, h.logs.String())
}

func TestOnReplicatedHook(t *testing.T) {
	h := newHarness()
	p := h.pawn(netconfig.RoleSimulatedProxy, at(0, 0, 0))

	var calls [][2]uint32
	p.OnReplicated = func(old, cur netcomponents.NetMovementData) {
		calls = append(calls, [2]uint32{old.Sequence, cur.Sequence})
	}

	p.ApplyReplicated(mv(2, 0))
	p.ApplyReplicated(mv(1, 0))
	p.ApplyReplicated(mv(3, 0))
	assert.Equal(t, [][2]uint32{{0, 2}, {2, 3}}, calls)
}

func TestClientSendsWithIncreasingSequence(t *testing.T) {
	h := newHarness(ground(0))
	p := h.pawn(netconfig.RoleAutonomousProxy, at(centre, centre, 50))
	p.Possess(NewLocalController(newFakeCursor()))

	p.Move(0, 1)
	for i := 0; i < 70; i++ {
		h.step(p, 1.0/60)
	}

	require.Len(t, h.sender.sent, 3, "3 Hz for a little over a second")
	for i, m := range h.sender.sent {
		assert.Equal(t, uint32(i+1), m.Sequence)
	}

	last := h.sender.sent[2]
	assert.Greater(t, last.X, centre, "moved forward")
	assert.InDelta(t, 50.0, last.Z, 1e-9, "ground height, sphere centre above Z=0")
	assert.Equal(t, uint32(0), p.ReplicatedState().Sequence, "owner never stores its own sends")
}

func TestClientSendFailureIsNotFatal(t *testing.T) {
	h := newHarness()
	h.sender.err = errOffline
	p := h.pawn(netconfig.RoleAutonomousProxy, at(centre, centre, 0))
	p.Possess(NewLocalController(newFakeCursor()))

	for i := 0; i < 45; i++ {
		h.step(p, 1.0/60)
	}
	assert.Len(t, h.sender.sent, 2)
	assert.Equal(t, uint32(2), p.OutgoingState().Sequence)
}

func TestAuthorityCommitsOwnMovement(t *testing.T) {
	h := newHarness()
	h.deps.Sender = nil
	p := h.pawn(netconfig.RoleAuthority, at(centre, centre, 0))
	p.Possess(NewLocalController(newFakeCursor()))

	accepted := 0
	p.OnReplicated = func(_, _ netcomponents.NetMovementData) { accepted++ }

	p.Move(1, 0)
	for i := 0; i < 70; i++ {
		h.step(p, 1.0/60)
	}

	assert.Equal(t, 3, accepted)
	assert.Equal(t, uint32(3), p.ReplicatedState().Sequence)
	assert.Greater(t, p.ReplicatedState().Y, centre, "right is +Y at yaw 0")
}
