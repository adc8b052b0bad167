package network

import (
	"io"
	"testing"

	"github.com/automoto/stratcam/config"
	"github.com/automoto/stratcam/shared/campawn"
	"github.com/automoto/stratcam/shared/gamemath"
	"github.com/automoto/stratcam/shared/leveldata"
	"github.com/automoto/stratcam/shared/netcomponents"
	"github.com/automoto/stratcam/shared/netconfig"
	"github.com/automoto/stratcam/shared/schedule"
	"github.com/automoto/stratcam/shared/terrain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stillCursor struct{}

func (stillCursor) CursorVisible() bool              { return true }
func (stillCursor) SetCursorVisible(bool)            {}
func (stillCursor) CursorPosition() (int, int, bool) { return 0, 0, true }
func (stillCursor) SetCursorPosition(int, int) bool  { return true }
func (stillCursor) SetInputMode(campawn.InputMode)   {}

func mv(seq uint32) netcomponents.NetMovementData {
	return netcomponents.NetMovementData{X: float64(seq), Sequence: seq}
}

func TestLoopback_DeliversInOrder(t *testing.T) {
	l := NewLoopback(1)
	for seq := uint32(1); seq <= 3; seq++ {
		require.NoError(t, l.SendMovement(mv(seq)))
	}
	assert.Equal(t, 3, l.Pending())

	var got []uint32
	n, err := l.Flush(func(m netcomponents.NetMovementData) { got = append(got, m.Sequence) })
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []uint32{1, 2, 3}, got)
	assert.Zero(t, l.Pending())
}

func TestLoopback_DropRate(t *testing.T) {
	l := NewLoopback(7, WithDropRate(1))
	require.NoError(t, l.SendMovement(mv(1)))
	sent, dropped := l.Stats()
	assert.Equal(t, 1, sent)
	assert.Equal(t, 1, dropped)
	assert.Zero(t, l.Pending())
}

// Two pawns over a lossy, reordering link: the receiver ends on the newest
// state whatever order the packets arrive in.
func TestLoopback_EndToEndConverges(t *testing.T) {
	for _, opts := range [][]LoopbackOption{
		nil,
		{WithReorder()},
		{WithReorder(), WithDropRate(0.3)},
	} {
		link := NewLoopback(42, opts...)
		timers := schedule.New()
		world := terrain.NewWorld(&leveldata.TerrainData{
			MapWidth: 20000, MapHeight: 20000,
			Floors: []leveldata.Floor{{Name: "ground", W: 20000, H: 20000, Z: 0, Thickness: 100, Channel: "terrain"}},
		})
		deps := campawn.Deps{
			Collision: world,
			Timers:    timers,
			Sender:    link,
			Camera:    config.Camera,
			Network:   config.Network,
			Logger:    zerolog.New(io.Discard),
		}

		start := campawn.Spawn{Location: gamemath.Vec3{X: 5000, Y: 5000, Z: 50}}
		owner := campawn.New("CameraPawn_0", netconfig.RoleAutonomousProxy, start, deps)
		owner.Possess(campawn.NewLocalController(stillCursor{}))

		serverDeps := deps
		serverDeps.Sender = nil
		mirror := campawn.New("CameraPawn_0", netconfig.RoleAuthority, start, serverDeps)
		mirror.Possess(campawn.NewRemoteController())

		owner.Move(0, 1)
		for i := 0; i < 250; i++ {
			timers.Advance(1.0 / 60)
			owner.Tick(1.0 / 60)
			mirror.Tick(1.0 / 60)
		}

		link.Reverse()
		var newest uint32
		_, err := link.Flush(func(m netcomponents.NetMovementData) {
			newest = max(newest, m.Sequence)
			mirror.ApplyReplicated(m)
		})
		require.NoError(t, err)

		sent, dropped := link.Stats()
		require.Greater(t, sent, dropped, "something must get through")
		assert.Equal(t, newest, mirror.ReplicatedState().Sequence)
		if dropped == 0 {
			assert.Equal(t, owner.OutgoingState(), mirror.ReplicatedState())
		}
	}
}
