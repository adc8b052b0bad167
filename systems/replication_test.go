package systems

import (
	"bytes"
	"image/color"
	"io"
	"testing"

	"github.com/automoto/stratcam/components"
	"github.com/automoto/stratcam/shared/campawn"
	"github.com/automoto/stratcam/shared/leveldata"
	"github.com/automoto/stratcam/shared/netcomponents"
	"github.com/automoto/stratcam/shared/playercolor"
	"github.com/automoto/stratcam/systems/factory"
	"github.com/automoto/stratcam/tags"
	"github.com/leap-fish/necs/esync"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

type testCursor struct{ visible bool }

func (c *testCursor) CursorVisible() bool              { return c.visible }
func (c *testCursor) SetCursorVisible(v bool)          { c.visible = v }
func (c *testCursor) CursorPosition() (int, int, bool) { return 0, 0, true }
func (c *testCursor) SetCursorPosition(int, int) bool  { return false }
func (c *testCursor) SetInputMode(campawn.InputMode)   {}

type countingSender struct{ n int }

func (s *countingSender) SendMovement(netcomponents.NetMovementData) error {
	s.n++
	return nil
}

func newReplicationWorld(t *testing.T) (*ecs.ECS, *Replicator, *[]color.RGBA) {
	t.Helper()
	e := ecs.NewECS(donburi.NewWorld())
	factory.CreateLevel(e, &leveldata.TerrainData{
		MapWidth: 20000, MapHeight: 20000,
		Floors: []leveldata.Floor{{Name: "ground", W: 20000, H: 20000, Thickness: 100, Channel: leveldata.DefaultChannel}},
	})

	var requested []color.RGBA
	r := &Replicator{
		ClientID:   "me",
		LocalIndex: 1,
		Sender:     &countingSender{},
		Cursor:     &testCursor{visible: true},
		RequestFn: func(c color.RGBA) error {
			requested = append(requested, c)
			return nil
		},
		Log: zerolog.New(io.Discard),
	}
	r.present = map[esync.NetworkId]bool{}
	return e, r, &requested
}

func pawnFor(t *testing.T, e *ecs.ECS, id esync.NetworkId) *components.PawnData {
	t.Helper()
	entity := esync.FindByNetworkId(e.World, id)
	require.True(t, e.World.Valid(entity), "pawn for net id %d", id)
	return components.Pawn.Get(e.World.Entry(entity))
}

func TestReplicator_OwnPawnIsLocalAndSkipsMovement(t *testing.T) {
	e, r, requested := newReplicationWorld(t)

	r.applyEntity(e, 7, replicatedEntity{
		movement: &netcomponents.NetMovementData{X: 4000, Y: 4000},
		owner:    &netcomponents.NetOwnerData{ClientID: "me"},
	})

	local, ok := tags.LocalPawn.First(e.World)
	require.True(t, ok)
	p := components.Pawn.Get(local).Pawn
	assert.True(t, p.IsLocallyControlled())
	assert.Equal(t, 4000.0, p.Location().X)
	assert.Equal(t, []color.RGBA{playercolor.Green}, *requested, "local index 1 asks for green")

	r.applyEntity(e, 7, replicatedEntity{
		movement: &netcomponents.NetMovementData{X: 9000, Y: 9000, Sequence: 5},
		owner:    &netcomponents.NetOwnerData{ClientID: "me"},
	})
	assert.Zero(t, p.ReplicatedState().Sequence, "owner ignores its own replicated movement")
}

func TestReplicator_RemotePawnFollowsServer(t *testing.T) {
	e, r, _ := newReplicationWorld(t)

	r.applyEntity(e, 3, replicatedEntity{
		movement: &netcomponents.NetMovementData{X: 100, Y: 100},
		owner:    &netcomponents.NetOwnerData{ClientID: "someone-else"},
		color:    &netcomponents.NetPlayerColorData{R: 255, A: 255},
	})
	data := pawnFor(t, e, 3)
	assert.False(t, data.Pawn.IsLocallyControlled())
	assert.Equal(t, playercolor.Red, data.Color.Color())

	r.applyEntity(e, 3, replicatedEntity{movement: &netcomponents.NetMovementData{X: 200, Sequence: 2}})
	r.applyEntity(e, 3, replicatedEntity{movement: &netcomponents.NetMovementData{X: 150, Sequence: 1}})
	assert.Equal(t, uint32(2), data.Pawn.ReplicatedState().Sequence)
	assert.Equal(t, 200.0, data.Pawn.TargetLocation().X)

	_, ok := tags.LocalPawn.First(e.World)
	assert.False(t, ok)
}

func TestReplicator_WaitsForMovementBeforeSpawning(t *testing.T) {
	e, r, _ := newReplicationWorld(t)
	r.applyEntity(e, 4, replicatedEntity{owner: &netcomponents.NetOwnerData{ClientID: "x"}})
	assert.False(t, e.World.Valid(esync.FindByNetworkId(e.World, 4)))
}

func TestReplicator_RemovesPawnsMissingFromSnapshot(t *testing.T) {
	e, r, _ := newReplicationWorld(t)
	r.applyEntity(e, 3, replicatedEntity{movement: &netcomponents.NetMovementData{X: 1}})
	r.present[3] = false

	r.removeMissing(e.World)
	assert.False(t, e.World.Valid(esync.FindByNetworkId(e.World, 3)))
}

func TestReplicator_RepeatedSnapshotIsNotRejected(t *testing.T) {
	e, r, _ := newReplicationWorld(t)
	var logs bytes.Buffer
	r.Log = zerolog.New(&logs).Level(zerolog.DebugLevel)

	r.applyEntity(e, 3, replicatedEntity{movement: &netcomponents.NetMovementData{X: 100}})
	for range 5 {
		r.applyEntity(e, 3, replicatedEntity{movement: &netcomponents.NetMovementData{X: 200, Sequence: 2}})
	}
	assert.NotContains(t, logs.String(), "rejected stale movement")
	assert.Equal(t, uint32(2), pawnFor(t, e, 3).Pawn.ReplicatedState().Sequence)

	r.applyEntity(e, 3, replicatedEntity{movement: &netcomponents.NetMovementData{X: 150, Sequence: 1}})
	assert.Contains(t, logs.String(), "rejected stale movement", "older states still go through the accept rule")
}
