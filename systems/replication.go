package systems

import (
	"github.com/automoto/stratcam/components"
	"github.com/automoto/stratcam/logging"
	"github.com/automoto/stratcam/shared/campawn"
	"github.com/automoto/stratcam/shared/gamemath"
	"github.com/automoto/stratcam/shared/netcomponents"
	"github.com/automoto/stratcam/shared/netconfig"
	"github.com/automoto/stratcam/shared/playercolor"
	"github.com/automoto/stratcam/systems/factory"
	"github.com/leap-fish/necs/esync"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// replicatedEntity is one snapshot entity after decoding.
type replicatedEntity struct {
	movement *netcomponents.NetMovementData
	owner    *netcomponents.NetOwnerData
	color    *netcomponents.NetPlayerColorData
}

// Replicator mirrors server snapshots into the client world. Pawns owned by
// this client are driven locally and never take their movement back; every
// other pawn follows the accepted state.
type Replicator struct {
	ClientID   string
	LocalIndex int // Picks the debug colour this client asks for
	Sender     campawn.MovementSender
	Cursor     campawn.CursorController
	RequestFn  playercolor.RequestFunc
	OnScreen   logging.OnScreen
	Log        zerolog.Logger

	present map[esync.NetworkId]bool
}

// Apply reconciles the world with snapshot: creates pawns for new entities,
// applies state and removes pawns the server no longer sends.
func (r *Replicator) Apply(e *ecs.ECS, snapshot esync.WorldSnapshot) {
	if r.present == nil {
		r.present = make(map[esync.NetworkId]bool)
	}
	clear(r.present)

	for _, ent := range snapshot {
		r.present[ent.Id] = true

		var decoded replicatedEntity
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				r.Log.Debug().Err(err).Msg("skipping undecodable component")
				continue
			}
			switch v := instance.(type) {
			case netcomponents.NetMovementData:
				decoded.movement = &v
			case netcomponents.NetOwnerData:
				decoded.owner = &v
			case netcomponents.NetPlayerColorData:
				decoded.color = &v
			}
		}
		r.applyEntity(e, ent.Id, decoded)
	}

	r.removeMissing(e.World)
}

func (r *Replicator) applyEntity(e *ecs.ECS, id esync.NetworkId, ent replicatedEntity) {
	entity := esync.FindByNetworkId(e.World, id)
	if !e.World.Valid(entity) {
		if ent.movement == nil {
			// Nothing to place the pawn with yet.
			return
		}
		if r.spawn(e, id, ent) == nil {
			return
		}
		entity = esync.FindByNetworkId(e.World, id)
	}

	data := components.Pawn.Get(e.World.Entry(entity))

	// The server syncs faster than clients send, so most snapshots repeat the
	// stored state; only a differing sequence goes through the accept rule.
	if ent.movement != nil && !data.Pawn.IsLocallyControlled() &&
		ent.movement.Sequence != data.Pawn.ReplicatedState().Sequence {
		data.Pawn.ApplyReplicated(*ent.movement)
	}
	if ent.color != nil {
		data.Color.ApplyReplicated(ent.color.RGBA())
	}
}

func (r *Replicator) spawn(e *ecs.ECS, id esync.NetworkId, ent replicatedEntity) *donburi.Entry {
	levelEntry, ok := components.Level.First(e.World)
	if !ok {
		return nil
	}
	level := components.Level.Get(levelEntry)

	local := ent.owner != nil && ent.owner.ClientID == r.ClientID
	spec := factory.PawnSpec{
		Index:    int(id),
		Role:     netconfig.RoleSimulatedProxy,
		Mode:     netconfig.Client,
		OnScreen: r.OnScreen,
		Spawn: campawn.Spawn{
			Location: gamemath.Vec3{X: ent.movement.X, Y: ent.movement.Y, Z: ent.movement.Z},
			Yaw:      ent.movement.Yaw,
		},
	}
	if ent.owner != nil {
		spec.ClientID = ent.owner.ClientID
	}
	if local {
		spec.Role = netconfig.RoleAutonomousProxy
		spec.Local = true
		spec.Sender = r.Sender
		spec.Cursor = r.Cursor
		spec.Index = r.LocalIndex
	}

	entry := factory.CreatePawn(e, level, spec, r.Log)
	entry.AddComponent(esync.NetworkIdComponent)
	esync.NetworkIdComponent.SetValue(entry, id)

	data := components.Pawn.Get(entry)
	if local {
		if err := data.Color.BeginReplication(r.LocalIndex, r.RequestFn); err != nil {
			r.Log.Warn().Err(err).Msg("could not request player colour")
		}
		r.Log.Info().Uint("net_id", uint(id)).Msg("local pawn spawned")
	}
	return entry
}

func (r *Replicator) removeMissing(world donburi.World) {
	var gone []*donburi.Entry
	esync.NetworkEntityQuery.Each(world, func(entry *donburi.Entry) {
		id := esync.GetNetworkId(entry)
		if id == nil {
			return
		}
		if !r.present[*id] {
			gone = append(gone, entry)
		}
	})
	for _, entry := range gone {
		if entry.HasComponent(components.Pawn) {
			factory.DestroyPawn(entry)
			continue
		}
		entry.Remove()
	}
}
