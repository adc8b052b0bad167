package scenes

import (
	"image/color"
	"sync"

	"github.com/automoto/stratcam/config"
	"github.com/automoto/stratcam/logging"
	"github.com/automoto/stratcam/network"
	"github.com/automoto/stratcam/shared/leveldata"
	"github.com/automoto/stratcam/shared/netconfig"
	"github.com/automoto/stratcam/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi/ecs"
)

// NetworkedScene mirrors the server's pawns and drives the one it owns.
type NetworkedScene struct {
	ecsWorld     *ecs.ECS
	sceneChanger SceneChanger
	netClient    *network.Client
	data         *leveldata.TerrainData
	prefs        *systems.Preferences
	log          zerolog.Logger
	messages     *logging.OnScreenBuffer
	replicator   *systems.Replicator
	once         sync.Once
}

func NewNetworkedScene(sc SceneChanger, client *network.Client, data *leveldata.TerrainData, prefs *systems.Preferences, logger zerolog.Logger) *NetworkedScene {
	return &NetworkedScene{
		sceneChanger: sc,
		netClient:    client,
		data:         data,
		prefs:        prefs,
		log:          logging.Component(logger, "networked"),
		messages:     logging.NewOnScreenBuffer(),
	}
}

func (ns *NetworkedScene) Update() {
	ns.once.Do(ns.configure)

	state := ns.netClient.State()
	if state == network.StateDisconnected || state == network.StateError {
		ctx := logging.Context{Mode: netconfig.Client, Instance: config.Debug.PlayerIndex, Label: "NetworkedScene"}
		logging.Info(ns.log, ctx, logging.Error, "connection lost (%s): %v, continuing standalone", state, ns.netClient.LastError())
		ns.netClient.Disconnect()
		ns.sceneChanger.ChangeScene(NewStandaloneScene(ns.sceneChanger, ns.data, ns.prefs, ns.log))
		return
	}

	if snap := ns.netClient.LatestSnapshot(); snap != nil {
		ns.replicator.Apply(ns.ecsWorld, *snap)
	}

	ns.ecsWorld.Update()
}

func (ns *NetworkedScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if ns.ecsWorld == nil {
		return
	}

	ns.ecsWorld.Draw(screen)
}

func (ns *NetworkedScene) configure() {
	ns.ecsWorld = newCameraWorld(ns.data, ns.messages, ns.prefs)

	ns.replicator = &systems.Replicator{
		ClientID:   ns.netClient.ID(),
		LocalIndex: config.Debug.PlayerIndex,
		Sender:     ns.netClient,
		Cursor:     systems.Cursor{},
		RequestFn:  ns.netClient.RequestColor,
		OnScreen:   ns.messages,
		Log:        ns.log,
	}
}
