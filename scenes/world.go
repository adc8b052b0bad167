package scenes

import (
	"image/color"
	"sync"

	"github.com/automoto/stratcam/components"
	"github.com/automoto/stratcam/config"
	"github.com/automoto/stratcam/logging"
	"github.com/automoto/stratcam/network"
	"github.com/automoto/stratcam/shared/campawn"
	"github.com/automoto/stratcam/shared/gamemath"
	"github.com/automoto/stratcam/shared/leveldata"
	"github.com/automoto/stratcam/shared/netcomponents"
	"github.com/automoto/stratcam/shared/netconfig"
	"github.com/automoto/stratcam/systems"
	"github.com/automoto/stratcam/systems/factory"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi/ecs"
)

// Ghost link quality: bad enough to show the accept rule at work.
const (
	ghostDropRate = 0.25
	ghostSeed     = 1
)

// StandaloneScene runs one pawn that is both authority and locally
// controlled. Its accepted states also go over a lossy loopback link to a
// ghost pawn, which shows what a remote observer would see.
type StandaloneScene struct {
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	data         *leveldata.TerrainData
	prefs        *systems.Preferences
	log          zerolog.Logger
	messages     *logging.OnScreenBuffer
	link         *network.Loopback
	ghost        *campawn.Pawn
	once         sync.Once
}

func NewStandaloneScene(sc SceneChanger, data *leveldata.TerrainData, prefs *systems.Preferences, logger zerolog.Logger) *StandaloneScene {
	return &StandaloneScene{
		sceneChanger: sc,
		data:         data,
		prefs:        prefs,
		log:          logging.Component(logger, "standalone"),
		messages:     logging.NewOnScreenBuffer(),
		link:         network.NewLoopback(ghostSeed, network.WithDropRate(ghostDropRate), network.WithReorder()),
	}
}

func (s *StandaloneScene) Update() {
	s.once.Do(s.configure)
	s.ecs.Update()
}

func (s *StandaloneScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if s.ecs == nil {
		return
	}
	s.ecs.Draw(screen)
}

func (s *StandaloneScene) configure() {
	s.ecs = newCameraWorld(s.data, s.messages, s.prefs, s.relayToGhost)

	levelEntry, _ := components.Level.First(s.ecs.World)
	level := components.Level.Get(levelEntry)

	index := config.Debug.PlayerIndex
	sp := s.data.Spawn(index)
	spawn := campawn.Spawn{Location: gamemath.Vec3{X: sp.X, Y: sp.Y, Z: sp.Z}, Yaw: sp.Yaw}

	local := factory.CreatePawn(s.ecs, level, factory.PawnSpec{
		Index:    index,
		Role:     netconfig.RoleAuthority,
		Mode:     netconfig.Standalone,
		Spawn:    spawn,
		Local:    true,
		Cursor:   systems.Cursor{},
		OnScreen: s.messages,
	}, s.log)

	ghost := factory.CreatePawn(s.ecs, level, factory.PawnSpec{
		Index:    index,
		Role:     netconfig.RoleSimulatedProxy,
		Mode:     netconfig.Standalone,
		Spawn:    spawn,
		Ghost:    true,
		OnScreen: s.messages,
	}, s.log)
	s.ghost = components.Pawn.Get(ghost).Pawn

	localData := components.Pawn.Get(local)
	localData.Pawn.OnReplicated = func(_, cur netcomponents.NetMovementData) {
		if err := s.link.SendMovement(cur); err != nil {
			s.log.Debug().Err(err).Msg("ghost link send failed")
		}
	}

	ghostColor := components.Pawn.Get(ghost).Color
	localData.Color.OnChanged(func(_, cur color.RGBA) {
		ghostColor.ApplyReplicated(cur)
	})
	if err := localData.Color.BeginReplication(index, nil); err != nil {
		s.log.Warn().Err(err).Msg("player colour")
	}

	logging.Game(s.log, logging.Context{Mode: netconfig.Standalone, Label: localData.Pawn.Label(), OnScreen: s.messages},
		logging.Display, "standalone session started")
}

// relayToGhost delivers whatever made it through the link this frame.
func (s *StandaloneScene) relayToGhost(_ *ecs.ECS) {
	if _, err := s.link.Flush(func(m netcomponents.NetMovementData) {
		s.ghost.ApplyReplicated(m)
	}); err != nil {
		s.log.Warn().Err(err).Msg("ghost link")
	}
}
