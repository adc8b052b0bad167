package main

import (
	"image"
	"os"

	"github.com/automoto/stratcam/assets"
	"github.com/automoto/stratcam/config"
	"github.com/automoto/stratcam/logging"
	"github.com/automoto/stratcam/network"
	"github.com/automoto/stratcam/scenes"
	"github.com/automoto/stratcam/shared/protocol"
	"github.com/automoto/stratcam/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/pflag"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(Scene)
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

func main() {
	fs := pflag.NewFlagSet("stratcam", pflag.ExitOnError)
	configPath := fs.String("config", "", "Config file (json, yaml or toml)")
	assetsDir := fs.String("assets", "", "Load maps from this directory instead of the embedded copy")
	name := fs.String("name", "player", "Player name sent to the server")
	fs.String("connect", "", "Join this server (host:port) instead of playing standalone")
	fs.String("terrain", "", "Map path inside the assets")
	fs.Bool("debug-draw", false, "Draw camera debug markers")
	fs.String("log-level", "", "Log level: trace, debug, info, warn, error")
	fs.Int("player-index", 0, "Local player index, picks spawn and debug colour")
	fs.String("version", "", "Client version sent on join")
	_ = fs.Parse(os.Args[1:])

	bootLog := logging.New(os.Stderr, logging.ParseLevel("info"))
	if err := config.Load(*configPath, fs); err != nil {
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}
	logger := logging.New(os.Stderr, logging.ParseLevel(config.Debug.LogLevel))

	// Register network components for client-side deserialization
	if err := protocol.RegisterComponents(); err != nil {
		logger.Fatal().Err(err).Msg("failed to register network components")
	}

	prefs, err := systems.OpenPreferences(logging.Component(logger, "preferences"))
	if err != nil {
		logger.Warn().Err(err).Msg("could not initialize persistence")
	}
	systems.ApplyPreferencesGlobal(prefs.Load())

	data, err := assets.LoadTerrain(assets.FS(*assetsDir), config.Map.TerrainFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load map")
	}

	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle("stratcam")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)

	g := &Game{}
	if addr := config.Network.Address; config.Network.Online && addr != "" {
		client := network.NewClient(logging.Component(logger, "client"))
		client.Connect(addr, config.Network.Version, *name)
		g.scene = scenes.NewNetworkedScene(g, client, data, prefs, logger)
	} else {
		g.scene = scenes.NewStandaloneScene(g, data, prefs, logger)
	}

	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal().Err(err).Msg("game exited")
	}
}
