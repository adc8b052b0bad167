package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/automoto/stratcam/assets"
	"github.com/automoto/stratcam/config"
	"github.com/automoto/stratcam/logging"
	"github.com/automoto/stratcam/server/core"
	"github.com/automoto/stratcam/shared/protocol"
	"github.com/spf13/pflag"
)

func main() {
	fs := pflag.NewFlagSet("stratcam-server", pflag.ExitOnError)
	configPath := fs.String("config", "", "Config file (json, yaml or toml)")
	assetsDir := fs.String("assets", "", "Load maps from this directory instead of the embedded copy")
	fs.Uint("port", 7373, "Server port")
	fs.Int("tickrate", 20, "Server tick rate (updates per second)")
	fs.String("version", "", "Required client version (empty = accept any)")
	fs.String("terrain", "", "Map path inside the assets")
	fs.String("log-level", "", "Log level: trace, debug, info, warn, error")
	_ = fs.Parse(os.Args[1:])

	bootLog := logging.New(os.Stderr, logging.ParseLevel("info"))
	if err := config.Load(*configPath, fs); err != nil {
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}
	logger := logging.New(os.Stderr, logging.ParseLevel(config.Debug.LogLevel))

	if err := protocol.RegisterComponents(); err != nil {
		logger.Fatal().Err(err).Msg("failed to register components")
	}

	level, err := core.LoadServerLevel(assets.FS(*assetsDir), config.Map.TerrainFile, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load level")
	}

	server := core.NewServer(level, config.Network.TickRate, config.Network.Version, logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info().Msg("shutting down server")
		server.Stop()
		os.Exit(0)
	}()

	logger.Info().
		Uint("port", config.Network.Port).
		Int("tick_rate", config.Network.TickRate).
		Str("version", config.Network.Version).
		Str("map", config.Map.TerrainFile).
		Msg("starting stratcam server")
	if err := server.Start(config.Network.Port); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}
