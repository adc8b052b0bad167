package core

import (
	"fmt"
	"io/fs"

	"github.com/automoto/stratcam/shared/leveldata"
	"github.com/automoto/stratcam/shared/terrain"
	"github.com/rs/zerolog"
)

// ServerLevel holds the server's collision world and spawn data for a map.
type ServerLevel struct {
	Terrain *leveldata.TerrainData
	World   *terrain.World
}

// NewServerLevel builds the collision world from parsed terrain data.
func NewServerLevel(data *leveldata.TerrainData, logger zerolog.Logger) *ServerLevel {
	world := terrain.NewWorld(data)

	logger.Info().
		Int("floors", world.FloorCount()).
		Int("spawns", len(data.SpawnPoints)).
		Float64("width", data.MapWidth).
		Float64("height", data.MapHeight).
		Msg("loaded level")

	return &ServerLevel{Terrain: data, World: world}
}

// LoadServerLevel reads a TMX map from fsys.
func LoadServerLevel(fsys fs.FS, path string, logger zerolog.Logger) (*ServerLevel, error) {
	data, err := leveldata.LoadTerrain(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", path, err)
	}
	return NewServerLevel(data, logger), nil
}
