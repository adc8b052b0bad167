package leveldata

import (
	"fmt"
	"io/fs"
	"sort"

	"github.com/lafriks/go-tiled"
)

// Object group names read from the map.
const (
	groupFloors = "floors"
	groupSpawns = "PlayerSpawn"
	groupBounds = "Bounds"
)

// LoadTerrain parses a TMX file into floors, spawn points and bounds. It takes
// an fs.FS so callers can pass embed.FS (client) or os.DirFS (server).
func LoadTerrain(fsys fs.FS, tmxPath string) (*TerrainData, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	data := &TerrainData{
		MapWidth:  float64(levelMap.Width * levelMap.TileWidth),
		MapHeight: float64(levelMap.Height * levelMap.TileHeight),
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case groupFloors:
			for _, o := range og.Objects {
				if o.Width <= 0 || o.Height <= 0 {
					return nil, fmt.Errorf("floor %q (id %d) has no footprint", o.Name, o.ID)
				}
				channel := o.Properties.GetString("channel")
				if channel == "" {
					channel = DefaultChannel
				}
				data.Floors = append(data.Floors, Floor{
					Name:      o.Name,
					X:         o.X,
					Y:         o.Y,
					W:         o.Width,
					H:         o.Height,
					Z:         o.Properties.GetFloat("z"),
					Thickness: o.Properties.GetFloat("thickness"),
					Channel:   channel,
				})
			}
		case groupSpawns:
			for _, o := range og.Objects {
				data.SpawnPoints = append(data.SpawnPoints, SpawnPoint{
					X:     o.X,
					Y:     o.Y,
					Yaw:   o.Properties.GetFloat("yaw"),
					Index: o.Properties.GetInt("spawnIndex"),
				})
			}
		case groupBounds:
			if len(og.Objects) == 0 {
				continue
			}
			o := og.Objects[0]
			data.Bounds = &Bounds{MinX: o.X, MinY: o.Y, MaxX: o.X + o.Width, MaxY: o.Y + o.Height}
		}
	}

	// Spawn Z is the highest default-channel floor under the point.
	for i := range data.SpawnPoints {
		sp := &data.SpawnPoints[i]
		sp.Z = data.GroundHeight(sp.X, sp.Y, DefaultChannel)
	}

	sort.Slice(data.SpawnPoints, func(i, j int) bool {
		return data.SpawnPoints[i].Index < data.SpawnPoints[j].Index
	})

	return data, nil
}

// GroundHeight returns the top of the highest floor on channel containing
// (x, y), or 0 when there is none.
func (d *TerrainData) GroundHeight(x, y float64, channel string) float64 {
	best, found := 0.0, false
	for _, f := range d.Floors {
		if f.Channel != channel {
			continue
		}
		if x < f.X || x > f.X+f.W || y < f.Y || y > f.Y+f.H {
			continue
		}
		if !found || f.Z > best {
			best, found = f.Z, true
		}
	}
	return best
}

// Spawn returns the spawn point for a player index, cycling through the
// available ones. With no spawn points the map centre is used.
func (d *TerrainData) Spawn(index int) SpawnPoint {
	if len(d.SpawnPoints) == 0 {
		x, y := d.MapWidth/2, d.MapHeight/2
		return SpawnPoint{X: x, Y: y, Z: d.GroundHeight(x, y, DefaultChannel)}
	}
	if index < 0 {
		index = -index
	}
	return d.SpawnPoints[index%len(d.SpawnPoints)]
}
