// Package leveldata provides TMX level parsing shared between client and server.
// It has no dependencies on ebitengine, donburi, or resolv — pure data only.
package leveldata

// DefaultChannel is the collision channel floors use when the map does not
// name one.
const DefaultChannel = "terrain"

// TerrainData holds everything the camera needs from a TMX map. Coordinates
// are world units: X/Y come straight from the map, Z from object properties.
type TerrainData struct {
	Floors      []Floor
	SpawnPoints []SpawnPoint
	Bounds      *Bounds // nil when the map has no Bounds group
	MapWidth    float64
	MapHeight   float64
}

// Floor is a horizontal slab: a rectangle footprint whose top surface sits at Z.
type Floor struct {
	Name       string
	X, Y, W, H float64
	Z          float64
	Thickness  float64
	Channel    string
}

// Bottom is the underside of the slab.
func (f Floor) Bottom() float64 {
	return f.Z - f.Thickness
}

// SpawnPoint represents a pawn spawn location. Z is resolved against the
// floors at load time.
type SpawnPoint struct {
	X, Y, Z float64
	Yaw     float64
	Index   int
}

// Bounds is the playable rectangle.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}
