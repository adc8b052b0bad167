package campawn

import (
	"github.com/automoto/stratcam/shared/gamemath"
	"github.com/automoto/stratcam/shared/terrain"
)

// Probe records the last terrain probe for debug drawing.
type Probe struct {
	Start, End gamemath.Vec3
	Radius     float64
	Hits       []terrain.Hit
}

// terrainSampler finds the floor under a point with a vertical sphere sweep
// across the whole playable height.
type terrainSampler struct {
	query   CollisionQuery
	channel string
	radius  float64
	extent  float64
}

// sample sweeps down through at and returns the floor: the first hit, which
// is the top-most surface.
func (s terrainSampler) sample(at gamemath.Vec3) (terrain.Hit, bool, Probe) {
	probe := Probe{
		Start:  gamemath.Vec3{X: at.X, Y: at.Y, Z: at.Z + s.extent},
		End:    gamemath.Vec3{X: at.X, Y: at.Y, Z: at.Z - s.extent},
		Radius: s.radius,
	}
	probe.Hits = s.query.SweepMulti(probe.Start, probe.End, s.radius, s.channel)
	if len(probe.Hits) == 0 {
		return terrain.Hit{}, false, probe
	}
	return probe.Hits[0], true, probe
}
