// Package terrain answers collision queries against the floors of a level.
// Floor footprints live in a resolv.Space which serves as the broad phase;
// the exact sphere-versus-slab test runs on the candidates it returns.
package terrain

import (
	"math"
	"sort"

	"github.com/automoto/stratcam/shared/gamemath"
	"github.com/automoto/stratcam/shared/leveldata"
	"github.com/solarlune/resolv"
)

// CellSize is the resolv cell edge in world units.
const CellSize = 500

// tagProbe marks the temporary object used for broad-phase checks.
const tagProbe = "probe"

// Hit is one contact of a sweep.
type Hit struct {
	Location    gamemath.Vec3 // Sphere centre at the moment of contact
	ImpactPoint gamemath.Vec3 // Contact point on the floor surface
	Normal      gamemath.Vec3
	Distance    float64 // From the sweep start to Location
	Floor       string
	Channel     string
}

// World is a static set of floors that can be swept against.
type World struct {
	space  *resolv.Space
	floors int
}

// NewWorld builds a space covering the map and adds every floor.
func NewWorld(data *leveldata.TerrainData) *World {
	w := NewEmptyWorld(data.MapWidth, data.MapHeight)
	for _, f := range data.Floors {
		w.AddFloor(f)
	}
	return w
}

// NewEmptyWorld creates a world of the given size with no floors.
func NewEmptyWorld(width, height float64) *World {
	spaceW := max(int(math.Ceil(width)), CellSize)
	spaceH := max(int(math.Ceil(height)), CellSize)
	return &World{space: resolv.NewSpace(spaceW, spaceH, CellSize, CellSize)}
}

// AddFloor registers a floor under its channel tag.
func (w *World) AddFloor(f leveldata.Floor) {
	floor := f
	obj := resolv.NewObject(f.X, f.Y, f.W, f.H, f.Channel)
	obj.SetShape(resolv.NewRectangle(0, 0, f.W, f.H))
	obj.Data = &floor
	w.space.Add(obj)
	w.floors++
}

// FloorCount returns how many floors were added.
func (w *World) FloorCount() int {
	return w.floors
}

// SweepMulti sweeps a sphere of radius from start to end against every floor
// on channel and returns all contacts ordered nearest-to-farthest from start.
// Sweeps are vertical: end.X and end.Y are ignored. Floors the sphere already
// overlaps at start are not reported.
func (w *World) SweepMulti(start, end gamemath.Vec3, radius float64, channel string) []Hit {
	if radius < 0 {
		radius = 0
	}
	candidates := w.candidates(start.X, start.Y, radius, channel)
	if len(candidates) == 0 {
		return nil
	}

	down := end.Z <= start.Z
	lo, hi := math.Min(start.Z, end.Z), math.Max(start.Z, end.Z)

	var hits []Hit
	for _, f := range candidates {
		px, py := closestPoint(f, start.X, start.Y)
		dx, dy := start.X-px, start.Y-py
		d2 := dx*dx + dy*dy
		if d2 > radius*radius {
			continue
		}
		lift := math.Sqrt(radius*radius - d2)

		surface := f.Z
		centreZ := surface + lift
		if !down {
			surface = f.Bottom()
			centreZ = surface - lift
		}
		if centreZ < lo || centreZ > hi {
			continue
		}

		loc := gamemath.Vec3{X: start.X, Y: start.Y, Z: centreZ}
		impact := gamemath.Vec3{X: px, Y: py, Z: surface}
		hits = append(hits, Hit{
			Location:    loc,
			ImpactPoint: impact,
			Normal:      normal(loc, impact, down),
			Distance:    math.Abs(start.Z - centreZ),
			Floor:       f.Name,
			Channel:     f.Channel,
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

// SweepSingle returns the nearest contact of SweepMulti.
func (w *World) SweepSingle(start, end gamemath.Vec3, radius float64, channel string) (Hit, bool) {
	hits := w.SweepMulti(start, end, radius, channel)
	if len(hits) == 0 {
		return Hit{}, false
	}
	return hits[0], true
}

// candidates returns floors on channel whose resolv cells touch the disc.
func (w *World) candidates(x, y, radius float64, channel string) []*leveldata.Floor {
	size := math.Max(radius*2, 1)
	probe := resolv.NewObject(x-size/2, y-size/2, size, size, tagProbe)
	w.space.Add(probe)
	defer w.space.Remove(probe)

	check := probe.Check(0, 0, channel)
	if check == nil {
		return nil
	}

	objs := check.ObjectsByTags(channel)
	out := make([]*leveldata.Floor, 0, len(objs))
	seen := make(map[*leveldata.Floor]struct{}, len(objs))
	for _, obj := range objs {
		f, ok := obj.Data.(*leveldata.Floor)
		if !ok {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	// Cell order is not stable; keep results deterministic for equal distances.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Z != out[j].Z {
			return out[i].Z > out[j].Z
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func closestPoint(f *leveldata.Floor, x, y float64) (float64, float64) {
	return gamemath.Clamp(x, f.X, f.X+f.W), gamemath.Clamp(y, f.Y, f.Y+f.H)
}

func normal(loc, impact gamemath.Vec3, down bool) gamemath.Vec3 {
	n := loc.Sub(impact)
	size := n.Size()
	if size < 1e-9 {
		if down {
			return gamemath.Vec3{Z: 1}
		}
		return gamemath.Vec3{Z: -1}
	}
	return n.Scale(1 / size)
}
