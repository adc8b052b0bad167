package campawn

import (
	"github.com/automoto/stratcam/shared/gamemath"
	"github.com/automoto/stratcam/shared/terrain"
)

// ClipResult is the answer of the camera collision resolver.
type ClipResult struct {
	Camera   gamemath.Vec3 // Where the camera would be without correction
	HasHit   bool
	Hit      terrain.Hit
	Clipping bool    // Ground above the camera at its XY
	Offset   float64 // Lift to add to the target Z when Clipping
}

// clipResolver checks whether the camera, hanging armLength behind the
// target along the look direction, would end up inside the ground.
type clipResolver struct {
	query     CollisionQuery
	channel   string
	extent    float64
	clearance float64
}

// resolve is a pure query; it never mutates pawn state.
func (r clipResolver) resolve(target gamemath.Vec3, look gamemath.Rotator, armLength float64) ClipResult {
	cam := target.Sub(look.Vector().Scale(armLength))
	res := ClipResult{Camera: cam}

	start := gamemath.Vec3{X: cam.X, Y: cam.Y, Z: cam.Z + r.extent}
	// Down to the target's height, or the camera's when it looks up from
	// below the target.
	end := gamemath.Vec3{X: cam.X, Y: cam.Y, Z: min(target.Z, cam.Z)}

	hit, ok := r.query.SweepSingle(start, end, 0, r.channel)
	if !ok {
		return res
	}
	res.HasHit = true
	res.Hit = hit
	if hit.ImpactPoint.Z > cam.Z {
		res.Clipping = true
		res.Offset = hit.ImpactPoint.Z - cam.Z + r.clearance
	}
	return res
}
