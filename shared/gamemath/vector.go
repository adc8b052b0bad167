package gamemath

import "math"

// Vec3 is a world-space position or direction. Z is up.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) SizeSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vec3) Size() float64 {
	return math.Sqrt(v.SizeSquared())
}

// Dist returns the distance between two points.
func Dist(a, b Vec3) float64 {
	return a.Sub(b).Size()
}

// VInterpTo is InterpTo applied to a whole vector with one shared alpha.
func VInterpTo(current, target Vec3, dt, rate float64) Vec3 {
	alpha := InterpAlpha(dt, rate)
	if alpha == 0 {
		return current
	}
	dist := target.Sub(current)
	if dist.SizeSquared() < SmallNumber {
		return target
	}
	return current.Add(dist.Scale(alpha))
}

// SafeNormal2D returns (x, y) scaled to unit length, or zero for a zero vector.
func SafeNormal2D(x, y float64) (float64, float64) {
	lenSq := x*x + y*y
	if lenSq < SmallNumber {
		return 0, 0
	}
	if math.Abs(lenSq-1) < SmallNumber {
		return x, y
	}
	inv := 1 / math.Sqrt(lenSq)
	return x * inv, y * inv
}
