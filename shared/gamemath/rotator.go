package gamemath

import "math"

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi

	// Pitch singularity threshold used when converting back from a quaternion.
	singularityThreshold = 0.4999995
)

// Rotator is an orientation in degrees. Pitch rotates about Y (positive looks
// up), Yaw about Z, Roll about X.
type Rotator struct {
	Pitch, Yaw, Roll float64
}

// Normalized wraps every axis to (-180, 180].
func (r Rotator) Normalized() Rotator {
	return Rotator{NormalizeAxis(r.Pitch), NormalizeAxis(r.Yaw), NormalizeAxis(r.Roll)}
}

// Vector returns the unit forward direction of the rotation.
func (r Rotator) Vector() Vec3 {
	sp, cp := math.Sincos(r.Pitch * degToRad)
	sy, cy := math.Sincos(r.Yaw * degToRad)
	return Vec3{cp * cy, cp * sy, sp}
}

// Forward2D and Right2D are the horizontal axes for a yaw in degrees.
func Forward2D(yaw float64) (float64, float64) {
	s, c := math.Sincos(yaw * degToRad)
	return c, s
}

func Right2D(yaw float64) (float64, float64) {
	s, c := math.Sincos(yaw * degToRad)
	return -s, c
}

// Quat is a unit rotation quaternion.
type Quat struct {
	X, Y, Z, W float64
}

// Quat converts the rotator into a quaternion.
func (r Rotator) Quat() Quat {
	const halfDeg = degToRad / 2
	sp, cp := math.Sincos(math.Mod(r.Pitch, 360) * halfDeg)
	sy, cy := math.Sincos(math.Mod(r.Yaw, 360) * halfDeg)
	sr, cr := math.Sincos(math.Mod(r.Roll, 360) * halfDeg)

	return Quat{
		X: cr*sp*sy - sr*cp*cy,
		Y: -cr*sp*cy - sr*cp*sy,
		Z: cr*cp*sy - sr*sp*cy,
		W: cr*cp*cy + sr*sp*sy,
	}
}

// Rotator converts the quaternion back into degrees.
func (q Quat) Rotator() Rotator {
	singularity := q.Z*q.X - q.W*q.Y
	yawY := 2 * (q.W*q.Z + q.X*q.Y)
	yawX := 1 - 2*(q.Y*q.Y+q.Z*q.Z)

	var r Rotator
	switch {
	case singularity < -singularityThreshold:
		r.Pitch = -90
		r.Yaw = math.Atan2(yawY, yawX) * radToDeg
		r.Roll = NormalizeAxis(-r.Yaw - 2*math.Atan2(q.X, q.W)*radToDeg)
	case singularity > singularityThreshold:
		r.Pitch = 90
		r.Yaw = math.Atan2(yawY, yawX) * radToDeg
		r.Roll = NormalizeAxis(r.Yaw - 2*math.Atan2(q.X, q.W)*radToDeg)
	default:
		r.Pitch = math.Asin(2*singularity) * radToDeg
		r.Yaw = math.Atan2(yawY, yawX) * radToDeg
		r.Roll = math.Atan2(-2*(q.W*q.X+q.Y*q.Z), 1-2*(q.X*q.X+q.Y*q.Y)) * radToDeg
	}
	return r
}

func (q Quat) dot(o Quat) float64 {
	return q.X*o.X + q.Y*o.Y + q.Z*o.Z + q.W*o.W
}

func (q Quat) normalized() Quat {
	size := math.Sqrt(q.dot(q))
	if size < SmallNumber {
		return Quat{W: 1}
	}
	return Quat{q.X / size, q.Y / size, q.Z / size, q.W / size}
}

// Slerp interpolates along the shortest arc between a and b.
func Slerp(a, b Quat, t float64) Quat {
	rawCosom := a.dot(b)
	cosom := math.Abs(rawCosom)

	var scale0, scale1 float64
	if cosom < 0.9999 {
		omega := math.Acos(cosom)
		invSin := 1 / math.Sin(omega)
		scale0 = math.Sin((1-t)*omega) * invSin
		scale1 = math.Sin(t*omega) * invSin
	} else {
		// Nearly parallel: linear is accurate enough and avoids dividing by ~0.
		scale0 = 1 - t
		scale1 = t
	}
	if rawCosom < 0 {
		scale1 = -scale1
	}

	return Quat{
		X: scale0*a.X + scale1*b.X,
		Y: scale0*a.Y + scale1*b.Y,
		Z: scale0*a.Z + scale1*b.Z,
		W: scale0*a.W + scale1*b.W,
	}.normalized()
}

// QInterpTo rotates current toward target with the InterpTo rate law.
func QInterpTo(current, target Rotator, dt, rate float64) Rotator {
	alpha := InterpAlpha(dt, rate)
	if alpha == 0 {
		return current
	}
	if alpha == 1 {
		return target.Normalized()
	}
	return Slerp(current.Quat(), target.Quat(), alpha).Rotator()
}
