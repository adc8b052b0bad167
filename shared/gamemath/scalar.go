package gamemath

import "math"

// SmallNumber is the squared distance below which interpolation snaps to the target.
const SmallNumber = 1e-8

// GoldenRatio scales zoom steps so zooming feels proportional near and far.
const GoldenRatio = 1.6180339887498948482

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// InterpAlpha is the fraction of the remaining distance covered in one step:
// min(1, rate*dt), and never negative. A zero rate yields zero, so the value
// stays where it is.
func InterpAlpha(dt, rate float64) float64 {
	return Clamp(rate*dt, 0, 1)
}

// InterpTo moves current toward target by InterpAlpha of the remaining distance.
func InterpTo(current, target, dt, rate float64) float64 {
	alpha := InterpAlpha(dt, rate)
	if alpha == 0 {
		return current
	}
	dist := target - current
	if dist*dist < SmallNumber {
		return target
	}
	return current + dist*alpha
}

// ZoomAlpha maps an arm length onto [0, 1] across [minZoom, maxZoom]. A zero
// span maps everything to 0.
func ZoomAlpha(armLength, minZoom, maxZoom float64) float64 {
	span := maxZoom - minZoom
	if math.Abs(span) < SmallNumber {
		return 0
	}
	return Clamp((armLength-minZoom)/span, 0, 1)
}

// NormalizeAxis wraps an angle in degrees to (-180, 180].
func NormalizeAxis(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}
