package gamemath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpTo_MovesTowardTarget(t *testing.T) {
	got := InterpTo(0, 100, 0.1, 5)
	assert.InDelta(t, 50.0, got, 1e-9)
}

func TestInterpTo_NeverOvershoots(t *testing.T) {
	// rate*dt above 1 is clamped, so one step lands exactly on the target.
	assert.Equal(t, 100.0, InterpTo(0, 100, 1, 50))
}

func TestInterpTo_ZeroRateIsFrozen(t *testing.T) {
	assert.Equal(t, 7.0, InterpTo(7, 100, 0.016, 0))
	assert.Equal(t, 7.0, InterpTo(7, 100, 0, 5))
}

func TestInterpTo_SnapsWhenClose(t *testing.T) {
	assert.Equal(t, 10.0, InterpTo(10-1e-5, 10, 0.016, 1))
}

func TestInterpTo_Monotone(t *testing.T) {
	// Distance to the target never grows, for any dt and rate.
	for _, rate := range []float64{0, 0.5, 3, 10, 200} {
		for _, dt := range []float64{0.001, 0.016, 0.1, 0.5} {
			cur := -300.0
			prev := math.Abs(cur - 42)
			for i := 0; i < 50; i++ {
				cur = InterpTo(cur, 42, dt, rate)
				d := math.Abs(cur - 42)
				assert.LessOrEqual(t, d, prev, "rate=%v dt=%v step=%d", rate, dt, i)
				prev = d
			}
		}
	}
}

func TestZoomAlpha(t *testing.T) {
	assert.Equal(t, 0.0, ZoomAlpha(200, 200, 5000))
	assert.Equal(t, 1.0, ZoomAlpha(5000, 200, 5000))
	assert.InDelta(t, 0.5, ZoomAlpha(2600, 200, 5000), 1e-9)
	assert.Equal(t, 1.0, ZoomAlpha(9000, 200, 5000), "clamped above")
	assert.Equal(t, 0.0, ZoomAlpha(-10, 200, 5000), "clamped below")
}

func TestZoomAlpha_ZeroSpan(t *testing.T) {
	a := ZoomAlpha(500, 500, 500)
	assert.False(t, math.IsNaN(a))
	assert.Equal(t, 0.0, a)
}

func TestNormalizeAxis(t *testing.T) {
	tests := map[float64]float64{
		0:    0,
		180:  180,
		-180: 180,
		190:  -170,
		-190: 170,
		720:  0,
		365:  5,
	}
	for in, want := range tests {
		assert.InDelta(t, want, NormalizeAxis(in), 1e-9, "in=%v", in)
	}
}

func TestClampAndLerp(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(-5, 1, 3))
	assert.Equal(t, 3.0, Clamp(5, 1, 3))
	assert.Equal(t, 2.0, Clamp(2, 1, 3))
	assert.Equal(t, 1100.0, Lerp(1100, 15000, 0))
	assert.Equal(t, 15000.0, Lerp(1100, 15000, 1))
}
