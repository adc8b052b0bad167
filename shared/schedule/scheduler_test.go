package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetTimer_FiresAtPeriod(t *testing.T) {
	s := New()
	fired := 0
	h := s.SetTimer(0.2, func() { fired++ })
	require.NotZero(t, h)

	s.Advance(0.1)
	assert.Equal(t, 0, fired)
	s.Advance(0.1)
	assert.Equal(t, 1, fired)
	s.Advance(0.4)
	assert.Equal(t, 3, fired)
}

func TestSetTimer_RejectsBadInput(t *testing.T) {
	s := New()
	assert.Zero(t, s.SetTimer(0, func() {}))
	assert.Zero(t, s.SetTimer(-1, func() {}))
	assert.Zero(t, s.SetTimer(1, nil))
	assert.Equal(t, 0, s.Len())
}

func TestClearTimer(t *testing.T) {
	s := New()
	fired := 0
	h := s.SetTimer(0.1, func() { fired++ })

	s.ClearTimer(h)
	assert.False(t, s.Active(h))
	s.Advance(1)
	assert.Equal(t, 0, fired)

	// Clearing twice or clearing the zero handle is harmless.
	s.ClearTimer(h)
	s.ClearTimer(0)
}

func TestClearTimer_FromCallback(t *testing.T) {
	s := New()
	fired := 0
	var h Handle
	h = s.SetTimer(0.1, func() {
		fired++
		s.ClearTimer(h)
	})

	s.Advance(1)
	assert.Equal(t, 1, fired)
	assert.Equal(t, 0, s.Len())
}

func TestAdvance_CatchUpIsCapped(t *testing.T) {
	s := New()
	fired := 0
	s.SetTimer(0.01, func() { fired++ })

	s.Advance(10)
	assert.Equal(t, MaxCatchUp, fired)

	// Leftover time was dropped, so a short step does not burst again.
	s.Advance(0.001)
	assert.Equal(t, MaxCatchUp, fired)
}

func TestAdvance_HandleOrder(t *testing.T) {
	s := New()
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		s.SetTimer(0.1, func() { order = append(order, i) })
	}

	s.Advance(0.1)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestAdvance_TimerAddedInCallbackWaits(t *testing.T) {
	s := New()
	inner := 0
	s.SetTimer(0.1, func() {
		if s.Len() == 1 {
			s.SetTimer(0.1, func() { inner++ })
		}
	})

	s.Advance(0.1)
	assert.Equal(t, 0, inner)
	s.Advance(0.1)
	assert.Equal(t, 1, inner)
}
