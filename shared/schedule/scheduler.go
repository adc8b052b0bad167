// Package schedule runs repeating callbacks off the game tick. Timers fire
// inside Advance on the caller's goroutine, so callbacks never overlap with
// each other or with the rest of the frame.
package schedule

import (
	"math"
	"sort"
)

// Handle identifies a timer. The zero Handle is never issued.
type Handle uint64

// MaxCatchUp bounds how many times one timer fires in a single Advance after
// a long frame. Whatever is left over is dropped.
const MaxCatchUp = 4

type timer struct {
	period  float64
	elapsed float64
	fn      func()
}

// Scheduler owns a set of repeating timers driven by Advance.
type Scheduler struct {
	timers map[Handle]*timer
	next   Handle
}

func New() *Scheduler {
	return &Scheduler{timers: make(map[Handle]*timer)}
}

// SetTimer registers fn to run every period seconds. Time starts counting on
// the next Advance; a timer created inside a callback does not see the rest
// of the current one. A non-positive period or nil fn returns the zero Handle.
func (s *Scheduler) SetTimer(period float64, fn func()) Handle {
	if period <= 0 || fn == nil || math.IsNaN(period) || math.IsInf(period, 0) {
		return 0
	}
	s.next++
	s.timers[s.next] = &timer{period: period, fn: fn}
	return s.next
}

// ClearTimer stops h. Clearing an unknown or already cleared handle is a no-op,
// and it is safe to clear from inside a callback.
func (s *Scheduler) ClearTimer(h Handle) {
	delete(s.timers, h)
}

// Active reports whether h is still scheduled.
func (s *Scheduler) Active(h Handle) bool {
	_, ok := s.timers[h]
	return ok
}

// Len returns the number of live timers.
func (s *Scheduler) Len() int {
	return len(s.timers)
}

// Advance moves every timer forward by dt seconds and fires the ones that are
// due, in handle order.
func (s *Scheduler) Advance(dt float64) {
	if dt <= 0 || len(s.timers) == 0 {
		return
	}

	handles := make([]Handle, 0, len(s.timers))
	for h := range s.timers {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	for _, h := range handles {
		t, ok := s.timers[h]
		if !ok {
			continue // cleared by an earlier callback
		}
		t.elapsed += dt

		fired := 0
		for t.elapsed >= t.period {
			t.elapsed -= t.period
			t.fn()
			fired++
			if !s.Active(h) {
				break
			}
			if fired == MaxCatchUp {
				t.elapsed = 0
				break
			}
		}
	}
}
