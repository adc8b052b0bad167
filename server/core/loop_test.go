package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGameLoop_StopBeforeRun(t *testing.T) {
	loop := NewGameLoop(newTestServer(t, ""), 20)

	done := make(chan struct{})
	go func() {
		loop.Stop()
		loop.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked without a running loop")
	}
}

func TestGameLoop_ContextEndsRun(t *testing.T) {
	loop := NewGameLoop(newTestServer(t, ""), 20)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loop.Run(ctx)

	assert.Zero(t, loop.ticks)
	loop.Stop()
}

func TestGameLoop_FixedStep(t *testing.T) {
	loop := NewGameLoop(newTestServer(t, ""), 20)
	assert.Equal(t, 50*time.Millisecond, loop.period)
	assert.InDelta(t, 0.05, loop.step, 1e-12)
}
