package core

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/rs/zerolog"
)

// GameLoop drives the authority at a fixed rate. Every tick drains the
// command queue, advances the simulation by one fixed step and replicates.
type GameLoop struct {
	server *Server
	period time.Duration
	step   float64
	log    zerolog.Logger
	stop   chan struct{}
	done   chan struct{}
	ticks  uint64

	running  atomic.Bool
	stopOnce sync.Once
}

func NewGameLoop(server *Server, tickRate int) *GameLoop {
	return &GameLoop{
		server: server,
		period: time.Second / time.Duration(tickRate),
		step:   1 / float64(tickRate),
		log:    server.log.With().Str("component", "loop").Logger(),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Run ticks until ctx is cancelled or Stop is called.
func (g *GameLoop) Run(ctx context.Context) {
	g.running.Store(true)
	defer close(g.done)

	ticker := time.NewTicker(g.period)
	defer ticker.Stop()

	g.log.Info().Dur("period", g.period).Msg("game loop started")
	for {
		select {
		case <-ctx.Done():
			g.log.Info().Uint64("ticks", g.ticks).Msg("game loop cancelled")
			return
		case <-g.stop:
			g.log.Info().Uint64("ticks", g.ticks).Msg("game loop stopped")
			return
		case <-ticker.C:
			started := time.Now()
			g.tick()
			if took := time.Since(started); took > g.period {
				g.log.Warn().Dur("took", took).Uint64("tick", g.ticks).Msg("tick overran its period")
			}
		}
	}
}

// Stop ends the loop and, if it is running, waits for the current tick to
// finish.
func (g *GameLoop) Stop() {
	g.stopOnce.Do(func() { close(g.stop) })
	if g.running.Load() {
		<-g.done
	}
}

func (g *GameLoop) tick() {
	g.ticks++
	g.server.ProcessCommands()
	g.server.Step(g.step)

	if err := srvsync.DoSync(); err != nil {
		g.log.Error().Err(err).Msg("sync error")
	}
}
