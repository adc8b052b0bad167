package campawn

import (
	"bytes"
	"errors"

	"github.com/automoto/stratcam/config"
	"github.com/automoto/stratcam/shared/gamemath"
	"github.com/automoto/stratcam/shared/leveldata"
	"github.com/automoto/stratcam/shared/netcomponents"
	"github.com/automoto/stratcam/shared/netconfig"
	"github.com/automoto/stratcam/shared/schedule"
	"github.com/automoto/stratcam/shared/terrain"
	"github.com/rs/zerolog"
)

const (
	mapSize = 20000.0
	centre  = 5000.0
)

type fakeCursor struct {
	visible bool
	x, y    int
	inside  bool
	mode    InputMode
	warps   [][2]int
}

func newFakeCursor() *fakeCursor {
	return &fakeCursor{visible: true, x: 320, y: 200, inside: true}
}

func (c *fakeCursor) CursorVisible() bool              { return c.visible }
func (c *fakeCursor) SetCursorVisible(v bool)          { c.visible = v }
func (c *fakeCursor) CursorPosition() (int, int, bool) { return c.x, c.y, c.inside }
func (c *fakeCursor) SetInputMode(m InputMode)         { c.mode = m }
func (c *fakeCursor) SetCursorPosition(x, y int) bool {
	c.warps = append(c.warps, [2]int{x, y})
	c.x, c.y = x, y
	return true
}

type fakeSender struct {
	sent []netcomponents.NetMovementData
	err  error
}

func (s *fakeSender) SendMovement(m netcomponents.NetMovementData) error {
	s.sent = append(s.sent, m)
	return s.err
}

var errOffline = errors.New("offline")

type harness struct {
	deps   Deps
	timers *schedule.Scheduler
	world  *terrain.World
	logs   *bytes.Buffer
	sender *fakeSender
}

func newHarness(floors ...leveldata.Floor) *harness {
	logs := &bytes.Buffer{}
	timers := schedule.New()
	world := terrain.NewWorld(&leveldata.TerrainData{MapWidth: mapSize, MapHeight: mapSize, Floors: floors})
	sender := &fakeSender{}

	cam := config.Camera
	net := config.Network
	net.LogRejectedUpdates = true

	return &harness{
		deps: Deps{
			Collision: world,
			Timers:    timers,
			Sender:    sender,
			Camera:    cam,
			Network:   net,
			Logger:    zerolog.New(logs).Level(zerolog.DebugLevel),
		},
		timers: timers,
		world:  world,
		logs:   logs,
		sender: sender,
	}
}

func (h *harness) pawn(role netconfig.Role, at gamemath.Vec3) *Pawn {
	return New("CameraPawn_0", role, Spawn{Location: at}, h.deps)
}

// step advances timers then the pawn, the same order the game loop uses.
func (h *harness) step(p *Pawn, dt float64) {
	h.timers.Advance(dt)
	p.Tick(dt)
}

func ground(z float64) leveldata.Floor {
	return leveldata.Floor{Name: "ground", X: 0, Y: 0, W: mapSize, H: mapSize, Z: z, Thickness: 100, Channel: "terrain"}
}

func at(x, y, z float64) gamemath.Vec3 {
	return gamemath.Vec3{X: x, Y: y, Z: z}
}

// scriptedCollision returns whatever hits the test puts in it.
type scriptedCollision struct {
	multi  []terrain.Hit
	single *terrain.Hit
	sweeps int
}

func (s *scriptedCollision) SweepMulti(_, _ gamemath.Vec3, _ float64, _ string) []terrain.Hit {
	s.sweeps++
	return s.multi
}

func (s *scriptedCollision) SweepSingle(_, _ gamemath.Vec3, _ float64, _ string) (terrain.Hit, bool) {
	if s.single == nil {
		return terrain.Hit{}, false
	}
	return *s.single, true
}
