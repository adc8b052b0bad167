package core

import (
	"context"
	"fmt"
	"image/color"
	"sort"
	"sync"

	"github.com/automoto/stratcam/logging"
	"github.com/automoto/stratcam/shared/campawn"
	"github.com/automoto/stratcam/shared/gamemath"
	"github.com/automoto/stratcam/shared/messages"
	"github.com/automoto/stratcam/shared/netcomponents"
	"github.com/automoto/stratcam/shared/netconfig"
	"github.com/automoto/stratcam/shared/playercolor"
	"github.com/automoto/stratcam/shared/schedule"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"
)

// player is one joined client and the pawn the server holds for it.
type player struct {
	connID   string
	clientID string
	index    int
	entity   donburi.Entity
	pawn     *campawn.Pawn
	color    *playercolor.State
}

// Server is the authority for every camera pawn. Router callbacks run on
// necs goroutines and only enqueue commands; the game loop applies them.
type Server struct {
	world     donburi.World
	loop      *GameLoop
	transport *transports.WsServerTransport
	log       zerolog.Logger
	version   string
	level     *ServerLevel
	timers    *schedule.Scheduler
	deps      campawn.Deps

	cmdMu    sync.Mutex
	commands []func()

	// Owned by the game loop goroutine
	players map[string]*player

	countMu sync.RWMutex
	count   int
}

// NewServer creates a server for level. An empty version accepts any client.
func NewServer(level *ServerLevel, tickRate int, version string, logger zerolog.Logger) *Server {
	world := donburi.NewWorld()
	timers := schedule.New()

	s := &Server{
		world:   world,
		log:     logging.Component(logger, "server"),
		version: version,
		level:   level,
		timers:  timers,
		players: make(map[string]*player),
	}
	s.deps = campawn.DefaultDeps(level.World, timers, level.Terrain.Bounds, s.log)
	s.loop = NewGameLoop(s, tickRate)

	// Set up the world for esync
	srvsync.UseEsync(world)

	return s
}

// Start registers the router callbacks, runs the game loop and serves
// websocket clients on port. It blocks until the transport stops.
func (s *Server) Start(port uint) error {
	s.setupRouterCallbacks()

	go s.loop.Run(context.Background())

	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	s.loop.Stop()
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		s.log.Info().Str("conn", client.Id()).Msg("client connected")
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		id := client.Id()
		s.enqueue(func() { s.leave(id, err) })
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		id := client.Id()
		s.enqueue(func() { s.join(id, req) })
	})

	router.On(func(client *router.NetworkClient, msg messages.MovementUpdate) {
		id := client.Id()
		s.enqueue(func() { s.movement(id, msg) })
	})

	router.On(func(client *router.NetworkClient, msg messages.SetPlayerColor) {
		id := client.Id()
		s.enqueue(func() { s.setColor(id, msg) })
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		s.log.Warn().Err(err).Str("conn", client.Id()).Msg("client error")
	})
}

func (s *Server) enqueue(cmd func()) {
	s.cmdMu.Lock()
	s.commands = append(s.commands, cmd)
	s.cmdMu.Unlock()
}

// ProcessCommands runs everything the router queued since the last tick, in
// arrival order.
func (s *Server) ProcessCommands() {
	s.cmdMu.Lock()
	cmds := s.commands
	s.commands = nil
	s.cmdMu.Unlock()

	for _, cmd := range cmds {
		cmd()
	}
}

// Step advances timers and pawns by dt seconds.
func (s *Server) Step(dt float64) {
	s.timers.Advance(dt)
	for _, p := range s.sortedPlayers() {
		p.pawn.Tick(dt)
	}
}

func (s *Server) join(connID string, req messages.JoinRequest) {
	log := s.log.With().Str("conn", connID).Str("client_id", req.ClientID).Logger()

	if s.version != "" && req.Version != s.version {
		log.Warn().Str("want", s.version).Str("got", req.Version).Msg("join rejected: version mismatch")
		return
	}
	if req.ClientID == "" {
		log.Warn().Msg("join rejected: empty client id")
		return
	}
	if _, ok := s.players[connID]; ok {
		log.Debug().Msg("duplicate join ignored")
		return
	}

	index := s.freeIndex()
	label := fmt.Sprintf("CameraPawn_%d", index)
	spawn := s.level.Terrain.Spawn(index)

	entity := s.world.Create(netcomponents.NetMovement, netcomponents.NetOwner, netcomponents.NetPlayerColor)
	entry := s.world.Entry(entity)

	pawn := campawn.New(label, netconfig.RoleAuthority, campawn.Spawn{
		Location: gamemath.Vec3{X: spawn.X, Y: spawn.Y, Z: spawn.Z},
		Yaw:      spawn.Yaw,
	}, s.deps)
	pawn.Possess(campawn.NewRemoteController())

	ctx := logging.Context{Mode: netconfig.DedicatedServer, Label: fmt.Sprintf("PlayerState_%d", index)}
	colorState := playercolor.New(ctx, s.log, true)

	p := &player{
		connID:   connID,
		clientID: req.ClientID,
		index:    index,
		entity:   entity,
		pawn:     pawn,
		color:    colorState,
	}

	netcomponents.NetOwner.SetValue(entry, netcomponents.NetOwnerData{ClientID: req.ClientID})
	netcomponents.NetMovement.SetValue(entry, pawn.ReplicatedState())
	netcomponents.NetPlayerColor.SetValue(entry, netcomponents.ColorFromRGBA(colorState.Color()))

	pawn.OnReplicated = func(_, cur netcomponents.NetMovementData) {
		s.publishMovement(p, cur)
	}
	colorState.OnChanged(func(_, cur color.RGBA) {
		s.publishColor(p, cur)
	})

	if err := srvsync.NetworkSync(s.world, &entity,
		netcomponents.NetMovement,
		netcomponents.NetOwner,
		netcomponents.NetPlayerColor,
	); err != nil {
		log.Error().Err(err).Msg("failed to set up network sync for pawn")
		pawn.Destroy()
		s.world.Remove(entity)
		return
	}

	s.players[connID] = p
	s.setCount(len(s.players))

	log.Info().Str("pawn", label).Str("name", req.PlayerName).
		Float64("x", spawn.X).Float64("y", spawn.Y).Float64("z", spawn.Z).
		Msg("pawn spawned")
}

func (s *Server) movement(connID string, msg messages.MovementUpdate) {
	p, ok := s.players[connID]
	if !ok {
		return
	}
	// Stale and duplicate updates are dropped inside; the client is never told.
	p.pawn.ApplyReplicated(netcomponents.NetMovementData{
		X:        msg.X,
		Y:        msg.Y,
		Z:        msg.Z,
		Yaw:      msg.Yaw,
		Sequence: msg.Sequence,
	})
}

func (s *Server) setColor(connID string, msg messages.SetPlayerColor) {
	p, ok := s.players[connID]
	if !ok {
		return
	}
	p.color.Set(color.RGBA{R: msg.R, G: msg.G, B: msg.B, A: msg.A})
}

func (s *Server) leave(connID string, err error) {
	log := s.log.With().Str("conn", connID).Logger()
	if err != nil {
		log.Info().Err(err).Msg("client disconnected with error")
	} else {
		log.Info().Msg("client disconnected")
	}

	p, ok := s.players[connID]
	if !ok {
		return
	}
	delete(s.players, connID)
	s.setCount(len(s.players))

	p.pawn.Destroy()
	if s.world.Valid(p.entity) {
		s.world.Remove(p.entity)
	}
	log.Info().Str("pawn", p.pawn.Label()).Msg("pawn removed")
}

func (s *Server) publishMovement(p *player, m netcomponents.NetMovementData) {
	if !s.world.Valid(p.entity) {
		return
	}
	netcomponents.NetMovement.SetValue(s.world.Entry(p.entity), m)
}

func (s *Server) publishColor(p *player, c color.RGBA) {
	if !s.world.Valid(p.entity) {
		return
	}
	netcomponents.NetPlayerColor.SetValue(s.world.Entry(p.entity), netcomponents.ColorFromRGBA(c))
}

// freeIndex returns the lowest player index not in use.
func (s *Server) freeIndex() int {
	used := make(map[int]bool, len(s.players))
	for _, p := range s.players {
		used[p.index] = true
	}
	i := 0
	for used[i] {
		i++
	}
	return i
}

func (s *Server) sortedPlayers() []*player {
	out := make([]*player, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].index < out[j].index })
	return out
}

func (s *Server) setCount(n int) {
	s.countMu.Lock()
	s.count = n
	s.countMu.Unlock()
}

// World returns the ECS world
func (s *Server) World() donburi.World {
	return s.world
}

// PlayerCount returns the number of joined players. Safe from any goroutine.
func (s *Server) PlayerCount() int {
	s.countMu.RLock()
	defer s.countMu.RUnlock()
	return s.count
}
