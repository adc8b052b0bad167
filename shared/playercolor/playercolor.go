// Package playercolor holds a player's colour. The authority owns it and the
// last write wins; every side announces a change exactly once.
package playercolor

import (
	"fmt"
	"image/color"

	"github.com/automoto/stratcam/logging"
	"github.com/rs/zerolog"
)

var (
	Red    = color.RGBA{R: 255, A: 255}
	Green  = color.RGBA{G: 255, A: 255}
	Blue   = color.RGBA{B: 255, A: 255}
	Yellow = color.RGBA{R: 255, G: 255, A: 255}
)

// DebugColorForIndex gives each local player index a recognisable colour.
func DebugColorForIndex(i int) color.RGBA {
	switch i {
	case 0:
		return Red
	case 1:
		return Green
	case 2:
		return Blue
	default:
		return Yellow
	}
}

// ChangedFunc observes colour changes.
type ChangedFunc func(old, cur color.RGBA)

// RequestFunc asks the authority to change the colour.
type RequestFunc func(c color.RGBA) error

type State struct {
	ctx       logging.Context
	log       zerolog.Logger
	authority bool

	color     color.RGBA
	listeners []ChangedFunc
}

func New(ctx logging.Context, logger zerolog.Logger, authority bool) *State {
	return &State{ctx: ctx, log: logger, authority: authority}
}

func (s *State) Color() color.RGBA {
	return s.color
}

func (s *State) HasAuthority() bool {
	return s.authority
}

// OnChanged registers fn for every future change.
func (s *State) OnChanged(fn ChangedFunc) {
	s.listeners = append(s.listeners, fn)
}

// Set changes the colour on the authority. Returns false if nothing changed.
func (s *State) Set(c color.RGBA) bool {
	if !s.authority {
		panic("playercolor: Set without authority")
	}
	if c == s.color {
		return false
	}
	old := s.color
	s.color = c
	s.broadcast(old)
	return true
}

// ApplyReplicated takes the authority's value. Repeats of the current colour
// are not announced.
func (s *State) ApplyReplicated(c color.RGBA) {
	old := s.color
	s.color = c
	if old != c {
		s.broadcast(old)
	}
}

// BeginReplication picks the debug colour for a local player: the authority
// sets it directly, a client asks for it through request.
func (s *State) BeginReplication(localIndex int, request RequestFunc) error {
	c := DebugColorForIndex(localIndex)
	if s.authority {
		s.Set(c)
		return nil
	}
	if request == nil {
		return fmt.Errorf("playercolor: client has no request channel")
	}
	if err := request(c); err != nil {
		return fmt.Errorf("request player colour: %w", err)
	}
	return nil
}

func (s *State) broadcast(old color.RGBA) {
	logging.Info(s.log, s.ctx, logging.Warning, "NewColor=%s  OldColor=%s", format(s.color), format(old))
	for _, fn := range s.listeners {
		fn(old, s.color)
	}
}

func format(c color.RGBA) string {
	return fmt.Sprintf("(R=%d,G=%d,B=%d,A=%d)", c.R, c.G, c.B, c.A)
}
