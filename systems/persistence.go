package systems

import (
	"encoding/json"

	"github.com/automoto/stratcam/components"
	cfg "github.com/automoto/stratcam/config"
	"github.com/automoto/stratcam/tags"
	"github.com/quasilyte/gdata"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi/ecs"
)

const preferencesKey = "camera"

// SavedPreferences are the camera settings kept between runs.
type SavedPreferences struct {
	LookSensitivity float64 `json:"lookSensitivity"`
	InvertPitch     bool    `json:"invertPitch"`
	ZoomLevel       float64 `json:"zoomLevel"`
	DebugDraw       bool    `json:"debugDraw"`
}

// itemStore is the part of gdata.Manager persistence uses.
type itemStore interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// Preferences loads and saves camera preferences. A nil store makes every
// call a no-op, e.g. when the platform has no data directory.
type Preferences struct {
	store itemStore
	log   zerolog.Logger
}

// OpenPreferences opens the gdata store for the app.
func OpenPreferences(logger zerolog.Logger) (*Preferences, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: "stratcam",
	})
	if err != nil {
		return &Preferences{log: logger}, err
	}
	return &Preferences{store: m, log: logger}, nil
}

// Load returns the saved preferences, or nil if there are none.
func (p *Preferences) Load() *SavedPreferences {
	if p == nil || p.store == nil {
		return nil
	}

	data, err := p.store.LoadItem(preferencesKey)
	if err != nil {
		p.log.Warn().Err(err).Msg("could not load preferences")
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	var saved SavedPreferences
	if err := json.Unmarshal(data, &saved); err != nil {
		p.log.Warn().Err(err).Msg("could not parse saved preferences")
		return nil
	}
	return &saved
}

func (p *Preferences) Save(s *SavedPreferences) error {
	if p == nil || p.store == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := p.store.SaveItem(preferencesKey, data); err != nil {
		p.log.Warn().Err(err).Msg("could not save preferences")
		return err
	}
	return nil
}

// ApplyPreferencesGlobal applies saved tunables before any pawn is created.
func ApplyPreferencesGlobal(saved *SavedPreferences) {
	if saved == nil {
		return
	}
	if saved.LookSensitivity > 0 {
		cfg.Camera.LookSensitivity = saved.LookSensitivity
	}
	cfg.Camera.InvertPitch = saved.InvertPitch
	if saved.ZoomLevel > 0 {
		cfg.Camera.DefaultZoom = saved.ZoomLevel
	}
	cfg.Debug.DrawMarkers = cfg.Debug.DrawMarkers || saved.DebugDraw
}

// CurrentPreferences captures the preferences from the running scene.
func CurrentPreferences(e *ecs.ECS) *SavedPreferences {
	saved := &SavedPreferences{
		LookSensitivity: cfg.Camera.LookSensitivity,
		InvertPitch:     cfg.Camera.InvertPitch,
		ZoomLevel:       cfg.Camera.DefaultZoom,
	}
	if entry, ok := tags.LocalPawn.First(e.World); ok {
		saved.ZoomLevel = components.Pawn.Get(entry).Pawn.ZoomLevel()
	}
	if entry, ok := components.HUD.First(e.World); ok {
		saved.DebugDraw = components.HUD.Get(entry).DebugDraw
	}
	return saved
}

// preferenceSaveInterval is how many frames pass between change checks.
const preferenceSaveInterval = 120

// NewPreferenceSaver returns a system that saves the preferences whenever
// they changed, checking every few seconds.
func NewPreferenceSaver(p *Preferences) func(*ecs.ECS) {
	var last SavedPreferences
	frames := 0
	return func(e *ecs.ECS) {
		frames++
		if frames < preferenceSaveInterval {
			return
		}
		frames = 0

		cur := CurrentPreferences(e)
		if *cur == last {
			return
		}
		if err := p.Save(cur); err == nil {
			last = *cur
		}
	}
}
