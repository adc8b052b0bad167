package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// EnvPrefix prefixes environment overrides, e.g. STRATCAM_CAMERA_LAGSPEED.
const EnvPrefix = "STRATCAM"

// fileConfig mirrors the global sections for viper (un)marshalling.
type fileConfig struct {
	Window  Config        `mapstructure:"window"`
	Camera  CameraConfig  `mapstructure:"camera"`
	Network NetworkConfig `mapstructure:"network"`
	Map     MapConfig     `mapstructure:"map"`
	Debug   DebugConfig   `mapstructure:"debug"`
}

// Load overlays the built-in defaults with an optional config file, STRATCAM_*
// environment variables and any flags bound from fs, then validates the result.
// An empty path skips the file.
func Load(path string, fs *pflag.FlagSet) error {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := bindFlags(v, fs); err != nil {
			return err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	var out fileConfig
	if err := v.Unmarshal(&out); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	// Passing --connect is a request to play online, whatever the config says.
	if fs != nil {
		if f := fs.Lookup("connect"); f != nil && f.Changed {
			out.Network.Online = true
		}
	}

	if err := out.Camera.Validate(); err != nil {
		return err
	}
	if err := out.Network.Validate(); err != nil {
		return err
	}
	if err := out.Map.Validate(); err != nil {
		return err
	}

	window := out.Window
	C = &window
	Camera = out.Camera
	Network = out.Network
	Map = out.Map
	Debug = out.Debug
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("window.width", C.Width)
	v.SetDefault("window.height", C.Height)

	v.SetDefault("camera.lagSpeed", Camera.LagSpeed)
	v.SetDefault("camera.rotationLagSpeed", Camera.RotationLagSpeed)
	v.SetDefault("camera.zoomLagSpeed", Camera.ZoomLagSpeed)
	v.SetDefault("camera.minMoveSpeed", Camera.MinMoveSpeed)
	v.SetDefault("camera.maxMoveSpeed", Camera.MaxMoveSpeed)
	v.SetDefault("camera.minZoom", Camera.MinZoom)
	v.SetDefault("camera.maxZoom", Camera.MaxZoom)
	v.SetDefault("camera.defaultZoom", Camera.DefaultZoom)
	v.SetDefault("camera.zoomStepMin", Camera.ZoomStepMin)
	v.SetDefault("camera.minPitch", Camera.MinPitch)
	v.SetDefault("camera.maxPitch", Camera.MaxPitch)
	v.SetDefault("camera.initialArmPitch", Camera.InitialArmPitch)
	v.SetDefault("camera.lookSensitivity", Camera.LookSensitivity)
	v.SetDefault("camera.invertPitch", Camera.InvertPitch)
	v.SetDefault("camera.traceChannel", Camera.TraceChannel)
	v.SetDefault("camera.traceRadius", Camera.TraceRadius)
	v.SetDefault("camera.traceExtent", Camera.TraceExtent)
	v.SetDefault("camera.traceFrequency", Camera.TraceFrequency)
	v.SetDefault("camera.cameraClearance", Camera.CameraClearance)

	v.SetDefault("network.sendFrequency", Network.SendFrequency)
	v.SetDefault("network.tickRate", Network.TickRate)
	v.SetDefault("network.port", Network.Port)
	v.SetDefault("network.address", Network.Address)
	v.SetDefault("network.online", Network.Online)
	v.SetDefault("network.version", Network.Version)
	v.SetDefault("network.logRejectedUpdates", Network.LogRejectedUpdates)

	v.SetDefault("map.terrainFile", Map.TerrainFile)
	v.SetDefault("map.boundsEnabled", Map.BoundsEnabled)
	v.SetDefault("map.minX", Map.MinX)
	v.SetDefault("map.minY", Map.MinY)
	v.SetDefault("map.maxX", Map.MaxX)
	v.SetDefault("map.maxY", Map.MaxY)

	v.SetDefault("debug.drawMarkers", Debug.DrawMarkers)
	v.SetDefault("debug.logLevel", Debug.LogLevel)
	v.SetDefault("debug.playerIndex", Debug.PlayerIndex)
}

// flagKeys maps command-line flag names onto config keys.
var flagKeys = map[string]string{
	"connect":      "network.address",
	"port":         "network.port",
	"tickrate":     "network.tickRate",
	"version":      "network.version",
	"terrain":      "map.terrainFile",
	"debug-draw":   "debug.drawMarkers",
	"log-level":    "debug.logLevel",
	"player-index": "debug.playerIndex",
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Validate reports tunables that can never produce a usable camera. A zero
// zoom span is allowed.
func (c CameraConfig) Validate() error {
	switch {
	case c.MinZoom > c.MaxZoom:
		return fmt.Errorf("%w: camera.minZoom %.1f > camera.maxZoom %.1f", ErrInvalid, c.MinZoom, c.MaxZoom)
	case c.MinPitch > c.MaxPitch:
		return fmt.Errorf("%w: camera.minPitch %.1f > camera.maxPitch %.1f", ErrInvalid, c.MinPitch, c.MaxPitch)
	case c.TraceFrequency <= 0:
		return fmt.Errorf("%w: camera.traceFrequency must be positive", ErrInvalid)
	case c.TraceRadius < 0 || c.TraceExtent <= 0:
		return fmt.Errorf("%w: camera trace radius/extent out of range", ErrInvalid)
	case c.LagSpeed < 0 || c.RotationLagSpeed < 0 || c.ZoomLagSpeed < 0:
		return fmt.Errorf("%w: camera lag speeds must not be negative", ErrInvalid)
	}
	return nil
}

func (n NetworkConfig) Validate() error {
	if n.SendFrequency <= 0 {
		return fmt.Errorf("%w: network.sendFrequency must be positive", ErrInvalid)
	}
	if n.TickRate <= 0 {
		return fmt.Errorf("%w: network.tickRate must be positive", ErrInvalid)
	}
	return nil
}

func (m MapConfig) Validate() error {
	if m.BoundsEnabled && (m.MinX > m.MaxX || m.MinY > m.MaxY) {
		return fmt.Errorf("%w: map bounds min exceeds max", ErrInvalid)
	}
	return nil
}
