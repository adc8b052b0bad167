package config

import (
	"image/color"

	"github.com/yohamta/donburi/ecs"
)

// Default is the only ECS layer the client draws on.
const Default ecs.LayerID = 0

// CameraConfig contains all camera pawn tunables
type CameraConfig struct {
	// Lag speeds. Low values are slower (more lag), high values are faster.
	// Zero freezes the smoothed value in place.
	LagSpeed         float64 `mapstructure:"lagSpeed"`
	RotationLagSpeed float64 `mapstructure:"rotationLagSpeed"`
	ZoomLagSpeed     float64 `mapstructure:"zoomLagSpeed"`

	// Zoom adjusts speed: MinMoveSpeed fully zoomed in, MaxMoveSpeed fully zoomed out (cm/s)
	MinMoveSpeed float64 `mapstructure:"minMoveSpeed"`
	MaxMoveSpeed float64 `mapstructure:"maxMoveSpeed"`

	// Arm length limits and the starting arm length (cm)
	MinZoom     float64 `mapstructure:"minZoom"`
	MaxZoom     float64 `mapstructure:"maxZoom"`
	DefaultZoom float64 `mapstructure:"defaultZoom"`
	ZoomStepMin float64 `mapstructure:"zoomStepMin"` // Smallest zoom delta per wheel notch

	// Pitch clamp in degrees. Looking up is limited more than looking down.
	MinPitch        float64 `mapstructure:"minPitch"`
	MaxPitch        float64 `mapstructure:"maxPitch"`
	InitialArmPitch float64 `mapstructure:"initialArmPitch"`

	LookSensitivity float64 `mapstructure:"lookSensitivity"` // Degrees per unit of look input
	InvertPitch     bool    `mapstructure:"invertPitch"`

	// Terrain probe
	TraceChannel   string  `mapstructure:"traceChannel"`   // Collision channel for floors and terrain
	TraceRadius    float64 `mapstructure:"traceRadius"`    // Sphere radius of the height probe
	TraceExtent    float64 `mapstructure:"traceExtent"`    // Half height of the playable volume
	TraceFrequency float64 `mapstructure:"traceFrequency"` // Height probes per second

	CameraClearance float64 `mapstructure:"cameraClearance"` // Kept between camera and ground when clipping
}

// NetworkConfig contains replication and transport settings
type NetworkConfig struct {
	SendFrequency      float64 `mapstructure:"sendFrequency"` // Movement sends per second
	TickRate           int     `mapstructure:"tickRate"`      // Server ticks per second
	Port               uint    `mapstructure:"port"`
	Address            string  `mapstructure:"address"`
	Online             bool    `mapstructure:"online"` // Join Address instead of playing standalone; --connect implies it
	Version            string  `mapstructure:"version"`
	LogRejectedUpdates bool    `mapstructure:"logRejectedUpdates"`
}

// MapConfig contains the playable area settings
type MapConfig struct {
	TerrainFile   string  `mapstructure:"terrainFile"` // Path inside the assets filesystem
	BoundsEnabled bool    `mapstructure:"boundsEnabled"`
	MinX          float64 `mapstructure:"minX"`
	MinY          float64 `mapstructure:"minY"`
	MaxX          float64 `mapstructure:"maxX"`
	MaxY          float64 `mapstructure:"maxY"`
}

// DebugConfig contains debug/testing options
type DebugConfig struct {
	DrawMarkers bool   `mapstructure:"drawMarkers"` // Draw target, lagged position and rotation cones
	LogLevel    string `mapstructure:"logLevel"`
	PlayerIndex int    `mapstructure:"playerIndex"` // Picks the debug player colour
}

// Config holds general window configuration
type Config struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// Global configuration instances
var C *Config
var Camera CameraConfig
var Network NetworkConfig
var Map MapConfig
var Debug DebugConfig

// Debug marker colours
var (
	Green     = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Yellow    = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Orange    = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	Red       = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Gray      = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	DarkGreen = color.RGBA{R: 30, G: 60, B: 30, A: 255}
)

func init() {
	C = &Config{
		Width:  960,
		Height: 540,
	}

	Camera = CameraConfig{
		LagSpeed:         5.0,
		RotationLagSpeed: 7.0,
		ZoomLagSpeed:     5.0,

		MinMoveSpeed: 1100.0,
		MaxMoveSpeed: 15000.0,

		MinZoom:     200.0,
		MaxZoom:     5000.0,
		DefaultZoom: 800.0,
		ZoomStepMin: 50.0,

		MinPitch:        -85.0,
		MaxPitch:        10.0,
		InitialArmPitch: -45.0,

		LookSensitivity: 0.25,

		TraceChannel:   "terrain",
		TraceRadius:    50.0,
		TraceExtent:    10000.0,
		TraceFrequency: 5.0,

		CameraClearance: 10.0,
	}

	Network = NetworkConfig{
		SendFrequency:      3.0,
		TickRate:           20,
		Port:               7373,
		Address:            "localhost:7373",
		LogRejectedUpdates: true,
	}

	Map = MapConfig{
		TerrainFile: "maps/valley.tmx",
	}

	Debug = DebugConfig{
		LogLevel: "info",
	}
}
