package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// snapshot restores the globals after a test that calls Load.
func snapshot(t *testing.T) {
	t.Helper()
	window := *C
	camera, network, mapCfg, debug := Camera, Network, Map, Debug
	t.Cleanup(func() {
		C = &window
		Camera, Network, Map, Debug = camera, network, mapCfg, debug
	})
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_NoFileKeepsDefaults(t *testing.T) {
	snapshot(t)

	require.NoError(t, Load("", nil))

	assert.Equal(t, 5.0, Camera.LagSpeed)
	assert.Equal(t, -85.0, Camera.MinPitch)
	assert.Equal(t, 10.0, Camera.MaxPitch)
	assert.Equal(t, 3.0, Network.SendFrequency)
	assert.Equal(t, "terrain", Camera.TraceChannel)
}

func TestLoad_FileOverrides(t *testing.T) {
	snapshot(t)

	path := writeFile(t, "stratcam.json", `{
		"camera": {"lagSpeed": 12, "minZoom": 300},
		"network": {"sendFrequency": 10},
		"map": {"boundsEnabled": true, "minX": -100, "minY": -100, "maxX": 100, "maxY": 100}
	}`)

	require.NoError(t, Load(path, nil))

	assert.Equal(t, 12.0, Camera.LagSpeed)
	assert.Equal(t, 300.0, Camera.MinZoom)
	assert.Equal(t, 5000.0, Camera.MaxZoom, "untouched keys keep their defaults")
	assert.Equal(t, 10.0, Network.SendFrequency)
	assert.True(t, Map.BoundsEnabled)
	assert.Equal(t, 100.0, Map.MaxX)
}

func TestLoad_EnvOverrides(t *testing.T) {
	snapshot(t)
	t.Setenv("STRATCAM_CAMERA_ROTATIONLAGSPEED", "3.5")

	require.NoError(t, Load("", nil))

	assert.Equal(t, 3.5, Camera.RotationLagSpeed)
}

func TestLoad_FlagOverrides(t *testing.T) {
	snapshot(t)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("connect", "", "")
	fs.Bool("debug-draw", false, "")
	require.NoError(t, fs.Parse([]string{"--connect", "example.org:9000", "--debug-draw"}))

	require.NoError(t, Load("", fs))

	assert.Equal(t, "example.org:9000", Network.Address)
	assert.True(t, Network.Online, "--connect implies online play")
	assert.True(t, Debug.DrawMarkers)
}

func TestLoad_OnlineToggle(t *testing.T) {
	t.Run("standalone by default", func(t *testing.T) {
		snapshot(t)
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		fs.String("connect", "", "")
		require.NoError(t, fs.Parse(nil))

		require.NoError(t, Load("", fs))
		assert.False(t, Network.Online)
	})

	t.Run("env", func(t *testing.T) {
		snapshot(t)
		t.Setenv("STRATCAM_NETWORK_ONLINE", "true")
		t.Setenv("STRATCAM_NETWORK_ADDRESS", "10.0.0.2:7373")

		require.NoError(t, Load("", nil))
		assert.True(t, Network.Online)
		assert.Equal(t, "10.0.0.2:7373", Network.Address)
	})

	t.Run("file", func(t *testing.T) {
		snapshot(t)
		path := writeFile(t, "online.json", `{"network": {"online": true, "address": "game.example:7000"}}`)

		require.NoError(t, Load(path, nil))
		assert.True(t, Network.Online)
		assert.Equal(t, "game.example:7000", Network.Address)
	})
}

func TestLoad_InvalidLeavesGlobalsUntouched(t *testing.T) {
	snapshot(t)
	before := Camera

	path := writeFile(t, "bad.json", `{"camera": {"minZoom": 900, "maxZoom": 100}}`)

	err := Load(path, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, before, Camera)
}

func TestLoad_MissingFile(t *testing.T) {
	snapshot(t)

	err := Load(filepath.Join(t.TempDir(), "nope.json"), nil)
	assert.Error(t, err)
}

func TestCameraConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *CameraConfig)
		wantErr bool
	}{
		{"defaults", func(c *CameraConfig) {}, false},
		{"zero zoom span allowed", func(c *CameraConfig) { c.MinZoom, c.MaxZoom = 500, 500 }, false},
		{"inverted zoom", func(c *CameraConfig) { c.MinZoom, c.MaxZoom = 600, 500 }, true},
		{"inverted pitch", func(c *CameraConfig) { c.MinPitch, c.MaxPitch = 10, -85 }, true},
		{"no trace frequency", func(c *CameraConfig) { c.TraceFrequency = 0 }, true},
		{"negative lag", func(c *CameraConfig) { c.LagSpeed = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Camera
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalid)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMapConfig_Validate(t *testing.T) {
	assert.NoError(t, MapConfig{}.Validate())
	assert.NoError(t, MapConfig{BoundsEnabled: true, MinX: -1, MinY: -1, MaxX: 1, MaxY: 1}.Validate())
	assert.ErrorIs(t, MapConfig{BoundsEnabled: true, MinX: 2, MaxX: 1}.Validate(), ErrInvalid)
}
