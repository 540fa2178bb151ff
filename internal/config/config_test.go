package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-racing/pkg/game"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	path := writeConfig(t, "racing.json", `{
		"log": { "level": "debug" },
		"vehicle": { "moveSpeed": 4, "start": [1, 0.05, -2] },
		"rig": { "offset": [0, 3, -6], "defaultZoom": 50 },
		"camera": { "mode": "fixed" }
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, float32(4), cfg.Vehicle.MoveSpeed)
	assert.Equal(t, mgl32.Vec3{1, 0.05, -2}, cfg.Vehicle.Start)
	assert.Equal(t, mgl32.Vec3{0, 3, -6}, cfg.Rig.Offset)
	assert.Equal(t, float32(50), cfg.Rig.DefaultZoom)
	assert.Equal(t, "fixed", cfg.Camera.Mode)

	// Untouched keys keep their defaults
	def := Default()
	assert.Equal(t, def.Vehicle.TurnRate, cfg.Vehicle.TurnRate)
	assert.Equal(t, def.Rig.MaxZoom, cfg.Rig.MaxZoom)
	assert.Equal(t, def.Window, cfg.Window)
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "racing.yaml", "window:\n  width: 640\n  height: 480\nlight:\n  orbitSpeed: 0\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 480, cfg.Window.Height)
	assert.Equal(t, float32(0), cfg.Light.OrbitSpeed)
}

func TestLoad_DefaultValues(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoad_EnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("RACING_LOG_LEVEL", "warn")
	t.Setenv("RACING_VEHICLE_TURNRATE", "120")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, float32(120), cfg.Vehicle.TurnRate)
}

func TestLoad_EnvVectorOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("RACING_RIG_OFFSET", "0,3,-6")
	t.Setenv("RACING_RENDER_CLEARCOLOR", "0.1 0.2 0.3 1")
	t.Setenv("RACING_CHASSIS_SCALE", " 1.5, 0.5 ,3 ")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, mgl32.Vec3{0, 3, -6}, cfg.Rig.Offset)
	assert.Equal(t, mgl32.Vec4{0.1, 0.2, 0.3, 1}, cfg.Render.ClearColor)
	assert.Equal(t, mgl32.Vec3{1.5, 0.5, 3}, cfg.Chassis.Scale)
	// Untouched vectors keep their defaults
	assert.Equal(t, Default().Vehicle.Start, cfg.Vehicle.Start)
}

func TestLoad_EnvVectorErrors(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		errMsg string
	}{
		{"too few", "1,2", "needs 3 components, got 2"},
		{"too many", "1,2,3,4", "needs 3 components, got 4"},
		{"not a number", "1,up,3", "component 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			t.Setenv("RACING_RIG_OFFSET", tt.value)

			_, err := Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "error decoding config")
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/racing.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_Invalid(t *testing.T) {
	path := writeConfig(t, "racing.json", `{
		"rig": { "defaultZoom": 90, "maxZoom": 60 },
		"vehicle": { "delayedYawRate": 0 },
		"camera": { "mode": "orbit" }
	}`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
	assert.Contains(t, err.Error(), "rig.defaultZoom")
	assert.Contains(t, err.Error(), "vehicle.delayedYawRate")
	assert.Contains(t, err.Error(), "camera.mode")
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestNewSession(t *testing.T) {
	cfg := Default()
	cfg.Camera.Mode = "fixed"
	cfg.Vehicle.Start = mgl32.Vec3{2, 0.05, 3}

	s, err := cfg.NewSession(zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, game.Fixed, s.Mode())
	assert.Equal(t, cfg.Vehicle.Start, s.Vehicle().Position())
	assert.Equal(t, cfg.Vehicle.Start, s.Vehicle().MidPosition())
	assert.Equal(t, cfg.Rig.DefaultZoom, s.Rig().Zoom())
	assert.Equal(t, cfg.Vehicle.Params, s.Vehicle().Params())
}

func TestNewSessionBadMode(t *testing.T) {
	cfg := Default()
	cfg.Camera.Mode = "orbit"

	_, err := cfg.NewSession(zerolog.Nop())
	assert.Error(t, err)
}
