// Package config loads the demo's tunables with viper: defaults for every key,
// an optional config file, and RACING_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-viper/mapstructure/v2"
	"github.com/leterax/go-racing/pkg/compose"
	"github.com/leterax/go-racing/pkg/game"
	"github.com/leterax/go-racing/pkg/lighting"
	"github.com/leterax/go-racing/pkg/rig"
	"github.com/leterax/go-racing/pkg/vehicle"
	"github.com/spf13/viper"
)

// DefaultName is the config file looked up in the working directory when no
// explicit path is given
const DefaultName = "racing"

// EnvPrefix prefixes environment overrides, e.g. RACING_LOG_LEVEL
const EnvPrefix = "RACING"

// LogConfig controls the logger
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// WindowConfig controls the window and GL context
type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
	VSync  bool   `mapstructure:"vsync"`
}

// VehicleConfig places and tunes the car
type VehicleConfig struct {
	Start          mgl32.Vec3 `mapstructure:"start"`
	vehicle.Params `mapstructure:",squash"`
}

// CameraConfig sets up the free camera and the starting mode
type CameraConfig struct {
	Mode      string     `mapstructure:"mode"`
	FreeStart mgl32.Vec3 `mapstructure:"freeStart"`
	// Pitch of the mounted camera in degrees, negative looks down
	MountPitch float32 `mapstructure:"mountPitch"`
}

// MarkerConfig sizes the visible camera mount
type MarkerConfig struct {
	Size mgl32.Vec3 `mapstructure:"size"`
}

// LightConfig sets up the sun and its shadow map
type LightConfig struct {
	Direction      mgl32.Vec3 `mapstructure:"direction"`
	OrbitSpeed     float32    `mapstructure:"orbitSpeed"`
	ShadowSize     int        `mapstructure:"shadowSize"`
	ShadowExtent   float32    `mapstructure:"shadowExtent"`
	ShadowDistance float32    `mapstructure:"shadowDistance"`
}

// RenderConfig holds renderer settings
type RenderConfig struct {
	ShaderDir  string     `mapstructure:"shaderDir"`
	ClearColor mgl32.Vec4 `mapstructure:"clearColor"`
	TrackSize  float32    `mapstructure:"trackSize"`
}

// Config is the complete set of tunables
type Config struct {
	Log     LogConfig              `mapstructure:"log"`
	Window  WindowConfig           `mapstructure:"window"`
	Vehicle VehicleConfig          `mapstructure:"vehicle"`
	Rig     rig.Params             `mapstructure:"rig"`
	Camera  CameraConfig           `mapstructure:"camera"`
	Chassis compose.MeshCorrection `mapstructure:"chassis"`
	Marker  MarkerConfig           `mapstructure:"marker"`
	Light   LightConfig            `mapstructure:"light"`
	Render  RenderConfig           `mapstructure:"render"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info", Pretty: true},
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Go-Racing",
			VSync:  true,
		},
		Vehicle: VehicleConfig{
			Start:  mgl32.Vec3{0, 0.05, 0},
			Params: vehicle.DefaultParams(),
		},
		Rig: rig.DefaultParams(),
		Camera: CameraConfig{
			Mode:       "free",
			FreeStart:  mgl32.Vec3{0, 2, 5},
			MountPitch: -12,
		},
		Chassis: compose.MeshCorrection{Yaw: 0, Scale: mgl32.Vec3{0.9, 0.45, 2.0}},
		Marker:  MarkerConfig{Size: mgl32.Vec3{0.25, 0.25, 0.25}},
		Light: LightConfig{
			Direction:      mgl32.Vec3{-1, 1, -1},
			OrbitSpeed:     5,
			ShadowSize:     4096,
			ShadowExtent:   lighting.DefaultShadowExtent,
			ShadowDistance: lighting.DefaultShadowDistance,
		},
		Render: RenderConfig{
			ShaderDir:  "pkg/render/shaders",
			ClearColor: mgl32.Vec4{0.05, 0.05, 0.1, 1.0},
			TrackSize:  60,
		},
	}
}

func vec(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = float64(f)
	}
	return out
}

// stringToVectorHook decodes "x,y,z" or "x y z" strings, as environment
// overrides deliver them, into fixed-size float32 arrays such as mgl32.Vec3
func stringToVectorHook() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.Array || to.Elem().Kind() != reflect.Float32 {
			return data, nil
		}

		fields := strings.FieldsFunc(data.(string), func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})
		if len(fields) != to.Len() {
			return nil, fmt.Errorf("vector %q needs %d components, got %d", data, to.Len(), len(fields))
		}

		out := reflect.New(to).Elem()
		for i, field := range fields {
			f, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, fmt.Errorf("vector %q: component %d: %w", data, i, err)
			}
			out.Index(i).SetFloat(f)
		}
		return out.Interface(), nil
	}
}

// setDefaults registers every key so env overrides and Unmarshal see them
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.pretty", d.Log.Pretty)

	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("window.title", d.Window.Title)
	v.SetDefault("window.vsync", d.Window.VSync)

	v.SetDefault("vehicle.start", vec(d.Vehicle.Start[:]))
	v.SetDefault("vehicle.moveSpeed", d.Vehicle.MoveSpeed)
	v.SetDefault("vehicle.turnRate", d.Vehicle.TurnRate)
	v.SetDefault("vehicle.delayedYawRate", d.Vehicle.DelayedYawRate)
	v.SetDefault("vehicle.midPoseRate", d.Vehicle.MidPoseRate)

	v.SetDefault("rig.offset", vec(d.Rig.Offset[:]))
	v.SetDefault("rig.defaultZoom", d.Rig.DefaultZoom)
	v.SetDefault("rig.minZoom", d.Rig.MinZoom)
	v.SetDefault("rig.maxZoom", d.Rig.MaxZoom)
	v.SetDefault("rig.zoomRate", d.Rig.ZoomRate)
	v.SetDefault("rig.recoveryRate", d.Rig.RecoveryRate)
	v.SetDefault("rig.panRate", d.Rig.PanRate)

	v.SetDefault("camera.mode", d.Camera.Mode)
	v.SetDefault("camera.freeStart", vec(d.Camera.FreeStart[:]))
	v.SetDefault("camera.mountPitch", d.Camera.MountPitch)

	v.SetDefault("chassis.yaw", d.Chassis.Yaw)
	v.SetDefault("chassis.scale", vec(d.Chassis.Scale[:]))
	v.SetDefault("marker.size", vec(d.Marker.Size[:]))

	v.SetDefault("light.direction", vec(d.Light.Direction[:]))
	v.SetDefault("light.orbitSpeed", d.Light.OrbitSpeed)
	v.SetDefault("light.shadowSize", d.Light.ShadowSize)
	v.SetDefault("light.shadowExtent", d.Light.ShadowExtent)
	v.SetDefault("light.shadowDistance", d.Light.ShadowDistance)

	v.SetDefault("render.shaderDir", d.Render.ShaderDir)
	v.SetDefault("render.clearColor", vec(d.Render.ClearColor[:]))
	v.SetDefault("render.trackSize", d.Render.TrackSize)
}

// Load reads configuration from path, falling back to defaults for every key
// the file leaves out. With an empty path, racing.{json,yaml,toml} in the
// working directory is used if present.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigName(DefaultName)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	cfg := &Config{}
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		stringToVectorHook(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(cfg, hook); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate reports every out-of-range value
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)

	check(c.Vehicle.MoveSpeed >= 0, "vehicle.moveSpeed must not be negative")
	check(c.Vehicle.TurnRate >= 0, "vehicle.turnRate must not be negative")
	check(c.Vehicle.DelayedYawRate > 0, "vehicle.delayedYawRate must be positive")
	check(c.Vehicle.MidPoseRate > 0, "vehicle.midPoseRate must be positive")

	check(c.Rig.MinZoom > 0 && c.Rig.MaxZoom < 180, "rig zoom bounds must lie in (0, 180)")
	check(c.Rig.MinZoom <= c.Rig.DefaultZoom && c.Rig.DefaultZoom <= c.Rig.MaxZoom,
		"rig.defaultZoom %v must lie within [%v, %v]", c.Rig.DefaultZoom, c.Rig.MinZoom, c.Rig.MaxZoom)
	check(c.Rig.ZoomRate >= 0, "rig.zoomRate must not be negative")
	check(c.Rig.RecoveryRate > 0, "rig.recoveryRate must be positive")
	check(c.Rig.PanRate >= 0, "rig.panRate must not be negative")

	if _, err := game.ParseCameraMode(c.Camera.Mode); err != nil {
		errs = append(errs, fmt.Errorf("camera.mode: %w", err))
	}

	check(c.Light.Direction.Len() > 0, "light.direction must not be zero")
	check(c.Light.ShadowSize > 0, "light.shadowSize must be positive")
	check(c.Light.ShadowExtent > 0 && c.Light.ShadowDistance > 0, "light shadow frustum must be positive")

	return errors.Join(errs...)
}
