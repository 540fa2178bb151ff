package config

import (
	"github.com/leterax/go-racing/pkg/game"
	"github.com/leterax/go-racing/pkg/rig"
	"github.com/leterax/go-racing/pkg/vehicle"
	"github.com/rs/zerolog"
)

// NewSession builds the vehicle, the camera rig and the session they drive
func (c *Config) NewSession(log zerolog.Logger) (*game.Session, error) {
	mode, err := game.ParseCameraMode(c.Camera.Mode)
	if err != nil {
		return nil, err
	}

	v := vehicle.New(c.Vehicle.Start, c.Vehicle.Params)
	r := rig.New(c.Rig)
	return game.NewSession(v, r, game.Options{
		Mode:       mode,
		Chassis:    c.Chassis,
		MarkerSize: c.Marker.Size,
	}, log), nil
}
