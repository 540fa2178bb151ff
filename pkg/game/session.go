// Package game runs the per-frame driving update: it routes input to the
// vehicle and camera rig, owns the camera mode toggle, and composes the poses
// the renderer draws.
package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-racing/pkg/compose"
	"github.com/leterax/go-racing/pkg/input"
	"github.com/leterax/go-racing/pkg/rig"
	"github.com/leterax/go-racing/pkg/vehicle"
	"github.com/rs/zerolog"
)

// Options configures a session beyond its vehicle and rig
type Options struct {
	Mode       CameraMode
	Chassis    compose.MeshCorrection
	MarkerSize mgl32.Vec3
}

// Frame is everything the renderer needs from one update
type Frame struct {
	Mode CameraMode
	Pose vehicle.Pose

	Chassis mgl32.Mat4
	Marker  mgl32.Mat4

	// View is the mounted camera placement; only meaningful in Fixed mode
	View rig.View
	Zoom float32

	Wireframe bool
	Quit      bool

	// Delta is the sanitized frame time every stage of the update used
	Delta float32
}

// Session owns the vehicle, the camera rig and the camera mode for one run
type Session struct {
	vehicle *vehicle.Vehicle
	rig     *rig.Rig
	opts    Options
	log     zerolog.Logger

	mode      CameraMode
	wireframe bool
	frames    uint64
}

// NewSession creates a session around an existing vehicle and rig
func NewSession(v *vehicle.Vehicle, r *rig.Rig, opts Options, log zerolog.Logger) *Session {
	return &Session{
		vehicle: v,
		rig:     r,
		opts:    opts,
		log:     log,
		mode:    opts.Mode,
	}
}

// SanitizeDelta maps non-finite or negative frame times to zero
func SanitizeDelta(dt float32) float32 {
	if vehicle.ValidDelta(dt) {
		return dt
	}
	return 0
}

// Update advances the session by one frame
func (s *Session) Update(in input.Frame, dt float32) Frame {
	s.frames++

	// NaN never compares equal, so it lands here too
	if clean := SanitizeDelta(dt); clean != dt {
		s.log.Warn().Float32("dt", dt).Uint64("frame", s.frames).Msg("Discarding invalid frame delta")
		dt = clean
	}

	if in.WasPressed(input.ToggleCameraMode) {
		s.mode = s.mode.Toggle()
		s.log.Info().Stringer("mode", s.mode).Msg("Camera mode switched")
	}
	if in.WasPressed(input.ToggleWireframe) {
		s.wireframe = !s.wireframe
		s.log.Info().Bool("wireframe", s.wireframe).Msg("Wireframe toggled")
	}
	if in.WasPressed(input.ResetRig) {
		s.rig.Reset()
		s.log.Info().Msg("Camera rig reset")
	}

	forward := in.IsHeld(input.ForwardThrottle)
	backward := in.IsHeld(input.BackwardThrottle)

	// Throttle first so steering in the same frame sees the vehicle moving
	if forward {
		s.vehicle.ApplyThrottle(vehicle.Forward, dt)
	}
	if backward {
		s.vehicle.ApplyThrottle(vehicle.Backward, dt)
	}
	if in.IsHeld(input.SteerLeft) {
		s.vehicle.ApplySteer(vehicle.Left, dt)
	}
	if in.IsHeld(input.SteerRight) {
		s.vehicle.ApplySteer(vehicle.Right, dt)
	}

	if s.mode == Fixed {
		if in.IsHeld(input.CameraPanLeft) {
			s.rig.ProcessSteerInput(rig.PanLeft, dt)
		}
		if in.IsHeld(input.CameraPanRight) {
			s.rig.ProcessSteerInput(rig.PanRight, dt)
		}
		if forward {
			s.rig.ZoomOut(dt)
		}
		if backward {
			s.rig.ZoomIn(dt)
		}
	}

	s.vehicle.Advance(dt)

	pose := s.vehicle.Snapshot()
	scene := compose.Scene(pose, s.rig, s.opts.Chassis, s.opts.MarkerSize)

	out := Frame{
		Mode:      s.mode,
		Pose:      pose,
		Chassis:   scene.Chassis,
		Marker:    scene.Marker,
		Zoom:      s.rig.Zoom(),
		Wireframe: s.wireframe,
		Quit:      in.WasPressed(input.Quit),
		Delta:     dt,
	}

	if s.mode == Fixed {
		s.rig.RecoverZoom(dt)
		out.Zoom = s.rig.Zoom()
		out.View = s.rig.ComputeWorldTransform(pose)
	}

	return out
}

// Mode returns the active camera mode
func (s *Session) Mode() CameraMode {
	return s.mode
}

// Wireframe reports whether wireframe rendering is on
func (s *Session) Wireframe() bool {
	return s.wireframe
}

// Vehicle returns the session's vehicle
func (s *Session) Vehicle() *vehicle.Vehicle {
	return s.vehicle
}

// Rig returns the session's camera rig
func (s *Session) Rig() *rig.Rig {
	return s.rig
}

// Frames returns the number of updates run so far
func (s *Session) Frames() uint64 {
	return s.frames
}
