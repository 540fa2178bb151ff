// Package rig implements the camera mount that follows the vehicle in fixed
// camera mode: a rest offset in the vehicle frame, its own yaw around the car,
// and a zoom (field of view) that reacts to throttle and then recovers.
package rig

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-racing/pkg/vehicle"
)

// Pan is a direction for rotating the rig around the vehicle
type Pan int

const (
	PanLeft Pan = iota
	PanRight
)

// Default tuning. Zoom values are fields of view in degrees.
const (
	DefaultZoom         = 45.0
	DefaultMinZoom      = 30.0
	DefaultMaxZoom      = 60.0
	DefaultZoomRate     = 20.0 // degrees per second
	DefaultRecoveryRate = 3.0  // 1/s
	DefaultPanRate      = 60.0 // degrees per second
)

// DefaultOffset places the camera above and behind the car's rest frame
var DefaultOffset = mgl32.Vec3{0, 2, -5}

// Params tunes the rig
type Params struct {
	Offset       mgl32.Vec3 `mapstructure:"offset"`
	DefaultZoom  float32    `mapstructure:"defaultZoom"`
	MinZoom      float32    `mapstructure:"minZoom"`
	MaxZoom      float32    `mapstructure:"maxZoom"`
	ZoomRate     float32    `mapstructure:"zoomRate"`
	RecoveryRate float32    `mapstructure:"recoveryRate"`
	PanRate      float32    `mapstructure:"panRate"`
}

// DefaultParams returns the tuning used when no configuration overrides it
func DefaultParams() Params {
	return Params{
		Offset:       DefaultOffset,
		DefaultZoom:  DefaultZoom,
		MinZoom:      DefaultMinZoom,
		MaxZoom:      DefaultMaxZoom,
		ZoomRate:     DefaultZoomRate,
		RecoveryRate: DefaultRecoveryRate,
		PanRate:      DefaultPanRate,
	}
}

// View is a world-space camera placement: a position and a heading in degrees
// using the vehicle's yaw convention
type View struct {
	Position mgl32.Vec3
	Yaw      float32
}

// Rig is the fixed camera's state. It persists across camera mode switches.
type Rig struct {
	params Params

	yaw  float32
	zoom float32

	// Set by ZoomIn/ZoomOut, consumed by RecoverZoom
	zooming bool
}

// New creates a rig at its rest yaw and default zoom
func New(params Params) *Rig {
	return &Rig{
		params: params,
		zoom:   params.DefaultZoom,
	}
}

// ProcessSteerInput rotates the rig around the vehicle
func (r *Rig) ProcessSteerInput(dir Pan, dt float32) {
	if !vehicle.ValidDelta(dt) {
		return
	}

	delta := r.params.PanRate * dt
	if dir == PanRight {
		delta = -delta
	}
	r.yaw += delta
}

// ZoomOut widens the field of view, used while driving forward
func (r *Rig) ZoomOut(dt float32) {
	if !vehicle.ValidDelta(dt) {
		return
	}
	r.zoom = mgl32.Clamp(r.zoom+r.params.ZoomRate*dt, r.params.MinZoom, r.params.MaxZoom)
	r.zooming = true
}

// ZoomIn narrows the field of view, used while reversing
func (r *Rig) ZoomIn(dt float32) {
	if !vehicle.ValidDelta(dt) {
		return
	}
	r.zoom = mgl32.Clamp(r.zoom-r.params.ZoomRate*dt, r.params.MinZoom, r.params.MaxZoom)
	r.zooming = true
}

// RecoverZoom eases zoom back toward the default. It runs every fixed-mode frame
// but holds still on frames where ZoomIn or ZoomOut was applied.
func (r *Rig) RecoverZoom(dt float32) {
	if r.zooming {
		r.zooming = false
		return
	}
	r.zoom = vehicle.Converge(r.zoom, r.params.DefaultZoom, r.params.RecoveryRate, dt)
}

// ComputeWorldTransform places the rig in world space from the vehicle's
// mid-value pose. The offset is authored in the vehicle's rest frame, so it is
// rotated into the world by the vehicle's heading before being translated.
func (r *Rig) ComputeWorldTransform(pose vehicle.Pose) View {
	rotation := mgl32.Rotate3DY(mgl32.DegToRad(pose.MidYaw))
	offset := rotation.Mul3x1(r.params.Offset)

	return View{
		Position: pose.MidPosition.Add(offset),
		Yaw:      r.yaw + pose.MidYaw,
	}
}

// Reset returns the rig to its rest yaw and default zoom
func (r *Rig) Reset() {
	r.yaw = 0
	r.zoom = r.params.DefaultZoom
	r.zooming = false
}

// Yaw returns the rig's own rotation around the vehicle in degrees
func (r *Rig) Yaw() float32 {
	return r.yaw
}

// Zoom returns the current field of view in degrees
func (r *Rig) Zoom() float32 {
	return r.zoom
}

// Offset returns the rest offset in the vehicle frame
func (r *Rig) Offset() mgl32.Vec3 {
	return r.params.Offset
}

// Params returns the rig's tuning
func (r *Rig) Params() Params {
	return r.params
}
