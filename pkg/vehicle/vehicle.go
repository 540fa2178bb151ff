// Package vehicle holds the car's kinematic state: an instantaneous pose driven
// by throttle and steering input, plus two progressively smoothed poses used for
// drawing the chassis and anchoring the mounted camera.
package vehicle

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Throttle is a longitudinal input direction
type Throttle int

const (
	Forward Throttle = iota
	Backward
)

// Steer is a lateral input direction
type Steer int

const (
	Left Steer = iota
	Right
)

// Default tuning
const (
	DefaultMoveSpeed      = 2.5  // units per second
	DefaultTurnRate       = 90.0 // degrees per second
	DefaultDelayedYawRate = 6.0  // 1/s
	DefaultMidPoseRate    = 4.0  // 1/s
)

// Params tunes the motion and smoothing model
type Params struct {
	MoveSpeed      float32 `mapstructure:"moveSpeed"`
	TurnRate       float32 `mapstructure:"turnRate"`
	DelayedYawRate float32 `mapstructure:"delayedYawRate"`
	MidPoseRate    float32 `mapstructure:"midPoseRate"`
}

// DefaultParams returns the tuning used when no configuration overrides it
func DefaultParams() Params {
	return Params{
		MoveSpeed:      DefaultMoveSpeed,
		TurnRate:       DefaultTurnRate,
		DelayedYawRate: DefaultDelayedYawRate,
		MidPoseRate:    DefaultMidPoseRate,
	}
}

// Pose is a read-only snapshot of a vehicle's state
type Pose struct {
	Position    mgl32.Vec3
	Yaw         float32
	DelayedYaw  float32
	MidPosition mgl32.Vec3
	MidYaw      float32
}

// Vehicle owns the car's position and heading along with their smoothed counterparts
type Vehicle struct {
	params Params

	position   mgl32.Vec3
	yaw        float32
	delayedYaw float32

	// Second-order smoothing used as the camera anchor
	midPosition mgl32.Vec3
	midYaw      float32

	// Set by ApplyThrottle, cleared by Advance
	throttled bool
}

// New creates a vehicle at rest at start, facing +Z
func New(start mgl32.Vec3, params Params) *Vehicle {
	return &Vehicle{
		params:      params,
		position:    start,
		midPosition: start,
	}
}

// Heading returns the unit forward vector for a yaw in degrees.
// Yaw is counter-clockwise about +Y with zero facing +Z.
func Heading(yaw float32) mgl32.Vec3 {
	rad := float64(mgl32.DegToRad(yaw))
	return mgl32.Vec3{float32(math.Sin(rad)), 0, float32(math.Cos(rad))}
}

// ApplyThrottle moves the vehicle along its current heading
func (v *Vehicle) ApplyThrottle(dir Throttle, dt float32) {
	if !ValidDelta(dt) {
		return
	}

	distance := v.params.MoveSpeed * dt
	if dir == Backward {
		distance = -distance
	}
	v.position = v.position.Add(Heading(v.yaw).Mul(distance))
	v.throttled = true
}

// ApplySteer turns the vehicle. It has no effect unless ApplyThrottle was called
// earlier in the same frame; the car cannot pivot in place.
func (v *Vehicle) ApplySteer(dir Steer, dt float32) {
	if !v.throttled || !ValidDelta(dt) {
		return
	}

	delta := v.params.TurnRate * dt
	if dir == Right {
		delta = -delta
	}
	v.yaw += delta
}

// AdvanceDelayedYaw moves the delayed yaw toward the instantaneous yaw
func (v *Vehicle) AdvanceDelayedYaw(dt float32) {
	v.delayedYaw = Converge(v.delayedYaw, v.yaw, v.params.DelayedYawRate, dt)
}

// AdvanceDelayedPosition moves the mid-value pose toward the current position
// and delayed yaw
func (v *Vehicle) AdvanceDelayedPosition(dt float32) {
	v.midPosition = ConvergeVec3(v.midPosition, v.position, v.params.MidPoseRate, dt)
	v.midYaw = Converge(v.midYaw, v.delayedYaw, v.params.MidPoseRate, dt)
}

// Advance finishes a frame: both smoothing stages run with the same dt and the
// throttle latch resets for the next frame.
func (v *Vehicle) Advance(dt float32) {
	v.AdvanceDelayedYaw(dt)
	v.AdvanceDelayedPosition(dt)
	v.throttled = false
}

// Throttled reports whether throttle was applied in the current frame
func (v *Vehicle) Throttled() bool {
	return v.throttled
}

// Position returns the instantaneous position
func (v *Vehicle) Position() mgl32.Vec3 {
	return v.position
}

// Yaw returns the instantaneous heading in degrees
func (v *Vehicle) Yaw() float32 {
	return v.yaw
}

// DelayedYaw returns the smoothed heading in degrees
func (v *Vehicle) DelayedYaw() float32 {
	return v.delayedYaw
}

// MidPosition returns the second-order smoothed position
func (v *Vehicle) MidPosition() mgl32.Vec3 {
	return v.midPosition
}

// MidYaw returns the second-order smoothed heading in degrees
func (v *Vehicle) MidYaw() float32 {
	return v.midYaw
}

// Snapshot copies the current state
func (v *Vehicle) Snapshot() Pose {
	return Pose{
		Position:    v.position,
		Yaw:         v.yaw,
		DelayedYaw:  v.delayedYaw,
		MidPosition: v.midPosition,
		MidYaw:      v.midYaw,
	}
}

// Params returns the vehicle's tuning
func (v *Vehicle) Params() Params {
	return v.params
}
