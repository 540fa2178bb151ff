// Package compose builds the model matrices the renderer draws the car and its
// camera mount with. Both share one parent frame, translated to the vehicle's
// mid-value position and turned by half of the delayed yaw; each child appends
// its own rotation, translation and scale.
package compose

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-racing/pkg/rig"
	"github.com/leterax/go-racing/pkg/vehicle"
)

// MeshCorrection orients and sizes a mesh authored in its own space
type MeshCorrection struct {
	Yaw   float32    `mapstructure:"yaw"`
	Scale mgl32.Vec3 `mapstructure:"scale"`
}

// Frame holds the matrices composed from a single vehicle snapshot
type Frame struct {
	Chassis mgl32.Mat4
	Marker  mgl32.Mat4
}

func rotateY(deg float32) mgl32.Mat4 {
	return mgl32.HomogRotate3DY(mgl32.DegToRad(deg))
}

func scale(s mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Scale3D(s.X(), s.Y(), s.Z())
}

// Base returns the parent frame shared by the chassis and the camera marker
func Base(pose vehicle.Pose) mgl32.Mat4 {
	p := pose.MidPosition
	return mgl32.Translate3D(p.X(), p.Y(), p.Z()).Mul4(rotateY(pose.DelayedYaw / 2))
}

// Chassis returns the car body's model matrix. The second rotation makes up the
// rest of the way to the instantaneous yaw before the mesh correction applies.
func Chassis(pose vehicle.Pose, mesh MeshCorrection) mgl32.Mat4 {
	return Base(pose).
		Mul4(rotateY(pose.Yaw - pose.DelayedYaw/2)).
		Mul4(rotateY(mesh.Yaw)).
		Mul4(scale(mesh.Scale))
}

// Marker returns the model matrix of the visible camera mount
func Marker(pose vehicle.Pose, rigYaw float32, offset, size mgl32.Vec3) mgl32.Mat4 {
	return Base(pose).
		Mul4(rotateY(rigYaw + pose.Yaw/2)).
		Mul4(mgl32.Translate3D(offset.X(), offset.Y(), offset.Z())).
		Mul4(scale(size))
}

// Scene composes both matrices from the same snapshot
func Scene(pose vehicle.Pose, r *rig.Rig, mesh MeshCorrection, markerSize mgl32.Vec3) Frame {
	return Frame{
		Chassis: Chassis(pose, mesh),
		Marker:  Marker(pose, r.Yaw(), r.Offset(), markerSize),
	}
}

// Translation returns the translation part of an affine matrix
func Translation(m mgl32.Mat4) mgl32.Vec3 {
	return m.Col(3).Vec3()
}
