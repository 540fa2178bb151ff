package compose

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/leterax/go-racing/pkg/rig"
	"github.com/leterax/go-racing/pkg/vehicle"
	"github.com/stretchr/testify/assert"
)

var approx = cmpopts.EquateApprox(0, 1e-5)

var unitMesh = MeshCorrection{Scale: mgl32.Vec3{1, 1, 1}}

func turning() vehicle.Pose {
	return vehicle.Pose{
		Position:    mgl32.Vec3{3, 0.05, 4},
		Yaw:         70,
		DelayedYaw:  40,
		MidPosition: mgl32.Vec3{2.5, 0.05, 3.5},
		MidYaw:      25,
	}
}

func TestZeroOffsetMarkerSitsOnChassis(t *testing.T) {
	pose := turning()

	chassis := Chassis(pose, MeshCorrection{Yaw: -90, Scale: mgl32.Vec3{0.5, 0.5, 0.5}})
	marker := Marker(pose, 35, mgl32.Vec3{}, mgl32.Vec3{0.2, 0.2, 0.2})

	if diff := cmp.Diff(Translation(chassis), Translation(marker), approx); diff != "" {
		t.Errorf("marker translation mismatch (-chassis +marker):\n%s", diff)
	}
	if diff := cmp.Diff(pose.MidPosition, Translation(chassis), approx); diff != "" {
		t.Errorf("chassis not anchored at mid position:\n%s", diff)
	}
}

func TestChassisFacesInstantYaw(t *testing.T) {
	pose := turning()

	forward := Chassis(pose, unitMesh).Mul4x1(mgl32.Vec4{0, 0, 1, 0}).Vec3()

	if diff := cmp.Diff(vehicle.Heading(pose.Yaw), forward, approx); diff != "" {
		t.Errorf("chassis forward mismatch:\n%s", diff)
	}
}

func TestChildrenShareBase(t *testing.T) {
	pose := turning()
	mesh := MeshCorrection{Yaw: 180, Scale: mgl32.Vec3{0.01, 0.01, 0.01}}
	offset := mgl32.Vec3{0, 2, -5}
	size := mgl32.Vec3{0.3, 0.3, 0.3}

	parentInv := Base(pose).Inv()

	chassisLocal := parentInv.Mul4(Chassis(pose, mesh))
	wantChassis := mgl32.HomogRotate3DY(mgl32.DegToRad(pose.Yaw - pose.DelayedYaw/2)).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(180))).
		Mul4(mgl32.Scale3D(0.01, 0.01, 0.01))
	if diff := cmp.Diff(wantChassis, chassisLocal, cmpopts.EquateApprox(0, 1e-4)); diff != "" {
		t.Errorf("chassis child transform mismatch:\n%s", diff)
	}

	markerLocal := parentInv.Mul4(Marker(pose, 15, offset, size))
	wantMarker := mgl32.HomogRotate3DY(mgl32.DegToRad(15 + pose.Yaw/2)).
		Mul4(mgl32.Translate3D(0, 2, -5)).
		Mul4(mgl32.Scale3D(0.3, 0.3, 0.3))
	if diff := cmp.Diff(wantMarker, markerLocal, cmpopts.EquateApprox(0, 1e-4)); diff != "" {
		t.Errorf("marker child transform mismatch:\n%s", diff)
	}
}

func TestMarkerScaleDoesNotStretchOffset(t *testing.T) {
	pose := turning()
	offset := mgl32.Vec3{0, 2, -5}

	small := Translation(Marker(pose, 0, offset, mgl32.Vec3{0.1, 0.1, 0.1}))
	large := Translation(Marker(pose, 0, offset, mgl32.Vec3{10, 10, 10}))

	if diff := cmp.Diff(small, large, approx); diff != "" {
		t.Errorf("scale leaked into marker position:\n%s", diff)
	}
}

func TestSettledMarkerMatchesRigView(t *testing.T) {
	pose := vehicle.Pose{
		Position:    mgl32.Vec3{4, 0.05, -2},
		Yaw:         120,
		DelayedYaw:  120,
		MidPosition: mgl32.Vec3{4, 0.05, -2},
		MidYaw:      120,
	}
	r := rig.New(rig.DefaultParams())

	frame := Scene(pose, r, unitMesh, mgl32.Vec3{1, 1, 1})
	view := r.ComputeWorldTransform(pose)

	if diff := cmp.Diff(view.Position, Translation(frame.Marker), cmpopts.EquateApprox(0, 1e-4)); diff != "" {
		t.Errorf("marker and rig view disagree once settled:\n%s", diff)
	}
}

func TestSceneUsesRigState(t *testing.T) {
	pose := turning()
	r := rig.New(rig.DefaultParams())
	r.ProcessSteerInput(rig.PanLeft, 0.5)

	frame := Scene(pose, r, unitMesh, mgl32.Vec3{1, 1, 1})

	want := Marker(pose, r.Yaw(), r.Offset(), mgl32.Vec3{1, 1, 1})
	assert.Equal(t, want, frame.Marker)
	assert.Equal(t, Chassis(pose, unitMesh), frame.Chassis)
}
