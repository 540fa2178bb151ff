package vehicle

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = mgl32.Vec3{0, 0.05, 0}

func TestApplyThrottleForward(t *testing.T) {
	v := New(start, DefaultParams())

	v.ApplyThrottle(Forward, 1.0)

	pos := v.Position()
	assert.InDelta(t, 0, pos.X(), 1e-6)
	assert.InDelta(t, 0.05, pos.Y(), 1e-6)
	assert.InDelta(t, DefaultMoveSpeed*1.0, pos.Z(), 1e-6)
	assert.Equal(t, float32(0), v.Yaw())
}

func TestApplyThrottleBackwardFollowsHeading(t *testing.T) {
	v := New(start, DefaultParams())

	// Facing +X
	v.yaw = 90

	before := v.Position()
	v.ApplyThrottle(Backward, 2.0)
	moved := v.Position().Sub(before)

	assert.InDelta(t, -2*DefaultMoveSpeed, moved.X(), 1e-4)
	assert.InDelta(t, 0, moved.Y(), 1e-6)
	assert.InDelta(t, 0, moved.Z(), 1e-4)
}

func TestSteerRequiresThrottle(t *testing.T) {
	tests := []struct {
		name     string
		throttle bool
		dt       float32
		want     float32
	}{
		{"forward held", true, 0.5, DefaultTurnRate * 0.5},
		{"released", false, 0.5, 0},
		{"released long frame", false, 10, 0},
		{"released zero dt", false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(start, DefaultParams())
			if tt.throttle {
				v.ApplyThrottle(Forward, tt.dt)
			}
			v.ApplySteer(Left, tt.dt)
			assert.InDelta(t, tt.want, v.Yaw(), 1e-5)
		})
	}
}

func TestSteerLatchClearsOnAdvance(t *testing.T) {
	v := New(start, DefaultParams())

	v.ApplyThrottle(Forward, 0.1)
	v.Advance(0.1)
	v.ApplySteer(Right, 0.1)

	assert.Equal(t, float32(0), v.Yaw())
	assert.False(t, v.Throttled())
}

func TestSteerRightDecreasesYaw(t *testing.T) {
	v := New(start, DefaultParams())

	v.ApplyThrottle(Backward, 0.25)
	v.ApplySteer(Right, 0.25)

	assert.InDelta(t, -DefaultTurnRate*0.25, v.Yaw(), 1e-5)
}

func TestDelayedYawConvergesWithoutOvershoot(t *testing.T) {
	for _, target := range []float32{90, -135, 0.001} {
		v := New(start, DefaultParams())
		v.yaw = target

		prevGap := math.Abs(float64(target - v.DelayedYaw()))
		for i := 0; i < 500; i++ {
			v.AdvanceDelayedYaw(1.0 / 60)
			gap := math.Abs(float64(target - v.DelayedYaw()))

			require.LessOrEqual(t, gap, prevGap, "step %d moved away from target", i)
			if target > 0 {
				require.LessOrEqual(t, v.DelayedYaw(), target)
			} else {
				require.GreaterOrEqual(t, v.DelayedYaw(), target)
			}
			prevGap = gap
		}
		assert.InDelta(t, target, v.DelayedYaw(), 1e-3)
	}
}

func TestDelayedYawFixedPoint(t *testing.T) {
	for _, dt := range []float32{0, 1.0 / 144, 1.0 / 30, 0.5, 3} {
		v := New(start, DefaultParams())
		v.yaw = 42.5
		v.delayedYaw = 42.5

		for i := 0; i < 50; i++ {
			v.AdvanceDelayedYaw(dt)
		}
		assert.Equal(t, float32(42.5), v.DelayedYaw(), "dt=%v", dt)
	}
}

func TestDelayedYawFrameRateIndependent(t *testing.T) {
	coarse := New(start, DefaultParams())
	fine := New(start, DefaultParams())
	coarse.yaw = 60
	fine.yaw = 60

	coarse.AdvanceDelayedYaw(0.2)
	for i := 0; i < 20; i++ {
		fine.AdvanceDelayedYaw(0.01)
	}

	assert.InDelta(t, coarse.DelayedYaw(), fine.DelayedYaw(), 1e-3)
}

func TestMidPoseLagsDelayedPose(t *testing.T) {
	v := New(start, DefaultParams())

	for i := 0; i < 30; i++ {
		v.ApplyThrottle(Forward, 1.0/30)
		v.ApplySteer(Left, 1.0/30)
		v.Advance(1.0 / 30)
	}

	pose := v.Snapshot()
	assert.InDelta(t, DefaultTurnRate, pose.Yaw, 1e-3)
	assert.Less(t, pose.DelayedYaw, pose.Yaw)
	assert.Less(t, pose.MidYaw, pose.DelayedYaw)
	assert.Greater(t, pose.MidYaw, float32(0))

	travelled := pose.Position.Sub(start).Len()
	anchored := pose.MidPosition.Sub(start).Len()
	assert.Less(t, anchored, travelled)
}

func TestMidPoseSettles(t *testing.T) {
	v := New(start, DefaultParams())
	v.ApplyThrottle(Forward, 1)
	v.ApplySteer(Left, 0.5)

	for i := 0; i < 600; i++ {
		v.Advance(1.0 / 60)
	}

	pose := v.Snapshot()
	assert.InDelta(t, pose.Yaw, pose.DelayedYaw, 1e-3)
	assert.InDelta(t, pose.Yaw, pose.MidYaw, 1e-3)
	assert.True(t, pose.MidPosition.ApproxEqualThreshold(pose.Position, 1e-3))
}

func TestInvalidDeltaIsIgnored(t *testing.T) {
	bad := []float32{
		-0.016,
		float32(math.NaN()),
		float32(math.Inf(1)),
		float32(math.Inf(-1)),
	}

	for _, dt := range bad {
		v := New(start, DefaultParams())
		v.yaw = 30

		v.ApplyThrottle(Forward, dt)
		v.ApplySteer(Left, dt)
		v.Advance(dt)

		pose := v.Snapshot()
		assert.Equal(t, start, pose.Position, "dt=%v", dt)
		assert.Equal(t, float32(30), pose.Yaw, "dt=%v", dt)
		assert.Equal(t, float32(0), pose.DelayedYaw, "dt=%v", dt)
		assert.Equal(t, start, pose.MidPosition, "dt=%v", dt)
	}
}

func TestHeading(t *testing.T) {
	tests := []struct {
		yaw  float32
		want mgl32.Vec3
	}{
		{0, mgl32.Vec3{0, 0, 1}},
		{90, mgl32.Vec3{1, 0, 0}},
		{180, mgl32.Vec3{0, 0, -1}},
		{-90, mgl32.Vec3{-1, 0, 0}},
	}

	for _, tt := range tests {
		got := Heading(tt.yaw)
		if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
			t.Errorf("Heading(%v) mismatch (-want +got):\n%s", tt.yaw, diff)
		}
		assert.InDelta(t, 1, got.Len(), 1e-6)
	}
}

func TestConverge(t *testing.T) {
	assert.Equal(t, float32(5), Converge(5, 5, 10, 1))
	assert.Equal(t, float32(1), Converge(1, 5, 0, 1), "zero rate holds")
	assert.Equal(t, float32(1), Converge(1, 5, 10, 0), "zero dt holds")

	next := Converge(0, 10, 1, 1)
	assert.InDelta(t, 10*(1-math.Exp(-1)), next, 1e-4)

	assert.Equal(t, float32(10), Converge(9.999999, 10, 1000, 1000))
}
