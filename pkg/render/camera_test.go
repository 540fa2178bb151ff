package render

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/leterax/go-racing/pkg/vehicle"
	"github.com/stretchr/testify/assert"
)

type fakeKeys map[glfw.Key]bool

func (f fakeKeys) IsKeyDown(key glfw.Key) bool {
	return f[key]
}

func assertVec(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-4)); diff != "" {
		t.Errorf("vector mismatch (-want +got):\n%s", diff)
	}
}

func TestNewCameraLooksDownNegativeZ(t *testing.T) {
	c := NewCamera(mgl32.Vec3{1, 2, 3})
	assertVec(t, mgl32.Vec3{0, 0, -1}, c.FrontVector())
	assertVec(t, mgl32.Vec3{1, 0, 0}, c.RightVector())
	assertVec(t, mgl32.Vec3{0, 1, 0}, c.UpVector())
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, c.Position())
}

func TestSetViewFacesHeading(t *testing.T) {
	for _, heading := range []float32{0, 45, 90, 180, -135, 400} {
		c := NewCamera(mgl32.Vec3{})
		c.SetView(mgl32.Vec3{4, 2, -1}, heading)

		assert.Equal(t, mgl32.Vec3{4, 2, -1}, c.Position())
		assertVec(t, vehicle.Heading(heading), c.FrontVector())
	}
}

func TestSetViewKeepsPitch(t *testing.T) {
	c := NewCamera(mgl32.Vec3{})
	c.SetRotation(0, -12)
	c.SetView(mgl32.Vec3{}, 90)

	yaw, pitch := c.Orientation()
	assert.Equal(t, float32(0), yaw)
	assert.Equal(t, float32(-12), pitch)
	assert.Less(t, c.FrontVector().Y(), float32(0))
}

func TestHeadingToYaw(t *testing.T) {
	assert.Equal(t, float32(90), HeadingToYaw(0))
	assert.Equal(t, float32(0), HeadingToYaw(90))
	assert.Equal(t, float32(-90), HeadingToYaw(180))
}

func TestSetRotationClampsPitch(t *testing.T) {
	c := NewCamera(mgl32.Vec3{})
	c.SetRotation(10, 120)
	_, pitch := c.Orientation()
	assert.Equal(t, float32(MaxPitch), pitch)

	c.SetRotation(10, -120)
	_, pitch = c.Orientation()
	assert.Equal(t, float32(MinPitch), pitch)
}

func TestSetFOV(t *testing.T) {
	c := NewCamera(mgl32.Vec3{})
	before := c.ProjectionMatrix()

	c.SetFOV(60)
	assert.Equal(t, float32(60), c.FOV())
	assert.NotEqual(t, before, c.ProjectionMatrix())

	for _, bad := range []float32{0, -5, 180, 200} {
		c.SetFOV(bad)
		assert.Equal(t, float32(60), c.FOV(), "fov %v", bad)
	}
}

func TestHandleMouseScrollClamps(t *testing.T) {
	c := NewCamera(mgl32.Vec3{})
	c.HandleMouseScroll(100)
	assert.Equal(t, float32(MinFOV), c.FOV())

	c.HandleMouseScroll(-100)
	assert.Equal(t, float32(MaxFOV), c.FOV())
}

func TestHandleMouseMovement(t *testing.T) {
	c := NewCamera(mgl32.Vec3{})

	// First sample only records the cursor
	c.HandleMouseMovement(100, 100)
	yaw, pitch := c.Orientation()
	assert.Equal(t, float32(DefaultYaw), yaw)
	assert.Equal(t, float32(DefaultPitch), pitch)

	c.HandleMouseMovement(150, 80)
	yaw, pitch = c.Orientation()
	assert.InDelta(t, DefaultYaw+50*DefaultRotateSpeed, yaw, 1e-4)
	assert.InDelta(t, 20*DefaultRotateSpeed, pitch, 1e-4)

	c.ResetMouseState()
	c.HandleMouseMovement(0, 0)
	yaw2, _ := c.Orientation()
	assert.Equal(t, yaw, yaw2)
}

func TestLookAt(t *testing.T) {
	c := NewCamera(mgl32.Vec3{0, 0, 0})
	c.LookAt(mgl32.Vec3{5, 0, 0})
	assertVec(t, mgl32.Vec3{1, 0, 0}, c.FrontVector())

	// Looking at its own position is a no-op
	c.LookAt(mgl32.Vec3{0, 0, 0})
	assertVec(t, mgl32.Vec3{1, 0, 0}, c.FrontVector())
}

func TestProcessKeyboardInput(t *testing.T) {
	c := NewCamera(mgl32.Vec3{})

	c.ProcessKeyboardInput(0.5, fakeKeys{KeyFreeForward: true})
	assertVec(t, mgl32.Vec3{0, 0, -5}, c.Position())

	c.ProcessKeyboardInput(0.1, fakeKeys{KeyFreeRight: true, KeyFreeUp: true})
	assertVec(t, mgl32.Vec3{1, 1, -5}, c.Position())

	// Opposite keys cancel
	c.ProcessKeyboardInput(1, fakeKeys{KeyFreeLeft: true, KeyFreeRight: true})
	assertVec(t, mgl32.Vec3{1, 1, -5}, c.Position())
}

func TestSkyboxViewMatrixDropsTranslation(t *testing.T) {
	c := NewCamera(mgl32.Vec3{10, 20, 30})
	m := c.SkyboxViewMatrix()
	assert.Equal(t, mgl32.Vec3{}, m.Col(3).Vec3())
	assert.Equal(t, float32(1), m.At(3, 3))
}
