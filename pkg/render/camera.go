package render

import (
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// KeyState reports whether a key is held; *openglhelper.Window satisfies it
type KeyState interface {
	IsKeyDown(key glfw.Key) bool
}

// Camera implements a 3D camera for navigation
type Camera struct {
	// Position and orientation
	position mgl32.Vec3
	worldUp  mgl32.Vec3
	front    mgl32.Vec3
	up       mgl32.Vec3
	right    mgl32.Vec3

	// Euler angles; yaw 0 looks along +X and increases towards +Z
	yaw   float32
	pitch float32

	// Camera options
	fov         float32
	moveSpeed   float32
	rotateSpeed float32

	// Mouse state
	lastX      float64
	lastY      float64
	firstMouse bool

	// Projection
	projection mgl32.Mat4
	width      int
	height     int
}

// NewCamera creates a new camera with sensible defaults
func NewCamera(position mgl32.Vec3) *Camera {
	camera := &Camera{
		position:    position,
		worldUp:     mgl32.Vec3{0, 1, 0},
		yaw:         DefaultYaw,
		pitch:       DefaultPitch,
		fov:         DefaultFOV,
		moveSpeed:   DefaultMoveSpeed,
		rotateSpeed: DefaultRotateSpeed,
		firstMouse:  true,
		width:       800,
		height:      600,
	}

	camera.updateCameraVectors()
	camera.updateProjectionMatrix()

	return camera
}

// updateCameraVectors recalculates camera vectors based on Euler angles
func (c *Camera) updateCameraVectors() {
	yaw := float64(mgl32.DegToRad(c.yaw))
	pitch := float64(mgl32.DegToRad(c.pitch))
	front := mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}
	c.front = front.Normalize()

	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

func (c *Camera) updateProjectionMatrix() {
	aspect := float32(1)
	if c.height > 0 {
		aspect = float32(c.width) / float32(c.height)
	}
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.fov), aspect, NearPlane, FarPlane)
}

// UpdateProjectionMatrix updates the projection matrix with new dimensions
func (c *Camera) UpdateProjectionMatrix(width, height int) {
	c.width = width
	c.height = height
	c.updateProjectionMatrix()
}

// ViewMatrix returns the current view matrix
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.front), c.up)
}

// SkyboxViewMatrix returns the view matrix without its translation
func (c *Camera) SkyboxViewMatrix() mgl32.Mat4 {
	return c.ViewMatrix().Mat3().Mat4()
}

// ProjectionMatrix returns the current projection matrix
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return c.projection
}

// Position returns the current camera position
func (c *Camera) Position() mgl32.Vec3 {
	return c.position
}

// SetPosition sets the camera position
func (c *Camera) SetPosition(pos mgl32.Vec3) {
	c.position = pos
}

// Orientation returns the current camera orientation (yaw, pitch)
func (c *Camera) Orientation() (yaw, pitch float32) {
	return c.yaw, c.pitch
}

// FOV returns the vertical field of view in degrees
func (c *Camera) FOV() float32 {
	return c.fov
}

// SetFOV sets the vertical field of view in degrees. Values outside (0, 180)
// are ignored.
func (c *Camera) SetFOV(fov float32) {
	if !(fov > 0 && fov < 180) || fov == c.fov {
		return
	}
	c.fov = fov
	c.updateProjectionMatrix()
}

// SetRotation sets the camera rotation angles
func (c *Camera) SetRotation(yaw, pitch float32) {
	c.yaw = yaw
	c.pitch = mgl32.Clamp(pitch, MinPitch, MaxPitch)
	c.updateCameraVectors()
}

// SetView places the camera at position facing heading, a counter-clockwise
// yaw in degrees where 0 faces +Z. Pitch is kept.
func (c *Camera) SetView(position mgl32.Vec3, heading float32) {
	c.position = position
	c.SetRotation(HeadingToYaw(heading), c.pitch)
}

// HeadingToYaw converts a heading (counter-clockwise, 0 faces +Z) into the
// camera's yaw (clockwise seen from above, 0 faces +X)
func HeadingToYaw(heading float32) float32 {
	return 90 - heading
}

// LookAt makes the camera look at a specific point
func (c *Camera) LookAt(target mgl32.Vec3) {
	direction := target.Sub(c.position)
	if direction.Len() == 0 {
		return
	}
	direction = direction.Normalize()

	c.yaw = mgl32.RadToDeg(float32(math.Atan2(float64(direction.Z()), float64(direction.X()))))
	c.pitch = mgl32.Clamp(mgl32.RadToDeg(float32(math.Asin(float64(direction.Y())))), MinPitch, MaxPitch)

	c.updateCameraVectors()
}

// FrontVector returns the camera's front direction vector
func (c *Camera) FrontVector() mgl32.Vec3 {
	return c.front
}

// RightVector returns the camera's right direction vector
func (c *Camera) RightVector() mgl32.Vec3 {
	return c.right
}

// UpVector returns the camera's up direction vector
func (c *Camera) UpVector() mgl32.Vec3 {
	return c.up
}

// ProcessKeyboardInput moves the free camera with WASD, Space and Shift
func (c *Camera) ProcessKeyboardInput(deltaTime float32, keys KeyState) {
	speed := c.moveSpeed * deltaTime

	if keys.IsKeyDown(KeyFreeForward) {
		c.position = c.position.Add(c.front.Mul(speed))
	}
	if keys.IsKeyDown(KeyFreeBackward) {
		c.position = c.position.Sub(c.front.Mul(speed))
	}

	if keys.IsKeyDown(KeyFreeLeft) {
		c.position = c.position.Sub(c.right.Mul(speed))
	}
	if keys.IsKeyDown(KeyFreeRight) {
		c.position = c.position.Add(c.right.Mul(speed))
	}

	if keys.IsKeyDown(KeyFreeUp) {
		c.position = c.position.Add(c.worldUp.Mul(speed))
	}
	if keys.IsKeyDown(KeyFreeDown) {
		c.position = c.position.Sub(c.worldUp.Mul(speed))
	}
}

// HandleMouseMovement updates camera orientation based on mouse movement
func (c *Camera) HandleMouseMovement(xpos, ypos float64) {
	if c.firstMouse {
		c.lastX = xpos
		c.lastY = ypos
		c.firstMouse = false
		return
	}

	xoffset := float32(xpos - c.lastX)
	yoffset := float32(c.lastY - ypos) // Reversed: y ranges bottom to top

	c.lastX = xpos
	c.lastY = ypos

	c.SetRotation(c.yaw+xoffset*c.rotateSpeed, c.pitch+yoffset*c.rotateSpeed)
}

// HandleMouseScroll handles mouse scroll for zoom
func (c *Camera) HandleMouseScroll(yoffset float64) {
	c.SetFOV(mgl32.Clamp(c.fov-float32(yoffset), MinFOV, MaxFOV))
}

// ResetMouseState resets the first-mouse flag for smooth camera control
func (c *Camera) ResetMouseState() {
	c.firstMouse = true
}
