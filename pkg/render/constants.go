package render

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/leterax/go-racing/pkg/input"
)

// Free camera keys
const (
	KeyFreeForward  = glfw.KeyW
	KeyFreeBackward = glfw.KeyS
	KeyFreeLeft     = glfw.KeyA
	KeyFreeRight    = glfw.KeyD
	KeyFreeUp       = glfw.KeySpace
	KeyFreeDown     = glfw.KeyLeftShift

	// KeyMouseCapture toggles mouse look; it is handled by the window callback,
	// not the session
	KeyMouseCapture = glfw.KeyM
)

// KeyBindings maps keys to the session actions they hold. Several keys may
// drive the same action.
var KeyBindings = map[glfw.Key]input.Action{
	glfw.KeyUp:     input.ForwardThrottle,
	glfw.KeyDown:   input.BackwardThrottle,
	glfw.KeyLeft:   input.SteerLeft,
	glfw.KeyRight:  input.SteerRight,
	glfw.KeyC:      input.ToggleCameraMode,
	glfw.KeyQ:      input.CameraPanLeft,
	glfw.KeyE:      input.CameraPanRight,
	glfw.KeyP:      input.ToggleWireframe,
	glfw.KeyR:      input.ResetRig,
	glfw.KeyEscape: input.Quit,
}

// Camera constants
const (
	// Movement speeds
	DefaultMoveSpeed   = 10.0
	DefaultRotateSpeed = 0.1

	// Default orientation
	DefaultYaw   = -90.0 // Facing -Z direction
	DefaultPitch = 0.0

	// Field of view
	DefaultFOV = 45.0
	MinFOV     = 1.0
	MaxFOV     = 60.0

	// Constraints
	MaxPitch = 89.0
	MinPitch = -89.0

	// Clip planes
	NearPlane = 0.1
	FarPlane  = 500.0
)

// HeldActions polls every bound key and returns the set of held actions
func HeldActions(keys KeyState, bindings map[glfw.Key]input.Action) input.State {
	var held input.State
	for key, action := range bindings {
		if keys.IsKeyDown(key) {
			held = held.With(action)
		}
	}
	return held
}
