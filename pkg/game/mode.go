package game

import (
	"fmt"
	"strings"
)

// CameraMode selects which camera the scene is viewed from
type CameraMode uint8

const (
	// Free is the user-controlled fly camera
	Free CameraMode = iota
	// Fixed is the rig mounted to the vehicle
	Fixed
)

// String returns the mode's name
func (m CameraMode) String() string {
	switch m {
	case Free:
		return "free"
	case Fixed:
		return "fixed"
	default:
		return fmt.Sprintf("CameraMode(%d)", uint8(m))
	}
}

// Toggle returns the other mode
func (m CameraMode) Toggle() CameraMode {
	if m == Fixed {
		return Free
	}
	return Fixed
}

// ParseCameraMode parses "free" or "fixed"
func ParseCameraMode(s string) (CameraMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "free", "":
		return Free, nil
	case "fixed":
		return Fixed, nil
	default:
		return Free, fmt.Errorf("unknown camera mode %q", s)
	}
}
