// Package input turns raw per-frame "is pressed" signals into the logical
// actions the driving session consumes, separating held state from presses
// that happened this frame.
package input

import "strings"

// Action is a logical input the session reacts to
type Action uint8

const (
	ForwardThrottle Action = iota
	BackwardThrottle
	SteerLeft
	SteerRight
	ToggleCameraMode // edge-triggered
	CameraPanLeft
	CameraPanRight
	ToggleWireframe // edge-triggered
	ResetRig        // edge-triggered
	Quit            // edge-triggered

	actionCount
)

var actionNames = [actionCount]string{
	ForwardThrottle:  "forward",
	BackwardThrottle: "backward",
	SteerLeft:        "left",
	SteerRight:       "right",
	ToggleCameraMode: "camera",
	CameraPanLeft:    "panleft",
	CameraPanRight:   "panright",
	ToggleWireframe:  "wireframe",
	ResetRig:         "reset",
	Quit:             "quit",
}

// String returns the action's short name
func (a Action) String() string {
	if a >= actionCount {
		return "unknown"
	}
	return actionNames[a]
}

// ParseAction looks up an action by its short name, case-insensitively
func ParseAction(name string) (Action, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for a, n := range actionNames {
		if n == name {
			return Action(a), true
		}
	}
	return 0, false
}

// Actions returns every defined action in order
func Actions() []Action {
	all := make([]Action, 0, actionCount)
	for a := Action(0); a < actionCount; a++ {
		all = append(all, a)
	}
	return all
}
