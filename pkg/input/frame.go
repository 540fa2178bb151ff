package input

// State is the set of actions held down during one frame
type State uint16

// With returns s with a marked as held
func (s State) With(a Action) State {
	return s | 1<<a
}

// Without returns s with a released
func (s State) Without(a Action) State {
	return s &^ (1 << a)
}

// Has reports whether a is held
func (s State) Has(a Action) bool {
	return s&(1<<a) != 0
}

// NewState builds a State from the given held actions
func NewState(actions ...Action) State {
	var s State
	for _, a := range actions {
		s = s.With(a)
	}
	return s
}

// Frame is the input consumed by one session update
type Frame struct {
	// Held is level-triggered: true for as long as the key is down
	Held State
	// Pressed is edge-triggered: true only on the frame the key went down
	Pressed State
}

// IsHeld reports whether a is currently held
func (f Frame) IsHeld(a Action) bool {
	return f.Held.Has(a)
}

// WasPressed reports whether a went down this frame
func (f Frame) WasPressed(a Action) bool {
	return f.Pressed.Has(a)
}

// Tracker derives press edges from successive held states
type Tracker struct {
	prev State
}

// Next consumes this frame's held state and returns the frame input. A press
// is reported once, on the first frame it is seen held.
func (t *Tracker) Next(held State) Frame {
	pressed := held &^ t.prev
	t.prev = held
	return Frame{Held: held, Pressed: pressed}
}

// Reset forgets the previous state, e.g. after the window lost focus
func (t *Tracker) Reset() {
	t.prev = 0
}
