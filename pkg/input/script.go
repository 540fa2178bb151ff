package input

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Step holds a set of actions down for a duration in seconds
type Step struct {
	Held     State
	Duration float32
}

// idleName marks a step with nothing held
const idleName = "idle"

// ParseScript parses a comma-separated list of steps of the form
// "action+action:seconds", e.g. "forward:1,forward+left:0.5,camera:0.1,idle:1".
// Holding a toggle across two consecutive steps counts as a single press.
func ParseScript(script string) ([]Step, error) {
	var steps []Step

	for i, field := range strings.Split(script, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		names, durationText, ok := strings.Cut(field, ":")
		if !ok {
			return nil, fmt.Errorf("step %d %q: missing duration", i, field)
		}

		duration, err := strconv.ParseFloat(strings.TrimSpace(durationText), 32)
		if err != nil {
			return nil, fmt.Errorf("step %d %q: invalid duration: %w", i, field, err)
		}
		if math.IsNaN(duration) || math.IsInf(duration, 0) {
			return nil, fmt.Errorf("step %d %q: duration must be finite", i, field)
		}
		if duration < 0 {
			return nil, fmt.Errorf("step %d %q: negative duration", i, field)
		}

		var held State
		for _, name := range strings.Split(names, "+") {
			if strings.EqualFold(strings.TrimSpace(name), idleName) {
				continue
			}
			action, ok := ParseAction(name)
			if !ok {
				return nil, fmt.Errorf("step %d %q: unknown action %q", i, field, name)
			}
			held = held.With(action)
		}

		steps = append(steps, Step{Held: held, Duration: float32(duration)})
	}

	if len(steps) == 0 {
		return nil, fmt.Errorf("script has no steps")
	}
	return steps, nil
}
