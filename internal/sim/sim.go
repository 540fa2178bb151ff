// Package sim drives a session from an input script without a window, at a
// fixed or jittered frame time.
package sim

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/leterax/go-racing/pkg/game"
	"github.com/leterax/go-racing/pkg/input"
	"github.com/rs/zerolog"
)

// Options controls the simulated frame clock and logging
type Options struct {
	// Delta is the nominal frame time in seconds
	Delta float32
	// Jitter scales each frame time by a uniform factor in [1-Jitter, 1+Jitter]
	Jitter float32
	Seed   int64
	// Every logs one frame in Every; zero logs only the final frame
	Every int
	// MaxFrames bounds the worst-case length of a run; zero means DefaultMaxFrames
	MaxFrames int
}

// DefaultMaxFrames is about four and a half hours at 60 frames per second
const DefaultMaxFrames = 1_000_000

// Result summarizes a run
type Result struct {
	Frames  int
	Elapsed float32
	Last    game.Frame
	// Quit is set when the script pressed quit before it ran out
	Quit bool
}

// Clock yields successive frame times
type Clock struct {
	delta  float32
	jitter float32
	rng    *rand.Rand
}

// NewClock returns a clock seeded for reproducible jitter
func NewClock(delta, jitter float32, seed int64) *Clock {
	return &Clock{delta: delta, jitter: jitter, rng: rand.New(rand.NewSource(seed))}
}

// Next returns the next frame time
func (c *Clock) Next() float32 {
	if c.jitter == 0 {
		return c.delta
	}
	return c.delta * (1 + c.jitter*(2*c.rng.Float32()-1))
}

func (o Options) validate() error {
	var errs []error
	if !(o.Delta > 0) || math.IsInf(float64(o.Delta), 1) {
		errs = append(errs, errors.New("delta must be positive and finite"))
	}
	if !(o.Jitter >= 0 && o.Jitter < 1) {
		errs = append(errs, errors.New("jitter must be in [0, 1)"))
	}
	if o.Every < 0 {
		errs = append(errs, errors.New("every must not be negative"))
	}
	if o.MaxFrames < 0 {
		errs = append(errs, errors.New("max frames must not be negative"))
	}
	return errors.Join(errs...)
}

func (o Options) maxFrames() int {
	if o.MaxFrames == 0 {
		return DefaultMaxFrames
	}
	return o.MaxFrames
}

// worstCaseFrames counts the frames steps need when every frame is as short
// as the jitter allows
func worstCaseFrames(steps []input.Step, opts Options) (float64, error) {
	shortest := float64(opts.Delta) * (1 - float64(opts.Jitter))
	var total float64
	for i, step := range steps {
		d := float64(step.Duration)
		if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
			return 0, fmt.Errorf("step %d: duration %v is not a finite non-negative number", i, step.Duration)
		}
		total += math.Ceil(d / shortest)
	}
	return total, nil
}

// Run plays steps through s. Each step's actions stay held until its duration
// has elapsed; the frame that crosses the boundary still belongs to the step.
func Run(s *game.Session, steps []input.Step, opts Options, log zerolog.Logger) (Result, error) {
	if err := opts.validate(); err != nil {
		return Result{}, err
	}
	frames, err := worstCaseFrames(steps, opts)
	if err != nil {
		return Result{}, err
	}
	if limit := opts.maxFrames(); frames > float64(limit) {
		return Result{}, fmt.Errorf("script needs up to %.0f frames at dt %v, limit is %d", frames, opts.Delta, limit)
	}

	clock := NewClock(opts.Delta, opts.Jitter, opts.Seed)
	var tracker input.Tracker
	var res Result

	for i, step := range steps {
		log.Debug().Int("step", i).Float32("duration", step.Duration).Msg("Starting step")

		// float64 so tiny frame times still add up
		for held := 0.0; held < float64(step.Duration); {
			dt := clock.Next()
			res.Last = s.Update(tracker.Next(step.Held), dt)
			res.Frames++
			res.Elapsed += res.Last.Delta
			held += float64(dt)

			if opts.Every > 0 && res.Frames%opts.Every == 0 {
				logFrame(log, res)
			}
			if res.Last.Quit {
				res.Quit = true
				logFrame(log, res)
				return res, nil
			}
		}
	}

	logFrame(log, res)
	return res, nil
}

func logFrame(log zerolog.Logger, res Result) {
	f := res.Last
	log.Info().
		Int("frame", res.Frames).
		Float32("t", res.Elapsed).
		Stringer("mode", f.Mode).
		Floats32("position", f.Pose.Position[:]).
		Float32("yaw", f.Pose.Yaw).
		Float32("delayedYaw", f.Pose.DelayedYaw).
		Floats32("midPosition", f.Pose.MidPosition[:]).
		Float32("midYaw", f.Pose.MidYaw).
		Float32("zoom", f.Zoom).
		Msg("Pose")
}
