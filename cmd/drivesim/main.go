// Command drivesim plays an input script through a driving session without
// opening a window and logs the resulting poses.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/leterax/go-racing/internal/config"
	"github.com/leterax/go-racing/internal/logging"
	"github.com/leterax/go-racing/internal/sim"
	"github.com/leterax/go-racing/pkg/input"
)

const defaultScript = "forward:2,forward+left:1.5,camera:0.1,forward+right:1,backward:0.5,idle:2"

func main() {
	configPath := flag.String("config", "", "Config file (default: ./racing.{json,yaml,toml} if present)")
	script := flag.String("script", defaultScript, "Comma-separated steps, e.g. forward+left:0.5")
	delta := flag.Float64("dt", 1.0/60, "Frame time in seconds")
	jitter := flag.Float64("jitter", 0, "Relative frame time jitter in [0, 1)")
	seed := flag.Int64("seed", 1, "Jitter seed")
	every := flag.Int("every", 30, "Log every Nth frame, 0 for the final pose only")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Pretty, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	steps, err := input.ParseScript(*script)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid script")
	}

	session, err := cfg.NewSession(logging.Component(log, "session"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create session")
	}

	res, err := sim.Run(session, steps, sim.Options{
		Delta:  float32(*delta),
		Jitter: float32(*jitter),
		Seed:   *seed,
		Every:  *every,
	}, logging.Component(log, "sim"))
	if err != nil {
		log.Fatal().Err(err).Msg("Simulation failed")
	}

	log.Info().
		Int("steps", len(steps)).
		Int("frames", res.Frames).
		Float32("seconds", res.Elapsed).
		Bool("quit", res.Quit).
		Msg("Simulation finished")
}
