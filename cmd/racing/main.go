package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/leterax/go-racing/internal/config"
	"github.com/leterax/go-racing/internal/logging"
	"github.com/leterax/go-racing/pkg/render"
)

func init() {
	// This is needed to ensure that OpenGL functions are called from the same thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "Config file (default: ./racing.{json,yaml,toml} if present)")
	logLevel := flag.String("log-level", "", "Override the configured log level")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Pretty, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	log.Info().Str("mode", cfg.Camera.Mode).Msg("Starting Go-Racing")

	session, err := cfg.NewSession(logging.Component(log, "session"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create session")
	}

	renderer, err := render.NewRenderer(cfg, session, logging.Component(log, "render"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize renderer")
	}

	renderer.Run()
}
