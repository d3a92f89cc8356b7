// emoji-engine runs the ECS sandbox: an emoji arena where a player, a few
// enemies and some pickups are driven by the engine's frame loop.
//
// Usage:
//
//	./emoji-engine [-config sandbox.toml] [-headless -frames 300] [-dump state.json] [-profile cpu]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/profile"
	"go.uber.org/zap"

	"emoji-engine/internal/config"
	"emoji-engine/internal/game"
	"emoji-engine/internal/inspect"
	"emoji-engine/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "Path to a TOML config file (default $"+config.EnvPath+")")
	profileMode := flag.String("profile", "", `Write a "cpu" or "mem" profile to the working directory`)
	frames := flag.Int("frames", 0, "Stop after this many frames (0 = run until quit)")
	dump := flag.String("dump", "", `Write a JSON snapshot of the world on exit ("-" for stdout)`)
	headless := flag.Bool("headless", false, "Run against an in-memory screen instead of the terminal")
	flag.Parse()

	if err := run(*configPath, *profileMode, *frames, *dump, *headless); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, profileMode string, frames int, dump string, headless bool) error {
	switch profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", profileMode)
	}

	cfg, err := config.Load(config.Path(configPath))
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	if headless && frames <= 0 {
		frames = cfg.Engine.FrameRate * 10
	}
	screen, err := newScreen(headless)
	if err != nil {
		return err
	}

	sb, err := game.New(cfg, log, screen)
	if err != nil {
		screen.Fini()
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	runErr := sb.Run(ctx, frames)
	screen.Fini()

	stats := sb.Stats()
	log.Info("run finished",
		zap.Int("frames", stats.Frames),
		zap.Duration("elapsed", stats.Elapsed),
		zap.Int("kills", stats.EnemiesKilled),
		zap.Bool("died", stats.Died))
	if err := game.SaveStats(stats); err != nil {
		log.Warn("could not save run stats", zap.Error(err))
	}

	if dump != "" {
		if err := writeDump(dump, sb); err != nil {
			return err
		}
	}
	return runErr
}

func newScreen(headless bool) (tcell.Screen, error) {
	var screen tcell.Screen
	if headless {
		screen = tcell.NewSimulationScreen("UTF-8")
	} else {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("create screen: %w", err)
		}
		screen = s
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	if sim, ok := screen.(tcell.SimulationScreen); ok {
		sim.SetSize(100, 30)
	}
	return screen, nil
}

func writeDump(path string, sb *game.Sandbox) error {
	if path == "-" {
		return inspect.WriteWorld(os.Stdout, sb.World())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dump: %w", err)
	}
	defer f.Close()
	return inspect.WriteWorld(f, sb.World())
}
