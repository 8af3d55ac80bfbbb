package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pour/config"
	"github.com/pthm-cable/pour/game"
	"github.com/pthm-cable/pour/server"
	"github.com/pthm-cable/pour/terminal"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	term := flag.Bool("term", false, "Render as ASCII in the terminal")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	logFile := flag.String("log-file", "", "Write logs to this file instead of stdout")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and the effective config")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")
	pour := flag.Bool("pour", false, "Start pouring immediately")
	tilt := flag.Float64("tilt", 0, "Enable tilt with this target angle in degrees")
	serve := flag.Bool("serve", false, "Broadcast frames over websocket (see server.address)")

	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// JSON logs on stdout, unless they would draw over the terminal renderer
	var logOut io.Writer = os.Stdout
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			slog.Error("failed to create log file", "error", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	} else if *term {
		logOut = io.Discard
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Headless:       *headless || *term,
		StepsPerUpdate: *stepsPerUpdate,
		AutoPour:       *pour || *headless,
		TiltAngle:      *tilt,
	}

	var hub *server.Hub
	if *serve {
		hub = server.NewHub(cfg.Server.BroadcastRate)
		go func() {
			if err := server.ListenAndServe(ctx, cfg.Server.Address, hub); err != nil {
				slog.Error("websocket server stopped", "error", err)
			}
		}()
		defer hub.Close()
	}

	var err error
	switch {
	case *term:
		err = runTerminal(ctx, opts, hub, cfg.Screen.TargetFPS)
	case *headless:
		err = runHeadless(ctx, opts, hub, *maxTicks)
	default:
		err = runWindow(opts, hub, cfg, *maxTicks)
	}
	if err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func newGame(opts game.Options, hub *server.Hub) (*game.Game, error) {
	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		return nil, err
	}
	if hub != nil {
		g.SetPublisher(hub)
	}
	return g, nil
}

// runHeadless steps the simulation as fast as possible until max ticks or a signal.
func runHeadless(ctx context.Context, opts game.Options, hub *server.Hub, maxTicks int) error {
	g, err := newGame(opts, hub)
	if err != nil {
		return err
	}
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"stats_window", opts.StatsWindowSec,
		"max_ticks", maxTicks,
		"steps_per_update", opts.StepsPerUpdate,
	)

	for ctx.Err() == nil {
		g.UpdateHeadless()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return nil
		}
	}
	slog.Info("interrupted", "tick", g.Tick())
	return nil
}

// runTerminal drives a headless game from the terminal renderer.
func runTerminal(ctx context.Context, opts game.Options, hub *server.Hub, fps int) error {
	g, err := newGame(opts, hub)
	if err != nil {
		return err
	}
	defer g.Unload()

	err = terminal.New(g, fps).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// runWindow opens the raylib window and runs the interactive game.
func runWindow(opts game.Options, hub *server.Hub, cfg *config.Config, maxTicks int) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Pour")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := newGame(opts, hub)
	if err != nil {
		return err
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}
	return nil
}
