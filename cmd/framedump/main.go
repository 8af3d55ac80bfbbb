// Frame dump tool - pours for a number of ticks and saves the rendered frame as PNG.
//
// Usage: go run ./cmd/framedump -ticks 600 -out pour.png
package main

import (
	"flag"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pour/config"
	"github.com/pthm-cable/pour/game"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "frame.png", "Output PNG path")
	ticks := flag.Int("ticks", 600, "Simulation ticks before capture")
	seed := flag.Int64("seed", 1, "RNG seed")
	tilt := flag.Float64("tilt", 0, "Tilt angle in degrees (0 = upright)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Frame Dump")
	defer rl.CloseWindow()

	g, err := game.NewGameWithOptions(game.Options{
		Seed:      *seed,
		AutoPour:  true,
		TiltAngle: *tilt,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create game: %v\n", err)
		os.Exit(1)
	}
	defer g.Unload()

	for int(g.Tick()) < *ticks {
		g.UpdateHeadless()
	}

	// Draw twice so both swap buffers hold the same frame before reading back
	g.Draw()
	g.Draw()

	img := rl.LoadImageFromScreen()
	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)

	if success {
		fmt.Printf("Frame rendered to: %s (tick %d, %d particles)\n", *outPath, g.Tick(), g.Simulation().Count())
	} else {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
}
