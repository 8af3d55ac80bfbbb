package game

import (
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// logRenderStats logs the render pass breakdown.
func (g *Game) logRenderStats() {
	total := g.renderPerf.Total()
	attrs := []any{
		"tick", g.tick,
		"fps", rl.GetFPS(),
		"total", total.Round(time.Microsecond),
	}
	for _, name := range g.renderPerf.SortedNames() {
		avg := g.renderPerf.Avg(name)
		pct := float64(0)
		if total > 0 {
			pct = float64(avg) / float64(total) * 100
		}
		attrs = append(attrs, slog.Group(name,
			"avg", avg.Round(time.Microsecond),
			"pct", pct,
		))
	}
	slog.Info("render", attrs...)
}
