package game

import (
	"log/slog"

	"github.com/pthm-cable/pour/telemetry"
)

// flushTelemetry closes the stats window when it is complete, logs it and writes
// it to the output files.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	sample := g.sim.MeasureFluid()
	stats := g.collector.Flush(g.tick, sample)
	perfStats := g.perfCollector.Stats()
	g.lastFill = float32(sample.FillLevel)

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
