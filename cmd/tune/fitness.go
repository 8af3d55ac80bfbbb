package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/pour/components"
	"github.com/pthm-cable/pour/config"
	"github.com/pthm-cable/pour/systems"
	"github.com/pthm-cable/pour/telemetry"
)

// Score weights. Overlap matters most: a fluid that interpenetrates looks wrong even
// when it is calm.
const (
	weightOverlap = 0.35
	weightJitter  = 0.25
	weightLost    = 0.25
	weightSpread  = 0.15

	overlapFloor = 0.6   // MinSepRatio below this counts as overlap
	jitterScale  = 120.0 // px/s of median speed that scores ~0.63
)

// Score is one run's fitness breakdown. Every term is in [0, 1]; lower is better.
type Score struct {
	Overlap float64
	Jitter  float64
	Lost    float64
	Spread  float64
	Total   float64
}

// FitnessEvaluator runs headless pours and scores them.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	mu        sync.Mutex
	lastScore Score
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 1.0,
	}
}

// LastScore returns the seed-averaged breakdown of the most recent evaluation.
func (fe *FitnessEvaluator) LastScore() Score {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastScore
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Seeds run in parallel; each owns its simulation.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.configFor(x)

	scores := make([]Score, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			windows := runPour(cfg, s, fe.maxTicks, fe.statsWindow)
			scores[idx] = computeScore(windows, cfg.Pour.TargetParticles)
		}(i, seed)
	}
	wg.Wait()

	var avg Score
	for _, s := range scores {
		avg.Overlap += s.Overlap
		avg.Jitter += s.Jitter
		avg.Lost += s.Lost
		avg.Spread += s.Spread
		avg.Total += s.Total
	}
	n := float64(len(scores))
	avg.Overlap /= n
	avg.Jitter /= n
	avg.Lost /= n
	avg.Spread /= n
	avg.Total /= n

	fe.mu.Lock()
	fe.lastScore = avg
	fe.mu.Unlock()

	return avg.Total
}

// configFor returns a copy of the base config with x applied.
func (fe *FitnessEvaluator) configFor(x []float64) *config.Config {
	cfg := *fe.baseConfig
	fe.params.ApplyToConfig(&cfg, x)
	return &cfg
}

// runPour pours until the cap and lets the fluid settle for the rest of maxTicks,
// returning one WindowStats per statsWindow seconds.
func runPour(cfg *config.Config, seed int64, maxTicks int32, statsWindow float64) []telemetry.WindowStats {
	params := systems.ParamsFromConfig(cfg)
	w, h := cfg.Derived.ScreenW32, cfg.Derived.ScreenH32
	cup := components.NewCup(w, h, cfg.Cup)

	color := components.Color{R: 0xf1, G: 0xab, B: 0x62}
	if len(cfg.Pour.Nozzles) > 0 {
		if c, err := components.ParseHexColor(cfg.Pour.Nozzles[0].Color); err == nil {
			color = c
		}
	}

	sim := systems.NewSimulation(params, cup, w, h, seed, color)
	dt := cfg.Derived.MaxFrameDT32
	collector := telemetry.NewCollector(statsWindow, dt)
	gravity := params.DefaultGravity()

	var windows []telemetry.WindowStats
	sim.StartPour()
	for tick := int32(1); tick <= maxTicks; tick++ {
		stats := sim.Step(dt, gravity)
		collector.RecordFrame(telemetry.FrameEvents{
			Spawned:        stats.Spawned,
			CapReached:     stats.CapReached,
			Culled:         stats.Culled,
			RelaxPairs:     stats.RelaxPairs,
			MinSepEnforced: stats.MinSepEnforced,
			MouthSkipped:   stats.MouthSkipped,
			WallContacts:   stats.WallContacts,
			MaxCorrection:  stats.MaxCorrection,
		})
		if collector.ShouldFlush(tick) {
			windows = append(windows, collector.Flush(tick, sim.MeasureFluid()))
		}
	}
	return windows
}

// computeScore turns a run's windows into a Score.
//
//   - Overlap: how far the tightest pair falls below overlapFloor, averaged over windows.
//   - Jitter: median speed once the pour has stopped.
//   - Lost: particles culled or resting outside the cup, relative to the target.
//   - Spread: density coefficient of variation once the pour has stopped.
func computeScore(windows []telemetry.WindowStats, target int) Score {
	if len(windows) == 0 || target <= 0 {
		return Score{Overlap: 1, Jitter: 1, Lost: 1, Spread: 1, Total: 1}
	}

	var overlaps []float64
	culled := 0
	capWindow := -1
	for i, w := range windows {
		culled += w.Culled
		if w.CapStops > 0 && capWindow < 0 {
			capWindow = i
		}
		if w.Particles < 2 {
			continue
		}
		overlaps = append(overlaps, max(0, overlapFloor-w.MinSepRatio)/overlapFloor)
	}

	settled := windows[len(windows)-1:]
	if capWindow >= 0 && capWindow+1 < len(windows) {
		settled = windows[capWindow+1:]
	}
	var speeds, spreads []float64
	for _, w := range settled {
		speeds = append(speeds, w.SpeedP50)
		if w.DensityMean > 0 {
			spreads = append(spreads, w.DensityStd/w.DensityMean)
		}
	}

	last := windows[len(windows)-1]
	outside := last.Particles - last.InCup

	var s Score
	if len(overlaps) > 0 {
		s.Overlap = stat.Mean(overlaps, nil)
	}
	s.Jitter = 1 - math.Exp(-stat.Mean(speeds, nil)/jitterScale)
	s.Lost = min(float64(culled+outside)/float64(target), 1)
	if len(spreads) > 0 {
		s.Spread = min(stat.Mean(spreads, nil), 1)
	}
	s.Total = weightOverlap*s.Overlap +
		weightJitter*s.Jitter +
		weightLost*s.Lost +
		weightSpread*s.Spread
	return s
}
