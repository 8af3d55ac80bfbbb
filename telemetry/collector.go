package telemetry

import "math"

// FrameEvents carries the per-frame counters a Collector accumulates.
type FrameEvents struct {
	Spawned        bool
	CapReached     bool
	Culled         int
	Cleared        int
	RelaxPairs     int
	MinSepEnforced int
	MouthSkipped   int
	WallContacts   int
	MaxCorrection  float32
}

// FluidSample is the state measured at the end of a window.
type FluidSample struct {
	Particles   int
	InCup       int
	Speeds      []float64
	Densities   []float64
	FillLevel   float64
	MinSepRatio float64
}

// Collector accumulates frame events within tick windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32

	spawned        int
	culled         int
	cleared        int
	capStops       int
	relaxPairs     int
	minSepEnforced int
	mouthSkipped   int
	wallContacts   int
	maxCorrection  float32
}

// NewCollector creates a collector.
// windowDurationSec: window length in simulated seconds
// dt: simulated seconds per tick
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(math.Round(windowDurationSec / float64(dt)))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordFrame adds one frame's counters to the current window.
func (c *Collector) RecordFrame(ev FrameEvents) {
	if ev.Spawned {
		c.spawned++
	}
	if ev.CapReached {
		c.capStops++
	}
	c.culled += ev.Culled
	c.cleared += ev.Cleared
	c.relaxPairs += ev.RelaxPairs
	c.minSepEnforced += ev.MinSepEnforced
	c.mouthSkipped += ev.MouthSkipped
	c.wallContacts += ev.WallContacts
	c.maxCorrection = max(c.maxCorrection, ev.MaxCorrection)
}

// RecordCleared records particles removed by a pour start/stop outside a frame.
func (c *Collector) RecordCleared(n int) {
	c.cleared += n
}

// ShouldFlush reports whether the current window is complete.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces the window's stats and resets the counters.
func (c *Collector) Flush(currentTick int32, sample FluidSample) WindowStats {
	speed := ComputeDistribution(sample.Speeds)
	density := ComputeDistribution(sample.Densities)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Particles: sample.Particles,
		InCup:     sample.InCup,

		Spawned:  c.spawned,
		Culled:   c.culled,
		Cleared:  c.cleared,
		CapStops: c.capStops,

		RelaxPairs:     c.relaxPairs,
		MinSepEnforced: c.minSepEnforced,
		MouthSkipped:   c.mouthSkipped,
		WallContacts:   c.wallContacts,
		MaxCorrection:  float64(c.maxCorrection),

		SpeedMean:   speed.Mean,
		SpeedP50:    speed.P50,
		SpeedP90:    speed.P90,
		DensityMean: density.Mean,
		DensityStd:  density.Std,
		DensityP90:  density.P90,

		FillLevel:   sample.FillLevel,
		MinSepRatio: sample.MinSepRatio,
	}

	c.windowStartTick = currentTick
	c.spawned = 0
	c.culled = 0
	c.cleared = 0
	c.capStops = 0
	c.relaxPairs = 0
	c.minSepEnforced = 0
	c.mouthSkipped = 0
	c.wallContacts = 0
	c.maxCorrection = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
