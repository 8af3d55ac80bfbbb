package game

import (
	"sort"
	"time"
)

// PerfStats keeps a rolling window of render pass timings. Solver timings live
// in telemetry.PerfCollector; this covers what happens between BeginDrawing and
// EndDrawing.
type PerfStats struct {
	samples    map[string][]time.Duration
	maxSamples int
}

// NewPerfStats creates a render timing tracker.
func NewPerfStats() *PerfStats {
	return &PerfStats{
		samples:    make(map[string][]time.Duration),
		maxSamples: 120, // ~2 seconds of frames at 60fps
	}
}

// Record adds a duration sample for the named pass.
func (p *PerfStats) Record(name string, d time.Duration) {
	s := append(p.samples[name], d)
	if len(s) > p.maxSamples {
		s = s[1:]
	}
	p.samples[name] = s
}

// Avg returns the average duration for the named pass.
func (p *PerfStats) Avg(name string) time.Duration {
	s := p.samples[name]
	if len(s) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range s {
		total += d
	}
	return total / time.Duration(len(s))
}

// Total returns the sum of all average durations.
func (p *PerfStats) Total() time.Duration {
	var total time.Duration
	for name := range p.samples {
		total += p.Avg(name)
	}
	return total
}

// SortedNames returns pass names sorted by average duration, slowest first.
// Ties are broken by name so the order is stable.
func (p *PerfStats) SortedNames() []string {
	names := make([]string, 0, len(p.samples))
	for name := range p.samples {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ai, aj := p.Avg(names[i]), p.Avg(names[j])
		if ai != aj {
			return ai > aj
		}
		return names[i] < names[j]
	})
	return names
}
