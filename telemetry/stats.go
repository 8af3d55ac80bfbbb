package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated fluid statistics for one window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Particles int `csv:"particles"`
	InCup     int `csv:"in_cup"`

	// Lifecycle events during the window
	Spawned  int `csv:"spawned"`
	Culled   int `csv:"culled"`
	Cleared  int `csv:"cleared"`
	CapStops int `csv:"cap_stops"`

	// Solver work during the window
	RelaxPairs     int     `csv:"relax_pairs"`
	MinSepEnforced int     `csv:"min_sep_enforced"`
	MouthSkipped   int     `csv:"mouth_skipped"`
	WallContacts   int     `csv:"wall_contacts"`
	MaxCorrection  float64 `csv:"max_correction"`

	// Distributions sampled at window end
	SpeedMean   float64 `csv:"speed_mean"`
	SpeedP50    float64 `csv:"speed_p50"`
	SpeedP90    float64 `csv:"speed_p90"`
	DensityMean float64 `csv:"density_mean"`
	DensityStd  float64 `csv:"density_std"`
	DensityP90  float64 `csv:"density_p90"`

	// Geometry
	FillLevel   float64 `csv:"fill_level"`    // Fraction of cup height occupied, 0-1
	MinSepRatio float64 `csv:"min_sep_ratio"` // Smallest pair distance / (ra+rb)
}

// Distribution summarises a sample.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// ComputeDistribution returns mean, standard deviation and empirical quantiles.
// The input is not modified. An empty sample yields the zero Distribution.
func ComputeDistribution(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	d := Distribution{
		Mean: stat.Mean(sorted, nil),
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
	}
	if len(sorted) > 1 {
		d.Std = stat.StdDev(sorted, nil)
	}
	return d
}

// LogValue implements slog.LogValuer.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("particles", s.Particles),
		slog.Int("in_cup", s.InCup),
		slog.Int("spawned", s.Spawned),
		slog.Int("culled", s.Culled),
		slog.Int("cleared", s.Cleared),
		slog.Int("cap_stops", s.CapStops),
		slog.Int("relax_pairs", s.RelaxPairs),
		slog.Int("min_sep_enforced", s.MinSepEnforced),
		slog.Int("mouth_skipped", s.MouthSkipped),
		slog.Int("wall_contacts", s.WallContacts),
		slog.Float64("max_correction", s.MaxCorrection),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("density_mean", s.DensityMean),
		slog.Float64("density_p90", s.DensityP90),
		slog.Float64("fill_level", s.FillLevel),
		slog.Float64("min_sep_ratio", s.MinSepRatio),
	)
}

// LogStats logs the window at info level.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
