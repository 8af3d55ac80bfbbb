package systems

import (
	"math"

	"github.com/pthm-cable/pour/components"
	"github.com/pthm-cable/pour/telemetry"
)

// MeasureFluid samples the state a telemetry window records: per-particle speed and
// density, how many particles sit inside the cavity, how full the cup is and the
// tightest pair separation relative to the radii sum.
// Densities are those of the last solver iteration. The grid is rebuilt here, so
// call it between frames only.
func (s *Simulation) MeasureFluid() telemetry.FluidSample {
	particles := s.solver.Particles()
	cup := s.solver.Cup()
	params := s.solver.Params()

	sample := telemetry.FluidSample{
		Particles:   len(particles),
		Speeds:      make([]float64, 0, len(particles)),
		Densities:   make([]float64, 0, len(particles)),
		MinSepRatio: math.Inf(1),
	}

	floor := cup.FloorY(params.FloorInset)
	surface := floor
	for i := range particles {
		q := &particles[i]
		sample.Speeds = append(sample.Speeds, float64(velocityMagnitude(q.VX, q.VY)))
		sample.Densities = append(sample.Densities, float64(q.Density))
		if InsideCup(q, cup, params.InnerTaper) {
			sample.InCup++
			surface = min(surface, q.Y-q.R)
		}
	}
	if h := floor - cup.TopY; h > 0 {
		sample.FillLevel = float64(clampUnit((floor - surface) / h))
	}

	s.solver.BuildGrid()
	s.solver.Grid().ForEachPair(particles, func(i, j int) {
		a := &particles[i]
		b := &particles[j]
		ratio := float64(distance(a.X, a.Y, b.X, b.Y) / (a.R + b.R))
		sample.MinSepRatio = math.Min(sample.MinSepRatio, ratio)
	})
	if math.IsInf(sample.MinSepRatio, 1) {
		sample.MinSepRatio = 0
	}
	return sample
}

// InsideCup reports whether a particle's centre lies within the cavity between
// the mouth and the floor.
func InsideCup(q *components.Particle, cup *components.Cup, taper float32) bool {
	if q.Y < cup.TopY || q.Y > cup.BottomY {
		return false
	}
	half := cup.InnerHalfAt(q.Y, taper)
	return absf(q.X-cup.CenterX) <= half
}

func clampUnit(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
