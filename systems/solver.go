package systems

import (
	"fmt"

	"github.com/pthm-cable/pour/components"
	"github.com/pthm-cable/pour/telemetry"
)

// Phase records how far the current substep has progressed and, with it, which
// derived data (grid, density) is valid for the current particle positions.
type Phase uint8

const (
	PhaseIdle            Phase = iota // Between substeps, velocities are reconstructed
	PhaseIntegrated                   // Positions predicted, no grid
	PhaseGridBuilt                    // Grid matches current positions
	PhaseDensityComputed              // Grid and density/pressure match current positions
	PhaseRelaxed                      // Positions corrected; grid and density are stale
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseIntegrated:
		return "integrated"
	case PhaseGridBuilt:
		return "grid_built"
	case PhaseDensityComputed:
		return "density_computed"
	case PhaseRelaxed:
		return "relaxed"
	}
	return fmt.Sprintf("phase(%d)", uint8(p))
}

// PhaseRecorder receives phase boundaries for timing. telemetry.PerfCollector satisfies it.
type PhaseRecorder interface {
	StartPhase(name string)
}

// StepStats summarises one frame of solver work.
type StepStats struct {
	Substeps       int
	RelaxPairs     int
	MouthSkipped   int
	MinSepEnforced int
	MaxCorrection  float32
	WallContacts   int
}

// Solver owns the particle collection, the neighbour grid and the container geometry.
// It is single-threaded: one Step runs to completion and nothing else mutates particles.
type Solver struct {
	params    Params
	cup       components.Cup
	particles []components.Particle
	grid      *FluidGrid
	phase     Phase
	perf      PhaseRecorder
}

// NewSolver creates a solver with an empty particle collection.
func NewSolver(params Params, cup components.Cup) *Solver {
	return &Solver{
		params:    params,
		cup:       cup,
		particles: make([]components.Particle, 0, max(params.TargetParticles, 16)),
		grid:      NewFluidGrid(params.H),
	}
}

// SetPhaseRecorder installs an optional timing hook.
func (s *Solver) SetPhaseRecorder(r PhaseRecorder) {
	s.perf = r
}

// Params returns the solver parameters.
func (s *Solver) Params() *Params {
	return &s.params
}

// Cup returns the current container geometry.
func (s *Solver) Cup() *components.Cup {
	return &s.cup
}

// SetCup replaces the container geometry (on viewport resize).
func (s *Solver) SetCup(c components.Cup) {
	s.cup = c
}

// Phase returns the current solver phase.
func (s *Solver) Phase() Phase {
	return s.phase
}

// Particles returns the particle collection. Callers must treat it as read-only.
func (s *Solver) Particles() []components.Particle {
	return s.particles
}

// Len returns the particle count.
func (s *Solver) Len() int {
	return len(s.particles)
}

// Grid returns the neighbour grid.
func (s *Solver) Grid() *FluidGrid {
	return s.grid
}

// Add appends a particle.
func (s *Solver) Add(p components.Particle) {
	s.particles = append(s.particles, p)
	s.positionsChanged()
}

// Clear removes all particles.
func (s *Solver) Clear() {
	s.particles = s.particles[:0]
	s.phase = PhaseIdle
}

// RemoveIf deletes every particle matching pred, preserving the order of the rest.
func (s *Solver) RemoveIf(pred func(q *components.Particle) bool) int {
	kept := 0
	for i := range s.particles {
		if pred(&s.particles[i]) {
			continue
		}
		s.particles[kept] = s.particles[i]
		kept++
	}
	removed := len(s.particles) - kept
	s.particles = s.particles[:kept]
	if removed > 0 {
		s.positionsChanged()
	}
	return removed
}

// ClearNearMouth removes particles in the capture zone just above the mouth,
// centred on the stream. Returns the number removed.
func (s *Solver) ClearNearMouth(streamX float32) int {
	maxY := s.cup.MouthY(s.params.MouthClearDepth)
	maxDX := s.params.MouthClearHalfWidth
	return s.RemoveIf(func(q *components.Particle) bool {
		return q.Y < maxY && absf(q.X-streamX) < maxDX
	})
}

// Cull removes particles outside the viewport expanded by the cull margin.
func (s *Solver) Cull(width, height float32) int {
	m := s.params.CullMargin
	return s.RemoveIf(func(q *components.Particle) bool {
		return q.X < -m || q.X > width+m || q.Y < -m || q.Y > height+m
	})
}

// positionsChanged invalidates grid-derived data after any position mutation.
func (s *Solver) positionsChanged() {
	switch s.phase {
	case PhaseGridBuilt, PhaseDensityComputed:
		s.phase = PhaseIntegrated
	}
}

func (s *Solver) mark(phase string) {
	if s.perf != nil {
		s.perf.StartPhase(phase)
	}
}

func (s *Solver) require(want Phase, op string) {
	if s.phase != want {
		panic(fmt.Sprintf("systems: %s requires phase %s, solver is %s", op, want, s.phase))
	}
}

// Integrate applies gravity, damping and the speed clamp, predicts positions and
// resolves the container once. Starts a new substep.
func (s *Solver) Integrate(gravity components.Vec2, dt float32) {
	s.mark(telemetry.PhaseIntegrate)
	Integrate(s.particles, gravity, &s.cup, &s.params, dt)
	s.phase = PhaseIntegrated
}

// BuildGrid rebuilds the neighbour grid from current positions.
func (s *Solver) BuildGrid() {
	s.mark(telemetry.PhaseGrid)
	s.grid.Rebuild(s.particles, s.params.H)
	s.phase = PhaseGridBuilt
}

// ApplyViscosity runs the viscosity/cohesion pass. Velocities only, so the grid stays valid.
func (s *Solver) ApplyViscosity() {
	s.require(PhaseGridBuilt, "viscosity")
	s.mark(telemetry.PhaseViscosity)
	ApplyViscosity(s.particles, s.grid, &s.params)
}

// ComputeDensity recomputes density and pressure against the current grid.
func (s *Solver) ComputeDensity() {
	s.require(PhaseGridBuilt, "density")
	s.mark(telemetry.PhaseDensity)
	ComputeDensity(s.particles, s.grid, &s.params)
	s.phase = PhaseDensityComputed
}

// Relax runs one relaxation pass. Pressures must have been computed against the
// current positions; afterwards they are stale.
func (s *Solver) Relax(dt float32) RelaxStats {
	s.require(PhaseDensityComputed, "relaxation")
	s.mark(telemetry.PhaseRelax)
	stats := Relax(s.particles, s.grid, &s.params, &s.cup, dt)
	s.phase = PhaseRelaxed
	return stats
}

// ResolveBoundary clamps every particle into the container.
func (s *Solver) ResolveBoundary() int {
	s.mark(telemetry.PhaseBoundary)
	contacts := ResolveAll(s.particles, &s.cup, &s.params)
	if contacts > 0 {
		s.positionsChanged()
	}
	return contacts
}

// FinishSubstep derives velocities from the substep displacement.
func (s *Solver) FinishSubstep(dt float32) {
	s.mark(telemetry.PhaseVelocity)
	ReconstructVelocity(s.particles, dt)
	s.phase = PhaseIdle
}

// Substep runs one full integrate, resolve, relax cycle.
func (s *Solver) Substep(gravity components.Vec2, dt float32, stats *StepStats) {
	s.Integrate(gravity, dt)

	s.BuildGrid()
	s.ApplyViscosity()

	for iter := 0; iter < s.params.SolverIterations; iter++ {
		s.BuildGrid()
		s.ComputeDensity()
		rs := s.Relax(dt)
		stats.WallContacts += s.ResolveBoundary()

		stats.RelaxPairs += rs.Pairs
		stats.MouthSkipped += rs.MouthSkipped
		stats.MinSepEnforced += rs.MinSepEnforced
		stats.MaxCorrection = max(stats.MaxCorrection, rs.MaxCorrection)
	}

	s.FinishSubstep(dt)
	stats.Substeps++
}

// Step advances the fluid by one frame. dt is clamped to [0, MaxFrameDT] and split
// into equal substeps. A zero-length frame is a no-op.
func (s *Solver) Step(dt float32, gravity components.Vec2) StepStats {
	var stats StepStats
	dt = ClampFrameDT(dt, s.params.MaxFrameDT)
	if dt == 0 {
		return stats
	}

	subDT := dt / float32(s.params.Substeps)
	for i := 0; i < s.params.Substeps; i++ {
		s.Substep(gravity, subDT, &stats)
	}
	return stats
}

// ClampFrameDT bounds a frame delta to [0, maxDT].
func ClampFrameDT(dt, maxDT float32) float32 {
	if dt < 0 {
		return 0
	}
	if dt > maxDT {
		return maxDT
	}
	return dt
}
