package systems

import (
	"github.com/pthm-cable/pour/components"
	"github.com/pthm-cable/pour/telemetry"
)

// FrameStats summarises one Simulation.Step.
type FrameStats struct {
	StepStats
	Spawned    bool
	CapReached bool
	Culled     int
	Particles  int
}

// Simulation is the owned simulation context: solver, pour lifecycle and viewport.
// Several can coexist in one process.
type Simulation struct {
	solver *Solver
	pour   *Pourer
	perf   PhaseRecorder

	width, height float32
}

// NewSimulation creates a simulation for a viewport of the given size.
func NewSimulation(params Params, cup components.Cup, width, height float32, seed int64, color components.Color) *Simulation {
	nozzle := params.DefaultNozzle(cup)
	return &Simulation{
		solver: NewSolver(params, cup),
		pour:   NewPourer(seed, color, nozzle),
		width:  width,
		height: height,
	}
}

// SetPhaseRecorder installs an optional timing hook for every pass.
func (s *Simulation) SetPhaseRecorder(r PhaseRecorder) {
	s.perf = r
	s.solver.SetPhaseRecorder(r)
}

// Solver exposes the underlying solver.
func (s *Simulation) Solver() *Solver { return s.solver }

// Pourer exposes the pour lifecycle.
func (s *Simulation) Pourer() *Pourer { return s.pour }

// Params returns the solver parameters.
func (s *Simulation) Params() *Params { return s.solver.Params() }

// Cup returns the container geometry.
func (s *Simulation) Cup() *components.Cup { return s.solver.Cup() }

// Size returns the viewport size.
func (s *Simulation) Size() (width, height float32) { return s.width, s.height }

// Particles returns the live particle collection. Callers must not modify it.
func (s *Simulation) Particles() []components.Particle { return s.solver.Particles() }

// Count returns the particle count.
func (s *Simulation) Count() int { return s.solver.Len() }

// Pouring reports whether the nozzle is open.
func (s *Simulation) Pouring() bool { return s.pour.Pouring() }

// StreamX returns the current horizontal position of the pour stream.
func (s *Simulation) StreamX() float32 { return s.pour.StreamX(s.solver.Params()) }

func (s *Simulation) mark(phase string) {
	if s.perf != nil {
		s.perf.StartPhase(phase)
	}
}

// Step advances one frame: spawn, substeps, cull. dt is clamped to [0, MaxFrameDT].
// gravity is sampled once for the whole frame.
func (s *Simulation) Step(dt float32, gravity components.Vec2) FrameStats {
	dt = ClampFrameDT(dt, s.solver.Params().MaxFrameDT)

	s.mark(telemetry.PhaseSpawn)
	spawn := s.pour.Spawn(s.solver, dt)

	stats := FrameStats{
		StepStats:  s.solver.Step(dt, gravity),
		Spawned:    spawn.Spawned,
		CapReached: spawn.CapReached,
	}

	s.mark(telemetry.PhaseCull)
	stats.Culled = s.solver.Cull(s.width, s.height)
	stats.Particles = s.solver.Len()
	return stats
}

// StartPour clears any stream remnant above the mouth and opens the nozzle.
// Returns the number of particles cleared.
func (s *Simulation) StartPour() int {
	cleared := s.solver.ClearNearMouth(s.StreamX())
	s.pour.Start()
	return cleared
}

// StopPour closes the nozzle. With clear set, particles still airborne above the
// mouth are removed. Returns the number cleared.
func (s *Simulation) StopPour(clear bool) int {
	s.pour.Stop()
	if !clear {
		return 0
	}
	return s.solver.ClearNearMouth(s.StreamX())
}

// TogglePour stops with clearing when pouring, otherwise starts.
func (s *Simulation) TogglePour() bool {
	if s.pour.Pouring() {
		s.StopPour(true)
	} else {
		s.StartPour()
	}
	return s.pour.Pouring()
}

// SetColor sets the colour of future particles.
func (s *Simulation) SetColor(c components.Color) { s.pour.SetColor(c) }

// Color returns the active pour colour.
func (s *Simulation) Color() components.Color { return s.pour.Color() }

// SetNozzle moves the nozzle tip.
func (s *Simulation) SetNozzle(pos components.Vec2) { s.pour.SetNozzle(pos) }

// Nozzle returns the nozzle tip.
func (s *Simulation) Nozzle() components.Vec2 { return s.pour.Nozzle() }

// Reset removes every particle and stops pouring without clearing.
func (s *Simulation) Reset() {
	s.solver.Clear()
	s.pour.Reset()
}

// SetParticles replaces the particle collection, e.g. to stage a scene.
func (s *Simulation) SetParticles(particles []components.Particle) {
	s.solver.Clear()
	for _, q := range particles {
		s.solver.Add(q)
	}
}

// Resize updates the viewport and container. Particles are left where they are;
// the next boundary pass moves any that ended up outside the new cup.
func (s *Simulation) Resize(width, height float32, cup components.Cup) {
	s.width = width
	s.height = height
	s.solver.SetCup(cup)
}

// Snapshot appends a read-only view of every particle to dst and returns it.
func (s *Simulation) Snapshot(dst []components.ParticleView) []components.ParticleView {
	dst = dst[:0]
	for _, q := range s.solver.Particles() {
		dst = append(dst, components.ParticleView{
			X:     q.X,
			Y:     q.Y,
			R:     q.R,
			Color: q.Color,
			Hex:   q.Color.Hex(),
		})
	}
	return dst
}
