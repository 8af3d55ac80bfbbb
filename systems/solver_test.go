package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/pour/components"
	"github.com/pthm-cable/pour/config"
)

const (
	testWidth  = 480
	testHeight = 900
)

var amber = components.Color{R: 0xf1, G: 0xab, B: 0x62}

// testParams loads the embedded defaults and derives the matching cup.
func testParams(t *testing.T) (Params, components.Cup) {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	return ParamsFromConfig(cfg), components.NewCup(testWidth, testHeight, cfg.Cup)
}

func newTestSimulation(t *testing.T, mutate func(p *Params)) *Simulation {
	t.Helper()
	p, cup := testParams(t)
	if mutate != nil {
		mutate(&p)
	}
	return NewSimulation(p, cup, testWidth, testHeight, 1, amber)
}

func approx(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) <= float64(tol)
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestSolverPhaseOrdering(t *testing.T) {
	p, cup := testParams(t)
	s := NewSolver(p, cup)
	s.Add(components.Particle{X: 240, Y: 700, R: 17})
	s.Add(components.Particle{X: 260, Y: 700, R: 17})

	expectPanic(t, "relax before density", func() { s.Relax(0.01) })
	expectPanic(t, "density before grid", func() { s.ComputeDensity() })

	s.Integrate(p.DefaultGravity(), 0.01)
	if s.Phase() != PhaseIntegrated {
		t.Fatalf("phase = %s, want integrated", s.Phase())
	}
	expectPanic(t, "viscosity without grid", func() { s.ApplyViscosity() })

	s.BuildGrid()
	s.ComputeDensity()
	s.Relax(0.01)
	if s.Phase() != PhaseRelaxed {
		t.Fatalf("phase = %s, want relaxed", s.Phase())
	}
	expectPanic(t, "relax on stale density", func() { s.Relax(0.01) })

	s.BuildGrid()
	s.ComputeDensity()
	s.Add(components.Particle{X: 300, Y: 700, R: 17})
	expectPanic(t, "relax after particle added", func() { s.Relax(0.01) })

	s.FinishSubstep(0.01)
	if s.Phase() != PhaseIdle {
		t.Errorf("phase = %s, want idle", s.Phase())
	}
}

func TestSolverStepClampsDT(t *testing.T) {
	run := func(dt float32) components.Particle {
		p, cup := testParams(t)
		s := NewSolver(p, cup)
		s.Add(components.Particle{X: 240, Y: 500, R: 17})
		s.Step(dt, p.DefaultGravity())
		return s.Particles()[0]
	}

	p, _ := testParams(t)
	clamped := run(1.0)
	capped := run(p.MaxFrameDT)
	if clamped.Y != capped.Y || clamped.VY != capped.VY {
		t.Errorf("dt=1 gave y=%v vy=%v, want same as dt=MaxFrameDT (y=%v vy=%v)",
			clamped.Y, clamped.VY, capped.Y, capped.VY)
	}

	still := run(-0.5)
	if still.Y != 500 || still.VY != 0 {
		t.Errorf("negative dt moved particle: y=%v vy=%v", still.Y, still.VY)
	}
}

func TestSolverStepStats(t *testing.T) {
	p, cup := testParams(t)
	s := NewSolver(p, cup)
	s.Add(components.Particle{X: 240, Y: 700, R: 17})
	s.Add(components.Particle{X: 250, Y: 700, R: 17})

	stats := s.Step(1.0/60, p.DefaultGravity())
	if stats.Substeps != p.Substeps {
		t.Errorf("Substeps = %d, want %d", stats.Substeps, p.Substeps)
	}
	if want := p.Substeps * p.SolverIterations; stats.RelaxPairs != want {
		t.Errorf("RelaxPairs = %d, want %d (one pair per iteration)", stats.RelaxPairs, want)
	}
	if s.Phase() != PhaseIdle {
		t.Errorf("phase after Step = %s, want idle", s.Phase())
	}
}

func TestClampFrameDT(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{-1, 0},
		{0, 0},
		{0.01, 0.01},
		{0.5, 1.0 / 60},
	}
	for _, tt := range tests {
		if got := ClampFrameDT(tt.in, 1.0/60); got != tt.want {
			t.Errorf("ClampFrameDT(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
