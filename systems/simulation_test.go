package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/pour/components"
)

func TestSimulationsAreIndependent(t *testing.T) {
	a := newTestSimulation(t, nil)
	b := newTestSimulation(t, nil)

	a.StartPour()
	g := a.Params().DefaultGravity()
	for i := 0; i < 30; i++ {
		a.Step(1.0/60, g)
		b.Step(1.0/60, g)
	}

	if a.Count() == 0 {
		t.Fatal("pouring simulation spawned nothing")
	}
	if b.Count() != 0 || b.Pouring() {
		t.Errorf("idle simulation affected: count=%d pouring=%v", b.Count(), b.Pouring())
	}
}

func TestSimulationDeterministic(t *testing.T) {
	run := func() []components.Particle {
		sim := newTestSimulation(t, nil)
		sim.StartPour()
		g := sim.Params().DefaultGravity()
		for i := 0; i < 90; i++ {
			sim.Step(1.0/60, g)
		}
		return append([]components.Particle(nil), sim.Particles()...)
	}

	first, second := run(), run()
	if len(first) != len(second) {
		t.Fatalf("counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("particle %d differs between identical runs", i)
		}
	}
}

func TestSimulationPourFillsCup(t *testing.T) {
	sim := newTestSimulation(t, func(p *Params) { p.TargetParticles = 60 })
	sim.StartPour()

	g := sim.Params().DefaultGravity()
	for i := 0; i < 600; i++ {
		stats := sim.Step(1.0/60, g)
		if stats.Particles != sim.Count() {
			t.Fatalf("frame %d: stats count %d != %d", i, stats.Particles, sim.Count())
		}
	}

	for i, q := range sim.Particles() {
		for _, v := range []float32{q.X, q.Y, q.VX, q.VY} {
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				t.Fatalf("particle %d has non-finite state: %+v", i, q)
			}
		}
		if speed := velocityMagnitude(q.VX, q.VY); speed > 10*sim.Params().MaxSpeed {
			t.Errorf("particle %d speed %v far above clamp", i, speed)
		}
	}

	sample := sim.MeasureFluid()
	if sample.Particles != sim.Count() {
		t.Errorf("sample particles = %d, want %d", sample.Particles, sim.Count())
	}
	if sample.InCup < sample.Particles/2 {
		t.Errorf("only %d of %d particles ended in the cup", sample.InCup, sample.Particles)
	}
	if sample.FillLevel <= 0 || sample.FillLevel > 1 {
		t.Errorf("fill level = %v, want in (0, 1]", sample.FillLevel)
	}
}

func TestSimulationSnapshot(t *testing.T) {
	sim := newTestSimulation(t, nil)
	sim.SetParticles([]components.Particle{
		{X: 1, Y: 2, R: 17, Color: amber},
		{X: 3, Y: 4, R: 18, Color: components.Color{R: 0x56, G: 0xa8, B: 0xe8}},
	})

	views := sim.Snapshot(nil)
	if len(views) != 2 {
		t.Fatalf("len = %d, want 2", len(views))
	}
	if views[0].Hex != "#f1ab62" || views[1].Hex != "#56a8e8" {
		t.Errorf("hex = %q, %q", views[0].Hex, views[1].Hex)
	}

	// Reusing the buffer truncates it first
	sim.Reset()
	if views = sim.Snapshot(views); len(views) != 0 {
		t.Errorf("len after reset = %d, want 0", len(views))
	}
}

func TestSimulationResize(t *testing.T) {
	sim := newTestSimulation(t, nil)
	p, _ := testParams(t)
	cfgCup := components.Cup{CenterX: 400, TopY: 200, BottomY: 700, TopHalfInner: 100, BottomHalfInner: 80, Wall: 12, RimHeight: 17}

	sim.Resize(800, 1000, cfgCup)
	w, h := sim.Size()
	if w != 800 || h != 1000 {
		t.Errorf("size = %vx%v, want 800x1000", w, h)
	}
	if sim.Cup().CenterX != 400 {
		t.Errorf("cup not replaced")
	}

	// A particle left outside the new walls is pulled in by the next frame
	sim.SetParticles([]components.Particle{{X: 600, Y: 600, PrevX: 600, PrevY: 600, R: 17}})
	sim.Step(1.0/60, p.DefaultGravity())
	q := sim.Particles()[0]
	if half := cfgCup.InnerHalfAt(q.Y, p.InnerTaper); q.X+q.R > cfgCup.CenterX+half+1e-3 {
		t.Errorf("particle at x=%v still outside resized cup", q.X)
	}
}
