package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/pour/config"
	"github.com/pthm-cable/pour/telemetry"
)

func TestParamVectorNormalize(t *testing.T) {
	pv := NewParamVector()
	def := pv.DefaultVector()

	norm := pv.Normalize(def)
	for i, v := range norm {
		if v < 0 || v > 1 {
			t.Errorf("%s default normalizes to %v, outside [0,1]", pv.Specs[i].Name, v)
		}
	}
	back := pv.Denormalize(norm)
	for i := range def {
		if math.Abs(back[i]-def[i]) > 1e-9 {
			t.Errorf("%s: %v -> %v", pv.Specs[i].Name, def[i], back[i])
		}
	}
}

func TestParamVectorDefaultsMatchConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	pv := NewParamVector()
	got := pv.ExtractFromConfig(cfg)
	for i, spec := range pv.Specs {
		if math.Abs(got[i]-spec.Default) > 1e-9 {
			t.Errorf("%s default = %v, config has %v", spec.Path, spec.Default, got[i])
		}
	}
}

func TestApplyToConfigClamps(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	pv := NewParamVector()
	pv.ApplyToConfig(cfg, []float64{100, -1, 0.5, 0.8, 0.2, 99})

	got := pv.ExtractFromConfig(cfg)
	want := []float64{12, 0.02, 0.5, 0.8, 0.2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s = %v, want %v", pv.Specs[i].Path, got[i], want[i])
		}
	}
}

func TestComputeScore(t *testing.T) {
	calm := []telemetry.WindowStats{
		{Particles: 100, InCup: 100, MinSepRatio: 0.8, SpeedP50: 300, DensityMean: 7, DensityStd: 1},
		{Particles: 200, InCup: 200, MinSepRatio: 0.75, CapStops: 1, SpeedP50: 200, DensityMean: 7, DensityStd: 1},
		{Particles: 200, InCup: 200, MinSepRatio: 0.7, SpeedP50: 0, DensityMean: 7, DensityStd: 0.7},
	}
	rough := []telemetry.WindowStats{
		{Particles: 100, InCup: 90, Culled: 10, MinSepRatio: 0.3, SpeedP50: 300, DensityMean: 7, DensityStd: 3},
		{Particles: 180, InCup: 150, CapStops: 1, MinSepRatio: 0.3, SpeedP50: 300, DensityMean: 7, DensityStd: 3},
		{Particles: 180, InCup: 150, MinSepRatio: 0.3, SpeedP50: 240, DensityMean: 7, DensityStd: 3},
	}

	c := computeScore(calm, 200)
	if c.Overlap != 0 || c.Lost != 0 || c.Jitter != 0 {
		t.Errorf("calm run scored %+v", c)
	}
	if math.Abs(c.Spread-0.1) > 1e-9 {
		t.Errorf("calm spread = %v, want 0.1 from the settled window only", c.Spread)
	}

	r := computeScore(rough, 200)
	if math.Abs(r.Overlap-0.5) > 1e-9 {
		t.Errorf("overlap = %v, want 0.5", r.Overlap)
	}
	if math.Abs(r.Lost-0.2) > 1e-9 {
		t.Errorf("lost = %v, want (10 culled + 30 outside)/200", r.Lost)
	}
	if want := 1 - math.Exp(-2); math.Abs(r.Jitter-want) > 1e-9 {
		t.Errorf("jitter = %v, want %v", r.Jitter, want)
	}
	if r.Total <= c.Total {
		t.Errorf("rough total %v not worse than calm %v", r.Total, c.Total)
	}

	if empty := computeScore(nil, 200); empty.Total != 1 {
		t.Errorf("empty run total = %v, want 1", empty.Total)
	}
}

func TestRunPourProducesWindows(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}

	windows := runPour(cfg, 42, 120, 1.0)
	if len(windows) != 2 {
		t.Fatalf("windows = %d, want 2", len(windows))
	}
	spawned := windows[0].Spawned + windows[1].Spawned
	if spawned == 0 || windows[1].Particles == 0 {
		t.Errorf("nothing poured: spawned=%d particles=%d", spawned, windows[1].Particles)
	}

	s := computeScore(windows, cfg.Pour.TargetParticles)
	if s.Total < 0 || s.Total > 1 {
		t.Errorf("total = %v, want within [0,1]", s.Total)
	}
}

func TestEvaluatorIsDeterministic(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, 60, []int64{1, 2}, cfg)

	a := fe.Evaluate(pv.DefaultVector())
	b := fe.Evaluate(pv.DefaultVector())
	if a != b {
		t.Errorf("same parameters scored %v then %v", a, b)
	}
	if fe.LastScore().Total != b {
		t.Errorf("LastScore().Total = %v, want %v", fe.LastScore().Total, b)
	}
	if cfg.Fluid.PressureK != pv.Specs[1].Default {
		t.Error("evaluation mutated the base config")
	}
}
