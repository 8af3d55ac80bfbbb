package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Fluid.H != 32 {
		t.Errorf("Fluid.H = %v, want 32", cfg.Fluid.H)
	}
	if cfg.Fluid.SolverIterations != 5 {
		t.Errorf("SolverIterations = %d, want 5", cfg.Fluid.SolverIterations)
	}
	if cfg.Pour.TargetParticles != 200 {
		t.Errorf("TargetParticles = %d, want 200", cfg.Pour.TargetParticles)
	}
	if len(cfg.Pour.Nozzles) == 0 {
		t.Fatal("expected at least one nozzle")
	}
	if cfg.Pour.Nozzles[0].Color != "#f1ab62" {
		t.Errorf("first nozzle color = %q, want #f1ab62", cfg.Pour.Nozzles[0].Color)
	}
}

func TestComputeDerived(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	wantInterval := float32(1.0 / 24.0)
	if math.Abs(float64(cfg.Derived.SpawnInterval-wantInterval)) > 1e-6 {
		t.Errorf("SpawnInterval = %v, want %v", cfg.Derived.SpawnInterval, wantInterval)
	}
	wantSub := cfg.Derived.MaxFrameDT32 / 2
	if cfg.Derived.SubstepDT != wantSub {
		t.Errorf("SubstepDT = %v, want %v", cfg.Derived.SubstepDT, wantSub)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("fluid:\n  viscosity: 0.3\npour:\n  target_particles: 50\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load overlay: %v", err)
	}
	if cfg.Fluid.Viscosity != 0.3 {
		t.Errorf("Viscosity = %v, want 0.3", cfg.Fluid.Viscosity)
	}
	if cfg.Pour.TargetParticles != 50 {
		t.Errorf("TargetParticles = %d, want 50", cfg.Pour.TargetParticles)
	}
	// Untouched fields keep defaults
	if cfg.Fluid.H != 32 {
		t.Errorf("Fluid.H = %v, want default 32", cfg.Fluid.H)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"zero radius", "fluid:\n  h: 0\n", ErrNonPositive},
		{"no substeps", "fluid:\n  substeps: 0\n", ErrNonPositive},
		{"damping above one", "fluid:\n  air_damping: 1.5\n", ErrOutOfRange},
		{"inverted radius range", "pour:\n  radius_min: 20\n  radius_max: 10\n", ErrOutOfRange},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if !errors.Is(err, tc.want) {
				t.Errorf("Load error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Fluid.CohesionK = 0.9

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load written config: %v", err)
	}
	if back.Fluid.CohesionK != 0.9 {
		t.Errorf("CohesionK = %v, want 0.9", back.Fluid.CohesionK)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected panic from Cfg() before Init()")
		}
	}()
	Cfg()
}
