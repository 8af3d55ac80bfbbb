package systems

import (
	"testing"

	"github.com/pthm-cable/pour/telemetry"
)

func TestPassRegistryCoversPhases(t *testing.T) {
	reg := NewPassRegistry()

	ids := reg.IDs()
	if len(ids) != len(telemetry.Phases) {
		t.Fatalf("registry has %d passes, collector has %d phases", len(ids), len(telemetry.Phases))
	}
	for i, phase := range telemetry.Phases {
		if ids[i] != phase {
			t.Errorf("pass %d = %q, want %q (execution order)", i, ids[i], phase)
		}
		if reg.GetName(phase) == phase {
			t.Errorf("phase %q has no display name", phase)
		}
	}
}

func TestPassRegistryLookup(t *testing.T) {
	reg := NewPassRegistry()

	if info, ok := reg.Get(telemetry.PhaseRelax); !ok || info.Category != "solver" {
		t.Errorf("relax = %+v, %v", info, ok)
	}
	if got := reg.GetName("unknown"); got != "unknown" {
		t.Errorf("GetName(unknown) = %q, want fallback to the ID", got)
	}
	if n := len(reg.ByCategory("solver")); n != 7 {
		t.Errorf("solver passes = %d, want 7", n)
	}
	if n := len(reg.ByCategory("lifecycle")); n != 2 {
		t.Errorf("lifecycle passes = %d, want 2", n)
	}
}
