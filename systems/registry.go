package systems

import "github.com/pthm-cable/pour/telemetry"

// PassInfo describes one timed pass of a frame for UI display.
type PassInfo struct {
	ID          string // Phase name used by the perf collector
	Name        string // Display name
	Description string // What this pass does
	Category    string // "lifecycle", "solver" or "output"
}

// PassRegistry holds metadata about every frame pass so the perf panel and the
// collector agree on naming.
type PassRegistry struct {
	passes []PassInfo
	byID   map[string]PassInfo
}

// NewPassRegistry creates a registry with all frame passes in execution order.
func NewPassRegistry() *PassRegistry {
	reg := &PassRegistry{
		byID: make(map[string]PassInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known passes. Update this alongside telemetry.Phases.
func (r *PassRegistry) registerDefaults() {
	r.Register(PassInfo{ID: telemetry.PhaseSpawn, Name: "Spawn", Description: "Emits a particle from the nozzle", Category: "lifecycle"})

	r.Register(PassInfo{ID: telemetry.PhaseIntegrate, Name: "Integrate", Description: "Gravity, damping and prediction", Category: "solver"})
	r.Register(PassInfo{ID: telemetry.PhaseGrid, Name: "Grid", Description: "Rebuilds the neighbour grid", Category: "solver"})
	r.Register(PassInfo{ID: telemetry.PhaseViscosity, Name: "Viscosity", Description: "Approach drag and cohesion", Category: "solver"})
	r.Register(PassInfo{ID: telemetry.PhaseDensity, Name: "Density", Description: "Density and pressure per particle", Category: "solver"})
	r.Register(PassInfo{ID: telemetry.PhaseRelax, Name: "Relax", Description: "Pairwise pressure displacement", Category: "solver"})
	r.Register(PassInfo{ID: telemetry.PhaseBoundary, Name: "Boundary", Description: "Floor, walls and friction", Category: "solver"})
	r.Register(PassInfo{ID: telemetry.PhaseVelocity, Name: "Velocity", Description: "Velocity from displacement", Category: "solver"})

	r.Register(PassInfo{ID: telemetry.PhaseCull, Name: "Cull", Description: "Removes off-screen particles", Category: "lifecycle"})

	r.Register(PassInfo{ID: telemetry.PhaseTelemetry, Name: "Telemetry", Description: "Stats windows and output", Category: "output"})
}

// Register adds a pass to the registry.
func (r *PassRegistry) Register(info PassInfo) {
	r.passes = append(r.passes, info)
	r.byID[info.ID] = info
}

// Get returns pass info by ID.
func (r *PassRegistry) Get(id string) (PassInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a pass ID.
// Falls back to the ID itself if not found.
func (r *PassRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered passes.
func (r *PassRegistry) All() []PassInfo {
	return r.passes
}

// ByCategory returns passes filtered by category.
func (r *PassRegistry) ByCategory(category string) []PassInfo {
	var result []PassInfo
	for _, info := range r.passes {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}

// IDs returns all pass IDs in registration order.
func (r *PassRegistry) IDs() []string {
	ids := make([]string, len(r.passes))
	for i, info := range r.passes {
		ids[i] = info.ID
	}
	return ids
}
