package components

// Particle is one fluid element. Density and pressure fields are transient:
// they are recomputed from scratch every solver iteration.
type Particle struct {
	X, Y         float32 `inspect:"label,fmt:%.1f"`
	PrevX, PrevY float32 `inspect:"skip"` // Position at the start of the current substep
	VX, VY       float32 `inspect:"label,fmt:%.1f"`
	R            float32 // Fixed at spawn
	Color        Color   // Fixed at spawn

	Density      float32 `inspect:"bar,scale:density,max:14"`
	DensityNear  float32 `inspect:"bar,scale:density_near,max:8"`
	Pressure     float32 `inspect:"bar,scale:pressure,max:1"`
	PressureNear float32 `inspect:"bar,scale:pressure_near,max:2"`
}

// ParticleView is the read-only per-particle data a renderer consumes.
type ParticleView struct {
	X     float32 `json:"x"`
	Y     float32 `json:"y"`
	R     float32 `json:"r"`
	Color Color   `json:"-"`
	Hex   string  `json:"c"`
}
