package systems

import (
	"github.com/pthm-cable/pour/components"
	"github.com/pthm-cable/pour/config"
)

// Params is the solver's own copy of its configuration. The solver never reads
// the global config, so tests and the tuner can run many solvers side by side.
type Params struct {
	H                   float32
	RestDensity         float32
	PressureK           float32
	NearPressureK       float32
	CollisionStiffness  float32
	SolverIterations    int
	Substeps            int
	Gravity             float32
	AirDamping          float32
	BoundaryFriction    float32
	Viscosity           float32
	CohesionK           float32
	MaxSpeed            float32
	MinSeparationFactor float32
	MaxFrameDT          float32

	// Container and lifecycle constants
	FloorInset          float32
	SideWallRimFactor   float32
	InnerTaper          float32
	SideFrictionFactor  float32
	MouthOffset         float32
	MouthClearDepth     float32
	MouthClearHalfWidth float32
	CullMargin          float32

	// Pour
	TargetParticles int
	SpawnInterval   float32
	PourSpeedY      float32
	RadiusMin       float32
	RadiusMax       float32
	SpawnJitter     float32
	SpawnOffsetY    float32
	Wobble          float32
	WobbleHz        float32
	NozzleHeight    float32 // Default nozzle tip height above the cup mouth
}

// ParamsFromConfig copies the solver-relevant values out of a loaded config.
func ParamsFromConfig(cfg *config.Config) Params {
	f := cfg.Fluid
	b := cfg.Boundary
	p := cfg.Pour
	return Params{
		H:                   float32(f.H),
		RestDensity:         float32(f.RestDensity),
		PressureK:           float32(f.PressureK),
		NearPressureK:       float32(f.NearPressureK),
		CollisionStiffness:  float32(f.CollisionStiffness),
		SolverIterations:    f.SolverIterations,
		Substeps:            f.Substeps,
		Gravity:             float32(f.Gravity),
		AirDamping:          float32(f.AirDamping),
		BoundaryFriction:    float32(f.BoundaryFriction),
		Viscosity:           float32(f.Viscosity),
		CohesionK:           float32(f.CohesionK),
		MaxSpeed:            float32(f.MaxSpeed),
		MinSeparationFactor: float32(f.MinSeparationFactor),
		MaxFrameDT:          cfg.Derived.MaxFrameDT32,

		FloorInset:          float32(b.FloorInset),
		SideWallRimFactor:   float32(b.SideWallRimFactor),
		InnerTaper:          float32(b.InnerTaper),
		SideFrictionFactor:  float32(b.SideFrictionFactor),
		MouthOffset:         float32(b.MouthOffset),
		MouthClearDepth:     float32(b.MouthClearDepth),
		MouthClearHalfWidth: float32(b.MouthClearHalfWidth),
		CullMargin:          float32(b.CullMargin),

		TargetParticles: p.TargetParticles,
		SpawnInterval:   cfg.Derived.SpawnInterval,
		PourSpeedY:      float32(p.PourSpeedY),
		RadiusMin:       float32(p.RadiusMin),
		RadiusMax:       float32(p.RadiusMax),
		SpawnJitter:     float32(p.SpawnJitter),
		SpawnOffsetY:    float32(p.SpawnOffsetY),
		Wobble:          float32(p.Wobble),
		WobbleHz:        float32(p.WobbleHz),
		NozzleHeight:    float32(p.NozzleHeight),
	}
}

// DefaultNozzle returns the nozzle tip centred above the cup mouth.
func (p Params) DefaultNozzle(cup components.Cup) components.Vec2 {
	return components.Vec2{X: cup.CenterX, Y: cup.TopY - p.NozzleHeight}
}

// DefaultGravity returns the straight-down gravity vector used when no tilt source is active.
func (p Params) DefaultGravity() components.Vec2 {
	return components.Vec2{X: 0, Y: p.Gravity}
}
