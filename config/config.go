// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Fluid     FluidConfig     `yaml:"fluid"`
	Pour      PourConfig      `yaml:"pour"`
	Cup       CupConfig       `yaml:"cup"`
	Boundary  BoundaryConfig  `yaml:"boundary"`
	Tilt      TiltConfig      `yaml:"tilt"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Server    ServerConfig    `yaml:"server"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// FluidConfig holds the double-density relaxation solver parameters.
type FluidConfig struct {
	H                   float64 `yaml:"h"`                     // Interaction radius, also the grid cell size
	RestDensity         float64 `yaml:"rest_density"`          // Density below which pressure is zero
	PressureK           float64 `yaml:"pressure_k"`            // Pressure stiffness
	NearPressureK       float64 `yaml:"near_pressure_k"`       // Near-pressure stiffness (anti-clumping)
	CollisionStiffness  float64 `yaml:"collision_stiffness"`   // Scales the relaxation displacement
	SolverIterations    int     `yaml:"solver_iterations"`     // Relaxation iterations per substep
	Substeps            int     `yaml:"substeps"`              // Micro-steps per frame
	Gravity             float64 `yaml:"gravity"`               // Gravity magnitude (px/s^2)
	AirDamping          float64 `yaml:"air_damping"`           // Per-substep velocity multiplier
	BoundaryFriction    float64 `yaml:"boundary_friction"`     // Tangential loss on wall contact
	Viscosity           float64 `yaml:"viscosity"`             // Approach-velocity drag
	CohesionK           float64 `yaml:"cohesion_k"`            // Attractive bias between neighbours
	MaxSpeed            float64 `yaml:"max_speed"`             // Speed clamp after integration
	MinSeparationFactor float64 `yaml:"min_separation_factor"` // Hard floor as a fraction of (rp+rq)
	MaxFrameDT          float64 `yaml:"max_frame_dt"`          // Frame delta clamp in seconds
}

// NozzleConfig describes one selectable pour nozzle.
type NozzleConfig struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"` // "#rrggbb" or "#rgb"
}

// PourConfig holds particle spawning parameters.
type PourConfig struct {
	TargetParticles int            `yaml:"target_particles"` // Population cap
	SpawnPerSecond  float64        `yaml:"spawn_per_second"`
	PourSpeedY      float64        `yaml:"pour_speed_y"` // Initial downward speed of spawned particles
	RadiusMin       float64        `yaml:"radius_min"`
	RadiusMax       float64        `yaml:"radius_max"`
	SpawnJitter     float64        `yaml:"spawn_jitter"`  // Full width of the positional jitter
	SpawnOffsetY    float64        `yaml:"spawn_offset_y"` // Spawn point below the nozzle tip
	Wobble          float64        `yaml:"wobble"`         // Stream sway amplitude in px (0 = straight)
	WobbleHz        float64        `yaml:"wobble_hz"`
	NozzleHeight    float64        `yaml:"nozzle_height"` // Nozzle tip height above the cup mouth
	Nozzles         []NozzleConfig `yaml:"nozzles"`
}

// CupConfig holds the viewport-relative container geometry ratios.
type CupConfig struct {
	TopWidthRatio    float64 `yaml:"top_width_ratio"`
	TopWidthMax      float64 `yaml:"top_width_max"`
	BottomWidthRatio float64 `yaml:"bottom_width_ratio"` // Bottom width as a fraction of top width
	HeightRatio      float64 `yaml:"height_ratio"`
	HeightMax        float64 `yaml:"height_max"`
	TopYRatio        float64 `yaml:"top_y_ratio"`
	WallRatio        float64 `yaml:"wall_ratio"`
	WallMin          float64 `yaml:"wall_min"`
	WallMax          float64 `yaml:"wall_max"`
	RimHeightMin     float64 `yaml:"rim_height_min"`
	RimHeightFactor  float64 `yaml:"rim_height_factor"` // Rim height as a multiple of wall thickness
}

// BoundaryConfig holds the visually tuned collision and lifecycle constants.
type BoundaryConfig struct {
	FloorInset          float64 `yaml:"floor_inset"`            // Extra inset above the inner floor
	SideWallRimFactor   float64 `yaml:"side_wall_rim_factor"`   // Side walls start at topY + rim*this
	InnerTaper          float64 `yaml:"inner_taper"`            // Outward taper on the interpolation parameter
	SideFrictionFactor  float64 `yaml:"side_friction_factor"`   // Side friction as a fraction of boundary friction
	MouthOffset         float64 `yaml:"mouth_offset"`           // Pairs above topY + this are not relaxed
	MouthClearDepth     float64 `yaml:"mouth_clear_depth"`      // Clear zone extends to topY + this
	MouthClearHalfWidth float64 `yaml:"mouth_clear_half_width"` // Clear zone half width around the stream
	CullMargin          float64 `yaml:"cull_margin"`            // Viewport expansion before culling
}

// TiltConfig holds gravity tilt input parameters.
type TiltConfig struct {
	Smoothing float64 `yaml:"smoothing"` // Weight kept from the previous angle per sample
	KeyRate   float64 `yaml:"key_rate"`  // Degrees per second while a tilt key is held
	MaxAngle  float64 `yaml:"max_angle"` // Absolute tilt limit in degrees
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// ServerConfig holds snapshot broadcast settings.
type ServerConfig struct {
	Address       string  `yaml:"address"`
	BroadcastRate float64 `yaml:"broadcast_rate"` // Snapshots per second
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32     float32 // Screen.Width as float32
	ScreenH32     float32 // Screen.Height as float32
	MaxFrameDT32  float32 // Fluid.MaxFrameDT as float32
	SpawnInterval float32 // Seconds between spawns
	SubstepDT     float32 // Max frame dt / substeps
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validation errors.
var (
	ErrNonPositive = errors.New("must be positive")
	ErrOutOfRange  = errors.New("out of range")
)

// Validate rejects values the solver cannot run with.
func (c *Config) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"fluid.h", c.Fluid.H},
		{"fluid.max_speed", c.Fluid.MaxSpeed},
		{"fluid.max_frame_dt", c.Fluid.MaxFrameDT},
		{"pour.spawn_per_second", c.Pour.SpawnPerSecond},
		{"pour.radius_min", c.Pour.RadiusMin},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%s = %v: %w", p.name, p.v, ErrNonPositive)
		}
	}

	if c.Fluid.Substeps < 1 {
		return fmt.Errorf("fluid.substeps = %d: %w", c.Fluid.Substeps, ErrNonPositive)
	}
	if c.Fluid.SolverIterations < 1 {
		return fmt.Errorf("fluid.solver_iterations = %d: %w", c.Fluid.SolverIterations, ErrNonPositive)
	}
	if c.Pour.TargetParticles < 0 {
		return fmt.Errorf("pour.target_particles = %d: %w", c.Pour.TargetParticles, ErrOutOfRange)
	}
	if c.Pour.RadiusMax < c.Pour.RadiusMin {
		return fmt.Errorf("pour.radius_max %v < radius_min %v: %w", c.Pour.RadiusMax, c.Pour.RadiusMin, ErrOutOfRange)
	}
	if c.Fluid.AirDamping < 0 || c.Fluid.AirDamping > 1 {
		return fmt.Errorf("fluid.air_damping = %v: %w", c.Fluid.AirDamping, ErrOutOfRange)
	}
	if c.Fluid.BoundaryFriction < 0 || c.Fluid.BoundaryFriction > 1 {
		return fmt.Errorf("fluid.boundary_friction = %v: %w", c.Fluid.BoundaryFriction, ErrOutOfRange)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.MaxFrameDT32 = float32(c.Fluid.MaxFrameDT)
	c.Derived.SpawnInterval = float32(1 / max(c.Pour.SpawnPerSecond, 1))
	c.Derived.SubstepDT = c.Derived.MaxFrameDT32 / float32(c.Fluid.Substeps)

	// Synthesize the default nozzle if none specified
	if len(c.Pour.Nozzles) == 0 {
		c.Pour.Nozzles = []NozzleConfig{{Name: "amber", Color: "#f1ab62"}}
	}
	for i := range c.Pour.Nozzles {
		if c.Pour.Nozzles[i].Color == "" {
			c.Pour.Nozzles[i].Color = "#f1ab62"
		}
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
