// Package main searches fluid parameters that give a calm, non-overlapping pour.
package main

import (
	"github.com/pthm-cable/pour/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "rest_density", Path: "fluid.rest_density", Min: 3.0, Max: 12.0, Default: 7.1},
			{Name: "pressure_k", Path: "fluid.pressure_k", Min: 0.02, Max: 0.5, Default: 0.12},
			{Name: "near_pressure_k", Path: "fluid.near_pressure_k", Min: 0.05, Max: 1.0, Default: 0.28},
			{Name: "collision_stiffness", Path: "fluid.collision_stiffness", Min: 0.3, Max: 1.2, Default: 0.72},
			{Name: "viscosity", Path: "fluid.viscosity", Min: 0, Max: 0.4, Default: 0.12},
			{Name: "cohesion_k", Path: "fluid.cohesion_k", Min: 0, Max: 3.0, Default: 1.1},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg.Fluid. Order matches Specs.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)
	cfg.Fluid.RestDensity = c[0]
	cfg.Fluid.PressureK = c[1]
	cfg.Fluid.NearPressureK = c[2]
	cfg.Fluid.CollisionStiffness = c[3]
	cfg.Fluid.Viscosity = c[4]
	cfg.Fluid.CohesionK = c[5]
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Fluid.RestDensity,
		cfg.Fluid.PressureK,
		cfg.Fluid.NearPressureK,
		cfg.Fluid.CollisionStiffness,
		cfg.Fluid.Viscosity,
		cfg.Fluid.CohesionK,
	}
}
