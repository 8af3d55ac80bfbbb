// Package components defines the data model shared by the simulation, renderers and tools.
package components

import "math"

// Vec2 is a 2D vector in screen space (x right, y down).
type Vec2 struct {
	X, Y float32
}

// Len returns the vector magnitude.
func (v Vec2) Len() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Position represents an entity's screen position.
type Position struct {
	X, Y float32
}
