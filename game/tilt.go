package game

import (
	"math"

	"github.com/pthm-cable/pour/components"
	"github.com/pthm-cable/pour/config"
)

// Tilt turns a target angle into a smoothed gravity vector. The solver only ever
// sees the resulting vector.
type Tilt struct {
	enabled   bool
	smoothing float32
	keyRate   float32 // degrees per second
	maxAngle  float32 // degrees
	magnitude float32

	target float32 // degrees
	angle  float32 // smoothed degrees
}

// NewTilt creates a disabled tilt source producing gravity of the given magnitude.
func NewTilt(cfg config.TiltConfig, magnitude float32) *Tilt {
	return &Tilt{
		smoothing: float32(cfg.Smoothing),
		keyRate:   float32(cfg.KeyRate),
		maxAngle:  float32(cfg.MaxAngle),
		magnitude: magnitude,
	}
}

// Enabled reports whether tilt is steering gravity.
func (t *Tilt) Enabled() bool { return t.enabled }

// Angle returns the smoothed tilt angle in degrees.
func (t *Tilt) Angle() float32 { return t.angle }

// Enable starts tilting from the level position.
func (t *Tilt) Enable() {
	t.enabled = true
	t.target = 0
	t.angle = 0
}

// Disable returns gravity to straight down.
func (t *Tilt) Disable() {
	t.enabled = false
	t.target = 0
	t.angle = 0
}

// Toggle flips the tilt state and returns the new one.
func (t *Tilt) Toggle() bool {
	if t.enabled {
		t.Disable()
	} else {
		t.Enable()
	}
	return t.enabled
}

// SetTarget sets the angle the smoothed angle converges to, clamped to the limit.
func (t *Tilt) SetTarget(deg float32) {
	t.target = max(-t.maxAngle, min(t.maxAngle, deg))
}

// Nudge moves the target by dir*keyRate*dt, as while a tilt key is held.
func (t *Tilt) Nudge(dir, dt float32) {
	t.SetTarget(t.target + dir*t.keyRate*dt)
}

// Sample advances the smoothing by one input sample.
func (t *Tilt) Sample() {
	if !t.enabled {
		return
	}
	t.angle = t.angle*t.smoothing + t.target*(1-t.smoothing)
}

// Gravity returns the current gravity vector. Disabled tilt is straight down.
func (t *Tilt) Gravity() components.Vec2 {
	if !t.enabled {
		return components.Vec2{X: 0, Y: t.magnitude}
	}
	rad := float64(t.angle) * math.Pi / 180
	return components.Vec2{
		X: float32(math.Sin(rad)) * t.magnitude,
		Y: float32(math.Cos(rad)) * t.magnitude,
	}
}
