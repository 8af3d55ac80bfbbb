package systems

import (
	"math"

	"github.com/pthm-cable/pour/components"
)

// minReconstructDT floors the denominator when deriving velocity from displacement.
const minReconstructDT = 1e-5

// Integrate advances every particle by one substep under gravity: damping, speed
// clamp, position update, then the container boundary. The pre-step position is
// stored in PrevX/PrevY for velocity reconstruction after relaxation.
func Integrate(particles []components.Particle, gravity components.Vec2, cup *components.Cup, p *Params, dt float32) {
	for i := range particles {
		q := &particles[i]
		q.PrevX = q.X
		q.PrevY = q.Y

		q.VX += gravity.X * dt
		q.VY += gravity.Y * dt
		q.VX *= p.AirDamping
		q.VY *= p.AirDamping

		ClampSpeed(q, p.MaxSpeed)

		q.X += q.VX * dt
		q.Y += q.VY * dt
		ResolveCup(q, cup, p)
	}
}

// ClampSpeed rescales velocity uniformly so its magnitude does not exceed maxSpeed.
func ClampSpeed(q *components.Particle, maxSpeed float32) {
	speed := velocityMagnitude(q.VX, q.VY)
	if speed > maxSpeed {
		scale := maxSpeed / speed
		q.VX *= scale
		q.VY *= scale
	}
}

// ReconstructVelocity replaces each particle's velocity with its net displacement
// over the substep. Integrated velocity is discarded: after position correction,
// velocity is whatever the corrections made it.
func ReconstructVelocity(particles []components.Particle, dt float32) {
	inv := 1 / max(dt, minReconstructDT)
	for i := range particles {
		q := &particles[i]
		q.VX = (q.X - q.PrevX) * inv
		q.VY = (q.Y - q.PrevY) * inv
	}
}

// velocityMagnitude returns the magnitude of a velocity vector.
func velocityMagnitude(vx, vy float32) float32 {
	return float32(math.Sqrt(float64(vx*vx + vy*vy)))
}
