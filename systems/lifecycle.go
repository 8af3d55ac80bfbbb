package systems

import (
	"math/rand"

	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/pour/components"
)

// Pourer owns the pour state: whether the nozzle is open, the spawn timer, the
// active colour and the nozzle tip. Spawning appends to a Solver.
type Pourer struct {
	rng  *rand.Rand
	sway opensimplex.Noise

	pouring bool
	timer   float32
	simTime float32

	color  components.Color
	nozzle components.Vec2
}

// NewPourer creates a stopped pourer. The seed drives radius jitter and stream sway.
func NewPourer(seed int64, color components.Color, nozzle components.Vec2) *Pourer {
	return &Pourer{
		rng:    rand.New(rand.NewSource(seed)),
		sway:   opensimplex.New(seed),
		color:  color,
		nozzle: nozzle,
	}
}

// Pouring reports whether the nozzle is open.
func (p *Pourer) Pouring() bool { return p.pouring }

// Color returns the colour assigned to newly spawned particles.
func (p *Pourer) Color() components.Color { return p.color }

// SetColor changes the colour of future particles. Existing particles keep theirs.
func (p *Pourer) SetColor(c components.Color) { p.color = c }

// Nozzle returns the nozzle tip position.
func (p *Pourer) Nozzle() components.Vec2 { return p.nozzle }

// SetNozzle moves the nozzle tip.
func (p *Pourer) SetNozzle(pos components.Vec2) { p.nozzle = pos }

// SimTime returns the accumulated simulated time that drives the stream sway.
func (p *Pourer) SimTime() float32 { return p.simTime }

// Start opens the nozzle and resets the spawn timer.
func (p *Pourer) Start() {
	p.pouring = true
	p.timer = 0
}

// Stop closes the nozzle.
func (p *Pourer) Stop() {
	p.pouring = false
	p.timer = 0
}

// Reset closes the nozzle and zeroes the spawn timer. Colour and nozzle are kept.
func (p *Pourer) Reset() {
	p.pouring = false
	p.timer = 0
}

// StreamX returns the stream's horizontal position: the nozzle x plus a smooth
// sway of amplitude Wobble driven by simplex noise at WobbleHz.
func (p *Pourer) StreamX(params *Params) float32 {
	if params.Wobble == 0 {
		return p.nozzle.X
	}
	n := p.sway.Eval2(float64(p.simTime*params.WobbleHz), 0)
	return p.nozzle.X + params.Wobble*float32(n)
}

// SpawnResult reports what one Spawn call did.
type SpawnResult struct {
	Spawned    bool
	CapReached bool
}

// Spawn advances the pour clock by dt and, when pouring and the spawn interval has
// elapsed, appends one particle at the nozzle. At most one particle spawns per call
// regardless of dt. A pour that finds the population at TargetParticles stops
// without spawning.
func (p *Pourer) Spawn(s *Solver, dt float32) SpawnResult {
	var res SpawnResult
	p.simTime += dt
	if !p.pouring {
		p.timer = 0
		return res
	}

	params := s.Params()
	if s.Len() >= params.TargetParticles {
		p.Stop()
		res.CapReached = true
		return res
	}

	p.timer += dt
	if p.timer < params.SpawnInterval {
		return res
	}
	p.timer -= params.SpawnInterval

	s.Add(p.newParticle(params))
	res.Spawned = true
	return res
}

// newParticle builds a particle at the stream position with a random radius and a
// small positional jitter. The previous position is the unjittered spawn point.
func (p *Pourer) newParticle(params *Params) components.Particle {
	sx := p.StreamX(params)
	sy := p.nozzle.Y + params.SpawnOffsetY
	r := params.RadiusMin + p.rng.Float32()*(params.RadiusMax-params.RadiusMin)
	return components.Particle{
		X:     sx + (p.rng.Float32()-0.5)*params.SpawnJitter,
		Y:     sy + (p.rng.Float32()-0.5)*params.SpawnJitter,
		PrevX: sx,
		PrevY: sy,
		VY:    params.PourSpeedY,
		R:     r,
		Color: p.color,
	}
}
