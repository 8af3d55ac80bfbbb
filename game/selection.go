package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// handleSelection routes mouse clicks that miss the controls to the particle
// inspector.
func (g *Game) handleSelection() {
	mouse := rl.GetMousePosition()
	if g.controls.Contains(mouse.X, mouse.Y, g.nozzles.Len()) {
		return
	}
	g.inspector.HandleInput(mouse.X, mouse.Y, g.sim.Particles())
}

// trackSelection keeps the inspector on the same particle after a step.
func (g *Game) trackSelection() {
	if g.inspector == nil {
		return
	}
	g.inspector.Track(g.sim.Particles())
}
