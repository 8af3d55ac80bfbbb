package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pour/ui"
)

// nozzleKeys selects nozzles by number.
var nozzleKeys = []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive, rl.KeySix}

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyP) {
		g.TogglePour()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.Reset()
	}
	if rl.IsKeyPressed(rl.KeyT) {
		g.ToggleTilt()
	}

	for i, key := range nozzleKeys {
		if rl.IsKeyPressed(key) {
			g.SelectNozzle(i)
		}
	}

	// Held arrow keys steer the tilt target
	if g.tilt.Enabled() {
		dt := rl.GetFrameTime()
		if rl.IsKeyDown(rl.KeyLeft) {
			g.tilt.Nudge(-1, dt)
		}
		if rl.IsKeyDown(rl.KeyRight) {
			g.tilt.Nudge(1, dt)
		}
	}

	g.handleOverlayKeys()
	g.handleSelection()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	g.Resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
}

// applyActions carries out what was clicked in the control bar.
func (g *Game) applyActions(act ui.Actions) {
	if act.TogglePour {
		g.TogglePour()
	}
	if act.ToggleTilt {
		g.ToggleTilt()
	}
	if act.Reset {
		g.Reset()
	}
	if act.SelectNozzle >= 0 {
		g.SelectNozzle(act.SelectNozzle)
	}
	if act.TiltChanged {
		g.tilt.SetTarget(act.TiltTarget)
	}
}
