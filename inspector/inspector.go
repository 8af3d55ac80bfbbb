// Package inspector shows the solver state of a single clicked particle.
package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pour/components"
)

// Panel dimensions
const (
	PanelWidth   = 300
	PanelPadding = 10
	HeaderHeight = 30

	pickSlop = 4 // Extra click radius around a particle
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSelection   = rl.Color{R: 255, G: 255, B: 255, A: 200}
)

// Inspector tracks one selected particle and renders its fields.
//
// Particles have no stable identity: culling and pour clears shift indices. The
// selection therefore follows the particle nearest its last known position and is
// dropped once nothing is within one radius of it.
type Inspector struct {
	index       int
	hasSelected bool
	last        components.Vec2
	scales      Scales

	panelX, panelY int32
}

// NewInspector creates an inspector with its panel on the right edge.
func NewInspector(screenWidth, screenHeight int32) *Inspector {
	ins := &Inspector{}
	ins.Resize(screenWidth, screenHeight)
	return ins
}

// Resize keeps the panel on the right edge.
func (ins *Inspector) Resize(screenWidth, _ int32) {
	ins.panelX = screenWidth - PanelWidth - 10
	ins.panelY = 10
}

// SetScales sets the bar ranges used for the particle fields.
func (ins *Inspector) SetScales(s Scales) {
	ins.scales = s
}

// Selected returns the index of the selected particle.
func (ins *Inspector) Selected() (int, bool) {
	return ins.index, ins.hasSelected
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Select picks the particle under (x, y), nearest centre first.
func (ins *Inspector) Select(particles []components.Particle, x, y float32) bool {
	best := -1
	bestDist := float32(0)
	for i := range particles {
		q := &particles[i]
		dx, dy := x-q.X, y-q.Y
		dist := dx*dx + dy*dy
		hit := q.R + pickSlop
		if dist <= hit*hit && (best < 0 || dist < bestDist) {
			best, bestDist = i, dist
		}
	}
	if best < 0 {
		return false
	}
	ins.index = best
	ins.hasSelected = true
	ins.last = components.Vec2{X: particles[best].X, Y: particles[best].Y}
	return true
}

// Track re-finds the selected particle after a step and reports whether it is
// still selected.
func (ins *Inspector) Track(particles []components.Particle) bool {
	if !ins.hasSelected {
		return false
	}
	if ins.index < len(particles) {
		q := &particles[ins.index]
		dx, dy := q.X-ins.last.X, q.Y-ins.last.Y
		if dx*dx+dy*dy <= q.R*q.R {
			ins.last = components.Vec2{X: q.X, Y: q.Y}
			return true
		}
	}

	best := -1
	bestDist := float32(0)
	for i := range particles {
		q := &particles[i]
		dx, dy := q.X-ins.last.X, q.Y-ins.last.Y
		dist := dx*dx + dy*dy
		if dist <= q.R*q.R && (best < 0 || dist < bestDist) {
			best, bestDist = i, dist
		}
	}
	if best < 0 {
		ins.Deselect()
		return false
	}
	ins.index = best
	ins.last = components.Vec2{X: particles[best].X, Y: particles[best].Y}
	return true
}

// HandleInput processes clicks: left selects (or closes via the panel button),
// right deselects. Reports whether the click was consumed.
func (ins *Inspector) HandleInput(mouseX, mouseY float32, particles []components.Particle) bool {
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		ins.Deselect()
		return false
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return false
	}

	if ins.hasSelected {
		closeX := ins.panelX + PanelWidth - 25
		closeY := ins.panelY + 5
		if within(mouseX, mouseY, closeX, closeY, 20, 20) {
			ins.Deselect()
			return true
		}
		if within(mouseX, mouseY, ins.panelX, ins.panelY, PanelWidth, ins.panelHeight()) {
			return true
		}
	}
	return ins.Select(particles, mouseX, mouseY)
}

func within(mx, my float32, x, y, w, h int32) bool {
	return int32(mx) >= x && int32(mx) <= x+w && int32(my) >= y && int32(my) <= y+h
}

func (ins *Inspector) panelHeight() int32 {
	return HeaderHeight + PanelPadding*2 + 22 + 8 + 20*10
}

// Draw outlines the selected particle and renders the panel.
func (ins *Inspector) Draw(particles []components.Particle) {
	if !ins.hasSelected || ins.index >= len(particles) {
		return
	}
	q := &particles[ins.index]

	rl.DrawCircleLines(int32(q.X), int32(q.Y), q.R+3, ColorSelection)

	h := ins.panelHeight()
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, h, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(h)},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText("PARTICLE", ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding

	swatch := rl.Color{R: q.Color.R, G: q.Color.G, B: q.Color.B, A: 255}
	rl.DrawRectangle(x, y, 14, 14, swatch)
	rl.DrawText(fmt.Sprintf("#%d  %s", ins.index, q.Color.Hex()), x+20, y, 14, ColorHeaderText)
	y += 22

	rl.DrawLine(x, y, ins.panelX+PanelWidth-PanelPadding, y, ColorPanelBorder)
	y += 8

	for _, f := range ExtractFields(q, ins.scales) {
		y += DrawField(x, y, f)
	}
}
