package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pour/systems"
	"github.com/pthm-cable/pour/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Particles int
	Target    int
	FillLevel float32
	Tick      int32
	Speed     int
	FPS       int32
	Paused    bool
	TiltOn    bool
	TiltAngle float32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	const x, y, w = 10, 10, 190

	height := int32(4*r.Theme.LineHeight + 2*r.Theme.Padding + 4)
	if data.TiltOn {
		height += r.Theme.LineHeight
	}
	r.DrawPanel(x, y, w, height)

	ty := int32(y) + r.Theme.Padding
	tx := int32(x) + r.Theme.Padding
	ty = r.DrawLabelValue(tx, ty, "particles", fmt.Sprintf("%d / %d", data.Particles, data.Target))
	ty = r.DrawBar(tx, ty, "fill", data.FillLevel, w-2*r.Theme.Padding)
	ty = r.DrawLabelValue(tx, ty, "fps", fmt.Sprintf("%d  x%d", data.FPS, data.Speed))
	if data.TiltOn {
		ty = r.DrawLabelValue(tx, ty, "tilt", fmt.Sprintf("%+.1f deg", data.TiltAngle))
	}

	status := "running"
	color := r.Theme.LabelColor
	if data.Paused {
		status = "PAUSED"
		color = rl.Yellow
	}
	rl.DrawText(fmt.Sprintf("%s  tick %d", status, data.Tick), tx, ty, r.Theme.FontSize, color)
}

// PerfPanel renders the solver phase timing breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel, one line per registered pass.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, passes *systems.PassRegistry) {
	r := p.renderer
	lh := r.Theme.LineHeight
	height := int32(len(passes.All())+2)*lh + 2*r.Theme.Padding
	r.DrawPanel(p.x, p.y, 220, height)

	x := p.x + r.Theme.Padding
	y := p.y + r.Theme.Padding
	rl.DrawText(fmt.Sprintf("tick %s", stats.AvgTickDuration.Round(time.Microsecond)), x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += lh + 4

	for _, pass := range passes.All() {
		pct := stats.PhasePct[pass.ID]
		color := r.Theme.LabelColor
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", pass.Name, stats.PhaseAvg[pass.ID].Round(time.Microsecond), pct),
			x, y, r.Theme.FontSize, color,
		)
		y += lh
	}
}
