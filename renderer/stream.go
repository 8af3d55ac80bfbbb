package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pour/components"
)

// StreamRenderer draws the falling pour stream and the nozzles above the cup.
type StreamRenderer struct{}

// NewStreamRenderer creates a stream renderer.
func NewStreamRenderer() *StreamRenderer {
	return &StreamRenderer{}
}

func toRL(c components.Color, alpha float32) rl.Color {
	return rl.Fade(rl.Color{R: c.R, G: c.G, B: c.B, A: 255}, alpha)
}

// DrawStream renders a vertical stream at x from fromY to toY: a wide faint glow
// under a narrow solid core, both with round caps.
func (s *StreamRenderer) DrawStream(x, fromY, toY float32, color components.Color) {
	if toY <= fromY {
		return
	}
	a := rl.Vector2{X: x, Y: fromY}
	b := rl.Vector2{X: x, Y: toY}

	glow := toRL(color, 0.4)
	rl.DrawLineEx(a, b, 20, glow)
	rl.DrawCircleV(a, 10, glow)
	rl.DrawCircleV(b, 10, glow)

	core := toRL(color, 0.9)
	rl.DrawLineEx(a, b, 10, core)
	rl.DrawCircleV(a, 5, core)
	rl.DrawCircleV(b, 5, core)
}

// DrawNozzle renders one nozzle neck ending at tip. The active nozzle is outlined.
func (s *StreamRenderer) DrawNozzle(tip components.Vec2, color components.Color, active bool) {
	const neckW, neckH = 18, 34
	body := rl.Rectangle{X: tip.X - neckW/2, Y: tip.Y - neckH, Width: neckW, Height: neckH}
	rl.DrawRectangleRounded(body, 0.4, 6, toRL(color, 0.85))
	if active {
		rl.DrawRectangleRoundedLines(body, 0.4, 6, rl.RayWhite)
	}
}
