package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pour/components"
)

const glassSegments = 24

// cubicBezier evaluates a cubic Bezier curve at t.
func cubicBezier(p0, p1, p2, p3 rl.Vector2, t float32) rl.Vector2 {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return rl.Vector2{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// GlassOutline returns the outer silhouette of the cup as two curves running top to
// bottom, left and right. The sides bow out slightly between rim and base.
func GlassOutline(cup components.Cup, segments int) (left, right []rl.Vector2) {
	if segments < 1 {
		segments = 1
	}
	h := cup.Height()
	side := func(sign float32) []rl.Vector2 {
		p0 := rl.Vector2{X: cup.CenterX + sign*cup.TopHalfOuter, Y: cup.TopY}
		p1 := rl.Vector2{X: cup.CenterX + sign*cup.TopHalfOuter*1.02, Y: cup.TopY + h*0.28}
		p2 := rl.Vector2{X: cup.CenterX + sign*cup.BottomHalfOuter*1.03, Y: cup.BottomY - h*0.16}
		p3 := rl.Vector2{X: cup.CenterX + sign*cup.BottomHalfOuter, Y: cup.BottomY}

		pts := make([]rl.Vector2, segments+1)
		for i := range pts {
			pts[i] = cubicBezier(p0, p1, p2, p3, float32(i)/float32(segments))
		}
		return pts
	}
	return side(-1), side(1)
}

// CupRenderer draws the glass over the fluid.
type CupRenderer struct {
	left, right []rl.Vector2
	cached      components.Cup
}

// NewCupRenderer creates a cup renderer.
func NewCupRenderer() *CupRenderer {
	return &CupRenderer{}
}

// Draw renders the glass body, rim and highlight.
func (c *CupRenderer) Draw(cup components.Cup) {
	if c.left == nil || cup != c.cached {
		c.left, c.right = GlassOutline(cup, glassSegments)
		c.cached = cup
	}

	// Body fill, fading from 0.18 at the rim to 0.08 at the base
	n := len(c.left) - 1
	for i := 0; i < n; i++ {
		t := (float32(i) + 0.5) / float32(n)
		fill := rl.Fade(rl.White, 0.18+(0.08-0.18)*t)
		l0, l1 := c.left[i], c.left[i+1]
		r0, r1 := c.right[i], c.right[i+1]
		rl.DrawTriangle(l0, l1, r1, fill)
		rl.DrawTriangle(l0, r1, r0, fill)
	}

	// Walls and base
	wall := rl.Color{R: 245, G: 245, B: 245, A: 158}
	for i := 0; i < n; i++ {
		rl.DrawLineEx(c.left[i], c.left[i+1], cup.Wall, wall)
		rl.DrawLineEx(c.right[i], c.right[i+1], cup.Wall, wall)
	}
	rl.DrawLineEx(c.left[n], c.right[n], cup.Wall, wall)

	// Rim
	cx := int32(cup.CenterX)
	rl.DrawEllipseLines(cx, int32(cup.TopY+2), cup.TopHalfOuter, cup.RimHeight*0.52, rl.Color{R: 245, G: 245, B: 245, A: 189})
	rl.DrawEllipseLines(cx, int32(cup.TopY+3), cup.TopHalfInner, cup.RimHeight*0.36, rl.Fade(rl.White, 0.42))

	// Highlight down the left side
	rl.DrawLineEx(
		rl.Vector2{X: cup.CenterX - cup.TopHalfOuter*0.85, Y: cup.TopY + 14},
		rl.Vector2{X: cup.CenterX - cup.BottomHalfOuter*0.95, Y: cup.BottomY - 12},
		cup.Wall*0.24,
		rl.Fade(rl.White, 0.35),
	)
}
