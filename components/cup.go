package components

import "github.com/pthm-cable/pour/config"

// Cup describes the tapered container. It is derived from the viewport on resize
// and read-only while the simulation runs.
type Cup struct {
	CenterX         float32
	TopY            float32
	BottomY         float32
	TopHalfOuter    float32
	TopHalfInner    float32
	BottomHalfOuter float32
	BottomHalfInner float32
	Wall            float32
	RimHeight       float32
}

// NewCup derives the container geometry from viewport dimensions.
func NewCup(width, height float32, cfg config.CupConfig) Cup {
	topWidth := min(width*float32(cfg.TopWidthRatio), float32(cfg.TopWidthMax))
	bottomWidth := topWidth * float32(cfg.BottomWidthRatio)
	cupHeight := min(height*float32(cfg.HeightRatio), float32(cfg.HeightMax))

	wall := clamp32(width*float32(cfg.WallRatio), float32(cfg.WallMin), float32(cfg.WallMax))
	topY := height * float32(cfg.TopYRatio)

	c := Cup{
		CenterX:         width * 0.5,
		TopY:            topY,
		BottomY:         topY + cupHeight,
		TopHalfOuter:    topWidth * 0.5,
		BottomHalfOuter: bottomWidth * 0.5,
		Wall:            wall,
		RimHeight:       max(float32(cfg.RimHeightMin), wall*float32(cfg.RimHeightFactor)),
	}
	c.TopHalfInner = c.TopHalfOuter - wall
	c.BottomHalfInner = c.BottomHalfOuter - wall
	return c
}

// InnerHalfAt returns the inner half-width at height y. The interpolation parameter
// is clamped to the cup height and then scaled by taper, so the walls flare slightly.
func (c Cup) InnerHalfAt(y, taper float32) float32 {
	span := c.BottomY - c.TopY
	var t float32
	if span > 0 {
		t = clamp32((y-c.TopY)/span, 0, 1)
	}
	return c.TopHalfInner + (c.BottomHalfInner-c.TopHalfInner)*t*taper
}

// FloorY returns the lowest y a particle's lower edge may reach.
func (c Cup) FloorY(inset float32) float32 {
	return c.BottomY - c.Wall - inset
}

// SideWallStartY returns the height below which side walls collide.
func (c Cup) SideWallStartY(rimFactor float32) float32 {
	return c.TopY + c.RimHeight*rimFactor
}

// MouthY returns the line above which the incoming stream is still entering the cup.
func (c Cup) MouthY(offset float32) float32 {
	return c.TopY + offset
}

// Height returns the outer cup height.
func (c Cup) Height() float32 {
	return c.BottomY - c.TopY
}

func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
