package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Control bar geometry.
const (
	buttonHeight   = 40
	buttonMaxWidth = 140
	barPadding     = 12
	swatchSize     = 32
	sliderWidth    = 220
	sliderHeight   = 18
)

// Swatch is one selectable nozzle colour.
type Swatch struct {
	Name   string
	Color  rl.Color
	Active bool
}

// ControlState is what the control bar displays.
type ControlState struct {
	Pouring    bool
	TiltOn     bool
	TiltTarget float32 // degrees
	MaxTilt    float32
	Swatches   []Swatch
}

// Actions are the user requests made through the control bar in one frame.
type Actions struct {
	TogglePour   bool
	ToggleTilt   bool
	Reset        bool
	SelectNozzle int // -1 when none was clicked
	TiltChanged  bool
	TiltTarget   float32
}

// ControlLayout holds the screen rectangles of every control.
type ControlLayout struct {
	Pour, Tilt, Reset rl.Rectangle
	Swatches          []rl.Rectangle
	TiltSlider        rl.Rectangle
}

// LayoutControls places the buttons along the bottom edge, the nozzle swatches
// above them and the tilt slider above the swatches, all centred horizontally.
func LayoutControls(width, height float32, swatches int) ControlLayout {
	bw := min(float32(buttonMaxWidth), (width-4*barPadding)/3)
	rowW := 3*bw + 2*barPadding
	x0 := (width - rowW) / 2
	by := height - buttonHeight - barPadding

	l := ControlLayout{
		Pour:  rl.Rectangle{X: x0, Y: by, Width: bw, Height: buttonHeight},
		Tilt:  rl.Rectangle{X: x0 + bw + barPadding, Y: by, Width: bw, Height: buttonHeight},
		Reset: rl.Rectangle{X: x0 + 2*(bw+barPadding), Y: by, Width: bw, Height: buttonHeight},
	}

	sy := by - swatchSize - barPadding
	sw := float32(swatches)*swatchSize + float32(max(swatches-1, 0))*barPadding
	sx := (width - sw) / 2
	for i := 0; i < swatches; i++ {
		l.Swatches = append(l.Swatches, rl.Rectangle{
			X: sx + float32(i)*(swatchSize+barPadding), Y: sy,
			Width: swatchSize, Height: swatchSize,
		})
	}

	l.TiltSlider = rl.Rectangle{
		X: (width - sliderWidth) / 2, Y: sy - sliderHeight - barPadding,
		Width: sliderWidth, Height: sliderHeight,
	}
	return l
}

// Contains reports whether (x, y) falls on any control.
func (l ControlLayout) Contains(x, y float32) bool {
	in := func(r rl.Rectangle) bool {
		return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
	}
	if in(l.Pour) || in(l.Tilt) || in(l.Reset) || in(l.TiltSlider) {
		return true
	}
	for _, r := range l.Swatches {
		if in(r) {
			return true
		}
	}
	return false
}

// ControlBar renders the raygui buttons for pouring, tilt, reset and colour choice.
type ControlBar struct {
	renderer      *Renderer
	width, height float32
}

// NewControlBar creates a control bar for the given screen size.
func NewControlBar(width, height int32) *ControlBar {
	return &ControlBar{
		renderer: NewRenderer(),
		width:    float32(width),
		height:   float32(height),
	}
}

// Resize updates the screen dimensions.
func (c *ControlBar) Resize(w, h float32) {
	c.width = w
	c.height = h
}

// Contains reports whether (x, y) is over a control for the given swatch count.
func (c *ControlBar) Contains(x, y float32, swatches int) bool {
	return LayoutControls(c.width, c.height, swatches).Contains(x, y)
}

// Draw renders the controls and returns what the user clicked.
func (c *ControlBar) Draw(state ControlState) Actions {
	l := LayoutControls(c.width, c.height, len(state.Swatches))
	act := Actions{SelectNozzle: -1}

	if gui.Button(l.Pour, toggleText(state.Pouring, "STOP", "POUR")) {
		act.TogglePour = true
	}
	if gui.Button(l.Tilt, toggleText(state.TiltOn, "TILT ON", "TILT")) {
		act.ToggleTilt = true
	}
	if gui.Button(l.Reset, "RESET") {
		act.Reset = true
	}

	for i, s := range state.Swatches {
		r := l.Swatches[i]
		if gui.Button(r, "") {
			act.SelectNozzle = i
		}
		inset := rl.Rectangle{X: r.X + 3, Y: r.Y + 3, Width: r.Width - 6, Height: r.Height - 6}
		rl.DrawRectangleRec(inset, s.Color)
		if s.Active {
			rl.DrawRectangleLinesEx(r, 2, c.renderer.Theme.ActiveOutline)
		}
	}

	if state.TiltOn {
		target := gui.SliderBar(l.TiltSlider,
			fmt.Sprintf("%.0f", -state.MaxTilt), fmt.Sprintf("%.0f", state.MaxTilt),
			state.TiltTarget, -state.MaxTilt, state.MaxTilt,
		)
		if target != state.TiltTarget {
			act.TiltChanged = true
			act.TiltTarget = target
		}
	}

	return act
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
