// Package terminal renders the fluid as coloured ASCII with termbox and drives the
// simulation from the keyboard.
package terminal

import (
	"github.com/nsf/termbox-go"

	"github.com/pthm-cable/pour/components"
)

// Fluid characters by particle count per cell.
var ramp = []rune(" .:oO@")

// Cell is one character of the rasterized frame.
type Cell struct {
	Ch    rune
	Fg    termbox.Attribute
	Count int
}

// Frame is a cols×rows character grid.
type Frame struct {
	Cols, Rows int
	Cells      []Cell

	votes []colorVote
}

type colorVote struct {
	color components.Color
	n     int
}

// At returns the cell at (col, row).
func (f *Frame) At(col, row int) Cell {
	return f.Cells[row*f.Cols+col]
}

func (f *Frame) reset(cols, rows int) {
	f.Cols, f.Rows = cols, rows
	n := cols * rows
	if cap(f.Cells) < n {
		f.Cells = make([]Cell, n)
		f.votes = make([]colorVote, n)
	}
	f.Cells = f.Cells[:n]
	f.votes = f.votes[:n]
	for i := range f.Cells {
		f.Cells[i] = Cell{Ch: ' ', Fg: termbox.ColorDefault}
		f.votes[i] = colorVote{}
	}
}

// Rasterize maps particles and the cup outline of a w×h viewport onto the frame.
// A cell takes the colour of the first particle that landed in it.
func Rasterize(f *Frame, views []components.ParticleView, cup components.Cup, w, h float32, cols, rows int) {
	f.reset(cols, rows)
	if cols <= 0 || rows <= 0 || w <= 0 || h <= 0 {
		return
	}
	sx := float32(cols) / w
	sy := float32(rows) / h

	drawCup(f, cup, sx, sy)

	for _, v := range views {
		// int() truncates toward zero, so negative positions must be dropped first
		if v.X < 0 || v.Y < 0 {
			continue
		}
		col := int(v.X * sx)
		row := int(v.Y * sy)
		if col < 0 || col >= cols || row < 0 || row >= rows {
			continue
		}
		i := row*cols + col
		if f.votes[i].n == 0 {
			f.votes[i].color = v.Color
		}
		f.votes[i].n++
	}

	for i, vote := range f.votes {
		if vote.n == 0 {
			continue
		}
		f.Cells[i] = Cell{
			Ch:    ramp[min(vote.n, len(ramp)-1)],
			Fg:    NearestColor(vote.color) | termbox.AttrBold,
			Count: vote.n,
		}
	}
}

// drawCup traces the outer walls row by row and the base as a line of underscores.
func drawCup(f *Frame, cup components.Cup, sx, sy float32) {
	span := cup.BottomY - cup.TopY
	if span <= 0 {
		return
	}
	top := int(cup.TopY * sy)
	bottom := int(cup.BottomY * sy)
	for row := max(top, 0); row <= bottom && row < f.Rows; row++ {
		y := (float32(row) + 0.5) / sy
		t := min(max((y-cup.TopY)/span, 0), 1)
		half := cup.TopHalfOuter + (cup.BottomHalfOuter-cup.TopHalfOuter)*t

		left := int((cup.CenterX - half) * sx)
		right := int((cup.CenterX + half) * sx)
		if row == bottom {
			for col := left; col <= right; col++ {
				f.set(col, row, '_')
			}
			continue
		}
		f.set(left, row, '\\')
		f.set(right, row, '/')
	}
}

func (f *Frame) set(col, row int, ch rune) {
	if col < 0 || col >= f.Cols || row < 0 || row >= f.Rows {
		return
	}
	f.Cells[row*f.Cols+col] = Cell{Ch: ch, Fg: termbox.ColorWhite}
}

var palette = []struct {
	attr    termbox.Attribute
	r, g, b int
}{
	{termbox.ColorRed, 205, 0, 0},
	{termbox.ColorGreen, 0, 205, 0},
	{termbox.ColorYellow, 205, 205, 0},
	{termbox.ColorBlue, 0, 0, 238},
	{termbox.ColorMagenta, 205, 0, 205},
	{termbox.ColorCyan, 0, 205, 205},
	{termbox.ColorWhite, 229, 229, 229},
}

// NearestColor picks the closest of the eight basic terminal colours.
func NearestColor(c components.Color) termbox.Attribute {
	best := termbox.ColorWhite
	bestDist := -1
	for _, p := range palette {
		dr := int(c.R) - p.r
		dg := int(c.G) - p.g
		db := int(c.B) - p.b
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best, bestDist = p.attr, d
		}
	}
	return best
}
