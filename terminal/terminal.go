package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nsf/termbox-go"

	"github.com/pthm-cable/pour/components"
	"github.com/pthm-cable/pour/systems"
)

// Controller is the part of the game the terminal drives.
type Controller interface {
	UpdateHeadless()
	TogglePour() bool
	ToggleTilt() bool
	NudgeTilt(dir float32)
	SelectNozzle(i int) bool
	Reset()
	Tick() int32
	Simulation() *systems.Simulation
}

// Terminal renders a Controller's simulation into the terminal.
type Terminal struct {
	ctrl   Controller
	fps    int
	paused bool
	tilted bool

	frame Frame
	views []components.ParticleView
}

// New creates a terminal front end refreshing at fps frames per second.
func New(ctrl Controller, fps int) *Terminal {
	if fps <= 0 {
		fps = 30
	}
	return &Terminal{ctrl: ctrl, fps: fps}
}

// Run takes over the terminal until ctx is done or the user quits.
func (t *Terminal) Run(ctx context.Context) error {
	if err := termbox.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer termbox.Close()
	termbox.SetInputMode(termbox.InputEsc)

	events := make(chan termbox.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := termbox.PollEvent()
			if ev.Type == termbox.EventInterrupt {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	defer termbox.Interrupt()

	ticker := time.NewTicker(time.Second / time.Duration(t.fps))
	defer ticker.Stop()

	slog.Info("terminal started", "fps", t.fps)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev.Type {
			case termbox.EventKey:
				if t.handleKey(ev) {
					return nil
				}
			case termbox.EventError:
				return fmt.Errorf("terminal event: %w", ev.Err)
			}
		case <-ticker.C:
			if !t.paused {
				t.ctrl.UpdateHeadless()
			}
			if err := t.redraw(); err != nil {
				return err
			}
		}
	}
}

// handleKey applies one key press and reports whether the user asked to quit.
func (t *Terminal) handleKey(ev termbox.Event) bool {
	switch ev.Key {
	case termbox.KeyEsc, termbox.KeyCtrlC:
		return true
	case termbox.KeySpace:
		t.paused = !t.paused
		return false
	case termbox.KeyArrowLeft:
		t.ctrl.NudgeTilt(-1)
		return false
	case termbox.KeyArrowRight:
		t.ctrl.NudgeTilt(1)
		return false
	}

	switch ev.Ch {
	case 'q':
		return true
	case 'p':
		t.ctrl.TogglePour()
	case 't':
		t.tilted = t.ctrl.ToggleTilt()
	case 'r':
		t.ctrl.Reset()
		t.tilted = false
	default:
		if ev.Ch >= '1' && ev.Ch <= '9' {
			t.ctrl.SelectNozzle(int(ev.Ch - '1'))
		}
	}
	return false
}

func (t *Terminal) redraw() error {
	sim := t.ctrl.Simulation()
	cols, rows := termbox.Size()
	if rows < 2 {
		return nil
	}

	t.views = sim.Snapshot(t.views)
	w, h := sim.Size()
	Rasterize(&t.frame, t.views, *sim.Cup(), w, h, cols, rows-1)

	if err := termbox.Clear(termbox.ColorDefault, termbox.ColorDefault); err != nil {
		return fmt.Errorf("clear terminal: %w", err)
	}
	for row := 0; row < t.frame.Rows; row++ {
		for col := 0; col < t.frame.Cols; col++ {
			c := t.frame.At(col, row)
			termbox.SetCell(col, row, c.Ch, c.Fg, termbox.ColorDefault)
		}
	}
	drawText(0, rows-1, t.statusLine(sim), termbox.ColorBlack, termbox.ColorWhite)

	if err := termbox.Flush(); err != nil {
		return fmt.Errorf("flush terminal: %w", err)
	}
	return nil
}

func (t *Terminal) statusLine(sim *systems.Simulation) string {
	state := "idle"
	switch {
	case t.paused:
		state = "paused"
	case sim.Pouring():
		state = "pouring"
	}
	tilt := ""
	if t.tilted {
		tilt = " tilt"
	}
	return fmt.Sprintf(" %s%s | %d particles | tick %d | [p]our [t]ilt ←→ [r]eset [1-9] nozzle [space] pause [q]uit ",
		state, tilt, sim.Count(), t.ctrl.Tick())
}

func drawText(x, y int, s string, fg, bg termbox.Attribute) {
	for _, r := range s {
		termbox.SetCell(x, y, r, fg, bg)
		x++
	}
}
