package game

import (
	"errors"
	"strconv"
	"testing"

	"github.com/pthm-cable/pour/components"
	"github.com/pthm-cable/pour/config"
)

func testNozzleConfigs() []config.NozzleConfig {
	return []config.NozzleConfig{
		{Name: "amber", Color: "#f1ab62"},
		{Name: "berry", Color: "#c2415d"},
		{Name: "mint", Color: "#6fcf97"},
		{Name: "sky", Color: "#56a8e8"},
	}
}

func TestNozzleRackLayout(t *testing.T) {
	rack, err := NewNozzleRack(testNozzleConfigs())
	if err != nil {
		t.Fatalf("NewNozzleRack: %v", err)
	}
	cup := components.Cup{CenterX: 240, TopY: 306, TopHalfInner: 125.76}
	rack.Layout(cup, 125)

	var xs []float32
	for i := 0; i < rack.Len(); i++ {
		_, tip := rack.At(i)
		if tip.Y != 306-125 {
			t.Errorf("nozzle %d y = %v, want %v", i, tip.Y, 306-125)
		}
		if tip.X < cup.CenterX-cup.TopHalfInner/2 || tip.X > cup.CenterX+cup.TopHalfInner/2 {
			t.Errorf("nozzle %d x = %v outside the middle of the mouth", i, tip.X)
		}
		xs = append(xs, tip.X)
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			t.Errorf("nozzles not ordered left to right: %v", xs)
		}
	}
	// Symmetric about the centre
	if d := xs[0] + xs[3] - 2*cup.CenterX; d > 1e-3 || d < -1e-3 {
		t.Errorf("layout not centred: %v", xs)
	}
}

func TestNozzleRackSingleIsCentred(t *testing.T) {
	rack, err := NewNozzleRack(testNozzleConfigs()[:1])
	if err != nil {
		t.Fatalf("NewNozzleRack: %v", err)
	}
	rack.Layout(components.Cup{CenterX: 240, TopY: 306, TopHalfInner: 125.76}, 125)
	if _, tip := rack.Active(); tip.X != 240 {
		t.Errorf("x = %v, want 240", tip.X)
	}
}

func TestNozzleRackSelect(t *testing.T) {
	rack, err := NewNozzleRack(testNozzleConfigs())
	if err != nil {
		t.Fatalf("NewNozzleRack: %v", err)
	}

	if noz, _ := rack.Active(); noz.Name != "amber" || !noz.Active {
		t.Errorf("initial active = %+v, want amber", noz)
	}

	tests := []struct {
		index int
		ok    bool
		want  string
	}{
		{2, true, "mint"},
		{-1, false, "mint"},
		{4, false, "mint"},
		{1, true, "berry"},
	}
	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.index), func(t *testing.T) {
			if got := rack.Select(tt.index); got != tt.ok {
				t.Errorf("Select(%d) = %v, want %v", tt.index, got, tt.ok)
			}
			noz, _ := rack.Active()
			if noz.Name != tt.want {
				t.Errorf("active = %q, want %q", noz.Name, tt.want)
			}

			active := 0
			for _, n := range rack.All() {
				if n.Active {
					active++
				}
			}
			if active != 1 {
				t.Errorf("%d nozzles flagged active, want 1", active)
			}
		})
	}
}

func TestNozzleRackErrors(t *testing.T) {
	if _, err := NewNozzleRack(nil); err == nil {
		t.Error("empty rack accepted")
	}

	_, err := NewNozzleRack([]config.NozzleConfig{{Name: "bad", Color: "#zz0000"}})
	if err == nil {
		t.Fatal("bad colour accepted")
	}
	if !errors.Is(err, strconv.ErrSyntax) {
		t.Errorf("error %v does not wrap the parse failure", err)
	}
}
