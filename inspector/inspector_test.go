package inspector

import (
	"fmt"
	"math"
	"testing"

	"github.com/pthm-cable/pour/components"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag        string
		wantWidget Widget
		wantOpts   map[string]string
	}{
		{"", WidgetAuto, map[string]string{}},
		{"bar,max:14", WidgetBar, map[string]string{"max": "14"}},
		{"label,fmt:%.1f", WidgetLabel, map[string]string{"fmt": "%.1f"}},
		{"skip", WidgetSkip, map[string]string{}},
		{"bool", WidgetBool, map[string]string{}},
		{"mystery, max:3", WidgetAuto, map[string]string{"max": "3"}},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			w, opts := ParseTag(tt.tag)
			if w != tt.wantWidget {
				t.Errorf("widget = %v, want %v", w, tt.wantWidget)
			}
			if len(opts) != len(tt.wantOpts) {
				t.Fatalf("options = %v, want %v", opts, tt.wantOpts)
			}
			for k, v := range tt.wantOpts {
				if opts[k] != v {
					t.Errorf("option %s = %q, want %q", k, opts[k], v)
				}
			}
		})
	}
}

func TestExtractParticleFields(t *testing.T) {
	q := components.Particle{X: 10, Y: 20, PrevX: 9, PrevY: 19, R: 17, Density: 7.5, Color: components.Color{R: 0xf1, G: 0xab, B: 0x62}}
	fields := ExtractFields(&q, nil)

	byName := make(map[string]Field, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}
	if _, ok := byName["PrevX"]; ok {
		t.Error("PrevX not skipped")
	}
	if len(fields) != 10 {
		t.Errorf("fields = %d, want 10", len(fields))
	}

	d := byName["Density"]
	if d.Widget != WidgetBar || d.Max != 14 {
		t.Errorf("Density = %+v, want a bar falling back to max 14", d)
	}
	if byName["X"].Max != 0 {
		t.Errorf("label X has bar range %v", byName["X"].Max)
	}
	if got := FormatValue(byName["X"].Value, byName["X"].Options["fmt"]); got != "10.0" {
		t.Errorf("X formats as %q", got)
	}
	if got := FormatValue(byName["Color"].Value, ""); got != "#f1ab62" {
		t.Errorf("Color formats as %q", got)
	}

	if ExtractFields(42, nil) != nil {
		t.Error("non-struct produced fields")
	}
}

func TestExtractFieldsUsesFluidScales(t *testing.T) {
	scales := FluidScales(5, 0.12, 0.3)
	q := components.Particle{Density: 4, Pressure: 0.2}

	tests := []struct {
		field string
		want  float32
	}{
		{"Density", 10},
		{"DensityNear", 5},
		{"Pressure", 0.6},
		{"PressureNear", 1.5},
	}
	fields := ExtractFields(q, scales)
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			for _, f := range fields {
				if f.Name != tt.field {
					continue
				}
				if math.Abs(float64(f.Max-tt.want)) > 1e-5 {
					t.Errorf("Max = %v, want %v", f.Max, tt.want)
				}
				return
			}
			t.Fatalf("field %s missing", tt.field)
		})
	}

	// A second extraction reads the cached plan and sees the new values
	q.Density = 9
	for _, f := range ExtractFields(&q, scales) {
		if f.Name == "Density" && f.Value.(float32) != 9 {
			t.Errorf("Density = %v, want 9", f.Value)
		}
	}
}

func TestGetFloatValue(t *testing.T) {
	tests := []struct {
		in     any
		want   float32
		wantOK bool
	}{
		{float32(1.5), 1.5, true},
		{2.5, 2.5, true},
		{int32(-3), -3, true},
		{uint8(7), 7, true},
		{"x", 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.in), func(t *testing.T) {
			got, ok := GetFloatValue(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("GetFloatValue(%v) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestGetMaxDefault(t *testing.T) {
	if GetMax(nil) != 1 || GetMax(map[string]string{"max": "nope"}) != 1 || GetMax(map[string]string{"max": "-2"}) != 1 {
		t.Error("bad max option not defaulted to 1")
	}
}

func testParticles() []components.Particle {
	return []components.Particle{
		{X: 100, Y: 100, R: 16},
		{X: 130, Y: 100, R: 16},
		{X: 300, Y: 300, R: 16},
	}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float32
		want   int
		wantOK bool
	}{
		{"centre hit", 100, 100, 0, true},
		{"nearest of overlapping", 118, 100, 1, true},
		{"within slop", 300, 319, 2, true},
		{"miss", 200, 200, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins := NewInspector(800, 600)
			ok := ins.Select(testParticles(), tt.x, tt.y)
			if ok != tt.wantOK {
				t.Fatalf("Select = %v, want %v", ok, tt.wantOK)
			}
			if idx, has := ins.Selected(); has != tt.wantOK || (ok && idx != tt.want) {
				t.Errorf("Selected = (%d, %v), want (%d, %v)", idx, has, tt.want, tt.wantOK)
			}
		})
	}
}

func TestTrackFollowsShiftedIndex(t *testing.T) {
	ins := NewInspector(800, 600)
	particles := testParticles()
	if !ins.Select(particles, 300, 300) {
		t.Fatal("select failed")
	}

	// The first particle is culled and the selected one drifts a little
	particles = particles[1:]
	particles[1].X += 5
	if !ins.Track(particles) {
		t.Fatal("lost the particle after an index shift")
	}
	if idx, _ := ins.Selected(); idx != 1 {
		t.Errorf("index = %d, want 1", idx)
	}

	// Removed entirely
	if ins.Track(particles[:1]) {
		t.Error("still tracking a removed particle")
	}
	if _, has := ins.Selected(); has {
		t.Error("selection kept after losing the particle")
	}
}
