package telemetry

import (
	"math"
	"testing"
)

func TestComputeDistribution(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		wantP50 float64
		wantAvg float64
	}{
		{"single element", []float64{5}, 5, 5},
		{"odd count", []float64{1, 2, 3, 4, 5}, 3, 3},
		{"unsorted input", []float64{5, 1, 4, 2, 3}, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ComputeDistribution(tt.values)
			if math.Abs(d.P50-tt.wantP50) > 1e-9 {
				t.Errorf("P50 = %v, want %v", d.P50, tt.wantP50)
			}
			if math.Abs(d.Mean-tt.wantAvg) > 1e-9 {
				t.Errorf("Mean = %v, want %v", d.Mean, tt.wantAvg)
			}
		})
	}
}

func TestComputeDistributionOrdering(t *testing.T) {
	values := []float64{0.1, 0.9, 0.2, 0.8, 0.3, 0.7, 0.4, 0.6, 0.5, 1.0}
	d := ComputeDistribution(values)

	if !(d.P10 <= d.P50 && d.P50 <= d.P90) {
		t.Errorf("quantiles not ordered: p10=%v p50=%v p90=%v", d.P10, d.P50, d.P90)
	}
	if d.P10 < 0.1 || d.P90 > 1.0 {
		t.Errorf("quantiles outside sample range: p10=%v p90=%v", d.P10, d.P90)
	}
	if math.Abs(d.Mean-0.55) > 1e-9 {
		t.Errorf("Mean = %v, want 0.55", d.Mean)
	}
	if d.Std <= 0 {
		t.Errorf("Std = %v, want > 0", d.Std)
	}
	// Input must not be reordered
	if values[0] != 0.1 || values[1] != 0.9 {
		t.Error("ComputeDistribution modified its input")
	}
}

func TestComputeDistributionEmpty(t *testing.T) {
	if d := ComputeDistribution(nil); d != (Distribution{}) {
		t.Errorf("empty sample = %+v, want zero", d)
	}
}
