package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/pour/components"
)

func TestCellKeyDistinct(t *testing.T) {
	coords := [][2]int{
		{0, 0}, {1, 0}, {0, 1}, {-1, 0}, {0, -1}, {-1, -1},
		{1, 2}, {2, 1}, {1 << 20, -3}, {-3, 1 << 20},
	}
	seen := make(map[int64][2]int)
	for _, c := range coords {
		k := CellKey(c[0], c[1])
		if prev, ok := seen[k]; ok {
			t.Errorf("CellKey(%d,%d) collides with (%d,%d)", c[0], c[1], prev[0], prev[1])
		}
		seen[k] = c
	}
}

func TestFluidGridCellOf(t *testing.T) {
	g := NewFluidGrid(32)
	tests := []struct {
		x, y   float32
		cx, cy int
	}{
		{0, 0, 0, 0},
		{31.9, 31.9, 0, 0},
		{32, 0, 1, 0},
		{-0.1, 0, -1, 0},
		{-32, -32.5, -1, -2},
	}
	for _, tt := range tests {
		cx, cy := g.CellOf(tt.x, tt.y)
		if cx != tt.cx || cy != tt.cy {
			t.Errorf("CellOf(%v,%v) = (%d,%d), want (%d,%d)", tt.x, tt.y, cx, cy, tt.cx, tt.cy)
		}
	}
}

func TestFluidGridRebuild(t *testing.T) {
	g := NewFluidGrid(32)
	particles := []components.Particle{
		{X: 10, Y: 10},
		{X: 40, Y: 10},
		{X: -5, Y: -5},
		{X: 20, Y: 5},
	}
	g.Rebuild(particles, 32)

	if got := g.OccupiedCells(); got != 3 {
		t.Errorf("OccupiedCells = %d, want 3", got)
	}
	if got := g.Query(0, 0); len(got) != 2 || got[0] != 0 || got[1] != 3 {
		t.Errorf("Query(0,0) = %v, want [0 3] in insertion order", got)
	}
	if got := g.Query(-1, -1); len(got) != 1 || got[0] != 2 {
		t.Errorf("Query(-1,-1) = %v, want [2]", got)
	}

	// A rebuild with fewer particles leaves no stale entries behind
	g.Rebuild(particles[:1], 32)
	if got := g.Query(1, 0); len(got) != 0 {
		t.Errorf("Query(1,0) after rebuild = %v, want empty", got)
	}
	if got := g.OccupiedCells(); got != 1 {
		t.Errorf("OccupiedCells after rebuild = %d, want 1", got)
	}
}

func TestForEachPairMatchesBruteForce(t *testing.T) {
	const h = 32
	rng := rand.New(rand.NewSource(7))
	particles := make([]components.Particle, 150)
	for i := range particles {
		particles[i].X = rng.Float32()*300 - 50
		particles[i].Y = rng.Float32()*300 - 50
	}

	g := NewFluidGrid(h)
	g.Rebuild(particles, h)

	found := make(map[[2]int]int)
	g.ForEachPair(particles, func(i, j int) {
		if j <= i {
			t.Fatalf("pair (%d,%d) not ordered", i, j)
		}
		if distanceSq(particles[i].X, particles[i].Y, particles[j].X, particles[j].Y) < h*h {
			found[[2]int{i, j}]++
		}
	})

	want := 0
	for i := range particles {
		for j := i + 1; j < len(particles); j++ {
			if distanceSq(particles[i].X, particles[i].Y, particles[j].X, particles[j].Y) >= h*h {
				continue
			}
			want++
			if n := found[[2]int{i, j}]; n != 1 {
				t.Errorf("pair (%d,%d) visited %d times, want 1", i, j, n)
			}
		}
	}
	if len(found) != want {
		t.Errorf("found %d pairs within h, want %d", len(found), want)
	}
}
