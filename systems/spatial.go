// Package systems provides the fluid solver passes and the particle lifecycle.
package systems

import (
	"math"

	"github.com/pthm-cable/pour/components"
)

// FluidGrid buckets particle indices into uniform cells keyed by packed cell coordinates.
// It is rebuilt from scratch whenever positions change and carries no state across rebuilds.
type FluidGrid struct {
	cellSize float32
	inv      float32
	cells    map[int64][]int
	used     []int64 // keys populated by the last rebuild
}

// NewFluidGrid creates an empty grid with the given cell size.
func NewFluidGrid(cellSize float32) *FluidGrid {
	return &FluidGrid{
		cellSize: cellSize,
		inv:      1 / cellSize,
		cells:    make(map[int64][]int, 64),
		used:     make([]int64, 0, 64),
	}
}

// maxIdleCells bounds how many empty buckets are kept around for reuse.
const maxIdleCells = 1024

// CellKey packs a cell coordinate into a single map key.
func CellKey(cx, cy int) int64 {
	return int64(cx)<<32 | int64(uint32(cy))
}

// CellSize returns the grid cell size.
func (g *FluidGrid) CellSize() float32 {
	return g.cellSize
}

// CellOf returns the cell coordinate containing (x, y).
func (g *FluidGrid) CellOf(x, y float32) (cx, cy int) {
	return int(math.Floor(float64(x * g.inv))), int(math.Floor(float64(y * g.inv)))
}

// Clear empties all buckets while keeping their backing arrays.
func (g *FluidGrid) Clear() {
	for _, k := range g.used {
		g.cells[k] = g.cells[k][:0]
	}
	g.used = g.used[:0]

	// Drop idle buckets once the map has grown past what a full cup needs
	if len(g.cells) > maxIdleCells {
		clear(g.cells)
	}
}

// Insert adds particle index i at position (x, y).
func (g *FluidGrid) Insert(i int, x, y float32) {
	k := CellKey(g.CellOf(x, y))
	bucket, ok := g.cells[k]
	if !ok {
		bucket = make([]int, 0, 8)
	}
	if len(bucket) == 0 {
		g.used = append(g.used, k)
	}
	g.cells[k] = append(bucket, i)
}

// Rebuild clears the grid and inserts every particle in index order.
func (g *FluidGrid) Rebuild(particles []components.Particle, cellSize float32) {
	if cellSize != g.cellSize && cellSize > 0 {
		g.cellSize = cellSize
		g.inv = 1 / cellSize
	}
	g.Clear()
	for i := range particles {
		g.Insert(i, particles[i].X, particles[i].Y)
	}
}

// Query returns the particle indices in a cell. The slice is owned by the grid
// and valid until the next rebuild.
func (g *FluidGrid) Query(cx, cy int) []int {
	return g.cells[CellKey(cx, cy)]
}

// OccupiedCells returns the number of non-empty cells.
func (g *FluidGrid) OccupiedCells() int {
	return len(g.used)
}

// ForEachPair calls fn once for every unordered candidate pair (i, j) with j > i
// whose cells are adjacent. Each particle's cell is taken from its current
// position, so passes that move particles see their updated neighbourhood.
// Candidates still need a distance check against the interaction radius.
func (g *FluidGrid) ForEachPair(particles []components.Particle, fn func(i, j int)) {
	for i := range particles {
		cx, cy := g.CellOf(particles[i].X, particles[i].Y)
		for oy := -1; oy <= 1; oy++ {
			for ox := -1; ox <= 1; ox++ {
				for _, j := range g.cells[CellKey(cx+ox, cy+oy)] {
					if j <= i {
						continue
					}
					fn(i, j)
				}
			}
		}
	}
}
