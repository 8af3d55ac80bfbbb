package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/pour/components"
	"github.com/pthm-cable/pour/config"
)

// NozzleRack holds the selectable nozzles as ECS entities. Each nozzle has a
// Position (its tip) and a Nozzle component; exactly one is active.
type NozzleRack struct {
	world    *ecs.World
	mapper   *ecs.Map2[components.Position, components.Nozzle]
	filter   *ecs.Filter2[components.Position, components.Nozzle]
	entities []ecs.Entity
	active   int
}

// NewNozzleRack creates one entity per configured nozzle. The first is active.
func NewNozzleRack(cfgs []config.NozzleConfig) (*NozzleRack, error) {
	if len(cfgs) == 0 {
		return nil, fmt.Errorf("nozzle rack: no nozzles configured")
	}

	world := ecs.NewWorld()
	r := &NozzleRack{
		world:  world,
		mapper: ecs.NewMap2[components.Position, components.Nozzle](world),
		filter: ecs.NewFilter2[components.Position, components.Nozzle](world),
	}

	for i, nc := range cfgs {
		color, err := components.ParseHexColor(nc.Color)
		if err != nil {
			return nil, fmt.Errorf("nozzle %q: %w", nc.Name, err)
		}
		pos := components.Position{}
		noz := components.Nozzle{
			Name:   nc.Name,
			Color:  color,
			Index:  i,
			Active: i == 0,
		}
		r.entities = append(r.entities, r.mapper.NewEntity(&pos, &noz))
	}
	return r, nil
}

// Len returns the number of nozzles.
func (r *NozzleRack) Len() int { return len(r.entities) }

// ActiveIndex returns the index of the active nozzle.
func (r *NozzleRack) ActiveIndex() int { return r.active }

// Layout spreads the nozzle tips across the middle of the cup mouth, height
// above the rim.
func (r *NozzleRack) Layout(cup components.Cup, height float32) {
	n := float32(len(r.entities))
	query := r.filter.Query()
	for query.Next() {
		pos, noz := query.Get()
		offset := ((float32(noz.Index)+0.5)/n - 0.5) * cup.TopHalfInner
		pos.X = cup.CenterX + offset
		pos.Y = cup.TopY - height
	}
}

// Select makes nozzle i active. Out-of-range indices are ignored.
func (r *NozzleRack) Select(i int) bool {
	if i < 0 || i >= len(r.entities) {
		return false
	}
	query := r.filter.Query()
	for query.Next() {
		_, noz := query.Get()
		noz.Active = noz.Index == i
	}
	r.active = i
	return true
}

// Active returns the active nozzle and its tip.
func (r *NozzleRack) Active() (components.Nozzle, components.Vec2) {
	return r.At(r.active)
}

// At returns nozzle i and its tip.
func (r *NozzleRack) At(i int) (components.Nozzle, components.Vec2) {
	pos, noz := r.mapper.Get(r.entities[i])
	return *noz, components.Vec2{X: pos.X, Y: pos.Y}
}

// All returns the nozzles in index order.
func (r *NozzleRack) All() []components.Nozzle {
	out := make([]components.Nozzle, len(r.entities))
	for i := range r.entities {
		out[i], _ = r.At(i)
	}
	return out
}
