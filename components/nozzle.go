package components

// Nozzle marks a pour nozzle entity. Its tip position is stored in a Position component.
type Nozzle struct {
	Name   string
	Color  Color
	Index  int
	Active bool
}
