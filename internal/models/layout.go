package models

// WidgetPlacement is one widget's cell position and size on the grid.
type WidgetPlacement struct {
	ID string `json:"id"`
	X  int    `json:"x"`
	Y  int    `json:"y"`
	W  int    `json:"w"`
	H  int    `json:"h"`
}

// Bottom is the first free row below the placement.
func (p WidgetPlacement) Bottom() int {
	return p.Y + p.H
}

// Overlaps reports whether two placements share at least one grid cell.
func (p WidgetPlacement) Overlaps(o WidgetPlacement) bool {
	return p.X < o.X+o.W && o.X < p.X+p.W &&
		p.Y < o.Y+o.H && o.Y < p.Y+p.H
}

// LayoutDocument is the persisted unit, one per product. Items are value
// copies; the document is always replaced whole.
type LayoutDocument struct {
	Version   int               `json:"version"`
	Items     []WidgetPlacement `json:"items"`
	Timestamp int64             `json:"timestamp"` // epoch milliseconds
}

// ClonePlacements copies a placement slice, never returning nil.
func ClonePlacements(items []WidgetPlacement) []WidgetPlacement {
	out := make([]WidgetPlacement, len(items))
	copy(out, items)
	return out
}
