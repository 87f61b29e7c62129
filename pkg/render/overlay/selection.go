package overlay

import "github.com/placeviz/placeviz/pkg/placement"

// Selection holds at most one selected cell. It stores the cell's index into
// the design and never owns the cell; whoever replaces or shrinks the design
// must clear or re-resolve it.
type Selection struct {
	id  placement.CellID
	set bool
}

// Clear empties the selection.
func (s *Selection) Clear() { *s = Selection{} }

// Set selects id, replacing any previous selection.
func (s *Selection) Set(id placement.CellID) {
	s.id = id
	s.set = true
}

// Current returns the selected cell id, if any.
func (s *Selection) Current() (placement.CellID, bool) {
	if s == nil || !s.set {
		return 0, false
	}
	return s.id, true
}

// Resolve returns the selected cell in d, or nil when nothing is selected or
// the id no longer refers to a cell of d.
func (s *Selection) Resolve(d *placement.Design) *placement.Cell {
	id, ok := s.Current()
	if !ok || d == nil {
		return nil
	}
	return d.Cell(id)
}
