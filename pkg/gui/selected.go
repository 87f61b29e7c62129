package gui

import (
	"fmt"

	"github.com/placeviz/placeviz/pkg/placement"
)

// SelectedKind classifies the outcome of a pick.
type SelectedKind int

const (
	// SelectedNone means nothing was hit, or the renderer declined the query.
	SelectedNone SelectedKind = iota
	// SelectedInstance is a hit on a design instance the host can resolve.
	SelectedInstance
	// SelectedInternal is a hit on an object that only exists inside the
	// placer (a filler); it has no external handle.
	SelectedInternal
)

func (k SelectedKind) String() string {
	switch k {
	case SelectedNone:
		return "none"
	case SelectedInstance:
		return "instance"
	case SelectedInternal:
		return "internal"
	default:
		return fmt.Sprintf("SelectedKind(%d)", int(k))
	}
}

// Selected is the result of a pick.
type Selected struct {
	Kind SelectedKind
	// Instance is the external handle; set only when Kind is SelectedInstance.
	Instance *placement.Instance
	// Cell is the picked cell; meaningful unless Kind is SelectedNone.
	Cell placement.CellID
}

// External reports whether the host can resolve the result to a design object.
func (s Selected) External() bool { return s.Kind == SelectedInstance && s.Instance != nil }

// Empty reports whether nothing was selected.
func (s Selected) Empty() bool { return s.Kind == SelectedNone }

func (s Selected) String() string {
	switch s.Kind {
	case SelectedInstance:
		if s.Instance != nil {
			return fmt.Sprintf("instance %s (%s)", s.Instance.Name, s.Instance.Master)
		}
		return "instance"
	case SelectedInternal:
		return fmt.Sprintf("internal cell #%d", s.Cell)
	default:
		return "nothing"
	}
}
