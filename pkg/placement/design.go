package placement

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

var (
	// ErrInvalidName is returned by [Design.AddCell] and [Design.AddNet]
	// when the name is empty.
	ErrInvalidName = errors.New("name must not be empty")

	// ErrDuplicateCell is returned by [Design.AddCell] when a cell with the
	// same name already exists.
	ErrDuplicateCell = errors.New("duplicate cell name")

	// ErrDuplicateNet is returned by [Design.AddNet] when a net with the same
	// name already exists.
	ErrDuplicateNet = errors.New("duplicate net name")

	// ErrUnknownCell is returned when a cell id is out of range.
	ErrUnknownCell = errors.New("unknown cell")

	// ErrUnknownNet is returned when a net id is neither NoNet nor in range.
	ErrUnknownNet = errors.New("unknown net")

	// ErrInstanceWithoutHandle is returned when a KindInstance cell has no
	// Instance handle.
	ErrInstanceWithoutHandle = errors.New("instance cell requires an instance handle")

	// ErrFillerWithHandle is returned when a KindFiller cell carries an
	// Instance handle.
	ErrFillerWithHandle = errors.New("filler cell must not carry an instance handle")

	// ErrNegativeSize is returned when a cell has a negative width or height.
	ErrNegativeSize = errors.New("cell size must not be negative")
)

// Kind distinguishes real design instances from fillers.
type Kind int

const (
	// KindInstance is a placeable standard cell or macro backed by a design
	// instance.
	KindInstance Kind = iota
	// KindFiller is a synthetic cell the placer inserts to pad free space.
	KindFiller
)

// String returns "instance" or "filler".
func (k Kind) String() string {
	switch k {
	case KindInstance:
		return "instance"
	case KindFiller:
		return "filler"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind is the inverse of [Kind.String].
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "instance":
		return KindInstance, true
	case "filler":
		return KindFiller, true
	}
	return 0, false
}

// CellID, PinID and NetID index into a Design's cells, pins and nets.
type (
	CellID int
	PinID  int
	NetID  int
)

// NoNet marks a pin that belongs to no net.
const NoNet NetID = -1

// Instance is the external handle of an instance cell: the name the host
// design database knows it by and its library master.
type Instance struct {
	Name   string
	Master string
}

// Bin is one cell of the placer's density grid.
type Bin struct {
	Rect
	Density float64 // density ratio (occupied area / bin area)
	ForceX  float64 // electrostatic force, x component
	ForceY  float64 // electrostatic force, y component
}

// Force returns the bin's force as a vector.
func (b Bin) Force() r2.Vec { return r2.Vec{X: b.ForceX, Y: b.ForceY} }

// Cell is a placeable object ("gCell").
type Cell struct {
	Name   string
	Kind   Kind
	Center r2.Vec
	Width  float64
	Height float64
	// Inst is set for KindInstance cells only.
	Inst *Instance
	// Pins lists the cell's pins in insertion order. Filled by AddPin.
	Pins []PinID
}

// IsInstance reports whether the cell is backed by a design instance.
func (c Cell) IsInstance() bool { return c.Kind == KindInstance }

// IsFiller reports whether the cell is a filler.
func (c Cell) IsFiller() bool { return c.Kind == KindFiller }

// Bounds returns the cell's bounding box: center ± half width/height.
func (c Cell) Bounds() Rect { return RectAround(c.Center, c.Width, c.Height) }

// Pin is a connection point on a cell.
type Pin struct {
	Cell CellID
	Net  NetID // NoNet if unconnected
	Pos  r2.Vec
}

// HasNet reports whether the pin belongs to a net.
func (p Pin) HasNet() bool { return p.Net != NoNet }

// Net is a connectivity group of pins.
type Net struct {
	Name string
	Pins []PinID
}

// Design is a placement snapshot.
//
// The zero value is an empty design without a region. Design is not safe for
// concurrent mutation; readers may share it once building is complete.
type Design struct {
	region    *Rect
	bins      []Bin
	cells     []Cell
	pins      []Pin
	nets      []Net
	cellIndex map[string]CellID
	netIndex  map[string]NetID
}

// New creates an empty design. region may be nil when the core boundary is
// unknown.
func New(region *Rect) *Design {
	d := &Design{
		cellIndex: make(map[string]CellID),
		netIndex:  make(map[string]NetID),
	}
	if region != nil {
		r := region.Canon()
		d.region = &r
	}
	return d
}

// Region returns the core boundary and whether one is set.
func (d *Design) Region() (Rect, bool) {
	if d.region == nil {
		return Rect{}, false
	}
	return *d.region, true
}

// AddBin appends a bin to the density grid.
func (d *Design) AddBin(b Bin) {
	d.bins = append(d.bins, b)
}

// SetBins replaces the density grid, typically once per placer iteration.
func (d *Design) SetBins(bins []Bin) {
	d.bins = bins
}

// AddCell appends a cell and returns its id.
// The Pins field of c is ignored; pins are attached with AddPin.
func (d *Design) AddCell(c Cell) (CellID, error) {
	if c.Name == "" {
		return 0, ErrInvalidName
	}
	if _, exists := d.cellIndex[c.Name]; exists {
		return 0, fmt.Errorf("%w: %s", ErrDuplicateCell, c.Name)
	}
	if c.Width < 0 || c.Height < 0 {
		return 0, fmt.Errorf("%w: %s", ErrNegativeSize, c.Name)
	}
	switch c.Kind {
	case KindInstance:
		if c.Inst == nil {
			return 0, fmt.Errorf("%w: %s", ErrInstanceWithoutHandle, c.Name)
		}
	case KindFiller:
		if c.Inst != nil {
			return 0, fmt.Errorf("%w: %s", ErrFillerWithHandle, c.Name)
		}
	default:
		return 0, fmt.Errorf("cell %s: unknown kind %v", c.Name, c.Kind)
	}
	if d.cellIndex == nil {
		d.cellIndex = make(map[string]CellID)
	}
	c.Pins = nil
	id := CellID(len(d.cells))
	d.cells = append(d.cells, c)
	d.cellIndex[c.Name] = id
	return id, nil
}

// AddNet appends an empty net and returns its id.
func (d *Design) AddNet(name string) (NetID, error) {
	if name == "" {
		return 0, ErrInvalidName
	}
	if _, exists := d.netIndex[name]; exists {
		return 0, fmt.Errorf("%w: %s", ErrDuplicateNet, name)
	}
	if d.netIndex == nil {
		d.netIndex = make(map[string]NetID)
	}
	id := NetID(len(d.nets))
	d.nets = append(d.nets, Net{Name: name})
	d.netIndex[name] = id
	return id, nil
}

// AddPin attaches a pin at pos to cell and, unless net is NoNet, to net.
func (d *Design) AddPin(cell CellID, net NetID, pos r2.Vec) (PinID, error) {
	if !d.validCell(cell) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownCell, cell)
	}
	if net != NoNet && !d.validNet(net) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownNet, net)
	}
	id := PinID(len(d.pins))
	d.pins = append(d.pins, Pin{Cell: cell, Net: net, Pos: pos})
	d.cells[cell].Pins = append(d.cells[cell].Pins, id)
	if net != NoNet {
		d.nets[net].Pins = append(d.nets[net].Pins, id)
	}
	return id, nil
}

// MoveCell recenters a cell, shifting its pins by the same offset.
func (d *Design) MoveCell(id CellID, center r2.Vec) error {
	if !d.validCell(id) {
		return fmt.Errorf("%w: %d", ErrUnknownCell, id)
	}
	c := &d.cells[id]
	delta := r2.Sub(center, c.Center)
	c.Center = center
	for _, p := range c.Pins {
		d.pins[p].Pos = r2.Add(d.pins[p].Pos, delta)
	}
	return nil
}

// Bins returns the density grid in insertion order. Callers must not modify
// the returned slice.
func (d *Design) Bins() []Bin { return d.bins }

// Cells returns all cells in insertion order. Callers must not modify the
// returned slice.
func (d *Design) Cells() []Cell { return d.cells }

// Cell returns the cell with the given id, or nil if out of range.
func (d *Design) Cell(id CellID) *Cell {
	if !d.validCell(id) {
		return nil
	}
	return &d.cells[id]
}

// CellByName looks a cell up by name.
func (d *Design) CellByName(name string) (CellID, bool) {
	id, ok := d.cellIndex[name]
	return id, ok
}

// Pin returns the pin with the given id, or nil if out of range.
func (d *Design) Pin(id PinID) *Pin {
	if id < 0 || int(id) >= len(d.pins) {
		return nil
	}
	return &d.pins[id]
}

// Net returns the net with the given id, or nil if out of range.
func (d *Design) Net(id NetID) *Net {
	if !d.validNet(id) {
		return nil
	}
	return &d.nets[id]
}

// NetByName looks a net up by name.
func (d *Design) NetByName(name string) (NetID, bool) {
	id, ok := d.netIndex[name]
	return id, ok
}

// Nets returns all nets in insertion order.
func (d *Design) Nets() []Net { return d.nets }

// Pins returns all pins in insertion order.
func (d *Design) Pins() []Pin { return d.pins }

func (d *Design) BinCount() int  { return len(d.bins) }
func (d *Design) CellCount() int { return len(d.cells) }
func (d *Design) PinCount() int  { return len(d.pins) }
func (d *Design) NetCount() int  { return len(d.nets) }

// Validate checks cross references between cells, pins and nets. Designs
// built exclusively through the Add methods always validate; Validate guards
// snapshots assembled by other means.
func (d *Design) Validate() error {
	for i, p := range d.pins {
		if !d.validCell(p.Cell) {
			return fmt.Errorf("pin %d: %w: %d", i, ErrUnknownCell, p.Cell)
		}
		if p.Net != NoNet && !d.validNet(p.Net) {
			return fmt.Errorf("pin %d: %w: %d", i, ErrUnknownNet, p.Net)
		}
	}
	for ci, c := range d.cells {
		for _, p := range c.Pins {
			if pin := d.Pin(p); pin == nil || pin.Cell != CellID(ci) {
				return fmt.Errorf("cell %s: pin %d not owned by cell", c.Name, p)
			}
		}
	}
	for _, n := range d.nets {
		for _, p := range n.Pins {
			if d.Pin(p) == nil {
				return fmt.Errorf("net %s: unknown pin %d", n.Name, p)
			}
		}
	}
	return nil
}

func (d *Design) validCell(id CellID) bool { return id >= 0 && int(id) < len(d.cells) }
func (d *Design) validNet(id NetID) bool   { return id >= 0 && int(id) < len(d.nets) }
