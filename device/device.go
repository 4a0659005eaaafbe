// Package device defines the target CGRA/FPGA grid: a 2D array of typed
// cells plus the legality and register-folding rules the placer consults.
// Grounded on the teacher's cgra.Device/Tile split (github.com/sarchlab/
// zeonica/cgra), generalized from a simulated tile mesh to a placement
// grid of typed cells.
package device

import (
	"fmt"

	"github.com/sarchlab/zplace/geometry"
	"github.com/sarchlab/zplace/netlist"
)

// CellType is a one-character type tag, matching netlist.BlockId's tag
// alphabet ('i', 'm', 'p', 'r', 'u'), or 0 for an unusable cell.
type CellType byte

// Empty reports whether the cell carries no usable type.
func (c CellType) Empty() bool { return c == 0 }

func (c CellType) String() string {
	if c.Empty() {
		return "<empty>"
	}
	return string(c)
}

// FoldRule decides whether a register pin may share a cell with the PE
// whose output feeds it, sourced from device metadata rather than a
// hardcoded port-name check (Design Note c).
type FoldRule func(srcPort, dstPort netlist.Port) bool

// DefaultFoldRule implements the CGRA convention used throughout the
// retrieved benchmarks: a register folds onto the PE driving its "in" (or
// "reg") pin from that PE's "out" pin.
func DefaultFoldRule(srcPort, dstPort netlist.Port) bool {
	return srcPort == "out" && (dstPort == "in" || dstPort == "reg")
}

// Device is the 2D grid of typed cells plus the parameters and
// predicates every placement phase consults. Device is immutable once
// built; no placement phase mutates it.
type Device struct {
	width, height int
	margin        int
	clbType       CellType
	layout        [][]CellType
	foldRule      FoldRule
}

// Builder constructs a Device, following the teacher's builder-struct
// convention (config.DeviceBuilder).
type Builder struct {
	width, height int
	margin        int
	clbType       CellType
	foldRule      FoldRule
}

// WithSize sets the grid dimensions.
func (b Builder) WithSize(width, height int) Builder {
	b.width, b.height = width, height
	return b
}

// WithMargin sets the unusable border width on every edge.
func (b Builder) WithMargin(margin int) Builder {
	b.margin = margin
	return b
}

// WithClbType sets the cell type treated as a generic reconfigurable
// logic block, usable by any block type when the cell's declared type
// does not match exactly.
func (b Builder) WithClbType(t CellType) Builder {
	b.clbType = t
	return b
}

// WithFoldRule overrides the register-folding predicate. Defaults to
// DefaultFoldRule.
func (b Builder) WithFoldRule(r FoldRule) Builder {
	b.foldRule = r
	return b
}

// Build materializes the Device with an all-clb layout; callers set
// individual cell types with SetCellType afterward.
func (b Builder) Build() *Device {
	if b.foldRule == nil {
		b.foldRule = DefaultFoldRule
	}
	layout := make([][]CellType, b.height)
	for y := range layout {
		layout[y] = make([]CellType, b.width)
		for x := range layout[y] {
			layout[y][x] = b.clbType
		}
	}
	return &Device{
		width:    b.width,
		height:   b.height,
		margin:   b.margin,
		clbType:  b.clbType,
		layout:   layout,
		foldRule: b.foldRule,
	}
}

// Size returns the grid dimensions.
func (d *Device) Size() (width, height int) { return d.width, d.height }

// Margin returns the unusable border width.
func (d *Device) Margin() int { return d.margin }

// ClbType returns the generic reconfigurable cell type.
func (d *Device) ClbType() CellType { return d.clbType }

// CellTypeAt returns the declared type of the cell at p, or the zero
// value if p is out of bounds.
func (d *Device) CellTypeAt(p geometry.Position) CellType {
	if !d.InBounds(p) {
		return 0
	}
	return d.layout[p.Y][p.X]
}

// SetCellType declares the type of the cell at (x, y). Out-of-bounds
// calls are ignored.
func (d *Device) SetCellType(x, y int, t CellType) {
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return
	}
	d.layout[y][x] = t
}

// InBounds reports whether p addresses a cell on the grid at all
// (ignoring margin).
func (d *Device) InBounds(p geometry.Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < d.width && p.Y < d.height
}

// InMargin reports whether p lies within the usable interior
// [margin, dim-margin).
func (d *Device) InMargin(p geometry.Position) bool {
	m := d.margin
	return p.X >= m && p.X < d.width-m && p.Y >= m && p.Y < d.height-m
}

// IsCellLegal reports whether a block of the given type may occupy p:
// p must be on the grid, and the cell's declared type must either match
// requiredType exactly or be the device's clb type (which accepts any
// block).
func (d *Device) IsCellLegal(p geometry.Position, requiredType CellType) bool {
	if !d.InBounds(p) {
		return false
	}
	ct := d.layout[p.Y][p.X]
	if ct.Empty() {
		return false
	}
	return ct == requiredType || ct == d.clbType
}

// IsFoldable reports whether a register whose dstPort pin is driven from
// a PE's srcPort pin may fold onto the cell that PE occupies.
func (d *Device) IsFoldable(srcPort, dstPort netlist.Port) bool {
	return d.foldRule(srcPort, dstPort)
}

// Legalizer is the narrow view of a Device that the placement phases
// need: legality and register-folding predicates, plus the bounds they
// operate within. Separated from the concrete Device so tests can mock
// it the way api/driver_internal_test.go mocks sim.Port.
type Legalizer interface {
	Size() (width, height int)
	Margin() int
	ClbType() CellType
	CellTypeAt(p geometry.Position) CellType
	IsCellLegal(p geometry.Position, requiredType CellType) bool
	IsFoldable(srcPort, dstPort netlist.Port) bool
}

var _ Legalizer = (*Device)(nil)

// String implements a small debug rendering of the grid's type layout.
func (d *Device) String() string {
	s := ""
	for y := d.height - 1; y >= 0; y-- {
		for x := 0; x < d.width; x++ {
			s += fmt.Sprintf("%s", d.layout[y][x])
		}
		s += "\n"
	}
	return s
}
