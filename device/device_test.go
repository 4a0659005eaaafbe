package device

import (
	"testing"

	"github.com/sarchlab/zplace/geometry"
)

func newTestDevice() *Device {
	d := Builder{}.WithSize(4, 4).WithMargin(0).WithClbType('c').Build()
	d.SetCellType(0, 1, 'i')
	return d
}

func TestIsCellLegalMatchesExactType(t *testing.T) {
	d := newTestDevice()
	if !d.IsCellLegal(geometry.Position{X: 0, Y: 1}, 'i') {
		t.Errorf("expected IO cell to accept an IO block")
	}
}

func TestIsCellLegalAcceptsClb(t *testing.T) {
	d := newTestDevice()
	if !d.IsCellLegal(geometry.Position{X: 2, Y: 2}, 'p') {
		t.Errorf("expected clb cell to accept a PE block")
	}
}

func TestIsCellLegalRejectsMismatch(t *testing.T) {
	d := Builder{}.WithSize(2, 2).WithClbType(0).Build()
	d.SetCellType(0, 0, 'p')
	if d.IsCellLegal(geometry.Position{X: 0, Y: 0}, 'm') {
		t.Errorf("expected PE-only cell to reject a memory block")
	}
}

func TestIsCellLegalOutOfBounds(t *testing.T) {
	d := newTestDevice()
	if d.IsCellLegal(geometry.Position{X: -1, Y: 0}, 'p') {
		t.Errorf("expected out-of-bounds position to be illegal")
	}
}

func TestInMargin(t *testing.T) {
	d := Builder{}.WithSize(6, 6).WithMargin(1).WithClbType('c').Build()
	if !d.InMargin(geometry.Position{X: 1, Y: 1}) {
		t.Errorf("expected (1,1) inside margin interior")
	}
	if d.InMargin(geometry.Position{X: 0, Y: 0}) {
		t.Errorf("expected (0,0) outside margin interior")
	}
}

func TestDefaultFoldRule(t *testing.T) {
	if !DefaultFoldRule("out", "in") {
		t.Errorf("expected out->in to be foldable")
	}
	if DefaultFoldRule("in", "out") {
		t.Errorf("expected in->out to not be foldable")
	}
}
