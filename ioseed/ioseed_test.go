package ioseed

import (
	"testing"

	"github.com/sarchlab/zplace/geometry"
	"github.com/sarchlab/zplace/netlist"
)

func TestSeedAssignsByDirection(t *testing.T) {
	nl := netlist.New()
	// i0 is the source of n0 => Input pad.
	nl.Nets["n0"] = netlist.Net{ID: "n0", Pins: []netlist.Pin{{Block: "i0", Port: "out"}, {Block: "p0", Port: "in"}}}
	// i1 is a sink on n1 => Output pad.
	nl.Nets["n1"] = netlist.Net{ID: "n1", Pins: []netlist.Pin{{Block: "p0", Port: "out"}, {Block: "i1", Port: "in"}}}

	ioCells := []geometry.Position{
		{X: 0, Y: 0}, {X: 1, Y: 0}, // input pool
		{X: 3, Y: 5}, {X: 3, Y: 1}, // output pool
	}

	positions, err := Seed(nl, ioCells, []netlist.BlockId{"i0", "i1"})
	if err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}
	if positions["i0"] != (geometry.Position{X: 0, Y: 0}) {
		t.Errorf("i0 = %v, want the smallest-x input cell", positions["i0"])
	}
	if positions["i1"] != (geometry.Position{X: 3, Y: 1}) {
		t.Errorf("i1 = %v, want the smallest-y output cell", positions["i1"])
	}
}

func TestSeedDeviceCapacityError(t *testing.T) {
	nl := netlist.New()
	nl.Nets["n0"] = netlist.Net{ID: "n0", Pins: []netlist.Pin{{Block: "i0", Port: "out"}, {Block: "p0", Port: "in"}}}
	nl.Nets["n1"] = netlist.Net{ID: "n1", Pins: []netlist.Pin{{Block: "p0", Port: "out"}, {Block: "i1", Port: "in"}}}

	ioCells := []geometry.Position{{X: 0, Y: 0}} // 1 cell total, 0 input-pool cells after half

	_, err := Seed(nl, ioCells, []netlist.BlockId{"i0", "i1"})
	if err == nil {
		t.Fatalf("expected an error when IO blocks outnumber IO cells")
	}
}
