package refine

import (
	"context"
	"os"
	"testing"

	"github.com/sarchlab/zplace/device"
	"github.com/sarchlab/zplace/geometry"
	"github.com/sarchlab/zplace/netlist"
)

func newTestDevice() *device.Device {
	return device.Builder{}.WithSize(10, 10).WithMargin(1).WithClbType('c').Build()
}

func TestStepsFormula(t *testing.T) {
	if s := Steps(0); s != 0 {
		t.Errorf("Steps(0) = %d, want 0", s)
	}
	if s := Steps(10); s <= 0 {
		t.Errorf("Steps(10) = %d, want positive", s)
	}
}

func TestRunSkippedWhenTravisSet(t *testing.T) {
	os.Setenv("TRAVIS", "1")
	defer os.Unsetenv("TRAVIS")

	placement := netlist.Positions{"p0": {X: 2, Y: 2}}
	out, err := Run(context.Background(), netlist.New(), newTestDevice(), netlist.FixedPositions{}, placement, nil, Options{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if out["p0"] != placement["p0"] {
		t.Errorf("expected placement unchanged when TRAVIS is set")
	}
}

func TestRunKeepsFixedBlocksInPlace(t *testing.T) {
	os.Unsetenv("TRAVIS")
	dev := newTestDevice()
	nl := netlist.New()
	nl.Nets["n0"] = netlist.Net{ID: "n0", Pins: []netlist.Pin{
		{Block: "i0", Port: "out"}, {Block: "p0", Port: "in"},
	}}
	fixed := netlist.FixedPositions{"i0": {X: 1, Y: 1}}
	placement := netlist.Positions{"i0": {X: 1, Y: 1}, "p0": {X: 5, Y: 5}}

	out, err := Run(context.Background(), nl, dev, fixed, placement, nil, Options{Seed: 3, CalibrateN: 5})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if out["i0"] != (geometry.Position{X: 1, Y: 1}) {
		t.Errorf("fixed block moved: got %v", out["i0"])
	}
}

// TestRunKeepsFoldedRegisterOnItsPE reproduces the DP->R boundary bug:
// DP folds r0 onto p0 (both start at the same cell), and R must never
// treat r0 as an independent swap candidate that could land it
// somewhere else or let another block take over p0's cell out from
// under it.
func TestRunKeepsFoldedRegisterOnItsPE(t *testing.T) {
	os.Unsetenv("TRAVIS")
	dev := newTestDevice()
	nl := netlist.New()
	nl.Nets["n0"] = netlist.Net{ID: "n0", Pins: []netlist.Pin{
		{Block: "p0", Port: "out"}, {Block: "r0", Port: "in"},
	}}
	nl.Nets["n1"] = netlist.Net{ID: "n1", Pins: []netlist.Pin{
		{Block: "p0", Port: "in"}, {Block: "p1", Port: "out"},
	}}
	fold := map[netlist.BlockId]netlist.BlockId{"r0": "p0"}
	placement := netlist.Positions{
		"p0": {X: 5, Y: 5},
		"r0": {X: 5, Y: 5},
		"p1": {X: 2, Y: 2},
	}

	out, err := Run(context.Background(), nl, dev, netlist.FixedPositions{}, placement, fold, Options{Seed: 7, CalibrateN: 5})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if out["r0"] != out["p0"] {
		t.Errorf("refine broke the fold: r0=%v p0=%v", out["r0"], out["p0"])
	}
	if out["p1"] == out["p0"] {
		t.Errorf("p1 landed on the folded pair's cell: %v", out["p1"])
	}
}
