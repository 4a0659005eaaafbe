package place

import (
	"context"
	"testing"

	"github.com/sarchlab/zplace/device"
	"github.com/sarchlab/zplace/embedding"
	"github.com/sarchlab/zplace/errs"
	"github.com/sarchlab/zplace/geometry"
	"github.com/sarchlab/zplace/netlist"
	"github.com/sarchlab/zplace/report"
)

// hashTrainer is a deterministic stand-in for the external embedding
// trainer: every block gets a 2-dim vector derived from its id, stable
// across calls and distinct for distinct ids, enough to give k-means
// something to separate on without depending on a real skip-gram run.
func hashTrainer(_ context.Context, walks [][]netlist.BlockId, dim int) (embedding.Vectors, error) {
	seen := map[netlist.BlockId]bool{}
	for _, w := range walks {
		for _, b := range w {
			seen[b] = true
		}
	}
	out := make(embedding.Vectors, len(seen))
	for b := range seen {
		v := make([]float32, dim)
		h := 0
		for _, c := range string(b) {
			h = h*31 + int(c)
		}
		for d := range v {
			v[d] = float32((h+d)%97) / 97
		}
		out[b] = v
	}
	return out, nil
}

func newDevice(w, h int, margin int) *device.Device {
	return device.Builder{}.WithSize(w, h).WithMargin(margin).WithClbType('c').Build()
}

func TestPlaceTwoBlockOneNetAdjacent(t *testing.T) {
	dev := newDevice(2, 2, 0)
	nl := netlist.New()
	nl.Nets["n0"] = netlist.Net{ID: "n0", Pins: []netlist.Pin{
		{Block: "p0", Port: "out"}, {Block: "p1", Port: "in"},
	}}

	got, err := Place(context.Background(), nl, dev, netlist.FixedPositions{}, Options{Seed: 1, Trainer: hashTrainer})
	if err != nil {
		t.Fatalf("Place returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d placed blocks, want 2", len(got))
	}
	if d := geometry.ManhattanDist(got["p0"], got["p1"]); d != 1 {
		t.Errorf("HPWL-equivalent distance = %d, want 1 (adjacent)", d)
	}
}

func TestPlaceKeepsFixedIOInPlace(t *testing.T) {
	dev := newDevice(4, 4, 0)
	nl := netlist.New()
	nl.Nets["n0"] = netlist.Net{ID: "n0", Pins: []netlist.Pin{
		{Block: "i0", Port: "out"},
		{Block: "p0", Port: "in"},
		{Block: "p1", Port: "in"},
		{Block: "p2", Port: "in"},
		{Block: "m0", Port: "in"},
	}}
	fixed := netlist.FixedPositions{"i0": {X: 0, Y: 1}}

	got, err := Place(context.Background(), nl, dev, fixed, Options{Seed: 3, Trainer: hashTrainer})
	if err != nil {
		t.Fatalf("Place returned error: %v", err)
	}
	if got["i0"] != (geometry.Position{X: 0, Y: 1}) {
		t.Errorf("fixed block i0 moved: got %v", got["i0"])
	}
}

func TestPlaceIsolatedBlocksWithNoNets(t *testing.T) {
	dev := newDevice(5, 5, 0)
	nl := netlist.New()
	for i := 0; i < 5; i++ {
		nl.Register(netlist.BlockId("p" + string(rune('0'+i))))
	}

	got, err := Place(context.Background(), nl, dev, netlist.FixedPositions{}, Options{Seed: 5, Trainer: hashTrainer})
	if err != nil {
		t.Fatalf("Place returned error: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("got %d placed blocks, want 5", len(got))
	}
	seen := map[geometry.Position]bool{}
	for b, p := range got {
		if seen[p] {
			t.Errorf("cell %v occupied by more than one block (block %s)", p, b)
		}
		seen[p] = true
	}
}

// TestPlaceFoldsRegisterThroughTheFullPipeline exercises §8 scenario 5
// end to end (G -> W -> K -> GP -> DP -> R): a register driven directly
// by a PE's output must still share that PE's cell after the refiner
// runs, not just after DP.
func TestPlaceFoldsRegisterThroughTheFullPipeline(t *testing.T) {
	dev := newDevice(4, 4, 0)
	nl := netlist.New()
	nl.Nets["n0"] = netlist.Net{ID: "n0", Pins: []netlist.Pin{
		{Block: "p0", Port: "out"}, {Block: "r0", Port: "in"},
	}}
	nl.Nets["n1"] = netlist.Net{ID: "n1", Pins: []netlist.Pin{
		{Block: "p0", Port: "in"}, {Block: "p1", Port: "out"},
	}}

	got, err := Place(context.Background(), nl, dev, netlist.FixedPositions{}, Options{Seed: 9, Trainer: hashTrainer, FoldReg: true})
	if err != nil {
		t.Fatalf("Place returned error: %v", err)
	}
	if got["r0"] != got["p0"] {
		t.Errorf("expected folded register to share its PE's final position, got r0=%v p0=%v", got["r0"], got["p0"])
	}
	if got["p1"] == got["p0"] {
		t.Errorf("p1 shares a cell with the folded pair: %v", got["p1"])
	}
}

func TestPlaceInvokesOnSummaryWithPhaseHpwlAndOccupancy(t *testing.T) {
	dev := newDevice(4, 4, 0)
	nl := netlist.New()
	nl.Nets["n0"] = netlist.Net{ID: "n0", Pins: []netlist.Pin{
		{Block: "p0", Port: "out"}, {Block: "p1", Port: "in"},
	}}

	var got report.Summary
	called := false
	opts := Options{Seed: 1, Trainer: hashTrainer, OnSummary: func(s report.Summary) {
		called = true
		got = s
	}}

	if _, err := Place(context.Background(), nl, dev, netlist.FixedPositions{}, opts); err != nil {
		t.Fatalf("Place returned error: %v", err)
	}
	if !called {
		t.Fatal("OnSummary was never invoked")
	}
	if len(got.Hpwl) != 2 || got.Hpwl[0].Phase != "DP" || got.Hpwl[1].Phase != "R" {
		t.Errorf("Hpwl rows = %v, want DP then R", got.Hpwl)
	}
	if len(got.Occupancy) == 0 {
		t.Error("Occupancy is empty, want at least one cluster")
	}
	if len(got.Placement) != 2 {
		t.Errorf("Placement has %d entries, want 2", len(got.Placement))
	}
}

func TestPlaceReportsDeviceCapacity(t *testing.T) {
	dev := newDevice(3, 3, 0) // 9 cells
	nl := netlist.New()
	for i := 0; i < 10; i++ {
		nl.Register(netlist.BlockId("p" + string(rune('0'+i))))
	}

	_, err := Place(context.Background(), nl, dev, netlist.FixedPositions{}, Options{Seed: 1})
	if err == nil {
		t.Fatal("expected a DeviceCapacity error for 10 blocks on 9 cells")
	}
	if !errs.Is(err, errs.DeviceCapacity) {
		t.Errorf("got %v, want a DeviceCapacity error", err)
	}
}

func TestPlaceRejectsNilDevice(t *testing.T) {
	nl := netlist.New()
	_, err := Place(context.Background(), nl, nil, netlist.FixedPositions{}, Options{})
	if !errs.Is(err, errs.InvalidInput) {
		t.Errorf("got %v, want InvalidInput", err)
	}
}

func TestPlaceDeterministicForFixedSeedAndWorkers(t *testing.T) {
	dev := newDevice(6, 6, 0)
	nl := netlist.New()
	nl.Nets["n0"] = netlist.Net{ID: "n0", Pins: []netlist.Pin{
		{Block: "p0", Port: "out"}, {Block: "p1", Port: "in"}, {Block: "p2", Port: "in"},
	}}
	nl.Nets["n1"] = netlist.Net{ID: "n1", Pins: []netlist.Pin{
		{Block: "p2", Port: "out"}, {Block: "p3", Port: "in"},
	}}

	opts := Options{Seed: 42, Workers: 4, Trainer: hashTrainer}

	first, err := Place(context.Background(), nl, dev, netlist.FixedPositions{}, opts)
	if err != nil {
		t.Fatalf("first Place returned error: %v", err)
	}
	second, err := Place(context.Background(), nl, dev, netlist.FixedPositions{}, opts)
	if err != nil {
		t.Fatalf("second Place returned error: %v", err)
	}

	if Serialize(first) != Serialize(second) {
		t.Errorf("placement is not deterministic for a fixed seed and worker count")
	}
}
