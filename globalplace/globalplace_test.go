package globalplace

import (
	"context"
	"fmt"
	"testing"

	"github.com/sarchlab/zplace/device"
	"github.com/sarchlab/zplace/netlist"
)

func newTestDevice(w, h int) *device.Device {
	return device.Builder{}.WithSize(w, h).WithMargin(1).WithClbType('c').Build()
}

func sampleClusteredNetlist() (netlist.Netlist, map[netlist.BlockId]int, map[int][]netlist.BlockId) {
	nl := netlist.New()
	nl.Nets["n0"] = netlist.Net{ID: "n0", Pins: []netlist.Pin{
		{Block: "p0", Port: "out"}, {Block: "p1", Port: "in"},
	}}
	nl.Nets["n1"] = netlist.Net{ID: "n1", Pins: []netlist.Pin{
		{Block: "p1", Port: "out"}, {Block: "p2", Port: "in"},
	}}
	clusterOf := map[netlist.BlockId]int{"p0": 0, "p1": 0, "p2": 1}
	clusters := map[int][]netlist.BlockId{0: {"p0", "p1"}, 1: {"p2"}}
	return nl, clusterOf, clusters
}

func TestPlaceProducesDisjointClusterCells(t *testing.T) {
	dev := newTestDevice(20, 20)
	nl, clusterOf, clusters := sampleClusteredNetlist()

	res, err := Place(context.Background(), nl, dev, clusterOf, clusters, netlist.FixedPositions{}, Options{Seed: 7, Steps: 50})
	if err != nil {
		t.Fatalf("Place returned error: %v", err)
	}

	seen := make(map[string]bool)
	for id, cells := range res.ClusterCells {
		if len(cells) != len(clusters[id]) {
			t.Errorf("cluster %d: got %d cells, want %d", id, len(cells), len(clusters[id]))
		}
		for _, c := range cells {
			key := fmt.Sprintf("%d,%d", c.X, c.Y)
			if seen[key] {
				t.Errorf("cell %v claimed by more than one cluster", c)
			}
			seen[key] = true
			if !dev.IsCellLegal(c, dev.ClbType()) {
				t.Errorf("cell %v is not legal", c)
			}
		}
	}
}

func TestPlaceClusterCapacityOnTinyDevice(t *testing.T) {
	dev := newTestDevice(3, 3)
	nl, clusterOf, clusters := sampleClusteredNetlist()
	clusters[0] = append(clusters[0], "p3", "p4", "p5", "p6", "p7")
	clusterOf["p3"], clusterOf["p4"], clusterOf["p5"], clusterOf["p6"], clusterOf["p7"] = 0, 0, 0, 0, 0

	_, err := Place(context.Background(), nl, dev, clusterOf, clusters, netlist.FixedPositions{}, Options{Seed: 1, Steps: 10})
	if err == nil {
		t.Fatal("expected ClusterCapacity error on an over-committed tiny device")
	}
}
