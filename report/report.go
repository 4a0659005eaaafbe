// Package report renders placement progress as tables, grounded on the
// teacher's core.PrintState use of go-pretty/v6/table for simulation
// state dumps.
package report

import (
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/zplace/netlist"
)

// PhaseHpwl is one row of the HPWL-by-phase table: the total HPWL
// observed immediately after a named phase completed.
type PhaseHpwl struct {
	Phase string
	Hpwl  int
}

// HpwlTable renders the HPWL progression across phases (G/W/K/GP/DP/R)
// as a table, the way PrintState renders register/buffer state.
func HpwlTable(rows []PhaseHpwl) string {
	t := table.NewWriter()
	t.SetTitle("HPWL by phase")
	t.AppendHeader(table.Row{"Phase", "HPWL"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.Phase, r.Hpwl})
	}
	return t.Render()
}

// ClusterOccupancy summarizes one cluster's cell usage.
type ClusterOccupancy struct {
	ClusterId int
	Blocks    int
	Cells     int
}

// ClusterOccupancyTable renders per-cluster block/cell counts, used to
// sanity-check squeeze's "each cluster has exactly |cluster| cells"
// post-condition at a glance.
func ClusterOccupancyTable(rows []ClusterOccupancy) string {
	t := table.NewWriter()
	t.SetTitle("Cluster occupancy")
	t.AppendHeader(table.Row{"Cluster", "Blocks", "Cells", "Balanced"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.ClusterId, r.Blocks, r.Cells, r.Blocks == r.Cells})
	}
	return t.Render()
}

// PlacementTable renders a Placement as a human-readable table, distinct
// from the canonical §6 text format (see the place package's WriteFile).
func PlacementTable(placement netlist.Positions) string {
	blocks := make([]netlist.BlockId, 0, len(placement))
	for b := range placement {
		blocks = append(blocks, b)
	}
	netlist.SortBlocks(blocks)

	t := table.NewWriter()
	t.SetTitle("Placement")
	t.AppendHeader(table.Row{"Block", "X", "Y"})
	for _, b := range blocks {
		p := placement[b]
		t.AppendRow(table.Row{string(b), p.X, p.Y})
	}
	return t.Render()
}

// Summary bundles the tables a caller typically wants after a run: the
// HPWL progression across phases, per-cluster occupancy, and the final
// placement itself.
type Summary struct {
	Hpwl      []PhaseHpwl
	Occupancy []ClusterOccupancy
	Placement netlist.Positions
}

// Render stitches a Summary's three tables into one human-readable run
// report, the way the teacher's sample mains dump simulation state
// before calling atexit.Exit.
func Render(s Summary) string {
	return HpwlTable(s.Hpwl) + "\n" + ClusterOccupancyTable(s.Occupancy) + "\n" + PlacementTable(s.Placement)
}
