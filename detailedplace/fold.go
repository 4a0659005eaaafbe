package detailedplace

import (
	"github.com/sarchlab/zplace/device"
	"github.com/sarchlab/zplace/netlist"
)

// foldMap finds every (register, PE) pair eligible for register folding
// (§4.8, Open Question (c)): a register whose "in"/"reg" pin is driven
// directly by a PE's "out" pin on the same net, restricted to blocks
// in scope (this cluster's own real blocks). The legality of the pair is
// sourced entirely from dev.IsFoldable, never hardcoded here.
func foldMap(nl netlist.Netlist, dev device.Legalizer, inScope map[netlist.BlockId]bool) map[netlist.BlockId]netlist.BlockId {
	out := make(map[netlist.BlockId]netlist.BlockId)
	for _, id := range nl.SortedNetIds() {
		n := nl.Nets[id]
		for _, src := range n.Pins {
			if src.Block.Tag() != 'p' || !inScope[src.Block] {
				continue
			}
			for _, dst := range n.Pins {
				if dst.Block == src.Block {
					continue
				}
				if dst.Block.Tag() != 'r' || !inScope[dst.Block] {
					continue
				}
				if _, already := out[dst.Block]; already {
					continue
				}
				if dev.IsFoldable(src.Port, dst.Port) {
					out[dst.Block] = src.Block
				}
			}
		}
	}
	return out
}

func typeOf(b netlist.BlockId) device.CellType {
	return device.CellType(b.Tag())
}
