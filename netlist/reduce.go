package netlist

// NoClusterKept tells Reduce to coarsen every non-fixed block to its
// cluster's pseudo-block, used by the global placer where even a block's
// own cluster is represented only by its centroid.
const NoClusterKept = -1

// Reduce implements the shared netlist-reduction rule (§4.10): every
// block that is not fixed and not a member of keepCluster is replaced by
// its owning cluster's pseudo-block; duplicate pins collapse; nets that
// became singletons are dropped.
//
// clusterOf maps every non-fixed, non-pseudo block to its ClusterId.
// Reduce is idempotent: reducing an already-reduced netlist with the same
// arguments returns the same netlist, because pseudo-block pins are left
// untouched.
func Reduce(nl Netlist, clusterOf map[BlockId]int, fixed FixedPositions, keepCluster int) Netlist {
	out := New()
	for _, id := range nl.SortedNetIds() {
		n := nl.Nets[id]
		seen := make(map[BlockId]bool, len(n.Pins))
		pins := make([]Pin, 0, len(n.Pins))
		for _, pin := range n.Pins {
			rb := substitute(pin.Block, clusterOf, fixed, keepCluster)
			if seen[rb] {
				continue
			}
			seen[rb] = true
			pins = append(pins, Pin{Block: rb, Port: pin.Port})
		}
		if len(pins) <= 1 {
			continue
		}
		out.Nets[id] = Net{ID: id, Pins: pins}
	}
	return out
}

func substitute(b BlockId, clusterOf map[BlockId]int, fixed FixedPositions, keepCluster int) BlockId {
	if _, isFixed := fixed[b]; isFixed {
		return b
	}
	if b.IsPseudo() {
		return b
	}
	if cid, ok := clusterOf[b]; ok {
		if cid == keepCluster {
			return b
		}
		return PseudoBlock(cid)
	}
	return b
}
