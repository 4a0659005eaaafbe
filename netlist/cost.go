package netlist

import "github.com/sarchlab/zplace/geometry"

// Hpwl returns the half-perimeter wirelength of a single net given a set
// of block positions. Blocks on the net that have no entry in positions
// are skipped (used when only some pseudo-blocks are resolved yet).
func Hpwl(n Net, positions Positions) int {
	pts := make([]geometry.Position, 0, len(n.Pins))
	for _, b := range n.Blocks() {
		if p, ok := positions[b]; ok {
			pts = append(pts, p)
		}
	}
	minX, minY, maxX, maxY, ok := geometry.BoundingBox(pts)
	if !ok {
		return 0
	}
	return (maxX - minX) + (maxY - minY)
}

// TotalHpwl sums Hpwl over every net in the netlist. Pseudo-block ids
// participate through positions exactly like real blocks, provided the
// caller has populated positions with their centroid.
func TotalHpwl(nl Netlist, positions Positions) int {
	total := 0
	for _, id := range nl.SortedNetIds() {
		total += Hpwl(nl.Nets[id], positions)
	}
	return total
}
