package globalplace

import (
	"sort"

	"github.com/sarchlab/zplace/device"
	"github.com/sarchlab/zplace/errs"
	"github.com/sarchlab/zplace/geometry"
)

// maxOverlapRetries bounds the per-cluster retry loop in overlap
// resolution before falling back to find_space (§4.7 step 2).
const maxOverlapRetries = 5

// maxCompactionSwaps bounds swaps per cluster per compaction pass
// (§4.7 step 3).
const maxCompactionSwaps = 15

// squeeze materializes cluster_cells from anchors (§4.7): fill each
// cluster's footprint from its board-center-nearest corner, resolve
// cross-cluster overlaps, then compact toward the center for squeezeIter
// passes.
func squeeze(dev device.Legalizer, anchors map[int]geometry.Box, clusterSizes map[int]int, squeezeIter int) (map[int][]geometry.Position, error) {
	w, h := dev.Size()
	center := geometry.Position{X: w / 2, Y: h / 2}

	ids := sortedIds(clusterSizes)

	cells := make(map[int]map[geometry.Position]bool, len(ids))
	for _, id := range ids {
		corner := nearestCorner(anchors[id], center)
		filled, err := fillCells(dev, corner, clusterSizes[id])
		if err != nil {
			return nil, err
		}
		set := make(map[geometry.Position]bool, len(filled))
		for _, p := range filled {
			set[p] = true
		}
		cells[id] = set
	}

	claimed := make(map[geometry.Position]int)
	priority := byDistanceToCenter(ids, anchors, center)
	for _, id := range priority {
		if err := resolveOverlaps(dev, id, cells, claimed, center); err != nil {
			return nil, err
		}
	}

	for pass := 0; pass < squeezeIter; pass++ {
		for _, id := range ids {
			compact(dev, id, cells, claimed, center)
		}
	}

	out := make(map[int][]geometry.Position, len(ids))
	for _, id := range ids {
		out[id] = sortedCells(cells[id])
	}
	return out, nil
}

func nearestCorner(b geometry.Box, center geometry.Position) geometry.Position {
	corners := [4]geometry.Position{
		b.Anchor,
		{X: b.Anchor.X + b.Width - 1, Y: b.Anchor.Y},
		{X: b.Anchor.X, Y: b.Anchor.Y + b.Height - 1},
		{X: b.Anchor.X + b.Width - 1, Y: b.Anchor.Y + b.Height - 1},
	}
	best := corners[0]
	bestDist := geometry.ManhattanDist(center, best)
	for _, c := range corners[1:] {
		if d := geometry.ManhattanDist(center, c); d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

// fillCells implements the zig-zag Manhattan-distance fill from corner:
// it takes the n legal cells of the whole device interior nearest to
// corner (ties by y, then x), so the fill is not confined to the
// cluster's own box.
func fillCells(dev device.Legalizer, corner geometry.Position, n int) ([]geometry.Position, error) {
	if n == 0 {
		return nil, nil
	}
	candidates := geometry.SortedByDistanceTo(corner, interiorPositions(dev))
	out := make([]geometry.Position, 0, n)
	for _, p := range candidates {
		if len(out) == n {
			break
		}
		if dev.IsCellLegal(p, dev.ClbType()) {
			out = append(out, p)
		}
	}
	if len(out) < n {
		return nil, errs.New(errs.DeviceCapacity, "device has only %d legal cells for a cluster of %d blocks", len(out), n)
	}
	return out, nil
}

func interiorPositions(dev device.Legalizer) []geometry.Position {
	w, h := dev.Size()
	m := dev.Margin()
	out := make([]geometry.Position, 0, (w-2*m)*(h-2*m))
	for y := m; y < h-m; y++ {
		for x := m; x < w-m; x++ {
			out = append(out, geometry.Position{X: x, Y: y})
		}
	}
	return out
}

func byDistanceToCenter(ids []int, anchors map[int]geometry.Box, center geometry.Position) []int {
	out := make([]int, len(ids))
	copy(out, ids)
	sort.SliceStable(out, func(i, j int) bool {
		di := geometry.ManhattanDist(center, anchors[out[i]].Anchor)
		dj := geometry.ManhattanDist(center, anchors[out[j]].Anchor)
		return di < dj
	})
	return out
}

func sortedCells(set map[geometry.Position]bool) []geometry.Position {
	out := make([]geometry.Position, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}
