package globalplace

import (
	"math/rand"
	"sort"

	"github.com/sarchlab/zplace/device"
	"github.com/sarchlab/zplace/errs"
	"github.com/sarchlab/zplace/geometry"
)

// initialPack implements the left-to-right row packing with a random
// horizontal stride (§4.7 "Initial placement"): rows advance once x would
// cross the interior's right edge. A cluster that never finds a legal
// anchor (even on its own row) raises ClusterCapacity.
func initialPack(dev device.Legalizer, sizes map[int]int, order []int, rng *rand.Rand) (map[int]geometry.Box, error) {
	w, h := dev.Size()
	m := dev.Margin()

	anchors := make(map[int]geometry.Box, len(order))
	x, y := m, m
	rowHeight := 0

	for _, id := range order {
		n := sizes[id]
		s := side(n)
		if s == 0 {
			anchors[id] = box(geometry.Position{X: m, Y: m}, 0)
			continue
		}

		if x+s > w-m {
			x = m
			y += rowHeight + 1
			rowHeight = 0
		}
		if y+s > h-m {
			return nil, errs.ClusterCapacityErr(len(order))
		}

		anchor := geometry.Position{X: x, Y: y}
		if !legalAnchor(dev, anchor, s, n, DefaultPlaceFactor, anchors, id) {
			return nil, errs.ClusterCapacityErr(len(order))
		}
		anchors[id] = box(anchor, s)

		if s > rowHeight {
			rowHeight = s
		}
		stride := s + rng.Intn(3) // [s, s+3)
		x += stride
	}

	return anchors, nil
}

// sortedIds returns cluster ids in ascending order for deterministic
// iteration.
func sortedIds(sizes map[int]int) []int {
	ids := make([]int, 0, len(sizes))
	for id := range sizes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
