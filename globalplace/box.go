// Package globalplace implements the Global Placer (GP, §4.7): it assigns
// each cluster a bounding box on the device, anneals the box anchors to
// minimize inter-cluster HPWL, then squeezes each cluster down to concrete
// cells with overlap resolution and center-ward compaction.
package globalplace

import (
	"math"

	"github.com/sarchlab/zplace/device"
	"github.com/sarchlab/zplace/geometry"
)

// DefaultPlaceFactor is the GP overlap tolerance divisor (§6 Options).
const DefaultPlaceFactor = 6

// DefaultSqueezeIter is the number of compaction passes (§6 Options).
const DefaultSqueezeIter = 4

// side returns ceil(sqrt(n)), the square side GP uses to represent a
// cluster of n blocks before it is squeezed to concrete cells.
func side(n int) int {
	if n <= 0 {
		return 0
	}
	s := int(math.Sqrt(float64(n)))
	for s*s < n {
		s++
	}
	for s > 1 && (s-1)*(s-1) >= n {
		s--
	}
	return s
}

func box(anchor geometry.Position, s int) geometry.Box {
	return geometry.Box{Anchor: anchor, Width: s, Height: s}
}

// legalAnchor reports whether anchor is legal for a cluster of the given
// side against the other clusters' current boxes (§4.7): it must lie fully
// within the device's usable interior, and its pairwise overlap with any
// other cluster's box must not exceed size/placeFactor.
func legalAnchor(dev device.Legalizer, anchor geometry.Position, s, size, placeFactor int, others map[int]geometry.Box, self int) bool {
	w, h := dev.Size()
	m := dev.Margin()
	if anchor.X < m || anchor.Y < m || anchor.X+s > w-m || anchor.Y+s > h-m {
		return false
	}
	b := box(anchor, s)
	limit := size / placeFactor
	for id, ob := range others {
		if id == self {
			continue
		}
		if b.Overlap(ob) > limit {
			return false
		}
	}
	return true
}
