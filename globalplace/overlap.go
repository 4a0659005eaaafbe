package globalplace

import (
	"sort"

	"github.com/sarchlab/zplace/device"
	"github.com/sarchlab/zplace/errs"
	"github.com/sarchlab/zplace/geometry"
)

// resolveOverlaps claims id's cells in the given priority order: cells
// already claimed by an earlier (higher-priority) cluster are relocated
// into id's exterior set, retrying up to maxOverlapRetries times before
// falling back to findSpace (§4.7 step 2).
func resolveOverlaps(dev device.Legalizer, id int, cells map[int]map[geometry.Position]bool, claimed map[geometry.Position]int, center geometry.Position) error {
	set := cells[id]
	conflicts := make([]geometry.Position, 0)
	for p := range set {
		if owner, ok := claimed[p]; ok && owner != id {
			conflicts = append(conflicts, p)
		}
	}
	sort.Slice(conflicts, func(i, j int) bool {
		return geometry.ManhattanDist(center, conflicts[i]) < geometry.ManhattanDist(center, conflicts[j])
	})

	for _, conflict := range conflicts {
		delete(set, conflict)
		replaced := false
		for attempt := 0; attempt < maxOverlapRetries; attempt++ {
			repl := nearestExteriorCell(dev, set, claimed, center)
			if repl == nil {
				continue
			}
			set[*repl] = true
			claimed[*repl] = id
			replaced = true
			break
		}
		if !replaced {
			repl, err := findSpace(dev, claimed, center)
			if err != nil {
				return err
			}
			set[repl] = true
			claimed[repl] = id
		}
	}

	for p := range set {
		claimed[p] = id
	}
	return nil
}

// exteriorOf returns cells adjacent by at most Manhattan distance 1 to
// footprint that are free (unclaimed) and legal for the device's clb
// type, sorted by ascending distance to center.
func exteriorOf(dev device.Legalizer, footprint map[geometry.Position]bool, claimed map[geometry.Position]int, center geometry.Position) []geometry.Position {
	seen := make(map[geometry.Position]bool)
	out := make([]geometry.Position, 0)
	for p := range footprint {
		for _, d := range []geometry.Position{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}} {
			cand := geometry.Position{X: p.X + d.X, Y: p.Y + d.Y}
			if seen[cand] || footprint[cand] {
				continue
			}
			seen[cand] = true
			if _, ok := claimed[cand]; ok {
				continue
			}
			if !dev.IsCellLegal(cand, dev.ClbType()) {
				continue
			}
			out = append(out, cand)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := geometry.ManhattanDist(center, out[i]), geometry.ManhattanDist(center, out[j])
		if di != dj {
			return di < dj
		}
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

func nearestExteriorCell(dev device.Legalizer, footprint map[geometry.Position]bool, claimed map[geometry.Position]int, center geometry.Position) *geometry.Position {
	ext := exteriorOf(dev, footprint, claimed, center)
	if len(ext) == 0 {
		return nil
	}
	return &ext[0]
}

// findSpace scans the device from bottom-right upward for any free,
// legal cell, the §4.7 step-2 fallback when exterior search is
// exhausted. A device with no free legal cell left is a capacity
// failure, not a silent collision onto center — callers have already
// passed checkDeviceCapacity by this point, so exhaustion here means
// squeeze's own fill/claim bookkeeping left fewer free cells than the
// device actually has, which is this package's bug to surface, not
// paper over.
func findSpace(dev device.Legalizer, claimed map[geometry.Position]int, center geometry.Position) (geometry.Position, error) {
	w, h := dev.Size()
	m := dev.Margin()
	for y := h - 1 - m; y >= m; y-- {
		for x := w - 1 - m; x >= m; x-- {
			p := geometry.Position{X: x, Y: y}
			if _, ok := claimed[p]; ok {
				continue
			}
			if dev.IsCellLegal(p, dev.ClbType()) {
				return p, nil
			}
		}
	}
	return geometry.Position{}, errs.New(errs.Internal, "overlap resolution exhausted every free legal cell near %v", center)
}

// compact runs one pass of §4.7 step 3 for a single cluster: swap up to
// maxCompactionSwaps (exterior, own) pairs where the exterior cell is
// strictly closer to the device center.
func compact(dev device.Legalizer, id int, cells map[int]map[geometry.Position]bool, claimed map[geometry.Position]int, center geometry.Position) {
	set := cells[id]
	ext := exteriorOf(dev, set, claimed, center)
	own := sortedCells(set)
	sort.Slice(own, func(i, j int) bool {
		return geometry.ManhattanDist(center, own[i]) > geometry.ManhattanDist(center, own[j])
	})

	pairs := len(ext)
	if len(own) < pairs {
		pairs = len(own)
	}
	if pairs > maxCompactionSwaps {
		pairs = maxCompactionSwaps
	}
	for i := 0; i < pairs; i++ {
		if geometry.ManhattanDist(center, ext[i]) >= geometry.ManhattanDist(center, own[i]) {
			continue
		}
		delete(set, own[i])
		delete(claimed, own[i])
		set[ext[i]] = true
		claimed[ext[i]] = id
	}
}
