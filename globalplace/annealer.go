package globalplace

import (
	"github.com/sarchlab/zplace/anneal"
	"github.com/sarchlab/zplace/device"
	"github.com/sarchlab/zplace/geometry"
	"github.com/sarchlab/zplace/netlist"
)

// clusterAnnealer implements anneal.Annealer over cluster-box anchors
// (§4.7 SA move set). Cost is total_hpwl on the netlist reduced so every
// cluster collapses to its centroid pseudo-block (netlist.NoClusterKept).
type clusterAnnealer struct {
	dev         device.Legalizer
	sizes       map[int]int
	ids         []int
	anchors     map[int]geometry.Box
	clusterOf   map[netlist.BlockId]int
	clusters    map[int][]netlist.BlockId
	fixed       netlist.FixedPositions
	nl          netlist.Netlist
	reduced     netlist.Netlist
	placeFactor int

	// undo state for the last applied move
	lastKind  int // 0 = swap, 1 = jitter
	lastA     int
	lastB     int
	lastBoxA  geometry.Box
	lastBoxB  geometry.Box
	lastValid bool
}

const (
	moveSwap = iota
	moveJitter
)

var _ anneal.Annealer = (*clusterAnnealer)(nil)

func newClusterAnnealer(dev device.Legalizer, sizes map[int]int, anchors map[int]geometry.Box, clusterOf map[netlist.BlockId]int, clusters map[int][]netlist.BlockId, fixed netlist.FixedPositions, nl netlist.Netlist, placeFactor int) *clusterAnnealer {
	ids := sortedIds(sizes)
	return &clusterAnnealer{
		dev: dev, sizes: sizes, ids: ids, anchors: anchors,
		clusterOf: clusterOf, clusters: clusters, fixed: fixed,
		nl:          nl,
		reduced:     netlist.Reduce(nl, clusterOf, fixed, netlist.NoClusterKept),
		placeFactor: placeFactor,
	}
}

func (a *clusterAnnealer) centroids() netlist.Positions {
	pos := make(netlist.Positions, len(a.ids))
	for _, id := range a.ids {
		b := a.anchors[id]
		cells := make([]geometry.Position, 0, b.Width*b.Height)
		for dy := 0; dy < b.Height; dy++ {
			for dx := 0; dx < b.Width; dx++ {
				cells = append(cells, geometry.Position{X: b.Anchor.X + dx, Y: b.Anchor.Y + dy})
			}
		}
		pos[netlist.PseudoBlock(id)] = geometry.Centroid(cells)
	}
	for b, p := range a.fixed {
		pos[b] = p
	}
	return pos
}

func (a *clusterAnnealer) Energy() float64 {
	return float64(netlist.TotalHpwl(a.reduced, a.centroids()))
}

// Move picks one of the §4.7 moves with equal probability: swap two
// cluster anchors, or jitter one cluster's anchor by (dx, dy) in
// [-2, 2]^2. A picked move whose result is illegal is not applied, and
// no other move is tried in its place (ok is false).
func (a *clusterAnnealer) Move(rng anneal.Rand) (float64, bool) {
	if len(a.ids) < 1 {
		return 0, false
	}
	before := a.Energy()

	if len(a.ids) >= 2 && rng.Intn(2) == 0 {
		i := a.ids[rng.Intn(len(a.ids))]
		j := a.ids[rng.Intn(len(a.ids))]
		if i == j {
			return 0, false
		}
		if a.trySwap(i, j) {
			after := a.Energy()
			a.lastValid = true
			return after - before, true
		}
		return 0, false
	}

	id := a.ids[rng.Intn(len(a.ids))]
	dx := rng.Intn(5) - 2
	dy := rng.Intn(5) - 2
	if a.tryJitter(id, dx, dy) {
		after := a.Energy()
		a.lastValid = true
		return after - before, true
	}
	return 0, false
}

func (a *clusterAnnealer) trySwap(i, j int) bool {
	bi, bj := a.anchors[i], a.anchors[j]
	newBi := box(bj.Anchor, bi.Width)
	newBj := box(bi.Anchor, bj.Width)

	others := a.othersExcluding(i, j)
	if !legalAnchor(a.dev, newBi.Anchor, newBi.Width, a.sizes[i], a.placeFactor, others, i) {
		return false
	}
	others[i] = newBi
	if !legalAnchor(a.dev, newBj.Anchor, newBj.Width, a.sizes[j], a.placeFactor, others, j) {
		return false
	}

	a.lastKind = moveSwap
	a.lastA, a.lastB = i, j
	a.lastBoxA, a.lastBoxB = bi, bj
	a.anchors[i] = newBi
	a.anchors[j] = newBj
	return true
}

func (a *clusterAnnealer) tryJitter(id int, dx, dy int) bool {
	b := a.anchors[id]
	newAnchor := geometry.Position{X: b.Anchor.X + dx, Y: b.Anchor.Y + dy}
	others := a.othersExcluding(id, id)
	if !legalAnchor(a.dev, newAnchor, b.Width, a.sizes[id], a.placeFactor, others, id) {
		return false
	}
	a.lastKind = moveJitter
	a.lastA = id
	a.lastBoxA = b
	a.anchors[id] = box(newAnchor, b.Width)
	return true
}

func (a *clusterAnnealer) othersExcluding(i, j int) map[int]geometry.Box {
	out := make(map[int]geometry.Box, len(a.anchors))
	for id, b := range a.anchors {
		if id == i || id == j {
			continue
		}
		out[id] = b
	}
	return out
}

func (a *clusterAnnealer) Undo() {
	if !a.lastValid {
		return
	}
	switch a.lastKind {
	case moveSwap:
		a.anchors[a.lastA] = a.lastBoxA
		a.anchors[a.lastB] = a.lastBoxB
	case moveJitter:
		a.anchors[a.lastA] = a.lastBoxA
	}
	a.lastValid = false
}

func (a *clusterAnnealer) Snapshot() anneal.Snapshot {
	snap := make(map[int]geometry.Box, len(a.anchors))
	for id, b := range a.anchors {
		snap[id] = b
	}
	return snap
}

func (a *clusterAnnealer) Restore(s anneal.Snapshot) {
	snap := s.(map[int]geometry.Box)
	a.anchors = make(map[int]geometry.Box, len(snap))
	for id, b := range snap {
		a.anchors[id] = b
	}
}
