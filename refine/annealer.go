package refine

import (
	"github.com/sarchlab/zplace/anneal"
	"github.com/sarchlab/zplace/device"
	"github.com/sarchlab/zplace/geometry"
	"github.com/sarchlab/zplace/netlist"
)

// refineAnnealer implements anneal.Annealer over the entire non-fixed
// placement (§4.9): every free block is a swap candidate, cost is
// total_hpwl on the full (unreduced) netlist. A block folded onto a PE
// by DP (§4.8) is excluded from the swap candidates entirely — it is
// never an independent cell owner, so it can never be unfolded by an
// R move; its reported position always tracks its PE's.
type refineAnnealer struct {
	dev    device.Legalizer
	nl     netlist.Netlist
	fixed  netlist.FixedPositions
	fold   map[netlist.BlockId]netlist.BlockId
	blocks []netlist.BlockId
	assign map[netlist.BlockId]geometry.Position

	lastA, lastB       netlist.BlockId
	lastPosA, lastPosB geometry.Position
	lastValid          bool
}

func newRefineAnnealer(dev device.Legalizer, nl netlist.Netlist, fixed netlist.FixedPositions, blocks []netlist.BlockId, initial netlist.Positions, fold map[netlist.BlockId]netlist.BlockId) *refineAnnealer {
	swappable := make([]netlist.BlockId, 0, len(blocks))
	for _, b := range blocks {
		if _, folded := fold[b]; folded {
			continue
		}
		swappable = append(swappable, b)
	}
	assign := make(map[netlist.BlockId]geometry.Position, len(swappable))
	for _, b := range swappable {
		assign[b] = initial[b]
	}
	return &refineAnnealer{dev: dev, nl: nl, fixed: fixed, fold: fold, blocks: swappable, assign: assign}
}

func (a *refineAnnealer) positions() netlist.Positions {
	pos := make(netlist.Positions, len(a.fixed)+len(a.assign)+len(a.fold))
	for b, p := range a.fixed {
		pos[b] = p
	}
	for b, p := range a.assign {
		pos[b] = p
	}
	for reg, pe := range a.fold {
		if p, ok := pos[pe]; ok {
			pos[reg] = p
		}
	}
	return pos
}

func (a *refineAnnealer) Energy() float64 {
	return float64(netlist.TotalHpwl(a.nl, a.positions()))
}

func typeOf(b netlist.BlockId) device.CellType {
	return device.CellType(b.Tag())
}

func (a *refineAnnealer) Move(rng anneal.Rand) (float64, bool) {
	if len(a.blocks) < 2 {
		return 0, false
	}
	before := a.Energy()

	i := rng.Intn(len(a.blocks))
	j := rng.Intn(len(a.blocks))
	if i == j {
		return 0, false
	}
	x, y := a.blocks[i], a.blocks[j]
	px, py := a.assign[x], a.assign[y]

	if !a.dev.IsCellLegal(py, typeOf(x)) || !a.dev.IsCellLegal(px, typeOf(y)) {
		return 0, false
	}

	a.lastA, a.lastB = x, y
	a.lastPosA, a.lastPosB = px, py
	a.assign[x], a.assign[y] = py, px
	a.lastValid = true

	after := a.Energy()
	return after - before, true
}

func (a *refineAnnealer) Undo() {
	if !a.lastValid {
		return
	}
	a.assign[a.lastA] = a.lastPosA
	a.assign[a.lastB] = a.lastPosB
	a.lastValid = false
}

func (a *refineAnnealer) Snapshot() anneal.Snapshot {
	snap := make(map[netlist.BlockId]geometry.Position, len(a.assign))
	for b, p := range a.assign {
		snap[b] = p
	}
	return snap
}

func (a *refineAnnealer) Restore(s anneal.Snapshot) {
	snap := s.(map[netlist.BlockId]geometry.Position)
	a.assign = make(map[netlist.BlockId]geometry.Position, len(snap))
	for b, p := range snap {
		a.assign[b] = p
	}
}

var _ anneal.Annealer = (*refineAnnealer)(nil)
