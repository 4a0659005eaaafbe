package detailedplace

import (
	"github.com/sarchlab/zplace/anneal"
	"github.com/sarchlab/zplace/device"
	"github.com/sarchlab/zplace/geometry"
	"github.com/sarchlab/zplace/netlist"
)

// dpAnnealer implements anneal.Annealer over a single cluster's
// block-to-cell bijection (§4.8). Other clusters' centroids and fixed
// blocks participate in cost only; they are never swap candidates.
type dpAnnealer struct {
	dev     device.Legalizer
	reduced netlist.Netlist
	blocks  []netlist.BlockId
	base    netlist.Positions // other-cluster pseudo-blocks + fixed
	fold    map[netlist.BlockId]netlist.BlockId
	assign  map[netlist.BlockId]geometry.Position
	foldReg bool

	lastA, lastB       netlist.BlockId
	lastPosA, lastPosB geometry.Position
	lastValid          bool
}

func newDPAnnealer(dev device.Legalizer, reduced netlist.Netlist, blocks []netlist.BlockId, initial map[netlist.BlockId]geometry.Position, base netlist.Positions, fold map[netlist.BlockId]netlist.BlockId, foldReg bool) *dpAnnealer {
	assign := make(map[netlist.BlockId]geometry.Position, len(initial))
	for b, p := range initial {
		assign[b] = p
	}
	return &dpAnnealer{
		dev: dev, reduced: reduced, blocks: blocks, base: base,
		fold: fold, assign: assign, foldReg: foldReg,
	}
}

// positions builds the cost-function view of this cluster: the shared
// base (other clusters' centroids and fixed blocks) overlaid with this
// cluster's current assignment, with folded registers reported at their
// PE's position per the register-folding invariant (§3).
func (a *dpAnnealer) positions() netlist.Positions {
	pos := make(netlist.Positions, len(a.base)+len(a.assign))
	for b, p := range a.base {
		pos[b] = p
	}
	for b, p := range a.assign {
		if a.foldReg {
			if pe, ok := a.fold[b]; ok {
				if pep, ok := a.assign[pe]; ok {
					pos[b] = pep
					continue
				}
			}
		}
		pos[b] = p
	}
	return pos
}

func (a *dpAnnealer) Energy() float64 {
	return float64(netlist.TotalHpwl(a.reduced, a.positions()))
}

// Move picks two blocks uniformly and swaps their cells if both
// resulting placements are legal (§4.8 "Move").
func (a *dpAnnealer) Move(rng anneal.Rand) (float64, bool) {
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

func (a *dpAnnealer) Undo() {
	if !a.lastValid {
		return
	}
	a.assign[a.lastA] = a.lastPosA
	a.assign[a.lastB] = a.lastPosB
	a.lastValid = false
}

func (a *dpAnnealer) Snapshot() anneal.Snapshot {
	snap := make(map[netlist.BlockId]geometry.Position, len(a.assign))
	for b, p := range a.assign {
		snap[b] = p
	}
	return snap
}

func (a *dpAnnealer) Restore(s anneal.Snapshot) {
	snap := s.(map[netlist.BlockId]geometry.Position)
	a.assign = make(map[netlist.BlockId]geometry.Position, len(snap))
	for b, p := range snap {
		a.assign[b] = p
	}
}

var _ anneal.Annealer = (*dpAnnealer)(nil)
