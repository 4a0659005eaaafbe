// Package netlist defines the block/net data model shared by every
// placement phase. A Netlist treats each Net as an ordered sequence of
// (BlockId, Port) pins; placement itself treats a net as an unordered set
// of blocks.
package netlist

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/sarchlab/zplace/geometry"
)

// BlockId is an opaque block identifier: a one-character type tag prefix
// ('i' IO, 'm' memory, 'p' PE, 'r' register, 'u' generic, 'x' cluster
// pseudo-block) followed by a unique numeric suffix.
type BlockId string

// Tag returns the block's type-tag character.
func (b BlockId) Tag() byte {
	if len(b) == 0 {
		return 0
	}
	return b[0]
}

// IsPseudo reports whether b denotes a cluster pseudo-block (x<k>).
func (b BlockId) IsPseudo() bool {
	return b.Tag() == 'x'
}

// Suffix returns the block's numeric suffix, used for sorted, reproducible
// output ordering.
func (b BlockId) Suffix() (int, error) {
	if len(b) < 2 {
		return 0, fmt.Errorf("netlist: block id %q has no numeric suffix", b)
	}
	return strconv.Atoi(string(b[1:]))
}

// PseudoBlock returns the pseudo-block id standing in for cluster c.
func PseudoBlock(c int) BlockId {
	return BlockId("x" + strconv.Itoa(c))
}

// Port names a pin on a net. Placement ignores ports except for
// register-folding legality.
type Port string

// Pin is one endpoint of a net.
type Pin struct {
	Block BlockId
	Port  Port
}

// NetId identifies a net within a Netlist.
type NetId string

// Net is an ordered sequence of pins; the first pin is the net's source.
type Net struct {
	ID   NetId
	Pins []Pin
}

// Blocks returns the distinct block ids on the net, in first-seen order.
func (n Net) Blocks() []BlockId {
	seen := make(map[BlockId]bool, len(n.Pins))
	out := make([]BlockId, 0, len(n.Pins))
	for _, p := range n.Pins {
		if seen[p.Block] {
			continue
		}
		seen[p.Block] = true
		out = append(out, p.Block)
	}
	return out
}

// Netlist maps net ids to nets, plus a disjoint block registry: blocks
// and nets are two id-indexed tables joined only by lookup (Design
// Note 9), never by back-pointers. The registry exists because a block
// with no net membership (an isolated PE) is still a real block that
// must be placed — it would otherwise be invisible to every phase that
// only walks Nets.
type Netlist struct {
	Nets     map[NetId]Net
	Registry map[BlockId]bool
}

// New returns an empty Netlist.
func New() Netlist {
	return Netlist{Nets: make(map[NetId]Net), Registry: make(map[BlockId]bool)}
}

// Register declares a block's existence independent of net membership.
// Blocks that appear on a net do not need to be registered separately;
// Blocks() already discovers them.
func (nl Netlist) Register(b BlockId) {
	nl.Registry[b] = true
}

// SortedNetIds returns net ids in the order they should be emitted:
// sorted by numeric suffix when the id has one, else lexically.
func (nl Netlist) SortedNetIds() []NetId {
	ids := make([]NetId, 0, len(nl.Nets))
	for id := range nl.Nets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		si, erri := netSuffix(ids[i])
		sj, errj := netSuffix(ids[j])
		if erri == nil && errj == nil && si != sj {
			return si < sj
		}
		return ids[i] < ids[j]
	})
	return ids
}

func netSuffix(id NetId) (int, error) {
	s := string(id)
	i := 0
	for i < len(s) && (s[i] < '0' || s[i] > '9') {
		i++
	}
	if i == len(s) {
		return 0, fmt.Errorf("netlist: net id %q has no numeric suffix", id)
	}
	return strconv.Atoi(s[i:])
}

// Blocks returns the distinct block ids in the netlist: every block on
// a net, unioned with the explicit Registry (so isolated blocks with no
// net membership are never lost), sorted by numeric suffix.
func (nl Netlist) Blocks() []BlockId {
	seen := make(map[BlockId]bool)
	out := make([]BlockId, 0)
	for _, id := range nl.SortedNetIds() {
		for _, b := range nl.Nets[id].Blocks() {
			if seen[b] {
				continue
			}
			seen[b] = true
			out = append(out, b)
		}
	}
	for b := range nl.Registry {
		if seen[b] {
			continue
		}
		seen[b] = true
		out = append(out, b)
	}
	SortBlocks(out)
	return out
}

// SortBlocks sorts block ids by numeric suffix, matching the §6 placement
// file ordering requirement, breaking ties (and anything with no numeric
// suffix) by the full id so the order never depends on the caller's
// input order — required for the determinism property (§8) since
// callers typically build the slice from map iteration.
func SortBlocks(blocks []BlockId) {
	sort.Slice(blocks, func(i, j int) bool {
		si, erri := blocks[i].Suffix()
		sj, errj := blocks[j].Suffix()
		if erri == nil && errj == nil && si != sj {
			return si < sj
		}
		return blocks[i] < blocks[j]
	})
}

// Positions maps blocks to grid positions; used both for FixedPositions
// and for the placement under construction.
type Positions map[BlockId]geometry.Position

// FixedPositions maps pre-placed blocks (typically IO pads) to the cell
// they must occupy. The core never moves these.
type FixedPositions map[BlockId]geometry.Position
