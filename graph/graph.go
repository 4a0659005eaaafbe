// Package graph builds the undirected bipartite graph (nets <-> blocks)
// that the random-walk engine walks over, via net-as-star expansion.
package graph

import (
	"sort"

	"github.com/sarchlab/zplace/netlist"
)

// NodeId is either a block id or a net id, disambiguated by the Node
// type it is stored under.
type NodeId string

// Graph is an undirected, unweighted adjacency list over block nodes and
// net nodes, with duplicate edges collapsed.
type Graph struct {
	adj map[NodeId]map[NodeId]bool
}

// Build constructs the bipartite star-expansion graph: one node per
// block, one node per net, and an edge between a net and every block on
// it.
func Build(nl netlist.Netlist) *Graph {
	g := &Graph{adj: make(map[NodeId]map[NodeId]bool)}
	for _, id := range nl.SortedNetIds() {
		n := nl.Nets[id]
		netNode := NodeId("net:" + string(id))
		for _, b := range n.Blocks() {
			blockNode := NodeId("block:" + string(b))
			g.addEdge(netNode, blockNode)
		}
	}
	return g
}

func (g *Graph) addEdge(a, b NodeId) {
	if a == b {
		return
	}
	g.ensure(a)
	g.ensure(b)
	g.adj[a][b] = true
	g.adj[b][a] = true
}

func (g *Graph) ensure(n NodeId) {
	if g.adj[n] == nil {
		g.adj[n] = make(map[NodeId]bool)
	}
}

// Nodes returns every node id, sorted for deterministic iteration.
func (g *Graph) Nodes() []NodeId {
	out := make([]NodeId, 0, len(g.adj))
	for n := range g.adj {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Neighbors returns n's neighbors, sorted for deterministic alias-table
// construction.
func (g *Graph) Neighbors(n NodeId) []NodeId {
	neigh := g.adj[n]
	out := make([]NodeId, 0, len(neigh))
	for m := range neigh {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// HasEdge reports whether a and b are directly connected.
func (g *Graph) HasEdge(a, b NodeId) bool {
	return g.adj[a][b]
}

// Degree returns n's degree.
func (g *Graph) Degree(n NodeId) int {
	return len(g.adj[n])
}

// BlockNode returns the node id for block b.
func BlockNode(b netlist.BlockId) NodeId { return NodeId("block:" + string(b)) }

// IsBlockNode reports whether n denotes a block (rather than a net).
func (n NodeId) IsBlockNode() bool {
	return len(n) >= 6 && n[:6] == "block:"
}

// Block extracts the block id from a block node; callers must check
// IsBlockNode first.
func (n NodeId) Block() netlist.BlockId {
	return netlist.BlockId(n[6:])
}
