package walk

import (
	"github.com/sarchlab/zplace/alias"
	"github.com/sarchlab/zplace/graph"
)

// edgeKey addresses a directed edge (src -> dst) for alias_edges lookup.
type edgeKey struct {
	Src, Dst graph.NodeId
}

// tables holds the precomputed alias tables the walk engine reads from
// every worker; built once up front and never mutated, so concurrent
// readers need no synchronization.
type tables struct {
	g          *graph.Graph
	aliasNodes map[graph.NodeId]alias.Table
	aliasEdges map[edgeKey]alias.Table
}

// buildTables precomputes alias_nodes (uniform first-step bias) and
// alias_edges (node2vec-biased second-step weights) exactly as §4.4
// specifies.
func buildTables(g *graph.Graph, p, q float64) *tables {
	t := &tables{
		g:          g,
		aliasNodes: make(map[graph.NodeId]alias.Table),
		aliasEdges: make(map[edgeKey]alias.Table),
	}

	for _, n := range g.Nodes() {
		deg := g.Degree(n)
		if deg == 0 {
			continue
		}
		weights := make([]float64, deg)
		w := 1.0 / float64(deg)
		for i := range weights {
			weights[i] = w
		}
		t.aliasNodes[n] = alias.Setup(weights)
	}

	for _, src := range g.Nodes() {
		for _, dst := range g.Neighbors(src) {
			neighbors := g.Neighbors(dst)
			if len(neighbors) == 0 {
				continue
			}
			weights := make([]float64, len(neighbors))
			for i, w := range neighbors {
				switch {
				case w == src:
					weights[i] = 1.0 / p
				case g.HasEdge(w, src):
					weights[i] = 1.0
				default:
					weights[i] = 1.0 / q
				}
			}
			t.aliasEdges[edgeKey{Src: src, Dst: dst}] = alias.Setup(weights)
		}
	}

	return t
}
