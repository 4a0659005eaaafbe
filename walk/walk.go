// Package walk implements the node2vec-style biased random walk engine
// (§4.4) over the bipartite net/block graph. It produces the ordered
// sequence of per-block walks the (external) embedding trainer consumes;
// this package never trains embeddings itself.
package walk

import (
	"context"
	"math/rand"

	"github.com/sarchlab/zplace/alias"
	"github.com/sarchlab/zplace/graph"
	"github.com/sarchlab/zplace/netlist"
	"github.com/sarchlab/zplace/pool"
)

// Params configures the walk engine.
type Params struct {
	P, Q       float64 // return and in-out parameters
	WalkLength int
	NumWalks   int
	Directed   bool // reserved: undirected graphs are symmetrized at build time regardless
	Workers    int
	Seed       uint64
}

// Generate runs NumWalks walks from every real (non-pseudo) block node
// and returns them ordered by task index, so the result is reproducible
// for a fixed seed independent of Workers.
func Generate(ctx context.Context, g *graph.Graph, nl netlist.Netlist, params Params) ([][]netlist.BlockId, error) {
	t := buildTables(g, params.P, params.Q)

	seeds := make([]graph.NodeId, 0)
	for _, b := range nl.Blocks() {
		if b.IsPseudo() {
			continue
		}
		node := graph.BlockNode(b)
		if g.Degree(node) == 0 {
			continue
		}
		for i := 0; i < params.NumWalks; i++ {
			seeds = append(seeds, node)
		}
	}

	if len(seeds) == 0 {
		return nil, nil
	}

	results, err := pool.Run(ctx, len(seeds), params.Workers, func(_ context.Context, idx int) ([]netlist.BlockId, error) {
		rng := rand.New(rand.NewSource(splitmix64Seed(params.Seed, idx)))
		return walkOne(t, seeds[idx], params.WalkLength, rng), nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// walkOne runs a single walk starting from start, returning the
// block-tagged nodes visited, in order, with net-node hops elided (the
// trainer's skip-gram model is defined over blocks only).
func walkOne(t *tables, start graph.NodeId, length int, rng *rand.Rand) []netlist.BlockId {
	path := []netlist.BlockId{}
	if start.IsBlockNode() {
		path = append(path, start.Block())
	}

	var prev graph.NodeId
	cur := start
	hasPrev := false

	for step := 1; step < length; step++ {
		if t.g.Degree(cur) == 0 {
			break
		}

		var next graph.NodeId
		if !hasPrev {
			table, ok := t.aliasNodes[cur]
			if !ok {
				break
			}
			neighbors := t.g.Neighbors(cur)
			next = neighbors[alias.Draw(table, rng)]
		} else {
			table, ok := t.aliasEdges[edgeKey{Src: prev, Dst: cur}]
			if !ok {
				break
			}
			neighbors := t.g.Neighbors(cur)
			next = neighbors[alias.Draw(table, rng)]
		}

		prev, cur, hasPrev = cur, next, true
		if cur.IsBlockNode() {
			path = append(path, cur.Block())
		}
	}

	return path
}
