// Package detailedplace implements the Detailed Placer (DP, §4.8):
// per cluster, a swap-based SA placement of that cluster's blocks onto
// its squeezed cells, with every other cluster represented by its
// centroid pseudo-block and every fixed block at its fixed position.
package detailedplace

import (
	"context"
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"github.com/sarchlab/zplace/anneal"
	"github.com/sarchlab/zplace/device"
	"github.com/sarchlab/zplace/errs"
	"github.com/sarchlab/zplace/geometry"
	"github.com/sarchlab/zplace/netlist"
	"github.com/sarchlab/zplace/pool"
	"github.com/sarchlab/zplace/seedmix"
)

// Options configures detailed placement.
type Options struct {
	FoldReg    bool
	CalibrateN int
	Steps      int
	Seed       uint64
	Deadline   time.Time
	Workers    int
}

func (o Options) withDefaults() Options {
	if o.CalibrateN <= 0 {
		o.CalibrateN = 30
	}
	if o.Steps <= 0 {
		o.Steps = 4000
	}
	if o.Workers <= 0 {
		o.Workers = 1
	}
	return o
}

// Place runs DP independently for every cluster on pool.Run's worker
// pool (§5: "one task per cluster"), and merges the resulting per-block
// positions into a single netlist.Positions. With FoldReg set, a
// register whose driving PE was placed in another cluster is then moved
// onto that PE's position. The returned fold map (register -> driving
// PE, aggregated across every cluster, including those cross-cluster
// pairs) lets R
// keep folded pairs locked together instead of re-resolving them
// independently (§4.8/§4.9 boundary).
func Place(ctx context.Context, nl netlist.Netlist, dev device.Legalizer, clusterOf map[netlist.BlockId]int, clusters map[int][]netlist.BlockId, clusterCells map[int][]geometry.Position, centroids netlist.Positions, fixed netlist.FixedPositions, opts Options) (netlist.Positions, map[netlist.BlockId]netlist.BlockId, error) {
	opts = opts.withDefaults()

	ids := make([]int, 0, len(clusters))
	for id := range clusters {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	type clusterResult struct {
		id   int
		pos  netlist.Positions
		fold map[netlist.BlockId]netlist.BlockId
	}

	results, err := pool.Run(ctx, len(ids), opts.Workers, func(taskCtx context.Context, i int) (clusterResult, error) {
		id := ids[i]
		rng := rand.New(rand.NewSource(seedmix.Seed(opts.Seed, i)))
		pos, fold, err := placeOne(taskCtx, nl, dev, id, clusterOf, clusters[id], clusterCells[id], centroids, fixed, rng, opts)
		if err != nil {
			return clusterResult{}, err
		}
		return clusterResult{id: id, pos: pos, fold: fold}, nil
	})
	if err != nil {
		return nil, nil, err
	}

	merged := make(netlist.Positions)
	mergedFold := make(map[netlist.BlockId]netlist.BlockId)
	for _, r := range results {
		for b, p := range r.pos {
			merged[b] = p
		}
		for reg, pe := range r.fold {
			mergedFold[reg] = pe
		}
	}
	// Fold pairs whose register and PE fell into different clusters.
	if opts.FoldReg {
		clustered := make(map[netlist.BlockId]bool, len(clusterOf))
		for b := range clusterOf {
			clustered[b] = true
		}
		for reg, pe := range foldMap(nl, dev, clustered) {
			if _, done := mergedFold[reg]; !done {
				if p, ok := merged[pe]; ok {
					merged[reg], mergedFold[reg] = p, pe
				}
			}
		}
	}
	slog.Info("detailedplace: complete", "clusters", len(ids))
	return merged, mergedFold, nil
}

func placeOne(ctx context.Context, nl netlist.Netlist, dev device.Legalizer, id int, clusterOf map[netlist.BlockId]int, blocks []netlist.BlockId, cells []geometry.Position, centroids netlist.Positions, fixed netlist.FixedPositions, rng *rand.Rand, opts Options) (netlist.Positions, map[netlist.BlockId]netlist.BlockId, error) {
	if len(blocks) != len(cells) {
		return nil, nil, errs.New(errs.Internal, "cluster %d has %d blocks but %d cells", id, len(blocks), len(cells))
	}

	sortedBlocks := make([]netlist.BlockId, len(blocks))
	copy(sortedBlocks, blocks)
	netlist.SortBlocks(sortedBlocks)

	sortedCells := make([]geometry.Position, len(cells))
	copy(sortedCells, cells)
	sort.Slice(sortedCells, func(i, j int) bool {
		if sortedCells[i].Y != sortedCells[j].Y {
			return sortedCells[i].Y < sortedCells[j].Y
		}
		return sortedCells[i].X < sortedCells[j].X
	})

	initial := make(map[netlist.BlockId]geometry.Position, len(sortedBlocks))
	for i, b := range sortedBlocks {
		initial[b] = sortedCells[i]
	}

	reduced := netlist.Reduce(nl, clusterOf, fixed, id)

	base := make(netlist.Positions, len(centroids)+len(fixed))
	for b, p := range centroids {
		base[b] = p
	}
	for b, p := range fixed {
		base[b] = p
	}

	inScope := make(map[netlist.BlockId]bool, len(sortedBlocks))
	for _, b := range sortedBlocks {
		inScope[b] = true
	}
	var fold map[netlist.BlockId]netlist.BlockId
	if opts.FoldReg {
		fold = foldMap(nl, dev, inScope)
	}

	a := newDPAnnealer(dev, reduced, sortedBlocks, initial, base, fold, opts.FoldReg)
	sched := anneal.Calibrate(a, rng, opts.CalibrateN, opts.Steps)
	if _, err := anneal.Run(ctx, a, sched, rng, opts.Deadline); err != nil {
		return nil, nil, err
	}

	return a.positions(), fold, nil
}
