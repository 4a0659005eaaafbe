package globalplace

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/sarchlab/zplace/anneal"
	"github.com/sarchlab/zplace/device"
	"github.com/sarchlab/zplace/geometry"
	"github.com/sarchlab/zplace/netlist"
)

// Options configures the global placer; zero value selects the §6
// defaults.
type Options struct {
	PlaceFactor int
	SqueezeIter int
	Steps       int
	Seed        uint64
	Deadline    time.Time
}

func (o Options) withDefaults() Options {
	if o.PlaceFactor <= 0 {
		o.PlaceFactor = DefaultPlaceFactor
	}
	if o.SqueezeIter <= 0 {
		o.SqueezeIter = DefaultSqueezeIter
	}
	if o.Steps <= 0 {
		o.Steps = 2000
	}
	return o
}

// Result is GP's output: concrete per-cluster cells and the centroids
// used to cost them, consumed by the detailed placer.
type Result struct {
	ClusterCells map[int][]geometry.Position
	Centroids    netlist.Positions
}

// Place runs the global placer (§4.7): pack cluster boxes, anneal anchor
// positions to minimize inter-cluster HPWL, then squeeze to concrete
// cells.
func Place(ctx context.Context, nl netlist.Netlist, dev device.Legalizer, clusterOf map[netlist.BlockId]int, clusters map[int][]netlist.BlockId, fixed netlist.FixedPositions, opts Options) (Result, error) {
	opts = opts.withDefaults()
	sizes := make(map[int]int, len(clusters))
	for id, blocks := range clusters {
		sizes[id] = len(blocks)
	}
	ids := sortedIds(sizes)

	rng := rand.New(rand.NewSource(int64(opts.Seed)))

	anchors, err := initialPack(dev, sizes, ids, rng)
	if err != nil {
		return Result{}, err
	}

	a := newClusterAnnealer(dev, sizes, anchors, clusterOf, clusters, fixed, nl, opts.PlaceFactor)
	sched := anneal.Calibrate(a, rng, 30, opts.Steps)
	if _, err := anneal.Run(ctx, a, sched, rng, opts.Deadline); err != nil {
		return Result{}, err
	}

	cells, err := squeeze(dev, a.anchors, sizes, opts.SqueezeIter)
	if err != nil {
		return Result{}, err
	}

	centroids := make(netlist.Positions, len(ids))
	for _, id := range ids {
		centroids[netlist.PseudoBlock(id)] = geometry.Centroid(cells[id])
	}

	slog.Info("globalplace: complete", "clusters", len(ids))
	return Result{ClusterCells: cells, Centroids: centroids}, nil
}
