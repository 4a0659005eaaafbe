// Package place is the top-level orchestrator: G -> (W -> E) -> K -> GP
// -> DP -> R (§2 Flow). It exposes the single entry point the rest of
// the core is built to support: Place(Netlist, Device, FixedPositions,
// Options) -> Placement.
package place

import (
	"context"
	"log/slog"
	"sort"

	"github.com/sarchlab/zplace/cluster"
	"github.com/sarchlab/zplace/detailedplace"
	"github.com/sarchlab/zplace/device"
	"github.com/sarchlab/zplace/embedding"
	"github.com/sarchlab/zplace/errs"
	"github.com/sarchlab/zplace/geometry"
	"github.com/sarchlab/zplace/globalplace"
	"github.com/sarchlab/zplace/graph"
	"github.com/sarchlab/zplace/netlist"
	"github.com/sarchlab/zplace/refine"
	"github.com/sarchlab/zplace/report"
	"github.com/sarchlab/zplace/walk"
)

// maxClusterCapacityRetries bounds the orchestrator's k<-k+-1 retry loop
// (§7 Propagation).
const maxClusterCapacityRetries = 3

// Place assigns every non-fixed block a legal cell minimizing HPWL.
// When the deadline expires during the refiner (R), R's best placement
// is returned alongside the TimedOut error; when it expires during
// global or detailed placement, Place returns a nil placement with the
// error.
func Place(ctx context.Context, nl netlist.Netlist, dev *device.Device, fixed netlist.FixedPositions, opts Options) (netlist.Positions, error) {
	opts = opts.withDefaults()

	if nl.Nets == nil {
		return nil, errs.New(errs.InvalidInput, "netlist has a nil Nets table")
	}
	if dev == nil {
		return nil, errs.New(errs.InvalidInput, "device is nil")
	}

	allBlocks := nl.Blocks()
	freeBlocks := make([]netlist.BlockId, 0, len(allBlocks))
	for _, b := range allBlocks {
		if b.IsPseudo() {
			continue
		}
		if _, isFixed := fixed[b]; isFixed {
			continue
		}
		freeBlocks = append(freeBlocks, b)
	}

	if err := checkDeviceCapacity(dev, allBlocks, fixed); err != nil {
		return nil, err
	}

	if len(freeBlocks) == 0 {
		out := make(netlist.Positions, len(fixed))
		for b, p := range fixed {
			out[b] = p
		}
		if opts.OnSummary != nil {
			opts.OnSummary(report.Summary{
				Hpwl:      []report.PhaseHpwl{{Phase: "R", Hpwl: netlist.TotalHpwl(nl, out)}},
				Placement: out,
			})
		}
		return out, nil
	}

	vectors, err := embedForClustering(ctx, nl, freeBlocks, opts)
	if err != nil {
		return nil, err
	}

	k := desiredK(opts, len(freeBlocks))

	var gpResult globalplace.Result
	var clusterResult cluster.Result
	deltas := []int{0, 1, -1}
	var lastErr error
	for i := 0; i < maxClusterCapacityRetries; i++ {
		tryK := k + deltas[i%len(deltas)]
		if tryK < 1 {
			tryK = 1
		}
		if tryK > len(freeBlocks) {
			tryK = len(freeBlocks)
		}

		clusterResult = cluster.KMeans(vectors, freeBlocks, tryK, opts.Seed)
		gpResult, lastErr = globalplace.Place(ctx, nl, dev, clusterResult.ClusterOf, clusterResult.Clusters, fixed, globalplace.Options{
			PlaceFactor: opts.PlaceFactor,
			SqueezeIter: opts.SqueezeIter,
			Seed:        opts.Seed,
			Deadline:    opts.Deadline,
		})
		if lastErr == nil {
			break
		}
		if !errs.Is(lastErr, errs.ClusterCapacity) {
			return nil, lastErr
		}
		slog.Warn("place: global placer exhausted anchors, retrying with a different k", "k", tryK)
	}
	if lastErr != nil {
		return nil, lastErr
	}

	occupancy := make([]report.ClusterOccupancy, 0, len(clusterResult.Clusters))
	for _, id := range sortedClusterIds(clusterResult.Clusters) {
		occupancy = append(occupancy, report.ClusterOccupancy{
			ClusterId: id,
			Blocks:    len(clusterResult.Clusters[id]),
			Cells:     len(gpResult.ClusterCells[id]),
		})
	}

	dpPositions, dpFold, err := detailedplace.Place(ctx, nl, dev, clusterResult.ClusterOf, clusterResult.Clusters, gpResult.ClusterCells, gpResult.Centroids, fixed, detailedplace.Options{
		FoldReg:  opts.FoldReg,
		Steps:    4000,
		Seed:     opts.Seed,
		Deadline: opts.Deadline,
		Workers:  opts.Workers,
	})
	if err != nil {
		return nil, err
	}

	merged := make(netlist.Positions, len(dpPositions)+len(fixed))
	for b, p := range dpPositions {
		merged[b] = p
	}
	for b, p := range fixed {
		merged[b] = p
	}
	hpwlDP := netlist.TotalHpwl(nl, merged)

	final, err := refine.Run(ctx, nl, dev, fixed, merged, dpFold, refine.Options{
		Seed:     opts.Seed,
		Deadline: opts.Deadline,
	})
	if err != nil {
		return final, err
	}

	if opts.OnSummary != nil {
		opts.OnSummary(report.Summary{
			Hpwl: []report.PhaseHpwl{
				{Phase: "DP", Hpwl: hpwlDP},
				{Phase: "R", Hpwl: netlist.TotalHpwl(nl, final)},
			},
			Occupancy: occupancy,
			Placement: final,
		})
	}

	slog.Info("place: complete", "blocks", len(freeBlocks), "clusters", clusterResult.K)
	return final, nil
}

func sortedClusterIds(clusters map[int][]netlist.BlockId) []int {
	ids := make([]int, 0, len(clusters))
	for id := range clusters {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func desiredK(opts Options, numFree int) int {
	if opts.NumClusters != nil {
		return *opts.NumClusters
	}
	return cluster.ChooseK(numFree, opts.IsFPGA)
}

func embedForClustering(ctx context.Context, nl netlist.Netlist, freeBlocks []netlist.BlockId, opts Options) (embedding.Vectors, error) {
	if len(freeBlocks) <= 1 {
		return embedding.Vectors{}, nil
	}
	if opts.Trainer == nil {
		return nil, errs.New(errs.InvalidInput, "Options.Trainer is required to embed more than one block")
	}

	g := graph.Build(nl)
	walks, err := walk.Generate(ctx, g, nl, walk.Params{
		P: opts.WalkP, Q: opts.WalkQ,
		WalkLength: opts.WalkLength, NumWalks: opts.NumWalks,
		Workers: opts.Workers, Seed: opts.Seed,
	})
	if err != nil {
		return nil, err
	}

	vectors, err := opts.Trainer(ctx, walks, opts.EmbeddingDim)
	if err != nil {
		return nil, errs.Wrap(errs.InvalidInput, err, "embedding trainer failed")
	}

	// Blocks with no net membership never appear in a walk (walk.Generate
	// skips degree-0 nodes), so the trainer never emits a vector for
	// them. They carry no connectivity signal to cluster on anyway, so
	// a neutral zero vector — rather than an InvalidInput error — lets
	// them fall into whichever cluster k-means' initial centroid draw
	// puts them in.
	if vectors == nil {
		vectors = embedding.Vectors{}
	}
	dim := vectors.Dim()
	if dim == 0 {
		dim = opts.EmbeddingDim
	}
	for _, b := range freeBlocks {
		if _, ok := vectors[b]; !ok {
			vectors[b] = make([]float32, dim)
		}
	}

	if err := vectors.Validate(freeBlocks); err != nil {
		return nil, errs.Wrap(errs.InvalidInput, err, "invalid embeddings")
	}
	return vectors, nil
}

// checkDeviceCapacity applies Hall's theorem to the bipartite legality
// relation (exact-type match, or the device's shared clb type): every
// per-type demand must fit within its exact-type capacity plus the clb
// pool, and the total overflow pushed onto the clb pool must not exceed
// the clb pool itself.
func checkDeviceCapacity(dev *device.Device, allBlocks []netlist.BlockId, fixed netlist.FixedPositions) error {
	w, h := dev.Size()
	capacity := make(map[device.CellType]int)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := dev.CellTypeAt(geometry.Position{X: x, Y: y})
			if t.Empty() {
				continue
			}
			capacity[t]++
		}
	}

	demand := make(map[device.CellType]int)
	for _, b := range allBlocks {
		if b.IsPseudo() {
			continue
		}
		if _, isFixed := fixed[b]; isFixed {
			continue
		}
		demand[device.CellType(b.Tag())]++
	}

	clb := dev.ClbType()
	clbOverflow := 0
	for t, need := range demand {
		if t == clb {
			continue
		}
		have := capacity[t]
		if need > have+capacity[clb] {
			return errs.New(errs.DeviceCapacity, "need %d cells of type %s, device has %d legal cells", need, t, have+capacity[clb])
		}
		if need > have {
			clbOverflow += need - have
		}
	}
	if need := demand[clb]; need > 0 {
		clbOverflow += need
	}
	if clbOverflow > capacity[clb] {
		return errs.New(errs.DeviceCapacity, "need %d clb-sharable cells, device has %d", clbOverflow, capacity[clb])
	}
	return nil
}
