// Package cluster groups blocks by embedding similarity via Lloyd's
// k-means (§4.5), excluding fixed blocks (which have their own
// positions already).
package cluster

import (
	"log/slog"
	"math"
	"math/rand"
	"sort"

	"github.com/sarchlab/zplace/embedding"
	"github.com/sarchlab/zplace/netlist"
)

// MaxIterations bounds Lloyd's iteration in case of (rare) oscillation
// between two assignments.
const MaxIterations = 100

// Result is the outcome of clustering: each non-fixed, non-pseudo block
// labeled with its ClusterId, plus the block membership lists themselves.
type Result struct {
	ClusterOf map[netlist.BlockId]int
	Clusters  map[int][]netlist.BlockId
	K         int
}

// KMeans fits k clusters over vectors for the given blocks (already
// filtered to exclude fixed blocks by the caller), using a seeded RNG so
// results are reproducible.
func KMeans(vectors embedding.Vectors, blocks []netlist.BlockId, k int, seed uint64) Result {
	if k <= 0 || len(blocks) == 0 {
		return Result{ClusterOf: map[netlist.BlockId]int{}, Clusters: map[int][]netlist.BlockId{}, K: 0}
	}
	if k > len(blocks) {
		k = len(blocks)
	}

	sorted := make([]netlist.BlockId, len(blocks))
	copy(sorted, blocks)
	netlist.SortBlocks(sorted)

	dim := vectors.Dim()
	rng := rand.New(rand.NewSource(int64(seed)))

	centroids := initCentroids(vectors, sorted, k, dim, rng)
	assignment := make(map[netlist.BlockId]int, len(sorted))

	for iter := 0; iter < MaxIterations; iter++ {
		changed := assign(vectors, sorted, centroids, assignment)
		updateCentroids(vectors, sorted, assignment, centroids, dim)
		if !changed && iter > 0 {
			break
		}
	}

	clusters := make(map[int][]netlist.BlockId, k)
	for _, b := range sorted {
		c := assignment[b]
		clusters[c] = append(clusters[c], b)
	}

	slog.Debug("cluster: fit complete", "k", k, "blocks", len(sorted))

	return Result{ClusterOf: assignment, Clusters: clusters, K: k}
}

func initCentroids(vectors embedding.Vectors, blocks []netlist.BlockId, k, dim int, rng *rand.Rand) [][]float32 {
	perm := rng.Perm(len(blocks))
	centroids := make([][]float32, k)
	for i := 0; i < k; i++ {
		src := vectors[blocks[perm[i]]]
		c := make([]float32, dim)
		copy(c, src)
		centroids[i] = c
	}
	return centroids
}

func assign(vectors embedding.Vectors, blocks []netlist.BlockId, centroids [][]float32, out map[netlist.BlockId]int) bool {
	changed := false
	for _, b := range blocks {
		best, bestDist := 0, math.Inf(1)
		v := vectors[b]
		for c, centroid := range centroids {
			d := sqDist(v, centroid)
			if d < bestDist {
				bestDist = d
				best = c
			}
		}
		if out[b] != best {
			changed = true
		}
		out[b] = best
	}
	return changed
}

func updateCentroids(vectors embedding.Vectors, blocks []netlist.BlockId, assignment map[netlist.BlockId]int, centroids [][]float32, dim int) {
	sums := make([][]float64, len(centroids))
	counts := make([]int, len(centroids))
	for i := range sums {
		sums[i] = make([]float64, dim)
	}
	for _, b := range blocks {
		c := assignment[b]
		counts[c]++
		v := vectors[b]
		for d := 0; d < dim; d++ {
			sums[c][d] += float64(v[d])
		}
	}
	for c := range centroids {
		if counts[c] == 0 {
			continue
		}
		for d := 0; d < dim; d++ {
			centroids[c][d] = float32(sums[c][d] / float64(counts[c]))
		}
	}
}

func sqDist(a, b []float32) float64 {
	sum := 0.0
	for i := range a {
		diff := float64(a[i]) - float64(b[i])
		sum += diff * diff
	}
	return sum
}

// SortedClusterIds returns cluster ids in ascending order, for
// deterministic iteration over Result.Clusters.
func (r Result) SortedClusterIds() []int {
	ids := make([]int, 0, len(r.Clusters))
	for id := range r.Clusters {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
