package place

import (
	"context"
	"time"

	"github.com/sarchlab/zplace/embedding"
	"github.com/sarchlab/zplace/netlist"
	"github.com/sarchlab/zplace/report"
)

// Trainer turns a sequence of walks into one embedding vector per real
// block (§2, §4.4 "Embedding Trainer (E)"): the external collaborator
// Place delegates to rather than reimplementing skip-gram itself.
type Trainer func(ctx context.Context, walks [][]netlist.BlockId, dim int) (embedding.Vectors, error)

// Options is the §6 options enumeration, plus the knobs the composed
// phases (W, GP, DP, R) need but the spec leaves to the caller.
type Options struct {
	// FoldReg allows register/PE co-location (§6). Always false when
	// IsFPGA is set (FPGA targets disable folding).
	FoldReg bool
	// Seed seeds every RNG in the pipeline (§6).
	Seed uint64
	// NumClusters overrides the §4.5 cluster-count heuristic.
	NumClusters *int
	// IsFPGA selects the FPGA cluster-count heuristic and disables
	// register folding (§6).
	IsFPGA bool
	// PlaceFactor is GP's overlap tolerance divisor (default 6, §6).
	PlaceFactor int
	// SqueezeIter is the number of GP compaction passes (default 4, §6).
	SqueezeIter int

	// Trainer produces embeddings from walk.Generate's output. Required
	// whenever the netlist has more than one block to cluster.
	Trainer Trainer
	// EmbeddingDim is the vector dimension requested from Trainer.
	EmbeddingDim int

	// WalkP, WalkQ are node2vec's return/in-out parameters (§4.4).
	WalkP, WalkQ float64
	// WalkLength, NumWalks are per-seed walk parameters (§4.4).
	WalkLength, NumWalks int

	// Workers bounds every phase's worker pool (§5).
	Workers int
	// Deadline, if non-zero, bounds every SA phase's wall-clock budget.
	Deadline time.Time

	// OnSummary, if set, receives a human-readable run summary (HPWL
	// after DP and after R, per-cluster occupancy from GP, and the
	// final placement) once Place completes successfully.
	OnSummary func(report.Summary)
}

func (o Options) withDefaults() Options {
	if o.PlaceFactor <= 0 {
		o.PlaceFactor = 6
	}
	if o.SqueezeIter <= 0 {
		o.SqueezeIter = 4
	}
	if o.EmbeddingDim <= 0 {
		o.EmbeddingDim = 64
	}
	if o.WalkP <= 0 {
		o.WalkP = 1
	}
	if o.WalkQ <= 0 {
		o.WalkQ = 1
	}
	if o.WalkLength <= 0 {
		o.WalkLength = 40
	}
	if o.NumWalks <= 0 {
		o.NumWalks = 10
	}
	if o.Workers <= 0 {
		o.Workers = 1
	}
	if o.IsFPGA {
		o.FoldReg = false
	}
	return o
}
