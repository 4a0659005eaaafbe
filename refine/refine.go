// Package refine implements the Global Refiner (R, §4.9): one more SA
// pass over the entire non-fixed placement using the full, unreduced
// netlist, step count scaling as 10*n^1.33.
package refine

import (
	"context"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/sarchlab/zplace/anneal"
	"github.com/sarchlab/zplace/device"
	"github.com/sarchlab/zplace/netlist"
)

// Options configures the refiner.
type Options struct {
	Seed       uint64
	CalibrateN int
	Deadline   time.Time
}

func (o Options) withDefaults() Options {
	if o.CalibrateN <= 0 {
		o.CalibrateN = 30
	}
	return o
}

// Steps implements the §4.9 step-count formula.
func Steps(n int) int {
	if n <= 0 {
		return 0
	}
	return int(10 * math.Pow(float64(n), 1.33))
}

// Skipped reports the §6 TRAVIS carve-out: the refiner is skipped
// entirely when the TRAVIS environment variable is set, regardless of
// its value.
func Skipped() bool {
	_, set := os.LookupEnv("TRAVIS")
	return set
}

// Run anneals every non-fixed, non-folded block in placement over the
// full netlist. fold is the register->PE map DP produced (§4.8); a
// folded register is never an independent swap candidate here, so R
// can never pull a register off the PE it was folded onto. If
// Skipped() is true, Run returns placement unchanged.
func Run(ctx context.Context, nl netlist.Netlist, dev device.Legalizer, fixed netlist.FixedPositions, placement netlist.Positions, fold map[netlist.BlockId]netlist.BlockId, opts Options) (netlist.Positions, error) {
	opts = opts.withDefaults()

	if Skipped() {
		slog.Info("refine: skipped (TRAVIS set)")
		return placement, nil
	}

	blocks := make([]netlist.BlockId, 0, len(placement))
	for _, b := range nl.Blocks() {
		if b.IsPseudo() {
			continue
		}
		if _, isFixed := fixed[b]; isFixed {
			continue
		}
		if _, ok := placement[b]; ok {
			blocks = append(blocks, b)
		}
	}

	a := newRefineAnnealer(dev, nl, fixed, blocks, placement, fold)
	rng := rand.New(rand.NewSource(int64(opts.Seed)))
	sched := anneal.Calibrate(a, rng, opts.CalibrateN, Steps(len(blocks)))

	if _, err := anneal.Run(ctx, a, sched, rng, opts.Deadline); err != nil {
		return a.positions(), err
	}

	slog.Info("refine: complete", "blocks", len(blocks))
	return a.positions(), nil
}
