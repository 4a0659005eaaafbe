package anneal

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/sarchlab/zplace/errs"
)

// Result summarizes a completed (or aborted) SA run.
type Result struct {
	BestEnergy    float64
	StepsRun      int
	InitialEnergy float64
}

// Run drives a, cooling from sched.Tmax to sched.Tmin over sched.Steps
// iterations, stopping early if ctx is cancelled or deadline passes. On
// any early stop, a is left Restore()d to the best legal state observed,
// and Run returns that state alongside an errs.Cancelled or
// errs.TimedOut error so the caller can still use the partial result.
func Run(ctx context.Context, a Annealer, sched Schedule, rng Rand, deadline time.Time) (Result, error) {
	current := a.Energy()
	best := current
	bestSnap := a.Snapshot()
	initial := current

	temp := sched.Tmax
	steps := 0

	for ; steps < sched.Steps; steps++ {
		if err := checkAbort(ctx, deadline); err != nil {
			a.Restore(bestSnap)
			slog.Info("anneal: aborted", "steps", steps, "best_energy", best)
			return Result{BestEnergy: best, StepsRun: steps, InitialEnergy: initial}, err
		}

		delta, ok := a.Move(rng)
		if !ok {
			temp *= sched.Cooling
			continue
		}

		accept := delta <= 0 || rng.Float64() < math.Exp(-delta/temp)
		if accept {
			current += delta
			if current < best {
				best = current
				bestSnap = a.Snapshot()
			}
		} else {
			a.Undo()
		}

		temp *= sched.Cooling
	}

	a.Restore(bestSnap)
	slog.Info("anneal: complete", "steps", steps, "initial_energy", initial, "best_energy", best)
	return Result{BestEnergy: best, StepsRun: steps, InitialEnergy: initial}, nil
}

func checkAbort(ctx context.Context, deadline time.Time) error {
	if !deadline.IsZero() && time.Now().After(deadline) {
		return errs.New(errs.TimedOut, "simulated annealing exceeded its wall-clock budget")
	}
	select {
	case <-ctx.Done():
		return errs.Wrap(errs.Cancelled, ctx.Err(), "simulated annealing cancelled")
	default:
		return nil
	}
}
