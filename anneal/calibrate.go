package anneal

import "math"

// Calibrate implements the "sampling phase that estimates energy
// variance to pick Tmax, Tmin, steps" referenced in §4.8: it samples
// sampleMoves random moves (each immediately undone, so calibration
// never mutates the annealer's real trajectory), measures the standard
// deviation of the resulting energy deltas, and derives a Tmax that
// keeps the initial acceptance probability high without being so loose
// that early moves are accepted unconditionally.
func Calibrate(a Annealer, rng Rand, sampleMoves, steps int) Schedule {
	deltas := make([]float64, 0, sampleMoves)
	for i := 0; i < sampleMoves; i++ {
		delta, ok := a.Move(rng)
		if !ok {
			continue
		}
		deltas = append(deltas, math.Abs(delta))
		a.Undo()
	}

	sigma := stddev(deltas)
	tmax := sigma*20 + 1
	tmin := 0.01
	if tmin > tmax {
		tmin = tmax / 2
	}
	return NewSchedule(tmax, tmin, steps)
}

func stddev(xs []float64) float64 {
	if len(xs) == 0 {
		return 1
	}
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	variance := 0.0
	for _, x := range xs {
		d := x - mean
		variance += d * d
	}
	variance /= float64(len(xs))
	return math.Sqrt(variance)
}
