// Package seedmix derives deterministic per-task RNG seeds from a
// global seed and a task index, shared by every phase that runs
// independent tasks on pool.Run (§5): the random-walk engine and the
// detailed placer. Seeding from the index alone, never the worker
// count, is what makes their output reproducible for a fixed pool size.
package seedmix

// Seed mixes seed and index using SplitMix64's mixing step.
func Seed(seed uint64, index int) int64 {
	z := seed + uint64(index)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z = z ^ (z >> 31)
	return int64(z)
}
