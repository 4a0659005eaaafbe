package walk

import "github.com/sarchlab/zplace/seedmix"

// splitmix64Seed derives a task-local seed from a global seed and a task
// index. Index-only dependence (never worker count) is what makes walk
// generation reproducible for a fixed seed regardless of pool size.
func splitmix64Seed(seed uint64, index int) int64 {
	return seedmix.Seed(seed, index)
}
