// Package pool provides the fixed-size worker pool shared by the two
// parallelizable phases (random-walk generation, per-cluster detailed
// placement). It guarantees index-keyed, deterministic result ordering
// independent of worker count, and propagates cancellation.
//
// There is no off-the-shelf worker-pool dependency in the retrieval
// corpus (golang.org/x/sync/errgroup appears only transitively, never
// imported by any example source); the corpus's own concurrency, e.g.
// the teacher's threadManager-style channel/WaitGroup pattern and the
// spatial-decomposition worker split used elsewhere in the pack, is
// plain sync.WaitGroup plus channels, which this package follows.
package pool

import (
	"context"
	"sync"
)

// Task is one unit of work, addressed by its index in the submitted
// batch so results can be collected in ascending index order.
type Task[T any] func(ctx context.Context, index int) (T, error)

// Run executes n tasks across a fixed-size worker pool and returns their
// results ordered by index. If ctx is cancelled, or any task returns an
// error, Run stops dispatching new tasks, waits for in-flight tasks to
// finish, and returns the first error encountered (by index).
func Run[T any](outerCtx context.Context, n, workers int, task Task[T]) ([]T, error) {
	if workers < 1 {
		workers = 1
	}
	if workers > n && n > 0 {
		workers = n
	}

	results := make([]T, n)
	errs := make([]error, n)

	jobs := make(chan int)
	ctx, cancel := context.WithCancel(outerCtx)
	defer cancel()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				res, err := task(ctx, idx)
				results[idx] = res
				errs[idx] = err
				if err != nil {
					cancel()
				}
			}
		}()
	}

dispatch:
	for i := 0; i < n; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	if outerCtx.Err() != nil {
		return results, outerCtx.Err()
	}
	return results, nil
}
