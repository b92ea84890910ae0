package pipeline

import (
	"context"
	"sync"
)

// DefaultBatchParallelism caps in-flight uploads in a batch.
const DefaultBatchParallelism = 3

// RunChunked processes items in fixed-size chunks: each chunk's items run
// concurrently, and the next chunk starts only after the previous one joins.
// One item failing never blocks the others; errors come back aligned with
// the input slice. No cancellation or priority beyond the context itself.
func RunChunked[T any](ctx context.Context, items []T, parallelism int, fn func(ctx context.Context, item T) error) []error {
	if parallelism <= 0 {
		parallelism = DefaultBatchParallelism
	}

	errs := make([]error, len(items))
	for start := 0; start < len(items); start += parallelism {
		end := start + parallelism
		if end > len(items) {
			end = len(items)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			if ctx.Err() != nil {
				errs[i] = ctx.Err()
				continue
			}
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = fn(ctx, items[i])
			}(i)
		}
		wg.Wait()
	}
	return errs
}
