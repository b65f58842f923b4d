package upload

import (
	"context"
	"sync"
)

// fanOut runs fn over items with at most workers concurrent goroutines and
// returns all results. Results arrive in completion order, not submission
// order — callers correlate by a key carried in R, never by position.
func fanOut[T any, R any](ctx context.Context, workers int, items []T, fn func(context.Context, T) R) []R {
	if len(items) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > len(items) {
		workers = len(items)
	}

	jobs := make(chan T)
	results := make(chan R)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for item := range jobs {
				results <- fn(ctx, item)
			}
		}()
	}

	go func() {
		for _, item := range items {
			jobs <- item
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	out := make([]R, 0, len(items))
	for r := range results {
		out = append(out, r)
	}
	return out
}
