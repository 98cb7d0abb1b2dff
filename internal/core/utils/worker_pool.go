package utils

import (
	"context"
	"errors"
	"sync"
)

type CompletedTask[T any] struct {
	Index  int
	Result T
	Error  error
}

// RunInPool runs worker over every input with at most maxWorkers goroutines.
// Results are returned in input order. Once ctx is cancelled the remaining
// inputs are not started and report the context error.
func RunInPool[In any, Out any](ctx context.Context, worker func(context.Context, In) (Out, error), inputs []In, maxWorkers int) ([]CompletedTask[Out], error) {
	workers := min(len(inputs), max(maxWorkers, 1))

	queue := make(chan int, len(inputs))
	for i := range inputs {
		queue <- i
	}
	close(queue)

	completed := make([]CompletedTask[Out], len(inputs))

	wg := sync.WaitGroup{}
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()

			for i := range queue {
				if err := ctx.Err(); err != nil {
					completed[i] = CompletedTask[Out]{Index: i, Error: err}
					continue
				}

				res, err := worker(ctx, inputs[i])
				completed[i] = CompletedTask[Out]{Index: i, Result: res, Error: err}
			}
		}()
	}
	wg.Wait()

	var errs []error
	for _, task := range completed {
		if task.Error != nil {
			errs = append(errs, task.Error)
		}
	}
	if len(errs) > 0 {
		return completed, errors.Join(errs[:min(3, len(errs))]...)
	}
	return completed, nil
}
