package parallel

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// errgroupWorkers bounds concurrency the same way PoolA bounds chunk
// count: real hardware parallelism times a small multiplier, so a huge
// chunk count still only ever runs threads*6 goroutines at once.
func errgroupWorkers(threads int) int {
	return threads * 6
}

// errgroupParMap distributes indices over a bounded errgroup worker
// pool pulling from a task channel, mirroring the task-channel +
// errgroup.SetLimit + select-on-ctx.Done dispatch pattern used
// elsewhere in the corpus for bounded parallel analysis passes.
func errgroupParMap[T any](threads int, data []T, chunks int, fn func(index int, item *T)) {
	if len(data) == 0 {
		return
	}
	maxChunks := errgroupWorkers(threads)
	chunkCount := max1(chunks)
	if chunkCount > maxChunks {
		chunkCount = maxChunks
	}
	if chunkCount > len(data) {
		chunkCount = len(data)
	}
	if chunkCount <= 1 {
		sequentialParMap(data, fn)
		return
	}
	chunkSize := ceilDiv(len(data), chunkCount)

	type task struct {
		start, end int
	}
	tasks := make(chan task, chunkCount)
	for c := 0; c < chunkCount; c++ {
		start := c * chunkSize
		end := start + chunkSize
		if end > len(data) {
			end = len(data)
		}
		if start >= end {
			continue
		}
		tasks <- task{start, end}
	}
	close(tasks)

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(chunkCount)
	for w := 0; w < chunkCount; w++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case t, ok := <-tasks:
					if !ok {
						return nil
					}
					for i := t.start; i < t.end; i++ {
						fn(i, &data[i])
					}
				}
			}
		})
	}
	// Workers only ever return nil or ctx.Err(), and ctx is only
	// cancelled by a non-nil worker error, so Wait always returns nil.
	_ = g.Wait()
}

func errgroupParChunksMut[T any](threads int, data []T, chunkSize int, fn func(chunkID int, chunk []T)) {
	if len(data) == 0 {
		return
	}
	chunkSize = max1(chunkSize)
	chunkCount := ceilDiv(len(data), chunkSize)
	if chunkCount <= 1 {
		fn(0, data)
		return
	}
	workers := chunkCount
	if w := errgroupWorkers(threads); workers > w {
		workers = w
	}

	type task struct {
		chunkID    int
		lo, hi     int
	}
	tasks := make(chan task, chunkCount)
	for c := 0; c < chunkCount; c++ {
		lo := c * chunkSize
		hi := lo + chunkSize
		if hi > len(data) {
			hi = len(data)
		}
		tasks <- task{c, lo, hi}
	}
	close(tasks)

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(workers)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case t, ok := <-tasks:
					if !ok {
						return nil
					}
					fn(t.chunkID, data[t.lo:t.hi])
				}
			}
		})
	}
	// As in errgroupParMap, no worker returns a non-nil error of its
	// own, so Wait always returns nil.
	_ = g.Wait()
}

func errgroupParChunks[T any](threads int, data []T, chunkSize int, fn func(chunkID int, chunk []T)) {
	errgroupParChunksMut(threads, data, chunkSize, fn)
}
