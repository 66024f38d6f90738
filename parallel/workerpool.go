package parallel

import (
	"sync"
	"sync/atomic"
)

// workerPool is a persistent, reusable worker pool backing the PoolB
// Kind: workers are spawned once and parked on a channel instead of
// being spawned per call, amortizing goroutine-spawn cost across the
// many chunked calls a BVH rebuild makes.
type workerPool struct {
	numWorkers int
	workC      chan poolWorkItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

type poolWorkItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

func newWorkerPool(numWorkers int) *workerPool {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	p := &workerPool{
		numWorkers: numWorkers,
		workC:      make(chan poolWorkItem, numWorkers*2),
	}
	for i := 0; i < numWorkers; i++ {
		go p.worker()
	}
	return p
}

func (p *workerPool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

func (p *workerPool) close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// parallelFor executes fn(start, end) for each of workers contiguous
// ranges covering [0, n). The final range always runs on the calling
// goroutine so a closed or single-worker pool still makes progress.
func (p *workerPool) parallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if p.closed.Load() {
		fn(0, n)
		return
	}

	workers := p.numWorkers
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunkSize := ceilDiv(n, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= n {
			wg.Done()
			continue
		}
		if i == workers-1 {
			fn(start, end)
			wg.Done()
			continue
		}
		p.workC <- poolWorkItem{
			fn:      func() { fn(start, end) },
			barrier: &wg,
		}
	}
	wg.Wait()
}

func poolBParMap[T any](p *workerPool, data []T, fn func(index int, item *T)) {
	p.parallelFor(len(data), func(start, end int) {
		for i := start; i < end; i++ {
			fn(i, &data[i])
		}
	})
}

func poolBParChunksMut[T any](p *workerPool, data []T, chunkSize int, fn func(chunkID int, chunk []T)) {
	if len(data) == 0 {
		return
	}
	chunkSize = max1(chunkSize)
	chunkCount := ceilDiv(len(data), chunkSize)
	p.parallelFor(chunkCount, func(start, end int) {
		for chunkID := start; chunkID < end; chunkID++ {
			lo := chunkID * chunkSize
			hi := lo + chunkSize
			if hi > len(data) {
				hi = len(data)
			}
			fn(chunkID, data[lo:hi])
		}
	})
}

func poolBParChunks[T any](p *workerPool, data []T, chunkSize int, fn func(chunkID int, chunk []T)) {
	poolBParChunksMut(p, data, chunkSize, fn)
}
