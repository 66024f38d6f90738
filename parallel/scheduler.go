// Package parallel provides the scheduler abstraction used to drive the
// parallel phases of the BVH build: a small set of fork-join primitives
// (ParMap, ParChunks, ParChunksMut) dispatched over one of several
// backend Kinds, mirroring the structured-concurrency style of the
// PLOC reference implementation's own scheduler abstraction rather than
// exposing raw goroutines or an async/cancellation model to callers.
package parallel

import (
	"runtime"
	"sync"
)

// Kind selects the backend an Executor dispatches onto.
type Kind int

const (
	// SequentialOptimised runs work on the calling goroutine with no
	// synchronization overhead at all. Intended for inputs too small to
	// profitably hand to any other backend.
	SequentialOptimised Kind = iota
	// Sequential also runs on the calling goroutine, through the same
	// loops as SequentialOptimised, but callers such as the PLOC
	// builder take their chunked, parallel-shaped code paths for it
	// rather than their SequentialOptimised shortcuts, with the same
	// chunk boundaries as the parallel backends (useful for debugging a
	// parallel-only bug by switching schedulers).
	Sequential
	// PoolA spawns one goroutine per chunk directly, capped at
	// GOMAXPROCS*6 chunks, and waits on a sync.WaitGroup. Cheapest to
	// reason about; best when chunk counts are modest and the pool
	// needn't be kept warm across many calls.
	PoolA
	// PoolB dispatches onto a persistent worker pool, amortizing
	// goroutine-spawn cost across many calls against the same
	// Executor. Best for repeated rebuilds of similarly shaped inputs.
	PoolB
	// PoolC dispatches through golang.org/x/sync/errgroup with a
	// bounded concurrency limit via SetLimit. Its workers never return
	// a non-nil error, and no error is reported to the caller.
	PoolC
)

// cachedAvailableParallelism memoizes runtime.GOMAXPROCS(0), mirroring
// the reference scheduler's one-time available_parallelism probe.
var (
	parallelismOnce sync.Once
	parallelism     int
)

func cachedAvailableParallelism() int {
	parallelismOnce.Do(func() {
		parallelism = runtime.GOMAXPROCS(0)
	})
	return parallelism
}

// Executor binds a Kind to the resources (worker pool, in particular)
// that backend needs across repeated calls. The zero Executor is
// SequentialOptimised and ready to use.
type Executor struct {
	kind    Kind
	workers int // 0 means "use GOMAXPROCS"
	pool    *workerPool
}

// New creates an Executor for the given Kind, sized to GOMAXPROCS.
// PoolB lazily starts its persistent worker pool on first use; Close
// releases it.
func New(kind Kind) *Executor {
	return &Executor{kind: kind}
}

// NewWithWorkers creates an Executor pinned to an explicit worker
// count instead of GOMAXPROCS, e.g. to leave headroom for other work
// sharing the machine.
func NewWithWorkers(kind Kind, workers int) *Executor {
	return &Executor{kind: kind, workers: workers}
}

// Kind reports the backend this Executor dispatches onto.
func (e *Executor) Kind() Kind {
	return e.kind
}

// NumThreads reports how many goroutines of true parallelism this
// Executor can bring to bear, mirroring current_num_threads in the
// reference scheduler.
func (e *Executor) NumThreads() int {
	switch e.kind {
	case SequentialOptimised, Sequential:
		return 1
	default:
		if e.workers > 0 {
			return e.workers
		}
		return cachedAvailableParallelism()
	}
}

// Close releases any resources (e.g. a PoolB worker pool) held by e.
// Safe to call on an Executor that never allocated one.
func (e *Executor) Close() {
	if e.pool != nil {
		e.pool.close()
		e.pool = nil
	}
}

func (e *Executor) poolB() *workerPool {
	if e.pool == nil {
		e.pool = newWorkerPool(e.NumThreads())
	}
	return e.pool
}

// ParMap applies fn(index, &data[index]) for every element of data.
// chunks is a hint for how many pieces of work to split data into on
// PoolA and PoolC; PoolB always splits data into one range per worker,
// and the sequential backends ignore it.
func ParMap[T any](e *Executor, data []T, chunks int, fn func(index int, item *T)) {
	switch e.kind {
	case SequentialOptimised, Sequential:
		sequentialParMap(data, fn)
	case PoolA:
		rawParMap(e.NumThreads(), data, chunks, fn)
	case PoolB:
		poolBParMap(e.poolB(), data, fn)
	case PoolC:
		errgroupParMap(e.NumThreads(), data, chunks, fn)
	default:
		sequentialParMap(data, fn)
	}
}

// ParChunksMut splits data into chunks of at most chunkSize elements
// and calls fn(chunkID, chunk) for each, in parallel where the backend
// supports it. Chunk i covers data[i*chunkSize : min((i+1)*chunkSize,
// len(data))].
func ParChunksMut[T any](e *Executor, data []T, chunkSize int, fn func(chunkID int, chunk []T)) {
	switch e.kind {
	case SequentialOptimised, Sequential:
		sequentialParChunksMut(data, chunkSize, fn)
	case PoolA:
		rawParChunksMut(data, chunkSize, fn)
	case PoolB:
		poolBParChunksMut(e.poolB(), data, chunkSize, fn)
	case PoolC:
		errgroupParChunksMut(e.NumThreads(), data, chunkSize, fn)
	default:
		sequentialParChunksMut(data, chunkSize, fn)
	}
}

// ParChunks is the read-only counterpart of ParChunksMut.
func ParChunks[T any](e *Executor, data []T, chunkSize int, fn func(chunkID int, chunk []T)) {
	switch e.kind {
	case SequentialOptimised, Sequential:
		sequentialParChunks(data, chunkSize, fn)
	case PoolA:
		rawParChunks(data, chunkSize, fn)
	case PoolB:
		poolBParChunks(e.poolB(), data, chunkSize, fn)
	case PoolC:
		errgroupParChunks(e.NumThreads(), data, chunkSize, fn)
	default:
		sequentialParChunks(data, chunkSize, fn)
	}
}
