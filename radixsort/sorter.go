package radixsort

import "github.com/ajroetker/plocbvh/parallel"

// Size thresholds controlling which strategy handleChunk dispatches
// to. Below comparativeThreshold a radix pass isn't worth its own
// setup cost; above tiledThreshold (and with more than one thread
// available) the bucket is split into tileSize pieces and sorted with
// the parallel regions algorithm instead of a single ska_sort pass;
// homogeneousThreshold gates the "every element already in the same
// bucket" short-circuit, which is cheap to check but only worth
// checking once a bucket is big enough that skipping the pass
// entirely pays for the check.
const (
	comparativeThreshold = 128
	tiledThreshold        = 260_000
	minTileSize            = 30_000
	homogeneousThreshold  = 30_000
)

// sortEnv threads the chosen executor through the recursive
// director/handleChunk calls without needing a goroutine-local or
// package-level global for it.
type sortEnv struct {
	executor *parallel.Executor
}

// handleChunk sorts chunk by the given level, picking the comparative
// fallback, a single-tile ska_sort, or the parallel tiled regions sort
// depending on chunk's size, and recurses into the next
// less-significant level via director unless level is already 0 or
// the chunk turned out to already be sorted/homogeneous.
func handleChunk[T Key](e *sortEnv, chunk []T, level int, threads int, recursionDepth uint32) {
	if len(chunk) <= 1 {
		return
	} else if len(chunk) <= comparativeThreshold {
		comparativeSort(chunk, level)
		return
	}

	useTiles := len(chunk) >= tiledThreshold && threads > 1
	tileSize := len(chunk)
	if useTiles {
		tileSize = ceilDiv(len(chunk), threads)
		if tileSize < minTileSize {
			tileSize = minTileSize
		}
	}

	var tileCounts [][256]int
	var alreadySorted bool
	var counts [256]int

	if useTiles {
		tileCounts, alreadySorted = getTileCounts(e.executor, chunk, tileSize, level)
		counts = aggregateTileCounts(tileCounts)
	} else {
		counts, alreadySorted = getCounts(chunk, level)
	}

	if alreadySorted || (len(chunk) >= homogeneousThreshold && isHomogenousBucket(&counts)) {
		if level != 0 {
			director(e, chunk, &counts, level-1, recursionDepth)
		}
		return
	}

	if tileCounts == nil {
		tileCounts = [][256]int{counts}
		tileSize = len(chunk)
	}

	regionsSortAdapter(e, chunk, &counts, tileCounts, tileSize, level, recursionDepth)
}

// director splits bucket into its 256 per-byte-value runs (as given by
// counts, in byte order) and dispatches handleChunk over each run in
// parallel, one level further down. On PoolA the fan-out width narrows
// with recursion depth (chunkCount) so that a wide top-level split doesn't
// spawn an unbounded number of tasks as the recursion fans out again
// at every subsequent level.
func director[T Key](e *sortEnv, bucket []T, counts *[256]int, level int, recursionDepth uint32) {
	threads := e.executor.NumThreads()

	// Narrow the fan-out on the goroutine-per-chunk backend as
	// recursion gets deeper: each level already multiplies task count
	// by up to 256, so keeping full width at every depth would spawn
	// far more goroutines than there is real parallelism to use.
	chunkCount := threads
	if e.executor.Kind() == parallel.PoolA {
		switch {
		case recursionDepth == 1:
			chunkCount = 2
		case recursionDepth >= 2:
			chunkCount = 1
		}
	}

	chunks := arbitraryChunksMut(bucket, counts)

	parallel.ParMap(e.executor, chunks, chunkCount, func(_ int, chunk *[]T) {
		handleChunk(e, *chunk, level, e.executor.NumThreads(), recursionDepth+1)
	})
}

// arbitraryChunksMut splits bucket into 256 contiguous, possibly
// zero-length runs sized by counts, in byte order.
func arbitraryChunksMut[T Key](bucket []T, counts *[256]int) [][]T {
	chunks := make([][]T, 256)
	rest := bucket
	for i, c := range counts {
		chunks[i] = rest[:c]
		rest = rest[c:]
	}
	return chunks
}

// Sort sorts data in place over all of its key's levels, most
// significant byte first, using e to parallelize the larger
// sub-passes. A nil or zero-value Executor behaves as
// parallel.SequentialOptimised.
func Sort[T Key](e *parallel.Executor, data []T) {
	if len(data) <= 1 {
		return
	}
	if e == nil {
		e = parallel.New(parallel.SequentialOptimised)
	}

	env := &sortEnv{executor: e}
	threads := e.NumThreads()
	level := data[0].Levels() - 1
	handleChunk(env, data, level, threads, 0)
}
