package radixsort

import "github.com/ajroetker/plocbvh/parallel"

// parallelCountThreshold is the bucket size above which counting a
// single level is itself worth splitting across goroutines.
const parallelCountThreshold = 400_000

// countChunkDivisor controls how much finer than thread count the
// parallel counting chunks are split, so that a slow chunk doesn't
// stall the whole count pass.
const countChunkDivisor = 8

// getPrefixSums returns the start offset of each byte value's bucket:
// an exclusive running total of counts. For example, counts[0]=3,
// counts[1]=2, counts[255]=4 (all others 0) gives sums[0]=0, sums[1]=3,
// and sums[2..255]=5.
func getPrefixSums(counts *[256]int) [256]int {
	var sums [256]int
	running := 0
	for i, c := range counts {
		sums[i] = running
		running += c
	}
	return sums
}

// getEndOffsets returns the one-past-the-end offset of each bucket. For
// the counts in the getPrefixSums example: end[0]=3, end[1..254]=5, and
// end[255]=9.
func getEndOffsets(counts *[256]int, prefixSums *[256]int) [256]int {
	var end [256]int
	copy(end[0:255], prefixSums[1:256])
	end[255] = counts[255] + prefixSums[255]
	return end
}

// countBoundary is the first and last byte value seen in a bucket,
// used to detect sortedness across tile boundaries without a second
// pass over the data.
type countBoundary struct {
	first, last byte
}

// getCountsWithEnds scans bucket once, counting occurrences of each
// byte value at level and tracking whether the bucket is already
// sorted by that byte.
func getCountsWithEnds[T Key](bucket []T, level int) (counts [256]int, sorted bool, bounds countBoundary) {
	sorted = true
	continueFrom := len(bucket)
	last := byte(0)

	for i, item := range bucket {
		b := item.ByteAt(level)
		counts[b]++
		if b < last {
			continueFrom = i + 1
			sorted = false
			break
		}
		last = b
	}

	if continueFrom == len(bucket) {
		return counts, sorted, countBoundary{bucket[0].ByteAt(level), last}
	}

	for _, item := range bucket[continueFrom:] {
		counts[item.ByteAt(level)]++
	}

	bounds = countBoundary{bucket[0].ByteAt(level), bucket[len(bucket)-1].ByteAt(level)}
	return counts, sorted, bounds
}

// parGetCountsWithEnds is getCountsWithEnds, splitting the scan across
// the given executor once the bucket is large enough to be worth it.
func parGetCountsWithEnds[T Key](e *parallel.Executor, bucket []T, level int) (counts [256]int, sorted bool, bounds countBoundary) {
	if len(bucket) < parallelCountThreshold {
		return getCountsWithEnds(bucket, level)
	}

	threads := e.NumThreads()
	chunkSize := len(bucket)/threads/countChunkDivisor + 1
	chunkLen := ceilDiv(len(bucket), chunkSize)

	type partial struct {
		counts  [256]int
		sorted  bool
		bounds  countBoundary
	}
	partials := make([]partial, chunkLen)

	parallel.ParChunks(e, bucket, chunkSize, func(chunkID int, chunk []T) {
		c, s, b := getCountsWithEnds(chunk, level)
		partials[chunkID] = partial{c, s, b}
	})

	var msbCounts [256]int
	sorted = true
	for _, p := range partials {
		if !p.sorted {
			sorted = false
		}
		for i, c := range p.counts {
			msbCounts[i] += c
		}
	}

	if sorted {
		for i := 1; i < len(partials); i++ {
			if partials[i].bounds.first < partials[i-1].bounds.last {
				sorted = false
				break
			}
		}
	}

	return msbCounts, sorted, countBoundary{partials[0].bounds.first, partials[len(partials)-1].bounds.last}
}

// getCounts is getCountsWithEnds without the boundary bytes, matching
// the empty-bucket shortcut the reference implementation takes.
func getCounts[T Key](bucket []T, level int) (counts [256]int, sorted bool) {
	if len(bucket) == 0 {
		var zero [256]int
		return zero, true
	}
	counts, sorted, _ = getCountsWithEnds(bucket, level)
	return counts, sorted
}

type tileCountResult struct {
	counts [256]int
	sorted bool
	bounds countBoundary
}

// getTileCounts splits bucket into tileSize pieces and counts each
// tile in parallel (each tile's own count may itself further split
// internally via parGetCountsWithEnds if it is still large). It
// reports whether the whole bucket is already sorted by level: every
// tile internally sorted, and each tile's leading byte >= the
// previous tile's trailing byte.
func getTileCounts[T Key](e *parallel.Executor, bucket []T, tileSize int, level int) (tileCounts [][256]int, allSorted bool) {
	tileCount := ceilDiv(len(bucket), tileSize)
	tiles := make([]tileCountResult, tileCount)

	parallel.ParMap(e, tiles, tileCount, func(i int, tile *tileCountResult) {
		start := i * tileSize
		end := start + tileSize
		if end > len(bucket) {
			end = len(bucket)
		}
		c, s, b := parGetCountsWithEnds(e, bucket[start:end], level)
		*tile = tileCountResult{c, s, b}
	})

	allSorted = true
	if len(tiles) == 1 {
		allSorted = tiles[0].sorted
	} else {
		for i := 1; i < len(tiles); i++ {
			if !tiles[i-1].sorted || !tiles[i].sorted || tiles[i].bounds.first < tiles[i-1].bounds.last {
				allSorted = false
				break
			}
		}
	}

	out := make([][256]int, tileCount)
	for i, t := range tiles {
		out[i] = t.counts
	}
	return out, allSorted
}

func aggregateTileCounts(tileCounts [][256]int) [256]int {
	out := tileCounts[0]
	for _, tile := range tileCounts[1:] {
		for i, c := range tile {
			out[i] += c
		}
	}
	return out
}

func isHomogenousBucket(counts *[256]int) bool {
	seen := false
	for _, c := range counts {
		if c > 0 {
			if seen {
				return false
			}
			seen = true
		}
	}
	return true
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
