package radixsort

// partitionByByte moves every element e in bucket with e.ByteAt(level)
// == want to the front, in place, and returns the count moved there.
// It is an unstable single-pass partition (Lomuto-style two-pointer
// swap), used to avoid wasting swaps on the single largest bucket
// before the main ska_sort loop below runs.
func partitionByByte[T Key](bucket []T, level int, want byte) int {
	i := 0
	for j := range bucket {
		if bucket[j].ByteAt(level) == want {
			bucket[i], bucket[j] = bucket[j], bucket[i]
			i++
		}
	}
	return i
}

// skaSort is Malte Skarupke's in-place, single-threaded radix
// partitioning pass: https://probablydance.com/2016/12/27/. Rather
// than scattering into a second buffer, it repeatedly swaps each
// element into its bucket's prefix-sum position until every position
// holds an element destined to stay there.
//
// prefixSums is mutated in place to the final end-of-bucket cursor for
// each byte value; end_offsets are the (fixed) one-past-the-end
// position of each bucket.
func skaSort[T Key](bucket []T, prefixSums *[256]int, endOffsets *[256]int, level int) {
	finished := 0
	var finishedMap [256]bool
	largest := 0
	largestIndex := 0

	for i := 0; i < 256; i++ {
		rem := endOffsets[i] - prefixSums[i]
		if rem == 0 {
			finishedMap[i] = true
			finished++
		} else if rem > largest {
			largest = rem
			largestIndex = i
		}
	}

	if largest == len(bucket) {
		return
	} else if largest > len(bucket)/2 {
		// The largest bucket dominates the slice: partition it
		// in place first so the main loop below doesn't spend all
		// its time swapping already-correct elements in and out.
		sub := bucket[prefixSums[largestIndex]:endOffsets[largestIndex]]
		offs := partitionByByte(sub, level, byte(largestIndex))
		prefixSums[largestIndex] += offs
	}

	if !finishedMap[largestIndex] {
		finishedMap[largestIndex] = true
		finished++
	}

	for finished != 256 {
		for b := 0; b < 256; b++ {
			if finishedMap[b] {
				continue
			} else if prefixSums[b] >= endOffsets[b] {
				finishedMap[b] = true
				finished++
			}

			for i := prefixSums[b]; i < endOffsets[b]; i++ {
				newB := int(bucket[i].ByteAt(level))
				bucket[prefixSums[newB]], bucket[i] = bucket[i], bucket[prefixSums[newB]]
				prefixSums[newB]++
			}
		}
	}
}

// skaSortAdapter runs skaSort for one level and, unless that was the
// least-significant level, recurses into director for the next level
// down with the resulting byte-sorted runs as the new chunk
// boundaries.
func skaSortAdapter[T Key](e *sortEnv, bucket []T, counts *[256]int, level int, recursionDepth uint32) {
	if len(bucket) < 2 {
		return
	}

	prefixSums := getPrefixSums(counts)
	endOffsets := getEndOffsets(counts, &prefixSums)

	skaSort(bucket, &prefixSums, &endOffsets, level)

	if level == 0 {
		return
	}

	director(e, bucket, counts, level-1, recursionDepth)
}
