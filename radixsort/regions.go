package radixsort

import "github.com/ajroetker/plocbvh/parallel"

// regions.go implements the parallel, mostly in-place tiled radix
// pass: Omar Obeya, Endrias Kahssay, Edward Fan, and Julian Shun,
// "Theoretically-Efficient and Practical Parallel In-Place Radix
// Sorting" (SPAA 2019).
//
// Each tile is first sorted independently with skaSort. That leaves
// every byte value ("country") scattered across many tile-local runs
// rather than one contiguous final run. generateOutbounds walks the
// tiles once and records every run that sits in the wrong country as
// an edge; listOperations then pairs up each country's inbound and
// outbound edges into swaps of matching length, and those swaps are
// applied in parallel across countries. Any partial swap remainder
// becomes a new edge for the next pass, so the loop drains in a small
// number of rounds rather than needing a full second sorted copy.

// edge is one outbound run of data: a contiguous slice that currently
// sits in country init but needs to end up in country dst.
type edge[T Key] struct {
	dst, init int
	slice     []T
}

// operation pairs an inbound edge with an outbound edge of the same
// length: swapping their slices moves both one step closer to their
// destination country.
type operation[T Key] struct {
	a, b edge[T]
}

// generateOutbounds walks bucket once, comparing the tile-local
// country boundaries (localCounts, one array per tile) against the
// global country boundaries (globalCounts) to find every run of data
// that is not yet in its final country, recording each as an edge.
func generateOutbounds[T Key](bucket []T, localCounts [][256]int, globalCounts *[256]int) []edge[T] {
	var outbounds []edge[T]

	remBucket := bucket
	localTile := 0
	localCountry := 0
	globalCountry := 0
	targetGlobalDist := globalCounts[0]
	targetLocalDist := localCounts[0][0]

	for !(globalCountry == 255 && localCountry == 255 && localTile == len(localCounts)-1) {
		step := targetGlobalDist
		if targetLocalDist < step {
			step = targetLocalDist
		}

		if step != 0 {
			slice := remBucket[:step]
			remBucket = remBucket[step:]

			if localCountry != globalCountry {
				outbounds = append(outbounds, edge[T]{dst: localCountry, init: globalCountry, slice: slice})
			}
		}

		if step == targetGlobalDist && globalCountry < 255 {
			globalCountry++
			targetGlobalDist = globalCounts[globalCountry]
		} else {
			targetGlobalDist -= step
		}

		if step == targetLocalDist && !(localTile == len(localCounts)-1 && localCountry == 255) {
			if localCountry < 255 {
				localCountry++
			} else {
				localTile++
				localCountry = 0
			}
			targetLocalDist = localCounts[localTile][localCountry]
		} else {
			targetLocalDist -= step
		}
	}

	return outbounds
}

// listOperations extracts the edges touching country from outbounds,
// pairs its inbound and outbound edges into length-matched swap
// operations, and returns the remaining (unmatched) edges alongside
// the operations generated for this country.
func listOperations[T Key](country int, outbounds []edge[T]) ([]edge[T], []operation[T]) {
	ob := partitionEdges(outbounds, func(e edge[T]) bool { return e.init != country })
	currentOutbounds := append([]edge[T]{}, outbounds[ob:]...)
	outbounds = outbounds[:ob]

	p := partitionEdges(outbounds, func(e edge[T]) bool { return e.dst != country })
	inbounds := append([]edge[T]{}, outbounds[p:]...)
	outbounds = outbounds[:p]

	var operations []operation[T]

	for {
		if len(inbounds) == 0 {
			outbounds = append(outbounds, currentOutbounds...)
			break
		}
		i := inbounds[len(inbounds)-1]
		inbounds = inbounds[:len(inbounds)-1]

		if len(currentOutbounds) == 0 {
			outbounds = append(outbounds, i)
			outbounds = append(outbounds, inbounds...)
			break
		}
		o := currentOutbounds[len(currentOutbounds)-1]
		currentOutbounds = currentOutbounds[:len(currentOutbounds)-1]

		var op operation[T]
		switch {
		case len(i.slice) == len(o.slice):
			op = operation[T]{i, o}
		case len(i.slice) < len(o.slice):
			sl, rem := o.slice[:len(i.slice)], o.slice[len(i.slice):]
			currentOutbounds = append(currentOutbounds, edge[T]{dst: o.dst, init: o.init, slice: rem})
			op = operation[T]{i, edge[T]{dst: o.dst, init: o.init, slice: sl}}
		default:
			sl, rem := i.slice[:len(o.slice)], i.slice[len(o.slice):]
			inbounds = append(inbounds, edge[T]{dst: i.dst, init: i.init, slice: rem})
			op = operation[T]{edge[T]{dst: i.dst, init: i.init, slice: sl}, o}
		}

		operations = append(operations, op)
	}

	return outbounds, operations
}

// partitionEdges moves every edge for which keep returns true to the
// front, in place, and returns the count kept there.
func partitionEdges[T Key](edges []edge[T], keep func(edge[T]) bool) int {
	i := 0
	for j := range edges {
		if keep(edges[j]) {
			edges[i], edges[j] = edges[j], edges[i]
			i++
		}
	}
	return i
}

func swapSlices[T Key](a, b []T) {
	for i := range a {
		a[i], b[i] = b[i], a[i]
	}
}

// regionsSort sorts bucket in place by byte level: tile it, sort each
// tile independently with skaSort, then resolve the cross-tile
// misplacement via the country/edge swap graph until it drains.
func regionsSort[T Key](e *sortEnv, bucket []T, counts *[256]int, tileCounts [][256]int, tileSize int, level int) {
	threads := e.executor.NumThreads()

	parallel.ParChunksMut(e.executor, bucket, tileSize, func(chunkID int, chunk []T) {
		c := tileCounts[chunkID]
		prefixSums := getPrefixSums(&c)
		endOffsets := getEndOffsets(&c, &prefixSums)
		skaSort(chunk, &prefixSums, &endOffsets, level)
	})

	outbounds := generateOutbounds(bucket, tileCounts, counts)
	var operations []operation[T]

	for len(outbounds) > 0 {
		operations = operations[:0]
		for country := 0; country < 256; country++ {
			var newOps []operation[T]
			outbounds, newOps = listOperations(country, outbounds)
			operations = append(operations, newOps...)
		}

		if len(operations) == 0 {
			break
		}

		chunkSize := len(operations)/threads + 1
		parallel.ParChunksMut(e.executor, operations, chunkSize, func(_ int, chunk []operation[T]) {
			for _, op := range chunk {
				swapSlices(op.a.slice, op.b.slice)
			}
		})

		applied := operations
		operations = nil
		for _, op := range applied {
			i, o := op.a, op.b
			if o.dst != i.init {
				o.init = i.init
				o.slice = i.slice
				outbounds = append(outbounds, o)
			}
		}
	}
}

func regionsSortAdapter[T Key](e *sortEnv, bucket []T, counts *[256]int, tileCounts [][256]int, tileSize int, level int, recursionDepth uint32) {
	if len(bucket) < 2 {
		return
	}

	regionsSort(e, bucket, counts, tileCounts, tileSize, level)

	if level == 0 {
		return
	}

	director(e, bucket, counts, level-1, recursionDepth)
}
