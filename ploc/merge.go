package ploc

import (
	"math"

	"github.com/ajroetker/plocbvh/parallel"
)

// nextNodeIndices records, per current-generation node, whether it
// merges this pass and with whom. left == math.MaxUint32 marks "skip"
// (its partner, the next node, records the merge from its side); right
// == math.MaxUint32 marks "carry forward unmerged".
type nextNodeIndices struct {
	left, right uint32
}

const skipIndex = math.MaxUint32

// mergeUntilRoot repeatedly pairs nodes in current with their nearest
// unmerged neighbor until one node remains, writing internal nodes
// into nodes (counting down from the end) as they're created, then
// places the final root at nodes[0].
//
// current and scratch are current and next generation buffers that
// get swapped each pass; both must have capacity for len(current)
// elements (scratch is expected to arrive with length 0).
func (b *Builder) mergeUntilRoot(current, scratch, nodes []Node) {
	insertIndex := len(nodes)
	merge := reuseInt8(&b.merge, len(current))

	next := scratch
	for len(current) > 1 {
		calculateMergeDirections(b.executor, current, merge[:len(current)])

		next = next[:0]
		if b.executor.Kind() == parallel.SequentialOptimised || len(current) < parallelMergeThreshold {
			next = mergeSequentialPass(current, merge, nodes, &insertIndex, next)
		} else {
			nextInd := reuseNextInd(&b.nextInd, len(current))
			next = mergeParallelPass(b.executor, current, merge, nextInd, nodes, &insertIndex, next)
		}

		current, next = next, current
	}

	if insertIndex > 0 {
		insertIndex--
	}
	nodes[insertIndex] = current[0]

	// Save both scratch buffers back for reuse by the next Rebuild
	// call; which physical array ends up in bufA vs bufB doesn't
	// matter, only that both are retained.
	b.bufA, b.bufB = current, next
}

// calculateMergeDirections decides, for every adjacent pair in
// current, which of the two prefers to merge with the other: -1 means
// "prefer the node before me", +1 means "prefer the node after me".
// The final node always prefers backward since it has no successor.
func calculateMergeDirections(e *parallel.Executor, current []Node, merge []int8) {
	count := len(current) - 1
	if count <= 0 {
		merge[len(current)-1] = -1
		return
	}

	if e.Kind() == parallel.SequentialOptimised {
		lastCost := math.Inf(1)
		for i := 0; i < count; i++ {
			cost := current[i].Box.Union(current[i+1].Box).HalfArea()
			if lastCost < cost {
				merge[i] = -1
			} else {
				merge[i] = 1
			}
			lastCost = cost
		}
	} else {
		threads := e.NumThreads()
		chunkSize := count / threads
		if chunkSize < 1 {
			chunkSize = 1
		}
		parallel.ParChunksMut(e, merge[:count], chunkSize, func(chunkID int, chunk []int8) {
			start := chunkID * chunkSize
			var lastCost float64
			if start == 0 {
				lastCost = math.Inf(1)
			} else {
				lastCost = current[start-1].Box.Union(current[start].Box).HalfArea()
			}
			for localN := range chunk {
				i := localN + start
				cost := current[i].Box.Union(current[i+1].Box).HalfArea()
				if lastCost < cost {
					chunk[localN] = -1
				} else {
					chunk[localN] = 1
				}
				lastCost = cost
			}
		})
	}

	// The last node has nothing after it, so it always prefers the
	// node before it.
	merge[len(current)-1] = -1
}

// mergeSequentialPass walks current once, merging any adjacent pair
// that agree on each other's preferred partner, and returns the next
// generation (next, grown by append).
func mergeSequentialPass(current []Node, merge []int8, nodes []Node, insertIndex *int, next []Node) []Node {
	index := 0
	for index < len(current) {
		indexOffset := int(merge[index])
		bestIndex := index + indexOffset

		if int(merge[bestIndex])+bestIndex != index {
			next = append(next, current[index])
			index++
			continue
		}

		if bestIndex > index {
			index++
			continue
		}

		left := current[index]
		right := current[bestIndex]

		*insertIndex -= 2
		ii := *insertIndex

		next = append(next, Node{Box: left.Box.Union(right.Box), Index: int32(ii)})
		nodes[ii] = left
		nodes[ii+1] = right

		if indexOffset == 1 {
			index += 2
		} else {
			index++
		}
	}
	return next
}

// mergeParallelPass is mergeSequentialPass split into an independent
// per-node decision recorded into nextInd (run across the executor)
// followed by a single-threaded apply step that builds next and
// writes merged pairs into nodes. The decision step is embarrassingly
// parallel; the apply step must run in original order so that
// insertIndex counts down deterministically.
func mergeParallelPass(e *parallel.Executor, current []Node, merge []int8, nextInd []nextNodeIndices, nodes []Node, insertIndex *int, next []Node) []Node {
	threads := e.NumThreads()
	chunkSize := ceilDiv(len(current), threads)

	parallel.ParChunksMut(e, nextInd[:len(current)], chunkSize, func(chunkID int, chunk []nextNodeIndices) {
		start := chunkID * chunkSize
		for dataIndex := range chunk {
			mergeIndex := start + dataIndex
			indexOffset := int(merge[mergeIndex])
			bestIndex := mergeIndex + indexOffset

			if int(merge[bestIndex])+bestIndex != mergeIndex {
				chunk[dataIndex] = nextNodeIndices{left: uint32(mergeIndex), right: skipIndex}
			} else if bestIndex <= mergeIndex {
				chunk[dataIndex] = nextNodeIndices{left: uint32(mergeIndex), right: uint32(bestIndex)}
			} else {
				chunk[dataIndex] = nextNodeIndices{left: skipIndex}
			}
		}
	})

	for _, nd := range nextInd[:len(current)] {
		if nd.left == skipIndex {
			continue
		}
		if nd.right == skipIndex {
			next = append(next, current[nd.left])
			continue
		}

		left := current[nd.left]
		right := current[nd.right]

		*insertIndex -= 2
		ii := *insertIndex

		next = append(next, Node{Box: left.Box.Union(right.Box), Index: int32(ii)})
		nodes[ii] = left
		nodes[ii+1] = right
	}

	return next
}
