// Package ploc builds a flat, 2N-1-node binary BVH over a slice of
// bounding boxes via Parallel Locally-Ordered Clustering: primitives
// are ordered by Morton code, then repeatedly paired with their
// nearest unmerged neighbor (by union half-area) until only the root
// remains.
//
// Builder holds every buffer the build needs so that repeated calls
// via Rebuild reuse one allocation instead of allocating fresh scratch
// space on every call, which matters for a builder meant to run once
// per frame against a scene of similar size.
package ploc

import (
	"github.com/ajroetker/plocbvh/morton"
	"github.com/ajroetker/plocbvh/parallel"
	"github.com/ajroetker/plocbvh/radixsort"
)

// parallelMergeThreshold gates the cheaper but less load-balanced
// sequential merge-apply loop versus the record/apply split used for
// larger generations.
const parallelMergeThreshold = 10_000

// Builder holds the reusable scratch buffers for one BVH build
// pipeline. The zero Builder is not valid; use NewBuilder.
type Builder struct {
	executor *parallel.Executor

	bufA, bufB []Node
	mortons    []morton.Key
	merge      []int8
	nextInd    []nextNodeIndices
}

// NewBuilder creates a Builder dispatching its parallel phases via
// kind, using up to workers goroutines of real parallelism (0 means
// GOMAXPROCS). PoolB (persistent worker pool) is the usual choice for
// a builder that will run Rebuild many times.
func NewBuilder(kind parallel.Kind, workers int) *Builder {
	if workers <= 0 {
		return &Builder{executor: parallel.New(kind)}
	}
	return &Builder{executor: parallel.NewWithWorkers(kind, workers)}
}

// Close releases resources (e.g. a PoolB worker pool) held by b's
// executor.
func (b *Builder) Close() {
	b.executor.Close()
}

// Preallocate grows every internal buffer to hold n primitives'
// worth of working data, so a subsequent Rebuild(boxes, out) with
// len(boxes) <= n does not regrow them. out itself is not
// preallocated, and the radix sort and per-pass bookkeeping still make
// small per-call allocations.
func (b *Builder) Preallocate(n int) {
	reuseNodes(&b.bufA, n)
	reuseNodes(&b.bufB, n)
	reuseMortons(&b.mortons, n)
	reuseInt8(&b.merge, n)
	reuseNextInd(&b.nextInd, n)
}

// Build constructs a fresh BVH over boxes and returns its flattened
// node array (root at index 0). Equivalent to calling Rebuild against
// a new Builder.
func Build(boxes []Box) []Node {
	b := NewBuilder(parallel.PoolB, 0)
	defer b.Close()
	var out []Node
	b.Rebuild(boxes, &out)
	return out
}

// Rebuild constructs a BVH over boxes, writing the flattened node
// array into *out (reusing its backing array when it has enough
// capacity). Safe to call repeatedly on the same Builder and *out.
func (b *Builder) Rebuild(boxes []Box, out *[]Node) {
	n := len(boxes)
	if n == 0 {
		*out = (*out)[:0]
		return
	}
	if n == 1 {
		nodes := reuseNodes(out, 1)
		nodes[0] = leafNode(boxes[0], 0)
		return
	}

	bufA := reuseNodes(&b.bufA, n)
	totalBox := b.initLeaves(boxes, bufA)

	bufB := reuseNodes(&b.bufB, n)
	b.sortMortonInto(bufA, bufB, totalBox)

	nodesCount := 2*n - 1
	nodes := reuseNodes(out, nodesCount)

	b.mergeUntilRoot(bufB, bufA[:0], nodes)
}

// initLeaves fills current with one leaf node per box and returns the
// union of every box, computed per-chunk and reduced afterward so
// that no shared accumulator needs locking during the parallel pass —
// the Go analogue of the reference builder's thread-local AABB.
func (b *Builder) initLeaves(boxes []Box, current []Node) Box {
	n := len(boxes)

	if b.executor.Kind() == parallel.SequentialOptimised {
		total := EmptyBox()
		for i, box := range boxes {
			total = total.Union(box)
			current[i] = leafNode(box, i)
		}
		return total
	}

	threads := b.executor.NumThreads()
	chunkSize := n / threads
	if chunkSize < 1 {
		chunkSize = 1
	}
	chunkCount := ceilDiv(n, chunkSize)
	localBoxes := make([]Box, chunkCount)
	for i := range localBoxes {
		localBoxes[i] = EmptyBox()
	}

	parallel.ParChunksMut(b.executor, current, chunkSize, func(chunkID int, chunk []Node) {
		start := chunkID * chunkSize
		local := EmptyBox()
		for i := range chunk {
			primIndex := start + i
			box := boxes[primIndex]
			local = local.Union(box)
			chunk[i] = leafNode(box, primIndex)
		}
		localBoxes[chunkID] = local
	})

	total := EmptyBox()
	for _, lb := range localBoxes {
		total = total.Union(lb)
	}
	return total
}

// safeScale returns 1/d, or 0 when d is non-positive (a degenerate,
// zero-extent axis across every primitive's center): every point then
// quantizes to the same coordinate on that axis instead of producing
// NaN/Inf through the Morton encode.
func safeScale(d float64) float64 {
	if d <= 0 {
		return 0
	}
	return 1 / d
}

// sortMortonInto computes each node's Morton code (quantized against
// the scene-wide totalBox), radix-sorts the codes, and writes current
// reordered into sorted.
func (b *Builder) sortMortonInto(current, sorted []Node, totalBox Box) {
	n := len(current)
	diag := totalBox.Diagonal()
	scale := [3]float64{safeScale(diag[0]), safeScale(diag[1]), safeScale(diag[2])}
	boxMin := totalBox.Min
	offset := [3]float64{-boxMin[0] * scale[0], -boxMin[1] * scale[1], -boxMin[2] * scale[2]}

	threads := b.executor.NumThreads()

	mortons := reuseMortons(&b.mortons, n)
	parallel.ParMap(b.executor, mortons, threads, func(i int, m *morton.Key) {
		c := current[i].Box.Center()
		px := c[0]*scale[0] + offset[0]
		py := c[1]*scale[1] + offset[1]
		pz := c[2]*scale[2] + offset[2]
		*m = morton.Key{Index: i, Code: morton.EncodeUnorm(px, py, pz)}
	})

	radixsort.Sort(b.executor, mortons)

	parallel.ParMap(b.executor, sorted, threads, func(i int, nd *Node) {
		*nd = current[mortons[i].Index]
	})
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }

func reuseNodes(buf *[]Node, n int) []Node {
	if cap(*buf) < n {
		*buf = make([]Node, n)
	} else {
		*buf = (*buf)[:n]
	}
	return *buf
}

func reuseMortons(buf *[]morton.Key, n int) []morton.Key {
	if cap(*buf) < n {
		*buf = make([]morton.Key, n)
	} else {
		*buf = (*buf)[:n]
	}
	return *buf
}

func reuseInt8(buf *[]int8, n int) []int8 {
	if cap(*buf) < n {
		*buf = make([]int8, n)
	} else {
		*buf = (*buf)[:n]
	}
	return *buf
}

func reuseNextInd(buf *[]nextNodeIndices, n int) []nextNodeIndices {
	if cap(*buf) < n {
		*buf = make([]nextNodeIndices, n)
	} else {
		*buf = (*buf)[:n]
	}
	return *buf
}
