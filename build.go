package plocbvh

import (
	"github.com/ajroetker/plocbvh/parallel"
	"github.com/ajroetker/plocbvh/ploc"
)

// Build constructs a two-child BVH over aabbs using Parallel
// Locally-Ordered Clustering. The returned tree's Nodes has length
// 2*len(aabbs)-1 (0 for an empty input), with the root at index 0.
//
// Build is a convenience wrapper over a one-shot ploc.Builder; for
// repeated builds against similarly sized inputs (e.g. a per-frame
// rebuild of a dynamic scene), construct a Builder directly with
// NewBuilder and reuse it via Rebuild instead.
func Build(aabbs []Aabb) Bvh2 {
	boxes := toPlocBoxes(aabbs)
	nodes := ploc.Build(boxes)
	return Bvh2{Nodes: fromPlocNodes(nodes)}
}

// Builder wraps a ploc.Builder, reusing its scratch buffers (and a
// pair of Box/Bvh2Node conversion buffers of its own) across repeated
// Rebuild calls, so that a caller rebuilding a similarly sized scene
// every frame does not regrow them after Preallocate. The radix sort
// and the per-pass bookkeeping still make small per-call allocations.
type Builder struct {
	inner *ploc.Builder

	boxes []ploc.Box
	nodes []ploc.Node
}

// NewBuilder creates a Builder dispatching its parallel phases via
// kind, using up to workers goroutines of real parallelism (0 means
// GOMAXPROCS).
func NewBuilder(kind parallel.Kind, workers int) *Builder {
	return &Builder{inner: ploc.NewBuilder(kind, workers)}
}

// Close releases resources (e.g. a PoolB worker pool) held by b.
func (b *Builder) Close() {
	b.inner.Close()
}

// Preallocate grows every internal buffer to hold n primitives' worth
// of working data, so a subsequent Rebuild(aabbs, out) with
// len(aabbs) <= n does not regrow them. out itself is not
// preallocated, and the radix sort and per-pass bookkeeping still make
// small per-call allocations.
func (b *Builder) Preallocate(n int) {
	b.inner.Preallocate(n)
	if cap(b.boxes) < n {
		b.boxes = make([]ploc.Box, n)
	}
	if n > 0 && cap(b.nodes) < 2*n-1 {
		b.nodes = make([]ploc.Node, 2*n-1)
	}
}

// Rebuild constructs a BVH over aabbs, writing it into *out (reusing
// its backing array when it has enough capacity). Safe to call
// repeatedly on the same Builder and *out.
func (b *Builder) Rebuild(aabbs []Aabb, out *Bvh2) {
	n := len(aabbs)
	if cap(b.boxes) < n {
		b.boxes = make([]ploc.Box, n)
	}
	b.boxes = b.boxes[:n]
	for i, a := range aabbs {
		a.debugAssertValid()
		b.boxes[i] = ploc.Box{
			Min: [3]float64{a.Min.X, a.Min.Y, a.Min.Z},
			Max: [3]float64{a.Max.X, a.Max.Y, a.Max.Z},
		}
	}

	b.inner.Rebuild(b.boxes, &b.nodes)

	if cap(out.Nodes) < len(b.nodes) {
		out.Nodes = make([]Bvh2Node, len(b.nodes))
	}
	out.Nodes = out.Nodes[:len(b.nodes)]
	for i, n := range b.nodes {
		out.Nodes[i] = Bvh2Node{
			Aabb: Aabb{
				Min: vec3(n.Box.Min[0], n.Box.Min[1], n.Box.Min[2]),
				Max: vec3(n.Box.Max[0], n.Box.Max[1], n.Box.Max[2]),
			},
			Index: n.Index,
		}
	}
}

func toPlocBoxes(aabbs []Aabb) []ploc.Box {
	boxes := make([]ploc.Box, len(aabbs))
	for i, a := range aabbs {
		a.debugAssertValid()
		boxes[i] = ploc.Box{
			Min: [3]float64{a.Min.X, a.Min.Y, a.Min.Z},
			Max: [3]float64{a.Max.X, a.Max.Y, a.Max.Z},
		}
	}
	return boxes
}

func fromPlocNodes(nodes []ploc.Node) []Bvh2Node {
	out := make([]Bvh2Node, len(nodes))
	for i, n := range nodes {
		out[i] = Bvh2Node{
			Aabb: Aabb{
				Min: vec3(n.Box.Min[0], n.Box.Min[1], n.Box.Min[2]),
				Max: vec3(n.Box.Max[0], n.Box.Max[1], n.Box.Max[2]),
			},
			Index: n.Index,
		}
	}
	return out
}
