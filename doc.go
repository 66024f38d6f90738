// Package plocbvh builds a two-child bounding volume hierarchy (BVH)
// over a set of axis-aligned bounding boxes using Parallel
// Locally-Ordered Clustering (PLOC), and provides ray traversal against
// the resulting tree.
//
// # Usage
//
//	tree := plocbvh.Build(aabbs)
//
//	ray := plocbvh.NewInfiniteRay(origin, direction)
//	var hitID uint32
//	tree.Traverse(&ray, &hitID, func(r *plocbvh.Ray, primitiveID uint32) float64 {
//	    return myPrimitives[primitiveID].Intersect(r)
//	})
//
// For repeated builds (e.g. per-frame rebuilds of a dynamic scene),
// construct a ploc.Builder once with Preallocate and call Rebuild to
// reuse its working buffers across calls instead of calling Build.
//
// The underlying radix sort (plocbvh/radixsort), Morton encoder
// (plocbvh/morton), and parallel executor (plocbvh/parallel) are
// reusable on their own; see their package docs.
package plocbvh
