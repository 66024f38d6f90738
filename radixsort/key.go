// Package radixsort implements a generic, byte-at-a-time MSB-first
// radix sort over any key type implementing Key, dispatching between a
// comparative fallback for small inputs and two in-place radix
// strategies (a single-tile ska_sort and a parallel, tiled regions
// sort) depending on input size and sortedness.
package radixsort

// Key is implemented by any type that can be radix-sorted: a fixed
// number of most-significant-byte-first "levels", each of which
// extracts one byte to bucket on. Level Levels()-1 is the most
// significant byte; level 0 is the least significant.
//
// Implementations should be cheap value types: the sorters pass data
// by slice and swap elements in place, so Key is satisfied by value
// receivers on the element type itself, not a pointer to it.
type Key interface {
	// Levels returns the number of bytes this key type is sorted
	// over, most significant first.
	Levels() int
	// ByteAt returns the byte at the given level, where level
	// Levels()-1 is most significant.
	ByteAt(level int) byte
}
