package radixsort

import "sort"

// comparativeSort is the small-input fallback: an ordinary comparison
// sort driven by the radix key's bytes from startLevel down to 0,
// instead of a type-specific Less. It is slower per-comparison than a
// radix pass but has none of a radix sort's setup cost (count arrays,
// tile buffers), which wins out for the handful of elements this is
// actually used for.
func comparativeSort[T Key](bucket []T, startLevel int) {
	if len(bucket) < 2 {
		return
	}
	sort.Slice(bucket, func(i, j int) bool {
		a, b := bucket[i], bucket[j]
		for level := startLevel; ; level-- {
			ab, bb := a.ByteAt(level), b.ByteAt(level)
			if ab != bb {
				return ab < bb
			}
			if level == 0 {
				return false
			}
		}
	})
}
