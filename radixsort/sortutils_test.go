package radixsort

import "testing"

// byteKey sorts plain bytes on a single level, letting these tests
// exercise getCounts and the count helpers directly without the full
// u64 key.
type byteKey byte

func (k byteKey) Levels() int          { return 1 }
func (k byteKey) ByteAt(level int) byte { return byte(k) }

func toByteKeys(vals []byte) []byteKey {
	out := make([]byteKey, len(vals))
	for i, v := range vals {
		out[i] = byteKey(v)
	}
	return out
}

func TestGetCountsSortedness(t *testing.T) {
	unsorted := toByteKeys([]byte{0, 5, 2, 3, 1})
	if _, sorted := getCounts(unsorted, 0); sorted {
		t.Fatal("expected unsorted data to be reported unsorted")
	}

	sorted := toByteKeys([]byte{0, 0, 1, 1, 2})
	if _, ok := getCounts(sorted, 0); !ok {
		t.Fatal("expected sorted data to be reported sorted")
	}
}

func TestIsHomogenousBucket(t *testing.T) {
	var counts [256]int
	counts[3] = 5
	if !isHomogenousBucket(&counts) {
		t.Fatal("single nonzero bucket should be homogeneous")
	}
	counts[9] = 1
	if isHomogenousBucket(&counts) {
		t.Fatal("two nonzero buckets should not be homogeneous")
	}
}

func TestPrefixSumsAndEndOffsets(t *testing.T) {
	var counts [256]int
	counts[0] = 3
	counts[1] = 2
	counts[255] = 4

	prefixSums := getPrefixSums(&counts)
	if prefixSums[0] != 0 || prefixSums[1] != 3 || prefixSums[255] != 5 {
		t.Fatalf("unexpected prefix sums: %v", [3]int{prefixSums[0], prefixSums[1], prefixSums[255]})
	}

	endOffsets := getEndOffsets(&counts, &prefixSums)
	if endOffsets[0] != prefixSums[1] {
		t.Fatalf("end_offsets[0]=%d should equal prefix_sums[1]=%d", endOffsets[0], prefixSums[1])
	}
	if endOffsets[255] != counts[255]+prefixSums[255] {
		t.Fatalf("end_offsets[255] computed wrong")
	}
}
