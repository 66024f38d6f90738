package morton

import "testing"

func TestSplitBy3Interleaves(t *testing.T) {
	// Every bit of a maps to bit 3*i of the split result; no two set
	// bits should ever collide once combined across three axes.
	for _, a := range []uint32{0, 1, 2, 3, 0x1fffff, 0xaaaaa, 0x155555} {
		x := SplitBy3(a)
		y := SplitBy3(a) << 1
		z := SplitBy3(a) << 2
		if x&y != 0 || x&z != 0 || y&z != 0 {
			t.Fatalf("SplitBy3(%#x) shifted copies overlap: x=%#x y=%#x z=%#x", a, x, y, z)
		}
	}
}

func TestEncodeMonotonicAlongSingleAxis(t *testing.T) {
	var prev uint64
	for i := uint32(0); i < 1<<21; i += 997 {
		code := Encode(i, 0, 0)
		if i > 0 && code <= prev {
			t.Fatalf("Encode not monotonic along x at i=%d: code=%d prev=%d", i, code, prev)
		}
		prev = code
	}
}

func TestEncodeDistinctAxesDistinctCodes(t *testing.T) {
	if Encode(1, 0, 0) == Encode(0, 1, 0) {
		t.Fatal("Encode(1,0,0) should differ from Encode(0,1,0)")
	}
	if Encode(0, 0, 1) == Encode(0, 1, 0) {
		t.Fatal("Encode(0,0,1) should differ from Encode(0,1,0)")
	}
}

func TestEncodeZeroIsZero(t *testing.T) {
	if Encode(0, 0, 0) != 0 {
		t.Fatalf("Encode(0,0,0) = %d, want 0", Encode(0, 0, 0))
	}
}

func TestQuantizeClampsOutOfRangePoints(t *testing.T) {
	// A point far outside [min, min+1/scale] should clamp to the same
	// code as the corresponding boundary corner, not wrap or panic.
	below := Quantize(-100, -100, -100, 0, 0, 0, 1, 1, 1)
	corner := Quantize(0, 0, 0, 0, 0, 0, 1, 1, 1)
	if below != corner {
		t.Fatalf("out-of-range point did not clamp to boundary: got %d want %d", below, corner)
	}

	above := Quantize(100, 100, 100, 0, 0, 0, 1, 1, 1)
	farCorner := Quantize(1, 1, 1, 0, 0, 0, 1, 1, 1)
	if above != farCorner {
		t.Fatalf("out-of-range point did not clamp to far boundary: got %d want %d", above, farCorner)
	}
}

func TestKeyByteAtRoundTrips(t *testing.T) {
	k := Key{Index: 42, Code: 0x0102030405060708}
	if k.ByteAt(7) != 0x01 {
		t.Fatalf("ByteAt(7) = %#x, want 0x01 (most significant byte)", k.ByteAt(7))
	}
	if k.ByteAt(0) != 0x08 {
		t.Fatalf("ByteAt(0) = %#x, want 0x08 (least significant byte)", k.ByteAt(0))
	}
	if k.Levels() != 8 {
		t.Fatalf("Levels() = %d, want 8", k.Levels())
	}
}
