package ploc

import (
	"math"
	"testing"

	"github.com/ajroetker/plocbvh/parallel"
)

func cube(cx, cy, cz, half float64) Box {
	return Box{
		Min: [3]float64{cx - half, cy - half, cz - half},
		Max: [3]float64{cx + half, cy + half, cz + half},
	}
}

func unionAll(boxes []Box) Box {
	total := EmptyBox()
	for _, b := range boxes {
		total = total.Union(b)
	}
	return total
}

func checkInvariants(t *testing.T, boxes []Box, nodes []Node) {
	t.Helper()

	n := len(boxes)
	if n == 0 {
		if len(nodes) != 0 {
			t.Fatalf("len(nodes) = %d, want 0 for empty input", len(nodes))
		}
		return
	}

	if want := 2*n - 1; len(nodes) != want {
		t.Fatalf("len(nodes) = %d, want %d", len(nodes), want)
	}

	seen := make([]bool, n)
	var walk func(i int) Box
	walk = func(i int) Box {
		node := nodes[i]
		if node.IsLeaf() {
			id := node.PrimitiveID()
			if int(id) >= n {
				t.Fatalf("leaf at %d has out-of-range primitive id %d", i, id)
			}
			if seen[id] {
				t.Fatalf("primitive id %d visited more than once", id)
			}
			seen[id] = true
			return node.Box
		}
		if int(node.Index) <= i {
			t.Fatalf("internal node %d has non-increasing child index %d", i, node.Index)
		}
		if int(node.Index)+1 >= len(nodes) {
			t.Fatalf("internal node %d child index %d out of range", i, node.Index)
		}
		left := walk(int(node.Index))
		right := walk(int(node.Index) + 1)
		want := left.Union(right)
		for k := 0; k < 3; k++ {
			if math.Abs(want.Min[k]-node.Box.Min[k]) > 1e-9 || math.Abs(want.Max[k]-node.Box.Max[k]) > 1e-9 {
				t.Fatalf("internal node %d box %v does not contain children union %v", i, node.Box, want)
			}
		}
		return node.Box
	}
	walk(0)

	for id, ok := range seen {
		if !ok {
			t.Fatalf("primitive id %d never appeared as a leaf", id)
		}
	}

	root := nodes[0].Box
	want := unionAll(boxes)
	for k := 0; k < 3; k++ {
		if math.Abs(root.Min[k]-want.Min[k]) > 1e-9 || math.Abs(root.Max[k]-want.Max[k]) > 1e-9 {
			t.Fatalf("root box %v != union of inputs %v", root, want)
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	nodes := Build(nil)
	checkInvariants(t, nil, nodes)
}

func TestBuildSingleBox(t *testing.T) {
	boxes := []Box{cube(1, 2, 3, 0.5)}
	nodes := Build(boxes)
	checkInvariants(t, boxes, nodes)
	if !nodes[0].IsLeaf() {
		t.Fatal("single-primitive tree root should be a leaf")
	}
}

func TestBuildTwoDisjointBoxes(t *testing.T) {
	boxes := []Box{cube(0, 0, 0, 0.5), cube(100, 100, 100, 0.5)}
	nodes := Build(boxes)
	checkInvariants(t, boxes, nodes)
	if nodes[0].IsLeaf() {
		t.Fatal("two-primitive tree root should be an internal node")
	}
}

func TestBuildAllCoincidentBoxes(t *testing.T) {
	boxes := make([]Box, 64)
	for i := range boxes {
		boxes[i] = cube(5, 5, 5, 0.1)
	}
	nodes := Build(boxes)
	checkInvariants(t, boxes, nodes)
}

func TestBuildGridOfCubes(t *testing.T) {
	var boxes []Box
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			for z := 0; z < 10; z++ {
				boxes = append(boxes, cube(float64(x), float64(y), float64(z), 0.25))
			}
		}
	}
	nodes := Build(boxes)
	checkInvariants(t, boxes, nodes)
}

func TestBuildAcrossAllSchedulerKinds(t *testing.T) {
	var boxes []Box
	for i := 0; i < 500; i++ {
		f := float64(i)
		boxes = append(boxes, cube(math.Mod(f*37, 211), math.Mod(f*53, 181), math.Mod(f*71, 149), 0.5))
	}

	for _, kind := range []parallel.Kind{
		parallel.SequentialOptimised,
		parallel.Sequential,
		parallel.PoolA,
		parallel.PoolB,
		parallel.PoolC,
	} {
		b := NewBuilder(kind, 0)
		var nodes []Node
		b.Rebuild(boxes, &nodes)
		checkInvariants(t, boxes, nodes)
		b.Close()
	}
}

func TestBuilderPreallocateThenRebuildReusesBuffers(t *testing.T) {
	b := NewBuilder(parallel.PoolA, 2)
	defer b.Close()
	b.Preallocate(256)

	boxes := make([]Box, 200)
	for i := range boxes {
		boxes[i] = cube(float64(i), float64(i*3%17), float64(i*7%23), 0.5)
	}

	var nodes []Node
	b.Rebuild(boxes, &nodes)
	checkInvariants(t, boxes, nodes)

	// Rebuild again against the same Builder and output slice.
	for i := range boxes {
		boxes[i] = cube(float64(i*2), float64(i*5%13), float64(i*11%19), 0.5)
	}
	b.Rebuild(boxes, &nodes)
	checkInvariants(t, boxes, nodes)
}

func TestNewBuilderExplicitWorkerCount(t *testing.T) {
	b := NewBuilder(parallel.PoolB, 3)
	defer b.Close()
	boxes := []Box{cube(0, 0, 0, 1), cube(10, 0, 0, 1), cube(20, 0, 0, 1), cube(30, 0, 0, 1)}
	var nodes []Node
	b.Rebuild(boxes, &nodes)
	checkInvariants(t, boxes, nodes)
}
