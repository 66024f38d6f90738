package plocbvh

const traversalStackCapacity = 96

// IntersectFunc evaluates a ray against a single primitive and returns
// the hit distance, or any value >= ray.Tmax to report a miss.
type IntersectFunc func(ray *Ray, primitiveID uint32) float64

// Traversal is the resumable BVH traversal state: a small stack of
// pending node indices plus the ray being traced.
type Traversal struct {
	stack []int32
	Ray   Ray
}

// NewTraversal creates a Traversal seeded with the tree's root, if any.
func (b *Bvh2) NewTraversal(ray Ray) Traversal {
	stack := make([]int32, 0, traversalStackCapacity)
	if !b.Empty() {
		stack = append(stack, 0)
	}
	return Traversal{stack: stack, Ray: ray}
}

// Reinit resets t to trace a new ray from the tree root, reusing the
// stack's backing array.
func (t *Traversal) Reinit(b *Bvh2, ray Ray) {
	t.stack = t.stack[:0]
	if !b.Empty() {
		t.stack = append(t.stack, 0)
	}
	t.Ray = ray
}

// Next advances the resumable traversal until it finds a closer
// primitive hit or drains the stack. On a hit it records closestT and
// hitID, updates t.Ray.Tmax to the new closest distance, and returns
// true; callers re-enter in a loop until it returns false.
func (t *Traversal) Next(b *Bvh2, closestT *float64, hitID *uint32, intersect IntersectFunc) bool {
	for len(t.stack) > 0 {
		last := len(t.stack) - 1
		nodeIndex := t.stack[last]
		t.stack = t.stack[:last]

		node := &b.Nodes[int(nodeIndex)]
		if node.Aabb.RayIntersect(&t.Ray) >= t.Ray.Tmax {
			continue
		}

		if node.IsLeaf() {
			primitiveID := node.PrimitiveID()
			d := intersect(&t.Ray, primitiveID)
			if d < t.Ray.Tmax {
				*hitID = primitiveID
				*closestT = d
				t.Ray.Tmax = d
				return true
			}
			continue
		}

		t.stack = append(t.stack, node.Index, node.Index+1)
	}
	return false
}

// Traverse runs a traversal to completion against ray, updating
// ray.Tmax and hitID as closer primitives are found. It is equivalent
// to draining the resumable form in a loop.
func (b *Bvh2) Traverse(ray *Ray, hitID *uint32, intersect IntersectFunc) {
	state := b.NewTraversal(*ray)
	var closestT float64
	for state.Next(b, &closestT, hitID, intersect) {
	}
	*ray = state.Ray
}
