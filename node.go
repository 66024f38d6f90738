package plocbvh

// Bvh2Node is a single node in a Bvh2: an AABB plus a signed index.
//
// Index < 0 marks a leaf: the primitive id is -(Index+1) (offset by one
// so that primitive 0 does not collide with internal node 0). Index >=
// 0 marks an internal node whose children are the consecutive pair
// nodes[Index] and nodes[Index+1].
type Bvh2Node struct {
	Aabb  Aabb
	Index int32
}

// IsLeaf reports whether n is a leaf node.
func (n Bvh2Node) IsLeaf() bool {
	return n.Index < 0
}

// PrimitiveID returns the primitive id encoded by a leaf node's Index.
// Only valid when IsLeaf() is true.
func (n Bvh2Node) PrimitiveID() uint32 {
	return uint32(-(n.Index + 1))
}

// leafNode builds a leaf node for the given primitive index.
func leafNode(aabb Aabb, primitiveIndex int) Bvh2Node {
	return Bvh2Node{Aabb: aabb, Index: -int32(primitiveIndex) - 1}
}

// Bvh2 is a flattened binary BVH: an ordered sequence of Bvh2Node of
// length 2N-1 for N>=1 primitives (0 for N=0). The root is always at
// position 0; every internal node's children sit at strictly higher
// indices than the node itself (a "downward" layout).
type Bvh2 struct {
	Nodes []Bvh2Node
}

// Len returns the number of nodes in the tree.
func (b *Bvh2) Len() int {
	return len(b.Nodes)
}

// Empty reports whether the tree has no nodes (built from zero
// primitives).
func (b *Bvh2) Empty() bool {
	return len(b.Nodes) == 0
}
