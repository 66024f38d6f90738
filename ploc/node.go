package ploc

// Node mirrors plocbvh.Bvh2Node's encoding: Index < 0 marks a leaf
// whose primitive id is -(Index+1); Index >= 0 marks an internal node
// whose children are the consecutive pair at Index and Index+1.
type Node struct {
	Box   Box
	Index int32
}

func (n Node) IsLeaf() bool { return n.Index < 0 }

func (n Node) PrimitiveID() uint32 { return uint32(-(n.Index + 1)) }

func leafNode(box Box, primitiveIndex int) Node {
	return Node{Box: box, Index: -int32(primitiveIndex) - 1}
}
