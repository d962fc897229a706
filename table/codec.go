package table

import "encoding/binary"

// NodeType distinguishes a page's two possible interpretations.
type NodeType uint8

const (
	NodeInternal NodeType = 0
	NodeLeaf     NodeType = 1
)

// The Page Codec: pure accessors for every header and body field of a
// page, each computed by fixed offset arithmetic. Nothing here allocates
// or touches the pager — a page IS the node, and these functions only ever
// see the PageSize-byte buffer the pager hands back.

func NodeTypeOf(page []byte) NodeType      { return NodeType(page[nodeTypeOffset]) }
func SetNodeType(page []byte, t NodeType)  { page[nodeTypeOffset] = byte(t) }
func IsRoot(page []byte) bool              { return page[isRootOffset] != 0 }
func SetIsRoot(page []byte, isRoot bool) {
	if isRoot {
		page[isRootOffset] = 1
	} else {
		page[isRootOffset] = 0
	}
}

func Parent(page []byte) uint32 {
	return binary.LittleEndian.Uint32(page[parentOffset : parentOffset+parentSize])
}

func SetParent(page []byte, pageNum uint32) {
	binary.LittleEndian.PutUint32(page[parentOffset:parentOffset+parentSize], pageNum)
}

// --- leaf body ---

func NumCells(page []byte) uint32 {
	return binary.LittleEndian.Uint32(page[leafNumCellsOffset : leafNumCellsOffset+leafNumCellsSize])
}

func SetNumCells(page []byte, n uint32) {
	binary.LittleEndian.PutUint32(page[leafNumCellsOffset:leafNumCellsOffset+leafNumCellsSize], n)
}

func NextLeaf(page []byte) uint32 {
	return binary.LittleEndian.Uint32(page[leafNextLeafOffset : leafNextLeafOffset+leafNextLeafSize])
}

func SetNextLeaf(page []byte, pageNum uint32) {
	binary.LittleEndian.PutUint32(page[leafNextLeafOffset:leafNextLeafOffset+leafNextLeafSize], pageNum)
}

func cellOffset(i uint32) uint32 { return LeafNodeHeaderSize + i*LeafNodeCellSize }

// LeafCell returns the full [key|row] slice for cell i.
func LeafCell(page []byte, i uint32) []byte {
	off := cellOffset(i)
	return page[off : off+LeafNodeCellSize]
}

func LeafKey(page []byte, i uint32) uint32 {
	off := cellOffset(i)
	return binary.LittleEndian.Uint32(page[off : off+leafKeySize])
}

func SetLeafKey(page []byte, i uint32, key uint32) {
	off := cellOffset(i)
	binary.LittleEndian.PutUint32(page[off:off+leafKeySize], key)
}

// LeafValue returns the serialized-row slice for cell i.
func LeafValue(page []byte, i uint32) []byte {
	off := cellOffset(i) + leafKeySize
	return page[off : off+RowSize]
}

// InitLeaf resets page to an empty, non-root leaf node.
func InitLeaf(page []byte) {
	SetNodeType(page, NodeLeaf)
	SetIsRoot(page, false)
	SetNumCells(page, 0)
	SetNextLeaf(page, 0)
}

// --- internal body ---

func NumKeys(page []byte) uint32 {
	return binary.LittleEndian.Uint32(page[internalNumKeysOffset : internalNumKeysOffset+internalNumKeysSize])
}

func SetNumKeys(page []byte, n uint32) {
	binary.LittleEndian.PutUint32(page[internalNumKeysOffset:internalNumKeysOffset+internalNumKeysSize], n)
}

func RightChild(page []byte) uint32 {
	return binary.LittleEndian.Uint32(page[internalRightChildOffset : internalRightChildOffset+internalRightChildSize])
}

func SetRightChild(page []byte, pageNum uint32) {
	binary.LittleEndian.PutUint32(page[internalRightChildOffset:internalRightChildOffset+internalRightChildSize], pageNum)
}

func internalCellOffset(i uint32) uint32 {
	return InternalNodeHeaderSize + i*InternalNodeCellSize
}

// Child returns the page number of the i-th child. i == NumKeys(page)
// returns the right child; i beyond that is a programmer error.
func Child(page []byte, i uint32) uint32 {
	numKeys := NumKeys(page)
	if i > numKeys {
		panic(fatalf("codec: internal child index %d exceeds num_keys %d", i, numKeys))
	}
	if i == numKeys {
		return RightChild(page)
	}
	off := internalCellOffset(i)
	return binary.LittleEndian.Uint32(page[off : off+internalChildSize])
}

// SetChild overwrites the child pointer at cell i (i must be < NumKeys).
func SetChild(page []byte, i uint32, pageNum uint32) {
	off := internalCellOffset(i)
	binary.LittleEndian.PutUint32(page[off:off+internalChildSize], pageNum)
}

func InternalKey(page []byte, i uint32) uint32 {
	off := internalCellOffset(i) + internalChildSize
	return binary.LittleEndian.Uint32(page[off : off+internalKeySize])
}

func SetInternalKey(page []byte, i uint32, key uint32) {
	off := internalCellOffset(i) + internalChildSize
	binary.LittleEndian.PutUint32(page[off:off+internalKeySize], key)
}

// InitInternal resets page to an empty, non-root internal node.
func InitInternal(page []byte) {
	SetNodeType(page, NodeInternal)
	SetIsRoot(page, false)
	SetNumKeys(page, 0)
}

// MaxKey returns the last cell's key for a leaf (its largest key), or the
// last separator key for an internal node. For an internal node that is
// the largest key under its last keyed child; keys under the right child
// are larger and are not considered.
func MaxKey(page []byte) uint32 {
	if NodeTypeOf(page) == NodeLeaf {
		return LeafKey(page, NumCells(page)-1)
	}
	return InternalKey(page, NumKeys(page)-1)
}
