package table

import (
	"bplusdb/pager"
)

// Row field layout. Username and email are fixed-width, null-terminated
// byte arrays; the extra byte over the stated content maximum holds the
// terminator.
const (
	UsernameMaxLen = 32
	EmailMaxLen    = 255

	usernameFieldSize = UsernameMaxLen + 1
	emailFieldSize    = EmailMaxLen + 1

	idOffset       = 0
	idSize         = 4
	usernameOffset = idOffset + idSize
	emailOffset    = usernameOffset + usernameFieldSize

	// RowSize is the serialized size of one Row: 4 + 33 + 256.
	RowSize = idSize + usernameFieldSize + emailFieldSize
)

// Common node header layout, shared by leaf and internal nodes.
const (
	nodeTypeOffset = 0
	nodeTypeSize   = 1

	isRootOffset = nodeTypeOffset + nodeTypeSize
	isRootSize   = 1

	parentOffset = isRootOffset + isRootSize
	parentSize   = 4

	// CommonNodeHeaderSize is the byte size of the header fields every
	// node carries regardless of kind.
	CommonNodeHeaderSize = uint32(nodeTypeSize + isRootSize + parentSize)
)

// Leaf node header and body layout.
const (
	leafNumCellsOffset = CommonNodeHeaderSize
	leafNumCellsSize   = 4

	leafNextLeafOffset = leafNumCellsOffset + leafNumCellsSize
	leafNextLeafSize   = 4

	// LeafNodeHeaderSize is the common header plus num_cells and next_leaf.
	LeafNodeHeaderSize = leafNumCellsOffset + leafNumCellsSize + leafNextLeafSize

	leafKeySize = 4

	// LeafNodeCellSize is one leaf cell: a 4-byte key plus a serialized row.
	LeafNodeCellSize = leafKeySize + RowSize

	leafSpaceForCells = uint32(pager.PageSize) - LeafNodeHeaderSize

	// LeafNodeMaxCells is how many cells fit in one leaf page.
	LeafNodeMaxCells = leafSpaceForCells / LeafNodeCellSize

	// LeafNodeLeftSplitCount and LeafNodeRightSplitCount divide
	// LeafNodeMaxCells+1 cells as evenly as possible; the left side takes
	// the extra cell when the total is odd.
	LeafNodeLeftSplitCount  = (LeafNodeMaxCells + 1 + 1) / 2
	LeafNodeRightSplitCount = (LeafNodeMaxCells + 1) - LeafNodeLeftSplitCount
)

// Internal node header and body layout.
const (
	internalNumKeysOffset = CommonNodeHeaderSize
	internalNumKeysSize   = 4

	internalRightChildOffset = internalNumKeysOffset + internalNumKeysSize
	internalRightChildSize   = 4

	InternalNodeHeaderSize = internalRightChildOffset + internalRightChildSize

	internalChildSize = 4
	internalKeySize   = 4

	// InternalNodeCellSize is one (child page, key) pair.
	InternalNodeCellSize = internalChildSize + internalKeySize

	// InternalNodeMaxCells is fixed low to make split/overflow behavior
	// reachable in tests; internal-node splitting is unimplemented, so
	// this is also the engine's hard fan-out ceiling.
	InternalNodeMaxCells = 3
)
