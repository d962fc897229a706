package main

import (
	"fmt"
	"strings"

	"bplusdb/table"
)

// MetaCommandResult reports whether a "." line was recognized.
type MetaCommandResult int

const (
	MetaCommandSuccess MetaCommandResult = iota
	MetaCommandUnrecognizedCommand
)

// doMetaCommand dispatches a "." line. ".exit" is handled by the caller
// (it needs to flush and terminate the process); everything else is
// handled here.
func doMetaCommand(line string, db *table.Database) MetaCommandResult {
	switch line {
	case ".btree":
		fmt.Println("Tree:")
		printTree(db, db.RootPageNum, 0)
		return MetaCommandSuccess
	case ".constants":
		fmt.Println("Constants:")
		printConstants()
		return MetaCommandSuccess
	default:
		return MetaCommandUnrecognizedCommand
	}
}

func printConstants() {
	fmt.Printf("ROW_SIZE: %d\n", table.RowSize)
	fmt.Printf("COMMON_NODE_HEADER_SIZE: %d\n", table.CommonNodeHeaderSize)
	fmt.Printf("LEAF_NODE_HEADER_SIZE: %d\n", table.LeafNodeHeaderSize)
	fmt.Printf("LEAF_NODE_CELL_SIZE: %d\n", table.LeafNodeCellSize)
	fmt.Printf("LEAF_NODE_MAX_CELLS: %d\n", table.LeafNodeMaxCells)
	fmt.Printf("LEAF_NODE_LEFT_SPLIT_COUNT: %d\n", table.LeafNodeLeftSplitCount)
	fmt.Printf("LEAF_NODE_RIGHT_SPLIT_COUNT: %d\n", table.LeafNodeRightSplitCount)
}

// printTree walks the tree depth-first, indenting by level. Exact text is
// a debugging aid (spec.md leaves the format unspecified); this traversal
// order follows the original C tutorial's print_tree.
func printTree(db *table.Database, pageNum uint32, level int) {
	page, err := db.Page(pageNum)
	if err != nil {
		fmt.Printf("%s<error reading page %d: %v>\n", strings.Repeat("  ", level), pageNum, err)
		return
	}
	if table.NodeTypeOf(page) == table.NodeLeaf {
		numCells := table.NumCells(page)
		fmt.Printf("%s- leaf (size %d)\n", strings.Repeat("  ", level), numCells)
		for i := uint32(0); i < numCells; i++ {
			fmt.Printf("%s- %d\n", strings.Repeat("  ", level+1), table.LeafKey(page, i))
		}
		return
	}

	numKeys := table.NumKeys(page)
	fmt.Printf("%s- internal (size %d)\n", strings.Repeat("  ", level), numKeys)
	for i := uint32(0); i < numKeys; i++ {
		printTree(db, table.Child(page, i), level+1)
		fmt.Printf("%s- key %d\n", strings.Repeat("  ", level+1), table.InternalKey(page, i))
	}
	printTree(db, table.RightChild(page), level+1)
}
