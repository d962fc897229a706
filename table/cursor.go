package table

// Cursor is a positional handle into the tree: a leaf page number, a cell
// index within it, and a flag marking the end of the in-order traversal.
// Cursors are created by Find or Start, consumed by the caller, and not
// persisted; any mutation to the tree invalidates cursors into affected
// leaves.
type Cursor struct {
	db         *Database
	PageNum    uint32
	CellNum    uint32
	EndOfTable bool
}

// Value returns the buffer backing this cursor's cell's row. It is valid
// until the next operation that might split the leaf.
func (c *Cursor) Value() ([]byte, error) {
	page, err := c.db.pager.GetPage(c.PageNum)
	if err != nil {
		return nil, err
	}
	return LeafValue(page.Data[:], c.CellNum), nil
}

// Advance moves the cursor to the next cell in key order, following the
// sibling chain across leaf boundaries.
func (c *Cursor) Advance() error {
	page, err := c.db.pager.GetPage(c.PageNum)
	if err != nil {
		return err
	}
	c.CellNum++
	if c.CellNum < NumCells(page.Data[:]) {
		return nil
	}
	next := NextLeaf(page.Data[:])
	if next == 0 {
		c.EndOfTable = true
		return nil
	}
	c.PageNum = next
	c.CellNum = 0
	return nil
}
