package table

import "encoding/binary"

// This file implements the B+tree Engine: find, start, advance (via
// Cursor.Advance), and unique insert with leaf splits and root promotion.
// Internal-node splitting is explicitly unimplemented — an internal node
// that would overflow is an engine invariant violation (fatalf), per the
// spec's Non-goals.

// Find descends from the root and returns a cursor positioned on the cell
// holding key, or on the index where it would be inserted if absent.
func (db *Database) Find(key uint32) (*Cursor, error) {
	pageNum := db.RootPageNum
	for {
		page, err := db.pager.GetPage(pageNum)
		if err != nil {
			return nil, err
		}
		if NodeTypeOf(page.Data[:]) == NodeLeaf {
			idx := leafFind(page.Data[:], key)
			return &Cursor{db: db, PageNum: pageNum, CellNum: idx}, nil
		}
		pageNum = internalChildForKey(page.Data[:], key)
	}
}

// Start returns a cursor positioned at the first row in key order.
func (db *Database) Start() (*Cursor, error) {
	cursor, err := db.Find(0)
	if err != nil {
		return nil, err
	}
	page, err := db.pager.GetPage(cursor.PageNum)
	if err != nil {
		return nil, err
	}
	cursor.EndOfTable = NumCells(page.Data[:]) == 0
	return cursor, nil
}

// leafFind binary-searches a leaf for key, returning the matching cell
// index or the index where key would be inserted.
func leafFind(page []byte, key uint32) uint32 {
	min, max := uint32(0), NumCells(page)
	for min != max {
		mid := (min + max) / 2
		midKey := LeafKey(page, mid)
		if midKey == key {
			return mid
		}
		if key < midKey {
			max = mid
		} else {
			min = mid + 1
		}
	}
	return min
}

// internalSearch returns the smallest cell index in [0, num_keys] whose
// key is >= key. It underlies both descent and update_internal_node_key.
func internalSearch(page []byte, key uint32) uint32 {
	min, max := uint32(0), NumKeys(page)
	for min != max {
		mid := (min + max) / 2
		if InternalKey(page, mid) >= key {
			max = mid
		} else {
			min = mid + 1
		}
	}
	return min
}

func internalChildForKey(page []byte, key uint32) uint32 {
	idx := internalSearch(page, key)
	return Child(page, idx)
}

// Insert adds row under key row.ID, splitting leaves and promoting the
// root as needed. It returns ErrDuplicateKey if the key already exists.
func (db *Database) Insert(row Row) error {
	key := row.ID
	cursor, err := db.Find(key)
	if err != nil {
		return err
	}
	page, err := db.pager.GetPage(cursor.PageNum)
	if err != nil {
		return err
	}
	if cursor.CellNum < NumCells(page.Data[:]) && LeafKey(page.Data[:], cursor.CellNum) == key {
		return ErrDuplicateKey
	}

	numCells := NumCells(page.Data[:])
	if numCells < LeafNodeMaxCells {
		return insertIntoLeaf(page.Data[:], cursor.CellNum, key, row)
	}
	return db.splitLeafAndInsert(cursor, key, row)
}

// insertIntoLeaf shifts cells right to make room and writes the new cell
// at cellNum. The leaf must have spare capacity.
func insertIntoLeaf(page []byte, cellNum, key uint32, row Row) error {
	numCells := NumCells(page)
	for i := numCells; i > cellNum; i-- {
		copy(LeafCell(page, i), LeafCell(page, i-1))
	}
	SetLeafKey(page, cellNum, key)
	if err := row.Serialize(LeafValue(page, cellNum)); err != nil {
		return err
	}
	SetNumCells(page, numCells+1)
	return nil
}

// splitLeafAndInsert implements leaf_node_split_and_insert: the full old
// leaf and the new cell are redistributed across old and a freshly
// allocated sibling, linked into the sibling chain, and the split is
// propagated to the parent (or promotes a new root).
func (db *Database) splitLeafAndInsert(cursor *Cursor, key uint32, row Row) error {
	oldPageNum := cursor.PageNum
	oldPage, err := db.pager.GetPage(oldPageNum)
	if err != nil {
		return err
	}
	oldMax := MaxKey(oldPage.Data[:])

	newPageNum := db.pager.UnusedPageNum()
	newPage, err := db.pager.GetPage(newPageNum)
	if err != nil {
		return err
	}
	InitLeaf(newPage.Data[:])
	SetParent(newPage.Data[:], Parent(oldPage.Data[:]))
	SetNextLeaf(newPage.Data[:], NextLeaf(oldPage.Data[:]))
	SetNextLeaf(oldPage.Data[:], newPageNum)

	// Redistribute LeafNodeMaxCells+1 cells (the full old leaf plus the
	// new one) across old and new. Processing i from LeafNodeMaxCells
	// down to 0 guarantees every source cell is read before it could be
	// overwritten by a later iteration.
	for i := int(LeafNodeMaxCells); i >= 0; i-- {
		idx := uint32(i)
		var dest []byte
		if idx >= LeafNodeLeftSplitCount {
			dest = LeafCell(newPage.Data[:], idx-LeafNodeLeftSplitCount)
		} else {
			dest = LeafCell(oldPage.Data[:], idx)
		}

		switch {
		case idx == cursor.CellNum:
			binary.LittleEndian.PutUint32(dest[:leafKeySize], key)
			if err := row.Serialize(dest[leafKeySize:]); err != nil {
				return err
			}
		case idx > cursor.CellNum:
			copy(dest, LeafCell(oldPage.Data[:], idx-1))
		default:
			copy(dest, LeafCell(oldPage.Data[:], idx))
		}
	}

	SetNumCells(oldPage.Data[:], LeafNodeLeftSplitCount)
	SetNumCells(newPage.Data[:], LeafNodeRightSplitCount)

	if IsRoot(oldPage.Data[:]) {
		return db.createNewRoot(newPageNum)
	}

	parentPageNum := Parent(oldPage.Data[:])
	parentPage, err := db.pager.GetPage(parentPageNum)
	if err != nil {
		return err
	}
	newOldMax := MaxKey(oldPage.Data[:])
	if err := updateInternalNodeKey(parentPage.Data[:], oldMax, newOldMax); err != nil {
		return err
	}
	return db.internalNodeInsert(parentPageNum, newPageNum)
}

// createNewRoot implements root promotion: the current root's bytes move
// to a freshly allocated left page, and page 0 is rewritten as a new
// internal root with one key pointing at the (former-root) left child and
// rightChildPageNum as the right child. The root's page number never
// changes.
func (db *Database) createNewRoot(rightChildPageNum uint32) error {
	root, err := db.pager.GetPage(db.RootPageNum)
	if err != nil {
		return err
	}
	right, err := db.pager.GetPage(rightChildPageNum)
	if err != nil {
		return err
	}

	leftPageNum := db.pager.UnusedPageNum()
	left, err := db.pager.GetPage(leftPageNum)
	if err != nil {
		return err
	}
	left.Data = root.Data
	SetIsRoot(left.Data[:], false)

	InitInternal(root.Data[:])
	SetIsRoot(root.Data[:], true)
	SetNumKeys(root.Data[:], 1)
	SetChild(root.Data[:], 0, leftPageNum)
	SetInternalKey(root.Data[:], 0, MaxKey(left.Data[:]))
	SetRightChild(root.Data[:], rightChildPageNum)

	SetParent(left.Data[:], db.RootPageNum)
	SetParent(right.Data[:], db.RootPageNum)
	return nil
}

// internalNodeInsert splices childPageNum into parentPageNum's cells, as
// either a new separator cell or (if childMax exceeds the current right
// child's max) the new right child. Internal-node splitting is not
// implemented: an internal node that would overflow past
// InternalNodeMaxCells is an engine invariant violation.
func (db *Database) internalNodeInsert(parentPageNum, childPageNum uint32) error {
	parent, err := db.pager.GetPage(parentPageNum)
	if err != nil {
		return err
	}
	child, err := db.pager.GetPage(childPageNum)
	if err != nil {
		return err
	}
	childMax := MaxKey(child.Data[:])
	index := internalSearch(parent.Data[:], childMax)

	original := NumKeys(parent.Data[:])
	if original >= InternalNodeMaxCells {
		panic(fatalf("btree: internal node %d would overflow past %d keys; splitting internal nodes is not implemented", parentPageNum, InternalNodeMaxCells))
	}
	SetNumKeys(parent.Data[:], original+1)

	rightPageNum := RightChild(parent.Data[:])
	right, err := db.pager.GetPage(rightPageNum)
	if err != nil {
		return err
	}
	if childMax > MaxKey(right.Data[:]) {
		SetChild(parent.Data[:], original, rightPageNum)
		SetInternalKey(parent.Data[:], original, MaxKey(right.Data[:]))
		SetRightChild(parent.Data[:], childPageNum)
	} else {
		for i := original; i > index; i-- {
			SetChild(parent.Data[:], i, Child(parent.Data[:], i-1))
			SetInternalKey(parent.Data[:], i, InternalKey(parent.Data[:], i-1))
		}
		SetChild(parent.Data[:], index, childPageNum)
		SetInternalKey(parent.Data[:], index, childMax)
	}
	SetParent(child.Data[:], parentPageNum)
	return nil
}

// updateInternalNodeKey rewrites the separator key equal to oldKey with
// newKey, found via the same "smallest index with key >= target" descent
// helper used elsewhere. When oldKey is the subtree's overall maximum
// (the rightmost leaf split in ascending order is the common case),
// internalSearch returns num_keys and this writes one slot past the last
// real separator cell — into the slot internalNodeInsert's right-child
// replacement branch (see below) overwrites immediately afterward with
// the correct child and key. It is harmless only because that overwrite
// always follows; it is not a case that "cannot arise."
func updateInternalNodeKey(page []byte, oldKey, newKey uint32) error {
	idx := internalSearch(page, oldKey)
	SetInternalKey(page, idx, newKey)
	return nil
}
