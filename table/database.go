package table

import (
	"github.com/spf13/afero"

	"bplusdb/pager"
)

// Database is the top-level handle external collaborators open: it owns a
// Pager and the (always page-0) root of the B+tree.
type Database struct {
	pager       *pager.Pager
	RootPageNum uint32
}

// Open opens path through fs and initializes page 0 as an empty leaf root
// on first use.
func Open(fs afero.Fs, path string) (*Database, error) {
	p, err := pager.Open(fs, path)
	if err != nil {
		return nil, err
	}
	db := &Database{pager: p, RootPageNum: 0}
	if p.NumPages() == 0 {
		root, err := p.GetPage(0)
		if err != nil {
			return nil, err
		}
		InitLeaf(root.Data[:])
		SetIsRoot(root.Data[:], true)
	}
	return db, nil
}

// Close flushes and releases the pager.
func (db *Database) Close() error {
	return db.pager.Close()
}

// Page exposes the raw bytes backing pageNum, for callers that walk the
// tree structure directly (the .btree meta-command).
func (db *Database) Page(pageNum uint32) ([]byte, error) {
	page, err := db.pager.GetPage(pageNum)
	if err != nil {
		return nil, err
	}
	return page.Data[:], nil
}
