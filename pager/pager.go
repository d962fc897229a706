package pager

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"bplusdb/fatal"
)

// Pager owns an open file and a fixed-length array of page slots. It faults
// pages in on demand, hands back a stable mutable buffer per page number,
// and flushes dirty pages to disk on Close. It performs no eviction: once a
// slot is filled, its buffer lives until Close.
//
// Open's own failures (bad path, corrupt file) are returned as ordinary
// errors — there is no session yet for them to interrupt, and main.go
// already treats a failed Open as fatal. Once a session is running,
// exceeding the slot cap and disk read/write failures are conditions the
// caller has no way to recover from by returning to the prompt, so
// GetPage and Flush panic with a fatal.Err instead of returning one; the
// CLI recovers it at the program boundary (table.RecoverFatal).
type Pager struct {
	fs         afero.Fs
	file       afero.File
	fileLength int64
	numPages   uint32
	pages      [MaxPages]*Page
}

// Open opens path for read/write through fs, creating it if absent. The
// file length must be a whole multiple of PageSize; any other length is a
// corrupt-file error.
func Open(fs afero.Fs, path string) (*Pager, error) {
	file, err := fs.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, errors.Wrap(err, "pager: open")
	}
	length, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, errors.Wrap(err, "pager: seek to end")
	}
	if length%PageSize != 0 {
		return nil, errors.New("Db file is not a whole number of pages. Corrupt file.")
	}
	return &Pager{
		fs:         fs,
		file:       file,
		fileLength: length,
		numPages:   uint32(length / PageSize),
	}, nil
}

// NumPages reports the current page count: the maximum of the on-disk page
// count and one past the highest page number ever faulted in.
func (p *Pager) NumPages() uint32 { return p.numPages }

// GetPage returns the buffer for page n, faulting it in from disk on first
// access. The returned pointer is stable for the lifetime of the Pager.
// It panics with a fatal.Err if n exceeds the slot cap or the backing file
// can't be read.
func (p *Pager) GetPage(n uint32) (*Page, error) {
	if n >= MaxPages {
		panic(fatal.Errorf("pager: page number %d out of bounds (max %d)", n, MaxPages))
	}
	if p.pages[n] == nil {
		page := &Page{}
		onDiskPages := uint32((p.fileLength + PageSize - 1) / PageSize)
		if n < onDiskPages {
			if _, err := p.file.Seek(int64(n)*PageSize, io.SeekStart); err != nil {
				panic(fatal.Errorf("pager: seek to page %d: %v", n, err))
			}
			if _, err := io.ReadFull(p.file, page.Data[:]); err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
				panic(fatal.Errorf("pager: read page %d: %v", n, err))
			}
		}
		p.pages[n] = page
	}
	if n >= p.numPages {
		p.numPages = n + 1
	}
	return p.pages[n], nil
}

// Flush writes slot n's full page to disk. Flushing an unallocated slot is
// a programmer error and a failed seek or write is an I/O failure; both are
// Fatal-tier and panic with a fatal.Err.
func (p *Pager) Flush(n uint32) error {
	page := p.pages[n]
	if page == nil {
		panic(fatal.Errorf("pager: tried to flush empty slot %d", n))
	}
	if _, err := p.file.Seek(int64(n)*PageSize, io.SeekStart); err != nil {
		panic(fatal.Errorf("pager: seek to flush page %d: %v", n, err))
	}
	if _, err := p.file.Write(page.Data[:]); err != nil {
		panic(fatal.Errorf("pager: write page %d: %v", n, err))
	}
	page.Dirty = false
	if end := (int64(n) + 1) * PageSize; end > p.fileLength {
		p.fileLength = end
	}
	return nil
}

// Close flushes every occupied slot below NumPages and releases the file.
func (p *Pager) Close() error {
	for n := uint32(0); n < p.numPages; n++ {
		if p.pages[n] == nil {
			continue
		}
		if err := p.Flush(n); err != nil {
			return err
		}
		p.pages[n] = nil
	}
	for n := p.numPages; n < MaxPages; n++ {
		p.pages[n] = nil
	}
	return errors.Wrap(p.file.Close(), "pager: close")
}

// UnusedPageNum returns the page number that will be assigned to the next
// page ever allocated. Pages are only appended; there is no free list.
func (p *Pager) UnusedPageNum() uint32 { return p.numPages }
