package pager

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"bplusdb/fatal"
)

func TestOpenEmptyFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	p, err := Open(fs, "test.db")
	require.NoError(t, err)
	defer p.Close()

	require.Equal(t, uint32(0), p.NumPages())
}

func TestOpenRejectsPartialPage(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "corrupt.db", make([]byte, PageSize+17), 0o600))

	_, err := Open(fs, "corrupt.db")
	require.Error(t, err)
}

func TestGetPageOutOfBoundsIsFatal(t *testing.T) {
	fs := afero.NewMemMapFs()
	p, err := Open(fs, "test.db")
	require.NoError(t, err)
	defer p.Close()

	require.Panics(t, func() { p.GetPage(MaxPages) })

	var caught error
	func() {
		defer fatal.Recover(func(err error) { caught = err })
		p.GetPage(MaxPages)
	}()
	require.Error(t, caught)
}

func TestGetPageAllocatesAndTracksNumPages(t *testing.T) {
	fs := afero.NewMemMapFs()
	p, err := Open(fs, "test.db")
	require.NoError(t, err)
	defer p.Close()

	require.Equal(t, uint32(0), p.UnusedPageNum())

	page, err := p.GetPage(0)
	require.NoError(t, err)
	require.NotNil(t, page)
	require.Equal(t, uint32(1), p.NumPages())
	require.Equal(t, uint32(1), p.UnusedPageNum())

	// Fetching the same page number returns the same stable buffer.
	same, err := p.GetPage(0)
	require.NoError(t, err)
	require.Same(t, page, same)

	// Skipping ahead still raises NumPages to one past the highest access.
	_, err = p.GetPage(5)
	require.NoError(t, err)
	require.Equal(t, uint32(6), p.NumPages())
}

func TestMutationsThroughGetPageArePersistentAcrossCalls(t *testing.T) {
	fs := afero.NewMemMapFs()
	p, err := Open(fs, "test.db")
	require.NoError(t, err)
	defer p.Close()

	page, err := p.GetPage(0)
	require.NoError(t, err)
	page.Data[0] = 0xAB
	page.Data[PageSize-1] = 0xCD

	again, err := p.GetPage(0)
	require.NoError(t, err)
	require.Equal(t, byte(0xAB), again.Data[0])
	require.Equal(t, byte(0xCD), again.Data[PageSize-1])
}

func TestFlushEmptySlotFails(t *testing.T) {
	fs := afero.NewMemMapFs()
	p, err := Open(fs, "test.db")
	require.NoError(t, err)
	defer p.Close()

	require.Panics(t, func() { p.Flush(3) })
}

func TestFlushWritesPageToDisk(t *testing.T) {
	fs := afero.NewMemMapFs()
	p, err := Open(fs, "test.db")
	require.NoError(t, err)

	page, err := p.GetPage(0)
	require.NoError(t, err)
	page.Data[10] = 0x42
	require.NoError(t, p.Flush(0))

	on, err := p.fs.Stat("test.db")
	require.NoError(t, err)
	require.Equal(t, int64(PageSize), on.Size())
	require.NoError(t, p.Close())

	reopened, err := Open(fs, "test.db")
	require.NoError(t, err)
	defer reopened.Close()
	require.Equal(t, uint32(1), reopened.NumPages())

	reloaded, err := reopened.GetPage(0)
	require.NoError(t, err)
	require.Equal(t, byte(0x42), reloaded.Data[10])
}

func TestClosePersistsAllDirtyPages(t *testing.T) {
	fs := afero.NewMemMapFs()
	p, err := Open(fs, "test.db")
	require.NoError(t, err)

	for n := uint32(0); n < 3; n++ {
		page, err := p.GetPage(n)
		require.NoError(t, err)
		page.Data[0] = byte(n + 1)
	}
	require.NoError(t, p.Close())

	reopened, err := Open(fs, "test.db")
	require.NoError(t, err)
	defer reopened.Close()
	require.Equal(t, uint32(3), reopened.NumPages())
	for n := uint32(0); n < 3; n++ {
		page, err := reopened.GetPage(n)
		require.NoError(t, err)
		require.Equal(t, byte(n+1), page.Data[0])
	}
}

func TestGetPageLoadsZeroedPageFromDisk(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "seed.db", make([]byte, PageSize), 0o600))

	p, err := Open(fs, "seed.db")
	require.NoError(t, err)
	defer p.Close()

	page, err := p.GetPage(0)
	require.NoError(t, err)
	require.Equal(t, byte(0), page.Data[PageSize-1])
}
