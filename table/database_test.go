package table

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestOpenInitializesEmptyLeafRoot(t *testing.T) {
	fs := afero.NewMemMapFs()
	db, err := Open(fs, "test.db")
	require.NoError(t, err)
	defer db.Close()

	page, err := db.Page(0)
	require.NoError(t, err)
	require.Equal(t, NodeLeaf, NodeTypeOf(page))
	require.True(t, IsRoot(page))
	require.Equal(t, uint32(0), NumCells(page))
}

func TestOpenDoesNotReinitializeExistingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	db, err := Open(fs, "test.db")
	require.NoError(t, err)
	require.NoError(t, db.Insert(Row{ID: 1, Username: "a", Email: "b"}))
	require.NoError(t, db.Close())

	reopened, err := Open(fs, "test.db")
	require.NoError(t, err)
	defer reopened.Close()

	page, err := reopened.Page(0)
	require.NoError(t, err)
	require.Equal(t, uint32(1), NumCells(page))
}

func TestInsertAndSelectSurvivesClose(t *testing.T) {
	fs := afero.NewMemMapFs()
	db, err := Open(fs, "test.db")
	require.NoError(t, err)

	want := []Row{
		{ID: 3, Username: "carol", Email: "carol@example.com"},
		{ID: 1, Username: "alice", Email: "alice@example.com"},
		{ID: 2, Username: "bob", Email: "bob@example.com"},
	}
	for _, r := range want {
		require.NoError(t, db.Insert(r))
	}
	require.NoError(t, db.Close())

	reopened, err := Open(fs, "test.db")
	require.NoError(t, err)
	defer reopened.Close()

	cursor, err := reopened.Start()
	require.NoError(t, err)

	var got []Row
	for !cursor.EndOfTable {
		buf, err := cursor.Value()
		require.NoError(t, err)
		row, err := DeserializeRow(buf)
		require.NoError(t, err)
		got = append(got, row)
		require.NoError(t, cursor.Advance())
	}

	require.Equal(t, []Row{want[1], want[2], want[0]}, got)
}
