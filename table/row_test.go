package table

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRowSerializeDeserializeRoundTrip(t *testing.T) {
	r := Row{ID: 7, Username: "alice", Email: "alice@example.com"}
	buf := make([]byte, RowSize)
	require.NoError(t, r.Serialize(buf))

	got, err := DeserializeRow(buf)
	require.NoError(t, err)
	require.Equal(t, r, got)
}

func TestRowSerializeRejectsWrongLength(t *testing.T) {
	r := Row{ID: 1, Username: "a", Email: "b"}
	require.Error(t, r.Serialize(make([]byte, RowSize-1)))
}

func TestRowSerializeRejectsOversizedFields(t *testing.T) {
	buf := make([]byte, RowSize)

	long := Row{ID: 1, Username: make33Bytes(UsernameMaxLen + 1), Email: "e"}
	require.ErrorIs(t, long.Serialize(buf), ErrStringTooLong)

	longEmail := Row{ID: 1, Username: "u", Email: make33Bytes(EmailMaxLen + 1)}
	require.ErrorIs(t, longEmail.Serialize(buf), ErrStringTooLong)
}

func TestRowSerializeZeroFillsUnusedTail(t *testing.T) {
	r := Row{ID: 1, Username: "ab", Email: "cd"}
	buf := make([]byte, RowSize)
	for i := range buf {
		buf[i] = 0xFF
	}
	require.NoError(t, r.Serialize(buf))

	got, err := DeserializeRow(buf)
	require.NoError(t, err)
	require.Equal(t, "ab", got.Username)
	require.Equal(t, "cd", got.Email)
}

func make33Bytes(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'x'
	}
	return string(b)
}
