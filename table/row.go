package table

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
)

// Row is the engine's only record type: a 32-bit primary key plus two
// bounded strings.
type Row struct {
	ID       uint32
	Username string
	Email    string
}

// ErrStringTooLong is returned by Serialize when Username or Email exceeds
// its field's content maximum.
var ErrStringTooLong = errors.New("String is too long.")

// Serialize writes r into dst, which must be exactly RowSize bytes.
func (r Row) Serialize(dst []byte) error {
	if len(dst) != RowSize {
		return errors.Errorf("row: dst length %d, want %d", len(dst), RowSize)
	}
	if len(r.Username) > UsernameMaxLen || len(r.Email) > EmailMaxLen {
		return ErrStringTooLong
	}

	for i := range dst {
		dst[i] = 0
	}
	binary.LittleEndian.PutUint32(dst[idOffset:idOffset+idSize], r.ID)
	copy(dst[usernameOffset:usernameOffset+usernameFieldSize], r.Username)
	copy(dst[emailOffset:emailOffset+emailFieldSize], r.Email)
	return nil
}

// DeserializeRow reads a Row out of src, which must be exactly RowSize
// bytes.
func DeserializeRow(src []byte) (Row, error) {
	if len(src) != RowSize {
		return Row{}, errors.Errorf("row: src length %d, want %d", len(src), RowSize)
	}
	id := binary.LittleEndian.Uint32(src[idOffset : idOffset+idSize])
	username := nullTerminated(src[usernameOffset : usernameOffset+usernameFieldSize])
	email := nullTerminated(src[emailOffset : emailOffset+emailFieldSize])
	return Row{ID: id, Username: username, Email: email}, nil
}

func nullTerminated(field []byte) string {
	if i := bytes.IndexByte(field, 0); i >= 0 {
		field = field[:i]
	}
	return string(field)
}
