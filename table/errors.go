package table

import (
	"github.com/pkg/errors"

	"bplusdb/fatal"
)

// ErrDuplicateKey is returned by Insert when the row's key already exists.
// It is the one recoverable outcome execute_insert can surface besides
// success, per the engine's error-handling design.
var ErrDuplicateKey = errors.New("Error: Duplicate key.")

// fatalf marks an error as an engine invariant violation — a condition the
// spec calls for aborting the process over, not reporting to the user and
// continuing. Codec and B+tree code panics with one; callers at the
// program boundary recover it (RecoverFatal) and turn it into a logged,
// non-zero exit. The pager panics with the same fatal.Err for its own
// Fatal-tier conditions (slot-cap overflow, I/O failure), so one recover
// at the CLI boundary catches both.
func fatalf(format string, args ...interface{}) error {
	return fatal.Errorf(format, args...)
}

// RecoverFatal turns a panic carrying a fatal.Err — raised by this package
// or by pager — into a call to onFatal with the underlying message. Any
// other panic is re-raised.
func RecoverFatal(onFatal func(error)) {
	fatal.Recover(onFatal)
}
