// Package fatal carries the engine's Fatal error tier across package
// boundaries: conditions that mean the storage engine's own invariants or
// its I/O contract have been violated, which no caller can recover from by
// returning to the prompt. Both pager and table panic with a fatal.Err;
// the CLI recovers it at the program boundary and turns it into a logged,
// non-zero exit instead of a continuable "Error: ..." line.
package fatal

import "fmt"

// Err marks a panic value as a Fatal-tier error rather than a programming
// mistake. Recover distinguishes the two by type-asserting on it.
type Err struct{ error }

// Errorf builds a Fatal-tier error. Callers panic with its result; they do
// not return it as an ordinary error.
func Errorf(format string, args ...interface{}) error {
	return Err{fmt.Errorf(format, args...)}
}

// Recover turns a panic carrying a fatal.Err into a call to onFatal with
// the underlying error. Any other panic value is re-raised unchanged.
func Recover(onFatal func(error)) {
	r := recover()
	if r == nil {
		return
	}
	if fe, ok := r.(Err); ok {
		onFatal(fe.error)
		return
	}
	panic(r)
}
