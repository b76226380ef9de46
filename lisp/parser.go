package lisp

import "io"

// Reader abstracts a parser implementation so that it may be implemented in a
// separate package as an optional/swappable component.  The read-str builtin
// and LEnv.Load require a Reader to be configured for the runtime.
type Reader interface {
	// Read the contents of r and return the sequence of LVals that it
	// contains.
	Read(name string, r io.Reader) ([]*LVal, error)
	// ReadForm parses the first expression in r and ignores anything
	// following it.
	ReadForm(name string, r io.Reader) (*LVal, error)
}
