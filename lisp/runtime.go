package lisp

import (
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// Runtime is the state shared by a root environment and all of its
// descendants.
type Runtime struct {
	// ID identifies the runtime in log records.
	ID     string
	Reader Reader
	Stack  *CallStack
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	// LenientArity disables arity checking for closure calls.  Surplus
	// arguments are dropped and missing parameters are left unbound.
	LenientArity bool
}

// StandardRuntime returns a new Runtime with an empty stack that writes to
// os.Stdout and os.Stderr and discards log output.  The runtime has no
// Reader.
func StandardRuntime() *Runtime {
	id := uuid.NewString()
	return &Runtime{
		ID:     id,
		Stack:  &CallStack{MaxHeight: DefaultMaxStackHeight},
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)).With(slog.String("runtime", id)),
	}
}

// Read parses the first expression in src using the runtime's Reader.
func (r *Runtime) Read(name string, src io.Reader) (*LVal, error) {
	if r.Reader == nil {
		return nil, Errorf("no-reader", "no reader configured for runtime")
	}
	return r.Reader.ReadForm(name, src)
}
