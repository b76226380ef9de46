package lisp

import (
	"fmt"
	"io"
	"log/slog"
)

// Config is a function that configures a root environment or its runtime.
type Config func(env *LEnv) error

// WithMaximumStackHeight returns a Config that will prevent an execution
// environment from allowing the height of its call stack to exceed n.  Frames
// elided by tail calls do not count toward the height.  When n is zero the
// height is unlimited and runaway recursion exhausts the host stack.
func WithMaximumStackHeight(n int) Config {
	return func(env *LEnv) error {
		if n < 0 {
			return fmt.Errorf("negative maximum stack height: %d", n)
		}
		env.Runtime.Stack.MaxHeight = n
		return nil
	}
}

// WithLenientArity returns a Config that disables arity checks on closure
// calls.  Surplus arguments are silently dropped and parameters without an
// argument are left unbound.
func WithLenientArity() Config {
	return func(env *LEnv) error {
		env.Runtime.LenientArity = true
		return nil
	}
}

// WithReader returns a Config that makes environments use r to parse source
// text.  There is no default Reader for an environment.
func WithReader(r Reader) Config {
	return func(env *LEnv) error {
		env.Runtime.Reader = r
		return nil
	}
}

// WithStdout returns a Config that makes environments write program output
// to w instead of the default, os.Stdout.
func WithStdout(w io.Writer) Config {
	return func(env *LEnv) error {
		env.Runtime.Stdout = w
		return nil
	}
}

// WithStderr returns a Config that makes environments write debugging output
// to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(env *LEnv) error {
		env.Runtime.Stderr = w
		return nil
	}
}

// WithLogger returns a Config that makes the runtime write log records to l.
// Records are tagged with the runtime's ID.
func WithLogger(l *slog.Logger) Config {
	return func(env *LEnv) error {
		env.Runtime.Logger = l.With(slog.String("runtime", env.Runtime.ID))
		return nil
	}
}
