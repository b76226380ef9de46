package lisp

import (
	"bytes"
	"errors"
	"fmt"
)

// Conditioner is implemented by errors which belong to a named class of
// error, their condition.
type Conditioner interface {
	Condition() string
}

// Condition returns the condition of err, or of the first error it wraps that
// has one.  If no condition is found Condition returns "error".
func Condition(err error) string {
	var c Conditioner
	if errors.As(err, &c) {
		return c.Condition()
	}
	return "error"
}

// ErrorVal is a generic runtime error with a condition and a message.
type ErrorVal struct {
	Cond string
	Msg  string
}

// Errorf returns an ErrorVal with the given condition and formatted message.
func Errorf(condition string, format string, v ...interface{}) error {
	return &ErrorVal{
		Cond: condition,
		Msg:  fmt.Sprintf(format, v...),
	}
}

func (e *ErrorVal) Condition() string {
	return e.Cond
}

func (e *ErrorVal) Error() string {
	return e.Cond + ": " + e.Msg
}

// UnboundSymbolError is returned when a symbol cannot be resolved in any
// environment of the lexical chain.
type UnboundSymbolError struct {
	Name string
}

func (e *UnboundSymbolError) Condition() string {
	return "unbound-symbol"
}

func (e *UnboundSymbolError) Error() string {
	return "unbound symbol: " + e.Name
}

// TypeError is returned when an argument given to a function does not have
// the required type.  Pos is the position of the argument, starting at 1.
type TypeError struct {
	Fun      string
	Pos      int
	Expected LValType
	Got      *LVal
}

func (e *TypeError) Condition() string {
	return "type-mismatch"
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type mismatch: expected %v at argument position %d of %s but got %v",
		e.Expected, e.Pos, e.Fun, e.Got)
}

// ArityError is returned when a function is called with the wrong number of
// arguments.
type ArityError struct {
	Fun      string
	Expected int
	Got      int
}

func (e *ArityError) Condition() string {
	return "arity-mismatch"
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s: expected %d %s (got %d)", e.Fun, e.Expected, plural(e.Expected, "argument"), e.Got)
}

// NotCallableError is returned when the head of a function call does not
// evaluate to a function.
type NotCallableError struct {
	Val *LVal
}

func (e *NotCallableError) Condition() string {
	return "not-callable"
}

func (e *NotCallableError) Error() string {
	return fmt.Sprintf("attempted to call a non-function: %v", e.Val)
}

// EmptyCallError is returned when an empty list is evaluated.
type EmptyCallError struct {
	Expr *LVal
}

func (e *EmptyCallError) Condition() string {
	return "empty-call"
}

func (e *EmptyCallError) Error() string {
	if e.Expr != nil && e.Expr.Source != nil {
		return fmt.Sprintf("%v: empty list is not callable", e.Expr.Source)
	}
	return "empty list is not callable"
}

// FormError is returned when a special form is malformed.
type FormError struct {
	Form string
	Expr *LVal
	Msg  string
	// ExpectedSymbol is set when the form required a symbol but was given
	// some other value.
	ExpectedSymbol bool
}

func (e *FormError) Condition() string {
	if e.ExpectedSymbol {
		return "expected-symbol"
	}
	return "invalid-form"
}

func (e *FormError) Error() string {
	if e.Expr != nil && e.Expr.Source != nil {
		return fmt.Sprintf("%v: %s: %s", e.Expr.Source, e.Form, e.Msg)
	}
	return e.Form + ": " + e.Msg
}

// StackOverflowError is returned when the height of the call stack exceeds
// the runtime's limit.
type StackOverflowError struct {
	Height int
}

func (e *StackOverflowError) Condition() string {
	return "stack-overflow"
}

func (e *StackOverflowError) Error() string {
	return fmt.Sprintf("maximum stack height exceeded: %d", e.Height)
}

// RuntimeError wraps an error that aborted a top-level evaluation along with
// a copy of the call stack at the point of failure.
type RuntimeError struct {
	Err   error
	Stack *CallStack
}

func (e *RuntimeError) Error() string {
	return e.Err.Error()
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// Condition returns the condition of the underlying error.
func (e *RuntimeError) Condition() string {
	return Condition(e.Err)
}

// StackTrace returns a textual rendering of the stack attached to e.
func (e *RuntimeError) StackTrace() string {
	if e.Stack == nil {
		return ""
	}
	var buf bytes.Buffer
	e.Stack.DebugPrint(&buf)
	return buf.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
