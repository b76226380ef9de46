package lisp

import (
	"bytes"
	"fmt"
	"io"
)

// DefaultMaxStackHeight is the default limit on the height of a runtime's
// call stack.
const DefaultMaxStackHeight = 100000

// CallStack is a function call stack.  A frame is pushed for every nested
// evaluation and for every builtin invocation.  Tail calls reuse the frame
// on top of the stack.
type CallStack struct {
	Frames []CallFrame
	// MaxHeight is the maximum number of frames allowed on the stack.  A
	// MaxHeight of zero means the stack height is unlimited.
	MaxHeight int
}

// CallFrame is one frame in the CallStack
type CallFrame struct {
	Name string
	// TailCalls counts the frames which have been elided by replacing this
	// frame during tail calls.
	TailCalls int
	Builtin   bool
}

// Copy creates a copy of the current stack so that it can be attach to a
// runtime error.
func (s *CallStack) Copy() *CallStack {
	frames := make([]CallFrame, len(s.Frames))
	copy(frames, s.Frames)
	return &CallStack{Frames: frames, MaxHeight: s.MaxHeight}
}

// Height returns the number of frames on the stack.
func (s *CallStack) Height() int {
	return len(s.Frames)
}

// Top returns the CallFrame at the top of the stack or nil if none exists.
func (s *CallStack) Top() *CallFrame {
	if s == nil || len(s.Frames) == 0 {
		return nil
	}
	return &s.Frames[len(s.Frames)-1]
}

// Push pushes a new stack frame with the given name onto s.  Push returns an
// error, and leaves the stack unmodified, if the new frame would exceed the
// stack's maximum height.
func (s *CallStack) Push(name string, builtin bool) error {
	if s.MaxHeight > 0 && len(s.Frames) >= s.MaxHeight {
		return &StackOverflowError{Height: len(s.Frames) + 1}
	}
	s.Frames = append(s.Frames, CallFrame{Name: name, Builtin: builtin})
	return nil
}

// TailCall replaces the function running in the top frame with name.
func (s *CallStack) TailCall(name string) {
	top := s.Top()
	if top == nil {
		return
	}
	if top.Name != "" {
		top.TailCalls++
	}
	top.Name = name
}

// Pop removes the top CallFrame from the stack and returns it.
func (s *CallStack) Pop() CallFrame {
	if len(s.Frames) < 1 {
		panic("pop called on an empty stack")
	}
	f := s.Frames[len(s.Frames)-1]
	s.Frames[len(s.Frames)-1] = CallFrame{}
	s.Frames = s.Frames[:len(s.Frames)-1]
	return f
}

// DebugPrint prints s
func (s *CallStack) DebugPrint(w io.Writer) (int, error) {
	n, err := fmt.Fprintf(w, "Stack Trace [%d frames -- entrypoint last]:\n", len(s.Frames))
	if err != nil {
		return n, err
	}
	indent := "  "
	for i := len(s.Frames) - 1; i >= 0; i-- {
		f := s.Frames[i]
		var mod bytes.Buffer
		if f.Builtin {
			mod.WriteString(" [builtin]")
		}
		if f.TailCalls > 0 {
			fmt.Fprintf(&mod, " [%d tail calls]", f.TailCalls)
		}
		name := f.Name
		if name == "" {
			name = "<top-level>"
		}
		_n, err := fmt.Fprintf(w, "%sheight %d: %s%s\n", indent, i, name, mod.String())
		n += _n
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
