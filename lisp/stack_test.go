package lisp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallStack(t *testing.T) {
	s := &CallStack{MaxHeight: 3}
	require.NoError(t, s.Push("", false))
	s.TailCall("f")
	s.TailCall("f")
	require.NoError(t, s.Push("+", true))
	assert.Equal(t, 2, s.Height())
	assert.Equal(t, "+", s.Top().Name)

	cp := s.Copy()
	require.NoError(t, s.Push("g", false))
	err := s.Push("h", false)
	var overflow *StackOverflowError
	require.ErrorAs(t, err, &overflow)
	assert.Equal(t, 4, overflow.Height)
	assert.Equal(t, 3, s.Height())
	assert.Equal(t, 2, cp.Height())

	var buf bytes.Buffer
	_, err = cp.DebugPrint(&buf)
	require.NoError(t, err)
	assert.Equal(t, `Stack Trace [2 frames -- entrypoint last]:
  height 1: + [builtin]
  height 0: f [1 tail calls]
`, buf.String())

	assert.Equal(t, "g", s.Pop().Name)
	s.Pop()
	s.Pop()
	assert.Nil(t, s.Top())
	assert.Panics(t, func() { s.Pop() })
}

func TestCallStack_unlimited(t *testing.T) {
	s := &CallStack{}
	for i := 0; i < 1000; i++ {
		require.NoError(t, s.Push("f", false))
	}
	assert.Equal(t, 1000, s.Height())
}
