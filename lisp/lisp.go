package lisp

import (
	"bytes"
	"fmt"
	"strconv"
	"sync"

	"github.com/luthersystems/tlisp/parser/token"
)

// LValType is the type of an LVal
type LValType uint

// Possible LValType values
const (
	LInvalid LValType = iota
	LSymbol
	LInt
	LBool
	LString
	LNil
	LList
	LFun
	LBuiltin
	LAtom
)

var lvalTypeStrings = []string{
	LInvalid: "INVALID",
	LSymbol:  "Symbol",
	LInt:     "Integer",
	LBool:    "Boolean",
	LString:  "String",
	LNil:     "Nil",
	LList:    "List",
	LFun:     "Function",
	LBuiltin: "Builtin",
	LAtom:    "Atom",
}

func (t LValType) String() string {
	if int(t) >= len(lvalTypeStrings) {
		return lvalTypeStrings[LInvalid]
	}
	return lvalTypeStrings[t]
}

// LBuiltinFunc is the native implementation of a builtin function.  It receives
// the name the builtin was registered under and its fully evaluated
// arguments.
type LBuiltinFunc func(env *LEnv, name string, args []*LVal) (*LVal, error)

// LVal is a lisp value.  The Type field determines which of the remaining
// fields are meaningful.  Values are never modified after they are
// constructed.  The only mutable storage is the cell referenced by an LAtom.
type LVal struct {
	Type LValType

	// Source is the location the value was read from, if it was read.
	Source *token.Location

	Int  int64
	Bool bool

	// Str holds symbol names, string contents, and builtin names.
	Str string

	// Cells holds the elements of an LList.
	Cells []*LVal

	// Variables needed for function values
	Formals []string
	Body    *LVal
	Env     *LEnv
	Builtin LBuiltinFunc

	Ref *AtomCell
}

// AtomCell is the mutable storage shared by every copy of an atom.
type AtomCell struct {
	mu  sync.Mutex
	val *LVal
}

// Load returns the current contents of the cell.
func (c *AtomCell) Load() *LVal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.val
}

// Store replaces the contents of the cell with v.
func (c *AtomCell) Store(v *LVal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.val = v
}

// Symbol returns an LVal resprenting the symbol s
func Symbol(s string) *LVal {
	return &LVal{
		Type: LSymbol,
		Str:  s,
	}
}

// Int returns an LVal representing the integer x.
func Int(x int64) *LVal {
	return &LVal{
		Type: LInt,
		Int:  x,
	}
}

// Bool returns an LVal representing the boolean b.
func Bool(b bool) *LVal {
	return &LVal{
		Type: LBool,
		Bool: b,
	}
}

// String returns an LVal representing the string s.
func String(s string) *LVal {
	return &LVal{
		Type: LString,
		Str:  s,
	}
}

// Nil returns an LVal representing nil, the absence of a value.  Nil is not
// an empty list.
func Nil() *LVal {
	return &LVal{Type: LNil}
}

// List returns an LVal representing a list of the given values.
func List(cells ...*LVal) *LVal {
	return &LVal{
		Type:  LList,
		Cells: cells,
	}
}

// Lambda returns a closure that binds formals to its arguments and evaluates
// body in a child of env.
func Lambda(formals []string, body *LVal, env *LEnv) *LVal {
	return &LVal{
		Type:    LFun,
		Formals: formals,
		Body:    body,
		Env:     env,
	}
}

// Fun returns an LVal representing the builtin function fn.
func Fun(name string, fn LBuiltinFunc) *LVal {
	return &LVal{
		Type:    LBuiltin,
		Str:     name,
		Builtin: fn,
	}
}

// Atom returns an LVal representing a new mutable cell holding v.
func Atom(v *LVal) *LVal {
	return &LVal{
		Type: LAtom,
		Ref:  &AtomCell{val: v},
	}
}

// IsCallable returns true if v can be applied to arguments.
func (v *LVal) IsCallable() bool {
	return v.Type == LFun || v.Type == LBuiltin
}

// True returns true if v is any value other than the boolean false.  There is
// no other falsy value, not even nil.
func True(v *LVal) bool {
	return !(v.Type == LBool && !v.Bool)
}

// Len returns the number of elements in a list.  Len returns 0 for any value
// that is not a list.
func (v *LVal) Len() int {
	if v.Type != LList {
		return 0
	}
	return len(v.Cells)
}

func (v *LVal) String() string {
	var buf bytes.Buffer
	v.writeTo(&buf, nil)
	return buf.String()
}

// writeTo writes the printed form of v to buf.  The cells of atoms currently
// being printed are kept in open so that an atom which contains itself is
// printed as (atom ...) instead of recursing forever.
func (v *LVal) writeTo(buf *bytes.Buffer, open map[*AtomCell]bool) map[*AtomCell]bool {
	switch v.Type {
	case LSymbol:
		buf.WriteString(v.Str)
	case LInt:
		buf.WriteString(strconv.FormatInt(v.Int, 10))
	case LBool:
		buf.WriteString(strconv.FormatBool(v.Bool))
	case LString:
		buf.WriteString("'" + v.Str + "'")
	case LNil:
		buf.WriteString("nil")
	case LList:
		buf.WriteString("(")
		for i, c := range v.Cells {
			if i > 0 {
				buf.WriteString(" ")
			}
			open = c.writeTo(buf, open)
		}
		buf.WriteString(")")
	case LFun:
		buf.WriteString("<function>")
	case LBuiltin:
		buf.WriteString("<builtin:" + v.Str + ">")
	case LAtom:
		if open[v.Ref] {
			buf.WriteString("(atom ...)")
			break
		}
		if open == nil {
			open = make(map[*AtomCell]bool)
		}
		open[v.Ref] = true
		buf.WriteString("(atom ")
		open = v.Ref.Load().writeTo(buf, open)
		buf.WriteString(")")
		delete(open, v.Ref)
	default:
		fmt.Fprintf(buf, "%#v", v)
	}
	return open
}

// Equal reports whether a and b are structurally equal.  Values with
// different types are never equal.  Lists are equal when they have equal
// lengths and equal elements.  Functions and atoms are only equal to
// themselves, builtins are equal when they share a name.
func Equal(a, b *LVal) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case LSymbol, LString:
		return a.Str == b.Str
	case LInt:
		return a.Int == b.Int
	case LBool:
		return a.Bool == b.Bool
	case LNil:
		return true
	case LList:
		if len(a.Cells) != len(b.Cells) {
			return false
		}
		for i := range a.Cells {
			if !Equal(a.Cells[i], b.Cells[i]) {
				return false
			}
		}
		return true
	case LFun:
		return a == b
	case LBuiltin:
		return a.Str == b.Str
	case LAtom:
		return a.Ref == b.Ref
	default:
		return false
	}
}
