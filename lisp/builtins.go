package lisp

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// VarArgs is the arity of a builtin which accepts any number of arguments.
const VarArgs = -1

// LBuiltinDef is a built-in function
type LBuiltinDef interface {
	Name() string
	// Arity is the number of arguments the builtin requires, or VarArgs.
	Arity() int
	Eval(env *LEnv, name string, args []*LVal) (*LVal, error)
}

type langBuiltin struct {
	name  string
	nargs int
	fun   LBuiltinFunc
}

func (fun *langBuiltin) Name() string {
	return fun.name
}

func (fun *langBuiltin) Arity() int {
	return fun.nargs
}

func (fun *langBuiltin) Eval(env *LEnv, name string, args []*LVal) (*LVal, error) {
	return fun.fun(env, name, args)
}

var userBuiltins []*langBuiltin
var langBuiltins = []*langBuiltin{
	{"+", 2, builtinAdd},
	{"-", 2, builtinSub},
	{"*", 2, builtinMul},
	{"/", 2, builtinDiv},
	{"=", 2, builtinEqual},
	{"<", 2, builtinLess},
	{"list", VarArgs, builtinList},
	{"list?", 1, builtinListP},
	{"empty?", 1, builtinEmptyP},
	{"count", 1, builtinCount},
	{"str", VarArgs, builtinStr},
	{"slurp", 1, builtinSlurp},
	{"read-str", 1, builtinReadStr},
	{"atom", 1, builtinAtom},
	{"atom?", 1, builtinAtomP},
	{"deref", 1, builtinDeref},
	{"reset!", 2, builtinReset},
	{"swap!", 2, builtinSwap},
	{"prn", 1, builtinPrn},
	{"debug-stack", 0, builtinDebugStack},
}

// RegisterDefaultBuiltin adds the given function to the list returned by
// DefaultBuiltins.  RegisterDefaultBuiltin must be called before any root
// environment is initialized.
func RegisterDefaultBuiltin(name string, arity int, fn LBuiltinFunc) {
	userBuiltins = append(userBuiltins, &langBuiltin{name, arity, fn})
}

// DefaultBuiltins returns the default set of LBuiltinDefs added to LEnv
// objects when LEnv.AddBuiltins is called without arguments.
func DefaultBuiltins() []LBuiltinDef {
	defs := make([]LBuiltinDef, 0, len(langBuiltins)+len(userBuiltins))
	for _, fn := range langBuiltins {
		defs = append(defs, fn)
	}
	for _, fn := range userBuiltins {
		defs = append(defs, fn)
	}
	return defs
}

// checkArity wraps the implementation of f with a check that the number of
// arguments matches f.Arity().
func checkArity(f LBuiltinDef) LBuiltinFunc {
	nargs := f.Arity()
	return func(env *LEnv, name string, args []*LVal) (*LVal, error) {
		if nargs != VarArgs && len(args) != nargs {
			return nil, &ArityError{Fun: name, Expected: nargs, Got: len(args)}
		}
		return f.Eval(env, name, args)
	}
}

// intArgs checks the arguments of a binary integer function.  The second
// argument is checked first, so when neither is an integer the error names
// position 2.
func intArgs(name string, args []*LVal) (int64, int64, error) {
	for i := len(args) - 1; i >= 0; i-- {
		if args[i].Type != LInt {
			return 0, 0, &TypeError{Fun: name, Pos: i + 1, Expected: LInt, Got: args[i]}
		}
	}
	return args[0].Int, args[1].Int, nil
}

func builtinAdd(env *LEnv, name string, args []*LVal) (*LVal, error) {
	a, b, err := intArgs(name, args)
	if err != nil {
		return nil, err
	}
	return Int(a + b), nil
}

func builtinSub(env *LEnv, name string, args []*LVal) (*LVal, error) {
	a, b, err := intArgs(name, args)
	if err != nil {
		return nil, err
	}
	return Int(a - b), nil
}

func builtinMul(env *LEnv, name string, args []*LVal) (*LVal, error) {
	a, b, err := intArgs(name, args)
	if err != nil {
		return nil, err
	}
	return Int(a * b), nil
}

func builtinDiv(env *LEnv, name string, args []*LVal) (*LVal, error) {
	a, b, err := intArgs(name, args)
	if err != nil {
		return nil, err
	}
	if b == 0 {
		return nil, Errorf("division-by-zero", "%s: division by zero", name)
	}
	return Int(a / b), nil
}

func builtinEqual(env *LEnv, name string, args []*LVal) (*LVal, error) {
	return Bool(Equal(args[0], args[1])), nil
}

func builtinLess(env *LEnv, name string, args []*LVal) (*LVal, error) {
	a, b := args[0], args[1]
	if a.Type != LInt || b.Type != LInt {
		return Bool(false), nil
	}
	return Bool(a.Int < b.Int), nil
}

func builtinList(env *LEnv, name string, args []*LVal) (*LVal, error) {
	cells := make([]*LVal, len(args))
	copy(cells, args)
	return List(cells...), nil
}

func builtinListP(env *LEnv, name string, args []*LVal) (*LVal, error) {
	return Bool(args[0].Type == LList), nil
}

func builtinEmptyP(env *LEnv, name string, args []*LVal) (*LVal, error) {
	v := args[0]
	return Bool(v.Type == LList && len(v.Cells) == 0), nil
}

func builtinCount(env *LEnv, name string, args []*LVal) (*LVal, error) {
	return Int(int64(args[0].Len())), nil
}

func builtinStr(env *LEnv, name string, args []*LVal) (*LVal, error) {
	var buf strings.Builder
	for i, v := range args {
		if v.Type != LString {
			return nil, &TypeError{Fun: name, Pos: i + 1, Expected: LString, Got: v}
		}
		buf.WriteString(v.Str)
	}
	return String(buf.String()), nil
}

func builtinSlurp(env *LEnv, name string, args []*LVal) (*LVal, error) {
	path := args[0]
	if path.Type != LString {
		return nil, &TypeError{Fun: name, Pos: 1, Expected: LString, Got: path}
	}
	b, err := os.ReadFile(path.Str)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	env.Runtime.Logger.Debug("file read",
		slog.String("path", path.Str),
		slog.Int("bytes", len(b)))
	return String(string(b)), nil
}

func builtinReadStr(env *LEnv, name string, args []*LVal) (*LVal, error) {
	src := args[0]
	if src.Type != LString {
		return nil, &TypeError{Fun: name, Pos: 1, Expected: LString, Got: src}
	}
	return env.Runtime.Read(name, strings.NewReader(src.Str))
}

func builtinAtom(env *LEnv, name string, args []*LVal) (*LVal, error) {
	return Atom(args[0]), nil
}

func builtinAtomP(env *LEnv, name string, args []*LVal) (*LVal, error) {
	return Bool(args[0].Type == LAtom), nil
}

func atomArg(name string, v *LVal) (*AtomCell, error) {
	if v.Type != LAtom {
		return nil, &TypeError{Fun: name, Pos: 1, Expected: LAtom, Got: v}
	}
	return v.Ref, nil
}

func builtinDeref(env *LEnv, name string, args []*LVal) (*LVal, error) {
	cell, err := atomArg(name, args[0])
	if err != nil {
		return nil, err
	}
	return cell.Load(), nil
}

func builtinReset(env *LEnv, name string, args []*LVal) (*LVal, error) {
	cell, err := atomArg(name, args[0])
	if err != nil {
		return nil, err
	}
	cell.Store(args[1])
	return args[1], nil
}

// builtinSwap applies a function to the contents of an atom and stores the
// result.  The function runs to completion in its own stack frame.
func builtinSwap(env *LEnv, name string, args []*LVal) (*LVal, error) {
	cell, err := atomArg(name, args[0])
	if err != nil {
		return nil, err
	}
	fun := args[1]
	if !fun.IsCallable() {
		return nil, &TypeError{Fun: name, Pos: 2, Expected: LFun, Got: fun}
	}
	v, err := env.Apply(fun, []*LVal{cell.Load()})
	if err != nil {
		return nil, err
	}
	cell.Store(v)
	return args[0], nil
}

func builtinPrn(env *LEnv, name string, args []*LVal) (*LVal, error) {
	_, err := fmt.Fprintln(env.Runtime.Stdout, args[0].String())
	if err != nil {
		return nil, err
	}
	return Nil(), nil
}

func builtinDebugStack(env *LEnv, name string, args []*LVal) (*LVal, error) {
	_, err := env.Runtime.Stack.DebugPrint(env.Runtime.Stderr)
	if err != nil {
		return nil, err
	}
	return Nil(), nil
}
