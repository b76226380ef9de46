package lisp

import (
	"errors"
	"log/slog"
)

// lambdaName is used in stack frames and errors for functions that are not
// called through a symbol.
const lambdaName = "<lambda>"

// bounce is the result of one step of evaluation.  Either the step produced a
// final value or evaluation continues with expr in env.
type bounce struct {
	value *LVal
	expr  *LVal
	env   *LEnv
}

func done(v *LVal) bounce {
	return bounce{value: v}
}

func tail(expr *LVal, env *LEnv) bounce {
	return bounce{expr: expr, env: env}
}

func (b bounce) isDone() bool {
	return b.expr == nil
}

// Eval evaluates v in the context (scope) of env and returns the resulting
// LVal.  Errors which abort evaluation are returned as a *RuntimeError that
// carries a copy of the call stack at the point of failure.
func (env *LEnv) Eval(v *LVal) (*LVal, error) {
	result, err := env.evalFrame("", v)
	if err != nil {
		env.Runtime.Logger.Debug("evaluation failed",
			slog.String("condition", Condition(err)),
			slog.String("error", err.Error()))
		return nil, err
	}
	return result, nil
}

// Apply calls fun with args.  Unlike a call in tail position the body of a
// closure is evaluated to completion before Apply returns.
func (env *LEnv) Apply(fun *LVal, args []*LVal) (*LVal, error) {
	switch fun.Type {
	case LFun:
		callenv, err := bindFormals(fun, lambdaName, args)
		if err != nil {
			return nil, env.runtimeError(err)
		}
		return callenv.evalFrame(lambdaName, fun.Body)
	case LBuiltin:
		return env.callBuiltin(fun, args)
	default:
		return nil, env.runtimeError(&NotCallableError{Val: fun})
	}
}

// evalFrame evaluates v in a new stack frame.  Tail calls made while
// evaluating v replace the function running in the frame.
func (env *LEnv) evalFrame(name string, v *LVal) (*LVal, error) {
	stack := env.Runtime.Stack
	err := stack.Push(name, false)
	if err != nil {
		env.Runtime.Logger.Debug("stack limit reached", slog.Int("height", stack.Height()))
		return nil, env.runtimeError(err)
	}
	defer stack.Pop()
	result, err := env.trampoline(v)
	if err != nil {
		return nil, env.runtimeError(err)
	}
	return result, nil
}

// trampoline evaluates expr in a loop.  Special forms and closure calls in
// tail position hand back the next expression and environment rather than
// recursing, so tail recursion does not grow the host stack.
func (env *LEnv) trampoline(expr *LVal) (*LVal, error) {
	cur := env
	for {
		switch expr.Type {
		case LSymbol:
			return cur.Get(expr.Str)
		case LInt, LBool, LString, LNil, LFun, LBuiltin, LAtom:
			return expr, nil
		case LList:
			b, err := cur.evalList(expr)
			if err != nil {
				return nil, err
			}
			if b.isDone() {
				return b.value, nil
			}
			expr, cur = b.expr, b.env
		default:
			return nil, Errorf("invalid-value", "cannot evaluate value of type %v", expr.Type)
		}
	}
}

// evalArg evaluates v to completion.  Symbols and self-evaluating values are
// resolved without a new stack frame.
func (env *LEnv) evalArg(v *LVal) (*LVal, error) {
	switch v.Type {
	case LSymbol:
		return env.Get(v.Str)
	case LList:
		return env.evalFrame("", v)
	default:
		return v, nil
	}
}

func (env *LEnv) evalList(s *LVal) (bounce, error) {
	if len(s.Cells) == 0 {
		return bounce{}, &EmptyCallError{Expr: s}
	}
	head := s.Cells[0]
	if head.Type == LSymbol {
		if op, ok := specialOps[head.Str]; ok {
			return op(env, s)
		}
	}
	fun, err := env.evalArg(head)
	if err != nil {
		return bounce{}, err
	}
	args := make([]*LVal, len(s.Cells)-1)
	for i, c := range s.Cells[1:] {
		args[i], err = env.evalArg(c)
		if err != nil {
			return bounce{}, err
		}
	}
	name := lambdaName
	if head.Type == LSymbol {
		name = head.Str
	}
	switch fun.Type {
	case LFun:
		callenv, err := bindFormals(fun, name, args)
		if err != nil {
			return bounce{}, err
		}
		env.Runtime.Stack.TailCall(name)
		return tail(fun.Body, callenv), nil
	case LBuiltin:
		v, err := env.callBuiltin(fun, args)
		if err != nil {
			return bounce{}, err
		}
		return done(v), nil
	default:
		return bounce{}, &NotCallableError{Val: fun}
	}
}

// bindFormals returns a new child of the closure's environment which binds
// the closure's formal parameters to args.
func bindFormals(fun *LVal, name string, args []*LVal) (*LEnv, error) {
	lenient := fun.Env.Runtime.LenientArity
	if !lenient && len(args) != len(fun.Formals) {
		return nil, &ArityError{Fun: name, Expected: len(fun.Formals), Got: len(args)}
	}
	callenv := NewEnv(fun.Env)
	for i, param := range fun.Formals {
		if i >= len(args) {
			break
		}
		callenv.Put(param, args[i])
	}
	return callenv, nil
}

func (env *LEnv) callBuiltin(fun *LVal, args []*LVal) (*LVal, error) {
	stack := env.Runtime.Stack
	err := stack.Push(fun.Str, true)
	if err != nil {
		return nil, env.runtimeError(err)
	}
	defer stack.Pop()
	v, err := fun.Builtin(env, fun.Str, args)
	if err != nil {
		return nil, env.runtimeError(err)
	}
	return v, nil
}

// runtimeError attaches a copy of the current call stack to err.  Errors
// which already carry a stack are returned unmodified.
func (env *LEnv) runtimeError(err error) error {
	var rterr *RuntimeError
	if errors.As(err, &rterr) {
		return err
	}
	return &RuntimeError{Err: err, Stack: env.Runtime.Stack.Copy()}
}
