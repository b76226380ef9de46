package lisp

import "fmt"

// specialOp evaluates a special form.  The form is the complete list,
// including the operator symbol at its head.
type specialOp func(env *LEnv, form *LVal) (bounce, error)

// specialOps maps operator names to their implementations.  A list headed by
// one of these symbols is always a special form, regardless of any binding
// for the symbol.
var specialOps map[string]specialOp

func init() {
	specialOps = map[string]specialOp{
		"def!":   opDef,
		"let*":   opLetSeq,
		"letrec": opLetRec,
		"do":     opDo,
		"if":     opIf,
		"fun*":   opFun,
		"eval":   opEval,
	}
}

// SpecialOps returns the names of all special operators.
func SpecialOps() []string {
	names := make([]string, 0, len(specialOps))
	for name := range specialOps {
		names = append(names, name)
	}
	return names
}

func isSpecialOp(name string) bool {
	_, ok := specialOps[name]
	return ok
}

func opDef(env *LEnv, form *LVal) (bounce, error) {
	args, err := formArgs(form, 2, 2)
	if err != nil {
		return bounce{}, err
	}
	name, err := formSymbol(form, args[0])
	if err != nil {
		return bounce{}, err
	}
	v, err := env.evalArg(args[1])
	if err != nil {
		return bounce{}, err
	}
	env.Put(name, v)
	return done(v), nil
}

// opLetSeq binds names sequentially in a single new environment.  Each value
// expression is evaluated in the new environment as it accumulates bindings,
// so later values may refer to earlier names.
func opLetSeq(env *LEnv, form *LVal) (bounce, error) {
	return bindLet(env, form)
}

// opLetRec binds names in a single new environment in which every value
// expression is evaluated, so values may refer to their own name or to names
// bound later (from inside closures).
func opLetRec(env *LEnv, form *LVal) (bounce, error) {
	return bindLet(env, form)
}

func bindLet(env *LEnv, form *LVal) (bounce, error) {
	args, err := formArgs(form, 2, 2)
	if err != nil {
		return bounce{}, err
	}
	bindlist := args[0]
	if bindlist.Type != LList {
		return bounce{}, formErrorf(form, "first operand is not a list: %v", bindlist.Type)
	}
	if len(bindlist.Cells)%2 != 0 {
		return bounce{}, formErrorf(form, "binding list has an odd number of elements: %d", len(bindlist.Cells))
	}
	letenv := NewEnv(env)
	for i := 0; i < len(bindlist.Cells); i += 2 {
		name, err := formSymbol(form, bindlist.Cells[i])
		if err != nil {
			return bounce{}, err
		}
		v, err := letenv.evalArg(bindlist.Cells[i+1])
		if err != nil {
			return bounce{}, err
		}
		letenv.Put(name, v)
	}
	return tail(args[1], letenv), nil
}

func opDo(env *LEnv, form *LVal) (bounce, error) {
	body := form.Cells[1:]
	if len(body) == 0 {
		return done(Nil()), nil
	}
	for _, expr := range body[:len(body)-1] {
		_, err := env.evalArg(expr)
		if err != nil {
			return bounce{}, err
		}
	}
	return tail(body[len(body)-1], env), nil
}

func opIf(env *LEnv, form *LVal) (bounce, error) {
	args, err := formArgs(form, 2, 3)
	if err != nil {
		return bounce{}, err
	}
	cond, err := env.evalArg(args[0])
	if err != nil {
		return bounce{}, err
	}
	if True(cond) {
		return tail(args[1], env), nil
	}
	if len(args) < 3 {
		return done(Nil()), nil
	}
	return tail(args[2], env), nil
}

func opFun(env *LEnv, form *LVal) (bounce, error) {
	args, err := formArgs(form, 2, 2)
	if err != nil {
		return bounce{}, err
	}
	if args[0].Type != LList {
		return bounce{}, formErrorf(form, "parameter list is not a list: %v", args[0].Type)
	}
	formals := make([]string, len(args[0].Cells))
	for i, p := range args[0].Cells {
		formals[i], err = formSymbol(form, p)
		if err != nil {
			return bounce{}, err
		}
	}
	return done(Lambda(formals, args[1], env)), nil
}

// opEval evaluates its operand in the current environment and then evaluates
// the resulting value in the root environment.
func opEval(env *LEnv, form *LVal) (bounce, error) {
	args, err := formArgs(form, 1, 1)
	if err != nil {
		return bounce{}, err
	}
	expr, err := env.evalArg(args[0])
	if err != nil {
		return bounce{}, err
	}
	return tail(expr, env.Root()), nil
}

// formArgs returns the operands of form after checking that there are at
// least min and at most max of them.
func formArgs(form *LVal, min, max int) ([]*LVal, error) {
	args := form.Cells[1:]
	if len(args) < min || len(args) > max {
		if min == max {
			return nil, formErrorf(form, "expected %d %s (got %d)", min, plural(min, "operand"), len(args))
		}
		return nil, formErrorf(form, "expected %d to %d operands (got %d)", min, max, len(args))
	}
	return args, nil
}

func formSymbol(form *LVal, v *LVal) (string, error) {
	if v.Type != LSymbol {
		err := formErrorf(form, "expected a symbol but got %v", v)
		err.ExpectedSymbol = true
		return "", err
	}
	return v.Str, nil
}

func formErrorf(form *LVal, format string, v ...interface{}) *FormError {
	return &FormError{
		Form: form.Cells[0].Str,
		Expr: form,
		Msg:  fmt.Sprintf(format, v...),
	}
}
