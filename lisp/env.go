package lisp

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
)

var envCount uint64

func getEnvID() uint {
	return uint(atomic.AddUint64(&envCount, 1))
}

// LEnv is a lisp environment, one frame of a lexical scope chain.
type LEnv struct {
	ID      uint
	Scope   map[string]*LVal
	Parent  *LEnv
	Runtime *Runtime

	mu sync.RWMutex
}

// NewEnv returns initializes and returns a new LEnv.  When parent is nil the
// returned LEnv is a root environment with a new StandardRuntime.
func NewEnv(parent *LEnv) *LEnv {
	var rt *Runtime
	if parent != nil {
		rt = parent.Runtime
	} else {
		rt = StandardRuntime()
	}
	return &LEnv{
		ID:      getEnvID(),
		Scope:   make(map[string]*LVal),
		Parent:  parent,
		Runtime: rt,
	}
}

// InitializeUserEnv binds the default builtins in env and applies the given
// configuration.  The env must be a root environment.
func InitializeUserEnv(env *LEnv, config ...Config) error {
	if env.Parent != nil {
		return fmt.Errorf("user environment must be a root environment")
	}
	for _, fn := range config {
		err := fn(env)
		if err != nil {
			return err
		}
	}
	err := env.AddBuiltins()
	if err != nil {
		return err
	}
	env.Runtime.Logger.Debug("root environment initialized",
		slog.Uint64("env", uint64(env.ID)),
		slog.Int("builtins", len(env.Scope)),
		slog.Int("max-stack-height", env.Runtime.Stack.MaxHeight),
		slog.Bool("lenient-arity", env.Runtime.LenientArity))
	return nil
}

// Load reads every expression in r using the runtime's Reader and evaluates
// them in order.  Load returns the value of the last expression, or nil if r
// contains no expressions.  Evaluation stops at the first error.
func (env *LEnv) Load(name string, r io.Reader) (*LVal, error) {
	if env.Runtime.Reader == nil {
		return nil, Errorf("no-reader", "no reader configured for runtime")
	}
	exprs, err := env.Runtime.Reader.Read(name, r)
	if err != nil {
		return nil, err
	}
	env.Runtime.Logger.Debug("source loaded",
		slog.String("source", name),
		slog.Int("forms", len(exprs)))
	result := Nil()
	for _, expr := range exprs {
		result, err = env.Eval(expr)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Get returns the value bound to name in env or the nearest ancestor which
// binds it.  An *UnboundSymbolError is returned when no environment in the
// chain binds name.
func (env *LEnv) Get(name string) (*LVal, error) {
	for e := env; e != nil; e = e.Parent {
		e.mu.RLock()
		v, ok := e.Scope[name]
		e.mu.RUnlock()
		if ok {
			return v, nil
		}
	}
	return nil, &UnboundSymbolError{Name: name}
}

// Put binds name to v in env.  Put never modifies the bindings of an
// ancestor of env.
func (env *LEnv) Put(name string, v *LVal) {
	if v == nil {
		panic("nil value")
	}
	env.mu.Lock()
	env.Scope[name] = v
	env.mu.Unlock()
}

// Root returns the root environment of the chain containing env.
func (env *LEnv) Root() *LEnv {
	for env.Parent != nil {
		env = env.Parent
	}
	return env
}

// AddBuiltins binds the given funs to their names in env.  When called with
// no arguments AddBuiltins adds the DefaultBuiltins to env.
func (env *LEnv) AddBuiltins(funs ...LBuiltinDef) error {
	if len(funs) == 0 {
		funs = DefaultBuiltins()
	}
	for _, f := range funs {
		if _, err := env.Get(f.Name()); err == nil {
			return fmt.Errorf("symbol already defined: %s", f.Name())
		}
		if isSpecialOp(f.Name()) {
			return fmt.Errorf("builtin name is a special operator: %s", f.Name())
		}
		env.Put(f.Name(), Fun(f.Name(), checkArity(f)))
	}
	return nil
}
