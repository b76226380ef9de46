/*
Package lisptest runs sequences of lisp expressions against fresh root
environments and compares their printed results.
*/
package lisptest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/luthersystems/tlisp/lisp"
	"github.com/luthersystems/tlisp/parser"
	"github.com/stretchr/testify/assert"
)

// Runner is a test runner.
type Runner struct {
	// Config is applied to every environment created by the Runner, after
	// the Runner's own configuration.
	Config []lisp.Config
}

// NewEnv returns a new root environment which writes program output to
// stdout and debugging output to stderr.
func (r *Runner) NewEnv(stdout, stderr io.Writer) (*lisp.LEnv, error) {
	env := lisp.NewEnv(nil)
	config := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(stdout),
		lisp.WithStderr(stderr),
	}
	config = append(config, r.Config...)
	err := lisp.InitializeUserEnv(env, config...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize lisp environment: %w", err)
	}
	return env, nil
}

// RunTestFile loads the file at path into a fresh environment and fails t if
// any expression in the file results in an error.
func (r *Runner) RunTestFile(t *testing.T, path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("Unable to read test file: %v", err)
		return
	}
	var out bytes.Buffer
	env, err := r.NewEnv(&out, &out)
	if err != nil {
		t.Error(err.Error())
		return
	}
	_, err = env.Load(filepath.Base(path), bytes.NewReader(source))
	if err != nil {
		t.Errorf("%s: %v", path, err)
		var rterr *lisp.RuntimeError
		if errors.As(err, &rterr) {
			t.Error(rterr.StackTrace())
		}
		if out.Len() > 0 {
			t.Logf("output:\n%s", out.String())
		}
	}
}

// TestSequence is a sequence of lisp expressions which are evaluated sequentially
// by a lisp.LEnv.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the printed result or the error message
	Output string // output written by the expression
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests on isolated lisp.LEnvs.
func RunTestSuite(t *testing.T, tests TestSuite) {
	(&Runner{}).RunTestSuite(t, tests)
}

// RunTestSuite runs each TestSequence in tests on isolated lisp.LEnvs
// created by r.
func (r *Runner) RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		var out bytes.Buffer
		env, err := r.NewEnv(&out, &out)
		if !assert.NoError(t, err, "test %d %q", i, test.Name) {
			continue
		}
		for j, expr := range test.TestSequence {
			out.Reset()
			v, err := parser.Parse(expr.Expr)
			if err != nil {
				t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
				continue
			}
			var result string
			v, err = env.Eval(v)
			if err != nil {
				result = err.Error()
			} else {
				result = v.String()
			}
			assert.Equal(t, expr.Result, result, "test %d %q: expr %d: %s", i, test.Name, j, expr.Expr)
			assert.Equal(t, expr.Output, out.String(), "test %d %q: expr %d output", i, test.Name, j)
		}
	}
}
