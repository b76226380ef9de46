package repl

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/luthersystems/tlisp/lisp"
	"github.com/luthersystems/tlisp/parser"
)

// DefaultPrompt is the prompt displayed when no other prompt is configured.
const DefaultPrompt = "user> "

type config struct {
	prompt      string
	historyFile string
	stdin       io.ReadCloser
	stdout      io.Writer
	stderr      io.Writer
	logger      *slog.Logger
}

// Option configures a repl.
type Option func(*config)

// WithPrompt sets the prompt displayed before each line of input.
func WithPrompt(prompt string) Option {
	return func(c *config) {
		c.prompt = prompt
	}
}

// WithHistoryFile makes the repl persist input history in the named file.
func WithHistoryFile(path string) Option {
	return func(c *config) {
		c.historyFile = path
	}
}

// WithStdin makes the repl read input from r instead of os.Stdin.
func WithStdin(r io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = r
	}
}

// WithStdout makes the repl print results to w instead of os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(c *config) {
		c.stdout = w
	}
}

// WithStderr makes the repl print errors to w instead of os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(c *config) {
		c.stderr = w
	}
}

// WithLogger sets the logger the repl reports session events to.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// RunRepl reads one line of input at a time, evaluates the first expression
// on the line in env, and prints the result.  Errors are printed and the loop
// continues.  An interrupt discards the current line.  RunRepl returns nil
// when input is exhausted.
func RunRepl(env *lisp.LEnv, opts ...Option) error {
	c := &config{
		prompt: DefaultPrompt,
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: env.Runtime.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}

	rlconfig := &readline.Config{
		Prompt:      c.prompt,
		HistoryFile: c.historyFile,
		Stdin:       c.stdin,
		Stdout:      c.stdout,
		Stderr:      c.stderr,
	}
	if c.stdin != nil {
		// Input is not a terminal.
		rlconfig.FuncIsTerminal = func() bool { return false }
		rlconfig.FuncMakeRaw = func() error { return nil }
		rlconfig.FuncExitRaw = func() error { return nil }
	}
	rl, err := readline.NewEx(rlconfig)
	if err != nil {
		return err
	}
	defer rl.Close()

	c.logger.Info("repl started", slog.String("history", c.historyFile))
	var nlines int
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		nlines++
		rep(env, line, c.stdout, c.stderr)
	}
	c.logger.Info("repl finished", slog.Int("lines", nlines))
	return nil
}

// rep evaluates the first expression in line and prints its result to
// stdout, or an error to stderr.  Blank lines are ignored.
func rep(env *lisp.LEnv, line string, stdout io.Writer, stderr io.Writer) {
	if strings.TrimSpace(line) == "" {
		return
	}
	expr, err := parser.Parse(line)
	if err != nil {
		errln(stderr, err)
		return
	}
	v, err := env.Eval(expr)
	if err != nil {
		errln(stderr, err)
		return
	}
	fmt.Fprintln(stdout, v)
}

func errln(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v\n", err)
}
