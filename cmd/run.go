package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/luthersystems/tlisp/lisp"
	"github.com/luthersystems/tlisp/parser"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [file ...]",
	Short: "Run lisp code",
	Long: `Run lisp code provided supplied via the command line or a file.  Every
expression is evaluated in a single environment.  Evaluation stops at the
first error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sources, err := runReadSources(args)
		if err != nil {
			return err
		}
		env, err := settings.NewEnv(logger)
		if err != nil {
			return err
		}
		for _, src := range sources {
			err := runSource(env, src, cmd.OutOrStdout())
			if err != nil {
				return err
			}
		}
		return nil
	},
}

type runSourceText struct {
	name string
	text []byte
}

func runReadSources(args []string) ([]runSourceText, error) {
	sources := make([]runSourceText, len(args))
	if runExpression {
		for i := range args {
			sources[i] = runSourceText{fmt.Sprintf("expr%d", i+1), []byte(args[i])}
		}
		return sources, nil
	}
	for i, path := range args {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		sources[i] = runSourceText{path, b}
	}
	return sources, nil
}

// runSource evaluates every expression in src.  When runPrint is set the
// value of each expression is written to w.
func runSource(env *lisp.LEnv, src runSourceText, w io.Writer) error {
	exprs, err := parser.ParseProgram(src.name, bytes.NewReader(src.text))
	if err != nil {
		return err
	}
	for _, expr := range exprs {
		v, err := env.Eval(expr)
		if err != nil {
			return err
		}
		if runPrint {
			fmt.Fprintln(w, v)
		}
	}
	return nil
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v\n", err)
	var rterr *lisp.RuntimeError
	if errors.As(err, &rterr) {
		fmt.Fprint(w, rterr.StackTrace())
	}
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
}
