package cmd

import (
	"github.com/luthersystems/tlisp/repl"
	"github.com/spf13/cobra"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive repl",
	Long: `Start an interactive repl.  Each line of input is read as a single
expression and evaluated.  Results are printed to stdout and errors to stderr.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func runRepl(cmd *cobra.Command, args []string) error {
	env, err := settings.NewEnv(logger)
	if err != nil {
		return err
	}
	return repl.RunRepl(env,
		repl.WithPrompt(settings.Prompt),
		repl.WithHistoryFile(settings.HistoryFile),
		repl.WithStdout(cmd.OutOrStdout()),
		repl.WithStderr(cmd.ErrOrStderr()),
		repl.WithLogger(env.Runtime.Logger))
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().StringVar(&flagConfig.Prompt, "prompt", flagConfig.Prompt,
		"Prompt displayed before each line of input")
	replCmd.Flags().StringVar(&flagConfig.HistoryFile, "history-file", "",
		"File used to persist input history")
}
