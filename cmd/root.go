package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	configFile string
	flagConfig = DefaultConfig()

	// settings and logger resolved before any command runs
	settings *Config
	logger   *slog.Logger
	logOut   io.Closer
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tlisp",
	Short: "A small lisp interpreter",
	Long: `tlisp evaluates expressions of a small lisp.  When run without a
subcommand tlisp starts an interactive repl.`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	RunE:               runRepl,
}

// Execute adds all child commands to the root command sets flags
// appropriately.  This is called by main.main(). It only needs to happen once
// to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "",
		"Config file (default is $HOME/"+DefaultConfigName+")")
	flags.StringVar(&flagConfig.LogLevel, "log-level", flagConfig.LogLevel,
		"Log level: debug, info, warn, error, none")
	flags.StringVar(&flagConfig.LogFile, "log-file", "",
		"Log file path (if not set, logs to stderr)")
	flags.StringVar(&flagConfig.LogFormat, "log-format", flagConfig.LogFormat,
		"Log format: json, text")
	flags.IntVar(&flagConfig.MaxStackHeight, "max-stack-height", flagConfig.MaxStackHeight,
		"Maximum call stack height (0 is unlimited)")
	flags.BoolVar(&flagConfig.LenientArity, "lenient-arity", false,
		"Do not check the number of arguments in function calls")
	flags.StringSliceVar(&flagConfig.Preload, "preload", nil,
		"Lisp files to load before evaluating any input")
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := LoadConfig(configFile)
	if err != nil {
		return err
	}
	overrideConfig(cmd, c)
	w, err := configureLogWriter(c.LogFile)
	if err != nil {
		return err
	}
	logger, err = c.Logger(w)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	settings = c
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if logOut != nil {
		return logOut.Close()
	}
	return nil
}

// overrideConfig copies flags set on the command line into c.
func overrideConfig(cmd *cobra.Command, c *Config) {
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		c.LogLevel = flagConfig.LogLevel
	}
	if flags.Changed("log-file") {
		c.LogFile = flagConfig.LogFile
	}
	if flags.Changed("log-format") {
		c.LogFormat = flagConfig.LogFormat
	}
	if flags.Changed("max-stack-height") {
		c.MaxStackHeight = flagConfig.MaxStackHeight
	}
	if flags.Changed("lenient-arity") {
		c.LenientArity = flagConfig.LenientArity
	}
	if flags.Changed("preload") {
		c.Preload = flagConfig.Preload
	}
	if flags.Lookup("prompt") != nil && flags.Changed("prompt") {
		c.Prompt = flagConfig.Prompt
	}
	if flags.Lookup("history-file") != nil && flags.Changed("history-file") {
		c.HistoryFile = flagConfig.HistoryFile
	}
}

func configureLogWriter(path string) (io.Writer, error) {
	if path == "" {
		return os.Stderr, nil
	}
	err := os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory for %q: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %q: %w", path, err)
	}
	logOut = f
	return f, nil
}
