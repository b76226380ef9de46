package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/luthersystems/tlisp/lisp"
	"github.com/luthersystems/tlisp/parser"
	"github.com/luthersystems/tlisp/repl"
)

// DefaultConfigName is the name of the configuration file looked up in the
// user's home directory when no --config flag is given.
const DefaultConfigName = ".tlisp.toml"

// Config holds settings read from a configuration file and command line
// flags.
type Config struct {
	Prompt         string   `toml:"prompt"`
	HistoryFile    string   `toml:"history_file"`
	MaxStackHeight int      `toml:"max_stack_height"`
	LenientArity   bool     `toml:"lenient_arity"`
	LogLevel       string   `toml:"log_level"`
	LogFormat      string   `toml:"log_format"`
	LogFile        string   `toml:"log_file"`
	Preload        []string `toml:"preload"`
}

// DefaultConfig returns the settings used when neither a file nor a flag
// provides a value.
func DefaultConfig() *Config {
	return &Config{
		Prompt:         repl.DefaultPrompt,
		MaxStackHeight: lisp.DefaultMaxStackHeight,
		LogLevel:       "none",
		LogFormat:      "json",
	}
}

// LoadConfig decodes the TOML file at path over the defaults.  When path is
// empty the default file in the user's home directory is read if it exists.
func LoadConfig(path string) (*Config, error) {
	c := DefaultConfig()
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return c, nil
		}
		path = filepath.Join(home, DefaultConfigName)
	}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, fmt.Errorf("config %s: unknown key %q", path, undec[0].String())
	}
	if c.MaxStackHeight < 0 {
		return nil, fmt.Errorf("config %s: negative max_stack_height: %d", path, c.MaxStackHeight)
	}
	return c, nil
}

// Logger returns a logger writing to w at the configured level and format.
// A level of "none" discards all records.
func (c *Config) Logger(w io.Writer) (*slog.Logger, error) {
	if c.LogLevel == "none" || c.LogLevel == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil
	}
	level, err := logLevelFromString(c.LogLevel)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	switch c.LogFormat {
	case "json", "":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format: %s", c.LogFormat)
	}
}

// LispConfig returns the lisp.Config values which apply c to a root
// environment.
func (c *Config) LispConfig(logger *slog.Logger) []lisp.Config {
	config := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithMaximumStackHeight(c.MaxStackHeight),
		lisp.WithLogger(logger),
	}
	if c.LenientArity {
		config = append(config, lisp.WithLenientArity())
	}
	return config
}

// NewEnv returns an initialized root environment with every preload file
// loaded into it.
func (c *Config) NewEnv(logger *slog.Logger) (*lisp.LEnv, error) {
	env := lisp.NewEnv(nil)
	err := lisp.InitializeUserEnv(env, c.LispConfig(logger)...)
	if err != nil {
		return nil, err
	}
	for _, path := range c.Preload {
		err := loadFile(env, path)
		if err != nil {
			return nil, err
		}
	}
	return env, nil
}

func loadFile(env *lisp.LEnv, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = env.Load(path, f)
	return err
}

func logLevelFromString(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", level)
	}
}
