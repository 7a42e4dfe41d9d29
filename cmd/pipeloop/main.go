package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jward/pipeloop"
	"github.com/jward/pipeloop/internal/config"
	"github.com/jward/pipeloop/scripts"
)

var (
	flagConfig  string
	flagDB      string
	flagNoCache bool
	flagFormat  string
	flagVerbose bool
	flagSerial  bool
)

var (
	cfg    *config.Config
	logger = zap.NewNop()
)

// errorHandled is set by outputError so main() doesn't double-print.
var errorHandled bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errorHandled {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "pipeloop",
	Short:         "Find the pipe loop in a grid and measure the area it encloses",
	Long:          "Pipeloop walks the closed loop of pipes through the start tile of a character grid, reports how far its farthest point is from the start, and counts the ground tiles the loop encloses.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := validateFormat(flagFormat); err != nil {
			return err
		}
		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return err
		}
		logger, err = newLogger(cfg)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	// No Run; prints help by default.
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", ".pipeloop.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "result cache database path (enables the cache)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "disable the result cache")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "json", "output format: json|text")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging to stderr")
	rootCmd.PersistentFlags().BoolVar(&flagSerial, "serial", false, "walk candidate directions one at a time")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds a production zap logger at the configured level, or at
// debug level with --verbose.
func newLogger(c *config.Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Encoding = "console"
	lvl, err := c.Level()
	if err != nil {
		return nil, err
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	if flagVerbose {
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return l, nil
}

// resolveDBPath returns the cache database path, or "" when caching is off.
// --db wins over the config file; --no-cache wins over both.
func resolveDBPath(c *config.Config) string {
	switch {
	case flagNoCache:
		return ""
	case flagDB != "":
		return flagDB
	case c.Store.Enabled:
		return c.Store.Path
	}
	return ""
}

// newEngine builds an Engine from config and flags. extra options are
// applied last.
func newEngine(extra ...pipeloop.Option) (*pipeloop.Engine, error) {
	opts := []pipeloop.Option{
		pipeloop.WithLogger(logger),
		pipeloop.WithParallel(cfg.Analysis.Parallel && !flagSerial),
	}

	if dbPath := resolveDBPath(cfg); dbPath != "" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", filepath.Dir(dbPath), err)
		}
		opts = append(opts, pipeloop.WithCache(dbPath))
	}

	// Script source: report.scripts_dir overrides embedded FS.
	if cfg.Report.ScriptsDir != "" {
		opts = append(opts, pipeloop.WithScriptsDir(cfg.Report.ScriptsDir))
	} else {
		opts = append(opts, pipeloop.WithScriptsFS(scripts.FS))
	}

	opts = append(opts, extra...)
	e, err := pipeloop.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}
	return e, nil
}
