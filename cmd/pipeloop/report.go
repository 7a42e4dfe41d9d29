package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jward/pipeloop"
	"github.com/jward/pipeloop/internal/runtime"
)

var flagScript string

var reportCmd = &cobra.Command{
	Use:   "report <grid-file>",
	Short: "Run a Risor report script over a grid's analysis",
	Long: `Analyzes the grid and runs a Risor report script with the result exposed as
globals (loop_length, enclosed, start, loop, rows, path_rows, glyph_at, is_loop).

--script takes the name of a built-in script (summary, glyphs) or a path to a
.risor file on disk.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&flagScript, "script", "", "built-in script name or .risor file path (default from config)")
}

func runReport(cmd *cobra.Command, args []string) error {
	name := flagScript
	if name == "" {
		name = cfg.Report.Script
	}
	script, extra := resolveScript(name)

	e, err := newEngine(extra...)
	if err != nil {
		return outputError("report", err)
	}
	defer e.Close()

	ctx := context.Background()
	res, err := e.AnalyzeFile(ctx, args[0])
	if err != nil {
		return outputError("report", err)
	}
	if err := e.Report(ctx, res, script); err != nil {
		return outputError("report", err)
	}
	return nil
}

// resolveScript maps --script to a script path plus the engine options that
// make it loadable. A .risor file on disk is loaded from its directory;
// anything else names a script under report/ in the configured source.
func resolveScript(name string) (string, []pipeloop.Option) {
	if strings.HasSuffix(name, ".risor") {
		if _, err := os.Stat(name); err == nil {
			abs, err := filepath.Abs(name)
			if err == nil {
				name = abs
			}
			return filepath.Base(name), []pipeloop.Option{
				pipeloop.WithScriptsFS(nil),
				pipeloop.WithScriptsDir(filepath.Dir(name)),
			}
		}
	}
	return runtime.ReportScriptPath(name), nil
}
