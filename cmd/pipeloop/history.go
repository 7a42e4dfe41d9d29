package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"
)

var (
	flagLimit int
	flagClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List analyses stored in the result cache",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "maximum runs to list (0 for all)")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "delete all stored runs")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if resolveDBPath(cfg) == "" {
		return outputError("history", errors.New("no cache database: pass --db or enable store in the config"))
	}
	e, err := newEngine()
	if err != nil {
		return outputError("history", err)
	}
	defer e.Close()

	if flagClear {
		if err := e.ClearCache(); err != nil {
			return outputError("history", err)
		}
		return outputResult(CLIResult{Command: "history", Results: []CLIRun{}})
	}

	runs, err := e.History(flagLimit)
	if err != nil {
		return outputError("history", err)
	}
	out := make([]CLIRun, 0, len(runs))
	for _, r := range runs {
		out = append(out, CLIRun{
			ID:         r.ID,
			Source:     r.Source,
			Hash:       r.Hash,
			Height:     r.Height,
			Width:      r.Width,
			Length:     r.LoopLength,
			Enclosed:   r.Enclosed,
			StartGlyph: r.StartGlyph,
			AnalyzedAt: r.AnalyzedAt.Format(time.RFC3339),
		})
	}
	return outputResult(CLIResult{Command: "history", Results: out})
}
