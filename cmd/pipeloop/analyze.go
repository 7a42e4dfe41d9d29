package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jward/pipeloop"
)

var flagShow bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <grid-file>",
	Short: "Report the loop's farthest distance and enclosed tile count",
	Long:  "Reads a grid file, walks the loop through its start tile, and prints the distance to the loop's farthest point and the number of ground tiles the loop encloses.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&flagShow, "show", false, "include the loop with enclosed tiles marked '#'")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	start := time.Now()

	e, err := newEngine()
	if err != nil {
		return outputError("analyze", err)
	}
	defer e.Close()

	res, err := e.AnalyzeFile(context.Background(), args[0])
	if err != nil {
		return outputError("analyze", err)
	}
	logger.Debug("analyze finished",
		zap.String("file", args[0]),
		zap.Duration("took", time.Since(start)))

	return outputResult(CLIResult{
		Command: "analyze",
		Results: toCLIAnalysis(res, flagShow),
	})
}

func toCLIAnalysis(res *pipeloop.Result, show bool) CLIAnalysis {
	a := CLIAnalysis{
		Source:     res.Source,
		Hash:       res.Hash,
		Length:     res.Length,
		Enclosed:   res.Enclosed,
		LoopTiles:  res.Loop.Len(),
		Start:      CLIPosition{Row: res.Start.Row, Col: res.Start.Col},
		StartShape: string(res.StartShape.Glyph()),
		Cached:     res.Cached,
	}
	if show {
		a.Marked = res.Marked().Rows()
	}
	return a
}
