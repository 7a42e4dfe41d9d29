package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
)

var validFormats = []string{"json", "text"}

func validateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q: must be %s", format, strings.Join(validFormats, " or "))
}

// outputResult writes result to stdout in the selected format.
func outputResult(result CLIResult) error {
	return writeResult(os.Stdout, flagFormat, result)
}

func writeResult(w io.Writer, format string, result CLIResult) error {
	if format == "text" {
		return writeResultText(w, result)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// outputError writes an error in the selected format and returns it so RunE
// can propagate it to Cobra. In JSON mode the error is written to stdout as a
// CLIResult envelope. In text mode it goes to stderr.
func outputError(command string, err error) error {
	errorHandled = true
	if flagFormat == "text" {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(CLIResult{Command: command, Error: err.Error()})
	return err
}

func writeResultText(w io.Writer, result CLIResult) error {
	switch v := result.Results.(type) {
	case CLIAnalysis:
		formatAnalysisText(w, v)
	case []CLIRun:
		formatRunsText(w, v)
	case nil:
	default:
		return fmt.Errorf("unsupported result type for text format: %T", v)
	}
	return nil
}

// formatAnalysisText prints the two answers first, then the details.
func formatAnalysisText(w io.Writer, a CLIAnalysis) {
	fmt.Fprintf(w, "Farthest: %d\n", a.Length)
	fmt.Fprintf(w, "Enclosed: %d\n", a.Enclosed)
	fmt.Fprintf(w, "Loop tiles: %d\n", a.LoopTiles)
	fmt.Fprintf(w, "Start: %d,%d as %s\n", a.Start.Row, a.Start.Col, a.StartShape)
	if a.Cached {
		fmt.Fprintln(w, "(cached)")
	}
	if len(a.Marked) > 0 {
		fmt.Fprintln(w)
		for _, row := range a.Marked {
			fmt.Fprintln(w, row)
		}
	}
}

// formatRunsText formats stored runs as aligned columns.
func formatRunsText(w io.Writer, runs []CLIRun) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSOURCE\tSIZE\tFARTHEST\tENCLOSED\tANALYZED")
	for _, r := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%dx%d\t%d\t%d\t%s\n",
			r.ID, r.Source, r.Height, r.Width, r.Length, r.Enclosed, r.AnalyzedAt)
	}
	tw.Flush()
}
