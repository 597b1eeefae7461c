package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/syssam/mapgen/compiler/gen"
	"github.com/syssam/mapgen/compiler/genlog"
)

func statusLabel(s genlog.Status) string {
	label := fmt.Sprintf("%-9s", s)
	switch s {
	case genlog.StatusGenerated:
		return color.New(color.FgGreen).Sprint(label)
	case genlog.StatusSkipped:
		return color.New(color.FgYellow).Sprint(label)
	default:
		return color.New(color.FgRed).Sprint(label)
	}
}

// printReport prints the outcome of every type, then the totals.
func printReport(w io.Writer, report *gen.Report, verbose bool) {
	for _, e := range report.Entries {
		if !verbose && e.Status != genlog.StatusFailed {
			continue
		}
		fmt.Fprintf(w, "  %s %s\n", statusLabel(e.Status), e.Type)
		if e.Reason != "" {
			fmt.Fprintf(w, "            %s\n", e.Reason)
		}
	}
	fmt.Fprintf(w, "%s generated, %s skipped, %s failed (run %s)\n",
		color.New(color.FgGreen, color.Bold).Sprint(report.Generated),
		color.New(color.FgYellow).Sprint(report.Skipped),
		color.New(color.FgRed, color.Bold).Sprint(report.Failed),
		report.RunID,
	)
}
