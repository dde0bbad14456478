package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"prematch/internal/runner"
)

const (
	ansiReset = "\x1b[0m"
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
)

func printSummary(out io.Writer, summary *runner.Summary) {
	colorize := shouldColorize(out)

	fmt.Fprintf(out, "Run %s finished in %s\n", summary.RunID, summary.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(out, "  Candidates: %d\n", summary.Total)
	fmt.Fprintf(out, "  Matched:    %s\n", colorCount(summary.Matched, ansiGreen, colorize))
	fmt.Fprintf(out, "  Failed:     %s\n", colorCount(summary.Failed, ansiRed, colorize))
	if summary.Skipped > 0 {
		fmt.Fprintf(out, "  Skipped:    %d\n", summary.Skipped)
	}
}

func colorCount(count int, color string, colorize bool) string {
	rendered := fmt.Sprintf("%d", count)
	if colorize && count > 0 {
		return color + rendered + ansiReset
	}
	return rendered
}

// writeJSON renders v as indented JSON for the --json flags.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
