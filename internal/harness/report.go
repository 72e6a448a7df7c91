package harness

import (
	"fmt"
	"io"
	"strings"
)

const diffIndent = "    "

// Reporter renders the human-readable report: a header, one block per case
// and the final summary line.
type Reporter struct {
	w io.Writer
	p Palette
}

// NewReporter creates a Reporter writing to w with the given palette.
func NewReporter(w io.Writer, p Palette) *Reporter {
	return &Reporter{w: w, p: p}
}

// DiscardReporter renders nothing. It backs the machine-readable formats.
func DiscardReporter() *Reporter {
	return &Reporter{w: io.Discard}
}

// Header prints the resolved paths before the first case.
func (r *Reporter) Header(cfg Config) {
	fmt.Fprintln(r.w, r.p.Dim("BIN: "+cfg.BinPath))
	fmt.Fprintln(r.w, r.p.Dim("TEST_DIR: "+cfg.TestDir))
	fmt.Fprintln(r.w, r.p.Dim("KEY_DIR: "+cfg.KeyDir))
	fmt.Fprintln(r.w)
}

// Case prints the verdict line of one case and, on failure, the diagnostics
// that apply, in a fixed order.
func (r *Reporter) Case(res CaseResult) {
	name := res.Case.Name

	switch {
	case res.MissingExpected:
		fmt.Fprintf(r.w, "[%s] %s  %s\n", r.p.Red("FAIL"), name,
			r.p.Dim(fmt.Sprintf("(missing expected: %s)", res.Case.ExpectedPath)))
		return
	case res.Outcome == OutcomePass:
		fmt.Fprintf(r.w, "[%s] %s\n", r.p.Green("PASS"), name)
		return
	case res.Outcome == OutcomeUpdated:
		fmt.Fprintf(r.w, "[%s] %s\n", r.p.Yellow("UPDATED"), name)
		return
	}

	fmt.Fprintf(r.w, "[%s] %s\n", r.p.Red("FAIL"), name)

	switch {
	case res.ExecErr != "":
		fmt.Fprintf(r.w, "  %s %s\n", r.p.Yellow("Execution error:"), res.ExecErr)
		return
	case res.TimedOut:
		fmt.Fprintf(r.w, "  %s\n", r.p.Yellow(fmt.Sprintf("Timed out after %s", res.Timeout)))
		return
	case res.ExpectedErr != "":
		fmt.Fprintf(r.w, "  %s %s\n", r.p.Yellow("Expected file error:"), res.ExpectedErr)
		return
	}

	if !res.StatusOK {
		fmt.Fprintf(r.w, "  %s %d\n", r.p.Yellow("Exit status:"), res.ExitStatus)
	}
	if !res.StderrOK {
		fmt.Fprintf(r.w, "  %s\n", r.p.Yellow(fmt.Sprintf("Stderr (first %d lines):", StderrHeadLines)))
		fmt.Fprintf(r.w, "%s%s\n", diffIndent, strings.Join(res.StderrHead, "\n"+diffIndent))
	}
	if !res.StdoutOK {
		for i, line := range res.Diff {
			if i >= MaxDiffLines {
				fmt.Fprintln(r.w, diffIndent+"...")
				break
			}
			fmt.Fprintln(r.w, diffIndent+line)
		}
	}
}

// Summary prints the aggregate line after all cases.
func (r *Reporter) Summary(s Summary) {
	fmt.Fprintf(r.w, "\nTotal: %d  %s %d  %s %d\n",
		s.Total(), r.p.Green("pass:"), s.Passed, r.p.Red("fail:"), s.Failed)
}

// Preflight prints a configuration problem as a single line.
func (r *Reporter) Preflight(err *PreflightError) {
	if err.Kind == PreflightNoCases {
		fmt.Fprintln(r.w, r.p.Yellow(err.Error()))
		return
	}
	fmt.Fprintln(r.w, r.p.Red("ERROR: "+err.Label()+" ")+err.Path)
}
