package harness

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

const (
	// DiffContext is the number of unchanged lines around each hunk.
	DiffContext = 3
	// MaxDiffLines caps how many rendered diff lines a failing case prints.
	MaxDiffLines = 50

	noNewlineMarker = `\ No newline at end of file`
)

// UnifiedDiff renders a unified diff of expected against actual, labelled
// expected/<name> and actual/<name>. Each element is one output line without
// its terminator. Identical inputs produce no lines.
func UnifiedDiff(expected, actual, name string) []string {
	a := splitLinesKeepEnds(expected)
	b := splitLinesKeepEnds(actual)

	var out []string
	for _, group := range difflib.NewMatcher(a, b).GetGroupedOpCodes(DiffContext) {
		if out == nil {
			out = append(out, "--- expected/"+name, "+++ actual/"+name)
		}
		first, last := group[0], group[len(group)-1]
		out = append(out, fmt.Sprintf("@@ -%s +%s @@",
			formatRange(first.I1, last.I2), formatRange(first.J1, last.J2)))

		for _, op := range group {
			if op.Tag == 'e' {
				out = appendDiffLines(out, ' ', a[op.I1:op.I2])
				continue
			}
			if op.Tag == 'r' || op.Tag == 'd' {
				out = appendDiffLines(out, '-', a[op.I1:op.I2])
			}
			if op.Tag == 'r' || op.Tag == 'i' {
				out = appendDiffLines(out, '+', b[op.J1:op.J2])
			}
		}
	}
	return out
}

func appendDiffLines(out []string, prefix byte, lines []string) []string {
	for _, line := range lines {
		text, terminated := cutLineBreak(line)
		out = append(out, string(prefix)+text)
		if !terminated {
			out = append(out, noNewlineMarker)
		}
	}
	return out
}

// formatRange renders a hunk range the way unified diff headers expect:
// a single line is "N", an empty range is "N-1,0".
func formatRange(start, stop int) string {
	beginning := start + 1
	length := stop - start
	if length == 1 {
		return fmt.Sprintf("%d", beginning)
	}
	if length == 0 {
		beginning--
	}
	return fmt.Sprintf("%d,%d", beginning, length)
}
