package harness

import (
	"strings"
	"unicode/utf8"
)

// isLineBreak reports whether r ends a line. The set matches the line
// boundaries of Python's str.splitlines, which the report format follows.
func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// splitLinesKeepEnds splits s after every line break, keeping the breaks.
// "\r\n" is a single break. A final unterminated line is kept as-is.
func splitLinesKeepEnds(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if !isLineBreak(r) {
			continue
		}
		if r == '\r' && i < len(s) && s[i] == '\n' {
			i++
		}
		lines = append(lines, s[start:i])
		start = i
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

// cutLineBreak removes the trailing line break of line, if any.
func cutLineBreak(line string) (string, bool) {
	if text, ok := strings.CutSuffix(line, "\r\n"); ok {
		return text, true
	}
	r, size := utf8.DecodeLastRuneInString(line)
	if size > 0 && isLineBreak(r) {
		return line[:len(line)-size], true
	}
	return line, false
}

// splitLines splits on line breaks without keeping them. A final break does
// not produce a trailing empty line.
func splitLines(s string) []string {
	lines := splitLinesKeepEnds(s)
	for i, line := range lines {
		lines[i], _ = cutLineBreak(line)
	}
	return lines
}
