package harness

// StderrHeadLines is how many lines of stderr a failing case shows.
const StderrHeadLines = 5

// Comparison holds the three independent checks of a case.
type Comparison struct {
	StatusOK bool
	StderrOK bool
	StdoutOK bool
	// Expected and Actual are the normalized texts that were compared.
	Expected string
	Actual   string
}

// Pass is the conjunction of all three checks.
func (c Comparison) Pass() bool {
	return c.StatusOK && c.StderrOK && c.StdoutOK
}

// Compare classifies one execution against the expected key bytes.
//
// Carriage returns are stripped from both sides; nothing else is trimmed, so
// a missing trailing newline is a real difference.
func Compare(expected []byte, res ExecResult) Comparison {
	exp := StripCR(decodeDropInvalid(expected))
	act := StripCR(DecodeLenient(res.Stdout))
	return Comparison{
		StatusOK: res.ExitStatus == 0,
		StderrOK: len(res.Stderr) == 0,
		StdoutOK: exp == act,
		Expected: exp,
		Actual:   act,
	}
}

// StderrHead returns at most n lines of the decoded stderr capture.
func StderrHead(stderr []byte, n int) []string {
	lines := splitLines(DecodeLenient(stderr))
	if len(lines) > n {
		lines = lines[:n]
	}
	return lines
}
