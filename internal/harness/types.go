package harness

import "time"

// DefaultSuffix is the input file extension used when none is configured.
const DefaultSuffix = ".txt"

// Config is the resolved, immutable configuration of one harness run.
type Config struct {
	// BinPath is the absolute path of the executable under test.
	BinPath string
	// TestDir holds one input file per case.
	TestDir string
	// KeyDir holds the expected output files, named like their inputs.
	KeyDir string
	// Suffix selects input files in TestDir. Empty means DefaultSuffix.
	Suffix string
	// Filter is an optional glob matched against case names without Suffix.
	Filter string
	// Timeout bounds a single case. Zero means no limit.
	Timeout time.Duration
	// Update rewrites key files from actual output instead of comparing.
	Update bool
}

func (c Config) suffix() string {
	if c.Suffix == "" {
		return DefaultSuffix
	}
	return c.Suffix
}

// Case is one input file. Name is the join key between input and expected output.
type Case struct {
	Name         string `json:"name" yaml:"name"`
	InputPath    string `json:"input" yaml:"input"`
	ExpectedPath string `json:"expected" yaml:"expected"`
}

// ExecResult is what a single run of the target produced.
type ExecResult struct {
	ExitStatus int
	Stdout     []byte
	Stderr     []byte
	Duration   time.Duration
	// Err is set when the process could not be launched or did not complete
	// normally for reasons other than its own exit status.
	Err error
	// TimedOut is set when the process was killed after exceeding its limit.
	TimedOut bool
}

// Outcome is the verdict tag of a case.
type Outcome string

const (
	OutcomePass    Outcome = "PASS"
	OutcomeFail    Outcome = "FAIL"
	OutcomeUpdated Outcome = "UPDATED"
)

// CaseResult is the classified verdict of one case together with the
// diagnostics the reporter needs.
type CaseResult struct {
	Case    Case    `json:"case" yaml:"case"`
	Outcome Outcome `json:"outcome" yaml:"outcome"`

	MissingExpected bool   `json:"missing_expected,omitempty" yaml:"missing_expected,omitempty"`
	ExpectedErr     string `json:"expected_error,omitempty" yaml:"expected_error,omitempty"`
	ExecErr         string `json:"exec_error,omitempty" yaml:"exec_error,omitempty"`
	TimedOut        bool   `json:"timed_out,omitempty" yaml:"timed_out,omitempty"`

	ExitStatus int  `json:"exit_status" yaml:"exit_status"`
	StatusOK   bool `json:"status_ok" yaml:"status_ok"`
	StderrOK   bool `json:"stderr_ok" yaml:"stderr_ok"`
	StdoutOK   bool `json:"stdout_ok" yaml:"stdout_ok"`

	// StderrHead holds the first StderrHeadLines lines of decoded stderr.
	StderrHead []string `json:"stderr_head,omitempty" yaml:"stderr_head,omitempty"`
	// Diff is the complete rendered unified diff; the reporter caps it.
	Diff []string `json:"diff,omitempty" yaml:"diff,omitempty"`

	Timeout    time.Duration `json:"-" yaml:"-"`
	Duration   time.Duration `json:"-" yaml:"-"`
	DurationMS int64         `json:"duration_ms" yaml:"duration_ms"`
}

// Passed reports whether the case counts towards the passed total.
func (r CaseResult) Passed() bool {
	return r.Outcome == OutcomePass || r.Outcome == OutcomeUpdated
}

// Summary accumulates verdicts over the ordered case sequence.
type Summary struct {
	Passed int `json:"passed" yaml:"passed"`
	Failed int `json:"failed" yaml:"failed"`
}

// Add counts one verdict.
func (s *Summary) Add(r CaseResult) {
	if r.Passed() {
		s.Passed++
		return
	}
	s.Failed++
}

// Total is the number of cases counted so far.
func (s Summary) Total() int {
	return s.Passed + s.Failed
}

// ExitCode is 0 when nothing failed and 1 otherwise.
func (s Summary) ExitCode() int {
	if s.Failed == 0 {
		return 0
	}
	return 1
}

// RunResult is the complete record of a run, used for machine-readable output.
type RunResult struct {
	RunID   string       `json:"run_id" yaml:"run_id"`
	BinPath string       `json:"bin" yaml:"bin"`
	TestDir string       `json:"test_dir" yaml:"test_dir"`
	KeyDir  string       `json:"key_dir" yaml:"key_dir"`
	Cases   []CaseResult `json:"cases" yaml:"cases"`
	Passed  int          `json:"passed" yaml:"passed"`
	Failed  int          `json:"failed" yaml:"failed"`
	Total   int          `json:"total" yaml:"total"`
}
