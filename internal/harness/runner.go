package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// IDGenerator produces run identifiers.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable run IDs.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Runner executes cases strictly in order, one process at a time.
type Runner struct {
	cfg      Config
	executor *Executor
	reporter *Reporter
	logger   *slog.Logger
	ids      IDGenerator
}

// Option configures a Runner.
type Option func(*Runner)

// WithReporter sets the reporter that renders each verdict as it is made.
func WithReporter(rep *Reporter) Option {
	return func(r *Runner) {
		r.reporter = rep
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithExecutor replaces the default executor built from cfg.Timeout.
func WithExecutor(e *Executor) Option {
	return func(r *Runner) {
		r.executor = e
	}
}

// WithIDGenerator replaces the UUIDv7 run ID generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(r *Runner) {
		r.ids = g
	}
}

// NewRunner creates a Runner for cfg. Without options it reports nothing and
// logs nothing.
func NewRunner(cfg Config, opts ...Option) *Runner {
	r := &Runner{
		cfg:      cfg,
		executor: NewExecutor(cfg.Timeout),
		reporter: DiscardReporter(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		ids:      UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes every case in order, reports each verdict immediately and
// prints the summary at the end.
//
// A failing case never stops the run. The only error is cancellation of ctx,
// in which case the interrupted case is not reported and the partial result
// is returned.
func (r *Runner) Run(ctx context.Context, cases []Case) (*RunResult, error) {
	result := &RunResult{
		RunID:   r.ids.Generate(),
		BinPath: r.cfg.BinPath,
		TestDir: r.cfg.TestDir,
		KeyDir:  r.cfg.KeyDir,
		Cases:   make([]CaseResult, 0, len(cases)),
	}
	var summary Summary

	r.logger.Debug("starting run", "run_id", result.RunID, "cases", len(cases), "bin", r.cfg.BinPath)

	for _, c := range cases {
		cr := r.runCase(ctx, c)
		if err := ctx.Err(); err != nil {
			r.logger.Warn("run interrupted", "case", c.Name, "completed", summary.Total())
			r.fill(result, summary)
			return result, fmt.Errorf("run interrupted: %w", err)
		}

		r.reporter.Case(cr)
		summary.Add(cr)
		result.Cases = append(result.Cases, cr)
		r.logger.Debug("case finished", "case", c.Name, "outcome", cr.Outcome,
			"exit_status", cr.ExitStatus, "duration", cr.Duration)
	}

	r.reporter.Summary(summary)
	r.fill(result, summary)
	return result, nil
}

func (r *Runner) fill(result *RunResult, s Summary) {
	result.Passed = s.Passed
	result.Failed = s.Failed
	result.Total = s.Total()
}

func (r *Runner) runCase(ctx context.Context, c Case) CaseResult {
	cr := CaseResult{Case: c, Outcome: OutcomeFail}

	var expected []byte
	if !r.cfg.Update {
		data, err := os.ReadFile(c.ExpectedPath)
		if errors.Is(err, fs.ErrNotExist) {
			cr.MissingExpected = true
			return cr
		}
		if err != nil {
			cr.ExpectedErr = err.Error()
			return cr
		}
		expected = data
	}

	r.logger.Debug("running case", "case", c.Name, "input", c.InputPath)
	res := r.executor.Run(ctx, r.cfg.BinPath, c.InputPath)
	cr.ExitStatus = res.ExitStatus
	cr.Duration = res.Duration
	cr.DurationMS = res.Duration.Milliseconds()

	switch {
	case res.Err != nil:
		cr.ExecErr = res.Err.Error()
		return cr
	case res.TimedOut:
		cr.TimedOut = true
		cr.Timeout = r.cfg.Timeout
		return cr
	}

	if r.cfg.Update {
		return r.updateKey(cr, res)
	}

	cmp := Compare(expected, res)
	cr.StatusOK = cmp.StatusOK
	cr.StderrOK = cmp.StderrOK
	cr.StdoutOK = cmp.StdoutOK
	if !cmp.StderrOK {
		cr.StderrHead = StderrHead(res.Stderr, StderrHeadLines)
	}
	if !cmp.StdoutOK {
		cr.Diff = UnifiedDiff(cmp.Expected, cmp.Actual, c.Name)
	}
	if cmp.Pass() {
		cr.Outcome = OutcomePass
	}
	return cr
}

// updateKey writes the captured stdout verbatim as the case's new key file.
func (r *Runner) updateKey(cr CaseResult, res ExecResult) CaseResult {
	if err := os.WriteFile(cr.Case.ExpectedPath, res.Stdout, 0644); err != nil {
		cr.ExpectedErr = fmt.Sprintf("write key file: %v", err)
		return cr
	}
	r.logger.Info("updated key file", "case", cr.Case.Name, "path", cr.Case.ExpectedPath, "bytes", len(res.Stdout))

	cr.Outcome = OutcomeUpdated
	cr.StatusOK = res.ExitStatus == 0
	cr.StderrOK = len(res.Stderr) == 0
	cr.StdoutOK = true
	return cr
}
