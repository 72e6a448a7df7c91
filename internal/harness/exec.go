package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// killGrace is added to the case timeout to bound how long Wait keeps
// draining pipes that an escaped grandchild still holds open.
const killGrace = 2 * time.Second

// noExitStatus is reported when the process never ran to an exit.
const noExitStatus = -1

// Executor runs the target binary once per case.
type Executor struct {
	timeout time.Duration
	now     func() time.Time
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithClock replaces time.Now for duration measurement.
func WithClock(now func() time.Time) ExecutorOption {
	return func(e *Executor) {
		e.now = now
	}
}

// NewExecutor creates an Executor. A zero timeout waits for the process forever.
func NewExecutor(timeout time.Duration, opts ...ExecutorOption) *Executor {
	e := &Executor{
		timeout: timeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run launches binary with no arguments and no shell, feeds it the bytes of
// inputPath on stdin and captures stdout and stderr until it exits.
//
// The child reads stdin straight from the input file, and os/exec drains both
// output pipes on their own goroutines, so a chatty child cannot deadlock
// against the harness. Launch failures are returned in ExecResult.Err rather
// than as an error: they fail the case, not the run.
func (e *Executor) Run(ctx context.Context, binary, inputPath string) ExecResult {
	input, err := os.Open(inputPath)
	if err != nil {
		return ExecResult{ExitStatus: noExitStatus, Err: fmt.Errorf("open input: %w", err)}
	}
	defer input.Close()

	runCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	// #nosec G204 -- binary is the operator-selected program under test.
	cmd := exec.CommandContext(runCtx, binary)
	cmd.Stdin = input
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// The child leads its own process group, and cancellation kills the whole
	// group so background children cannot keep the pipes open. Without a
	// timeout, output is read until every writer has closed it.
	startProcessGroup(cmd)
	if e.timeout > 0 {
		cmd.WaitDelay = e.timeout + killGrace
	}

	start := e.now()
	if err := cmd.Start(); err != nil {
		return ExecResult{ExitStatus: noExitStatus, Err: err}
	}
	waitErr := cmd.Wait()

	res := ExecResult{
		ExitStatus: exitStatus(cmd.ProcessState),
		Stdout:     stdout.Bytes(),
		Stderr:     stderr.Bytes(),
		Duration:   e.now().Sub(start),
	}

	if ctxErr := runCtx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) && ctx.Err() == nil {
			res.TimedOut = true
			return res
		}
		res.Err = ctxErr
		return res
	}

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		res.Err = waitErr
	}
	return res
}

func exitStatus(ps *os.ProcessState) int {
	if ps == nil {
		return noExitStatus
	}
	if sig, ok := signalOf(ps); ok {
		return -sig
	}
	return ps.ExitCode()
}
