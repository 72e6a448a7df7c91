package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/goldrun/internal/harness"
)

// runHarness resolves the configuration, validates it, runs every case and
// maps the outcome to an exit code.
func runHarness(cmd *cobra.Command, opts *RootOptions, env environment) error {
	out := cmd.OutOrStdout()
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)
	formatter := &OutputFormatter{Format: opts.Format, Writer: out}

	cwd, err := env.getwd()
	if err != nil {
		return WrapExitError(ExitCommandError, "determine working directory", err)
	}
	cfg, err := opts.harnessConfig(cwd)
	if err != nil {
		if formatter.Machine() {
			if ferr := formatter.Error(CodeConfig, err.Error(), nil); ferr != nil {
				return WrapExitError(ExitCommandError, "write output", ferr)
			}
			return reported(WrapExitError(ExitCommandError, "configuration error", err))
		}
		return WrapExitError(ExitCommandError, "configuration error", err)
	}
	logger.Debug("resolved configuration",
		"bin", cfg.BinPath, "test_dir", cfg.TestDir, "key_dir", cfg.KeyDir,
		"ext", cfg.Suffix, "filter", cfg.Filter, "timeout", cfg.Timeout, "update", cfg.Update)

	reporter := harness.DiscardReporter()
	if !formatter.Machine() {
		reporter = harness.NewReporter(out, harness.NewPalette(out, env.isTerminal(out)))
	}

	cases, perr := harness.Preflight(cfg)
	if perr != nil {
		return reportPreflight(formatter, reporter, perr)
	}
	logger.Debug("discovered cases", "count", len(cases))

	reporter.Header(cfg)
	runner := harness.NewRunner(cfg,
		harness.WithReporter(reporter),
		harness.WithLogger(logger),
		harness.WithIDGenerator(env.ids),
	)
	result, err := runner.Run(cmd.Context(), cases)
	if err != nil {
		if formatter.Machine() {
			if ferr := formatter.Response(CLIResponse{
				Status: "error",
				Data:   result,
				Error:  &CLIError{Code: CodeInterrupt, Message: err.Error()},
			}); ferr != nil {
				return WrapExitError(ExitFailure, "write output", ferr)
			}
			return reported(WrapExitError(ExitFailure, "aborted", err))
		}
		return WrapExitError(ExitFailure, "aborted", err)
	}

	if formatter.Machine() {
		if err := outputRunResult(formatter, result); err != nil {
			return WrapExitError(ExitFailure, "write output", err)
		}
	}

	if result.Failed > 0 {
		return reported(NewExitError(ExitFailure,
			fmt.Sprintf("%d of %d cases failed", result.Failed, result.Total)))
	}
	return nil
}

// reportPreflight tells the user about a configuration problem once, in the
// selected format, and returns the exit error for it.
func reportPreflight(f *OutputFormatter, rep *harness.Reporter, perr *harness.PreflightError) error {
	if !f.Machine() {
		rep.Preflight(perr)
		return reported(WrapExitError(ExitCommandError, "pre-flight check failed", perr))
	}

	code := CodeConfig
	if perr.Kind == harness.PreflightNoCases {
		code = CodeNoCases
	}
	details := map[string]string{"kind": string(perr.Kind), "path": perr.Path}
	if perr.Filter != "" {
		details["filter"] = perr.Filter
	}
	if err := f.Error(code, perr.Error(), details); err != nil {
		return WrapExitError(ExitCommandError, "write output", err)
	}
	return reported(WrapExitError(ExitCommandError, "pre-flight check failed", perr))
}

// outputRunResult emits the run as one json or yaml document.
func outputRunResult(f *OutputFormatter, result *harness.RunResult) error {
	if result.Failed == 0 {
		return f.Success(result)
	}
	return f.Response(CLIResponse{
		Status: "error",
		Data:   result,
		Error: &CLIError{
			Code:    CodeFailed,
			Message: fmt.Sprintf("%d of %d cases failed", result.Failed, result.Total),
		},
	})
}
