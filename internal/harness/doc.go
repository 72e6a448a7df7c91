// Package harness runs a target program against golden files.
//
// Each case is an input file in the test directory. The target binary is run
// once per case with the file's bytes on stdin, and its stdout is compared to
// the key file of the same name in the key directory.
//
// # Layout
//
//	tests/
//	  empty.txt
//	  insert.txt
//	keys/
//	  empty.txt
//	  insert.txt
//
// A key file that does not exist fails its case; it is never skipped.
//
// # Verdicts
//
// A case passes only when all three checks hold:
//
//   - the process exited with status 0
//   - nothing was written to stderr
//   - stdout equals the key file once carriage returns are removed from both
//
// Stdout is decoded leniently (invalid UTF-8 becomes U+FFFD) and no other
// normalization is applied: trailing whitespace and final newlines matter.
//
// # Execution
//
// Cases run sequentially in byte order of their names. The binary is executed
// directly, without a shell, and a launch failure or timeout fails only the
// case in which it happened.
//
// # Usage
//
//	cases, perr := harness.Preflight(cfg)
//	if perr != nil {
//	    reporter.Preflight(perr)
//	    os.Exit(2)
//	}
//	runner := harness.NewRunner(cfg, harness.WithReporter(reporter))
//	result, err := runner.Run(ctx, cases)
package harness
