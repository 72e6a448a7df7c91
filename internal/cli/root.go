package cli

import (
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/roach88/goldrun/internal/harness"
	"github.com/roach88/goldrun/internal/paths"
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{FormatText, FormatJSON, FormatYAML}

// environment is everything the command reads from the process it runs in.
type environment struct {
	getwd      func() (string, error)
	installDir func() (string, error)
	isTerminal func(w io.Writer) bool
	ids        harness.IDGenerator
}

func processEnvironment() environment {
	return environment{
		getwd:      os.Getwd,
		installDir: paths.InstallDir,
		isTerminal: isTerminal,
		ids:        harness.UUIDv7Generator{},
	}
}

// isTerminal reports whether w is a terminal. Buffers and pipes are not.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// NewRootCommand creates the goldrun command.
func NewRootCommand() *cobra.Command {
	return newRootCommand(processEnvironment())
}

func newRootCommand(env environment) *cobra.Command {
	installDir, err := env.installDir()
	if err != nil {
		// Defaults then resolve against the working directory.
		installDir = "."
	}
	defaults := paths.DefaultsFor(installDir)

	var opts *RootOptions

	cmd := &cobra.Command{
		Use:   "goldrun",
		Short: "Run BIN < test file and compare stdout with the key file",
		Long: `Run a program once per input file and compare what it prints with the
expected output stored under the same name in the key directory.

A case passes when the program exits with status 0, writes nothing to
stderr and its stdout equals the key file (carriage returns ignored).

Exit codes:
  0 - All cases passed
  1 - One or more cases failed
  2 - Configuration error (missing binary or directories, no cases, bad flags)

Every flag can also be set from the environment: GOLDRUN_BIN,
GOLDRUN_TEST_DIR, GOLDRUN_KEY_DIR, GOLDRUN_TIMEOUT and so on.
An explicit flag wins.

Examples:
  goldrun
  goldrun -b ./build/app -t ./tests -k ./keys
  goldrun --filter "insert_*" --timeout 5s
  goldrun --update
  goldrun --format json`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return WrapExitError(ExitCommandError, "invalid arguments", err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v, err := newViper(cmd.Flags())
			if err != nil {
				return WrapExitError(ExitCommandError, "configuration error", err)
			}
			opts, err = loadOptions(v)
			if err != nil {
				return WrapExitError(ExitCommandError, "configuration error", err)
			}
			if err := opts.validate(); err != nil {
				return WrapExitError(ExitCommandError, "configuration error", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHarness(cmd, opts, env)
		},
	}

	flags := cmd.Flags()
	flags.StringP(flagBin, "b", defaults.Bin, "path to the executable under test")
	flags.StringP(flagTestDir, "t", defaults.TestDir, "directory with input files")
	flags.StringP(flagKeyDir, "k", defaults.KeyDir, "directory with expected output files")
	flags.String(flagExt, harness.DefaultSuffix, "suffix of input files")
	flags.String(flagFilter, "", "only run cases whose name (without suffix) matches this glob")
	flags.Duration(flagTimeout, 0, "per-case time limit, e.g. 5s (0 means none)")
	flags.Bool(flagUpdate, false, "rewrite key files from the actual output")
	flags.String(flagFormat, FormatText, "output format (text|json|yaml)")
	flags.BoolP(flagVerbose, "v", false, "debug logging on stderr")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	})

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
