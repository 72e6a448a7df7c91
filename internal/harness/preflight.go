package harness

import (
	"fmt"
	"os"
)

// PreflightKind identifies which configuration check failed.
type PreflightKind string

const (
	PreflightBinMissing        PreflightKind = "bin_missing"
	PreflightBinNotFile        PreflightKind = "bin_not_file"
	PreflightTestDirMissing    PreflightKind = "test_dir_missing"
	PreflightTestDirUnreadable PreflightKind = "test_dir_unreadable"
	PreflightKeyDirMissing     PreflightKind = "key_dir_missing"
	PreflightBadFilter         PreflightKind = "bad_filter"
	PreflightNoCases           PreflightKind = "no_cases"
)

var preflightLabels = map[PreflightKind]string{
	PreflightBinMissing:        "--bin does not exist:",
	PreflightBinNotFile:        "--bin is not a file:",
	PreflightTestDirMissing:    "Test dir not found:",
	PreflightTestDirUnreadable: "Test dir not readable:",
	PreflightKeyDirMissing:     "Key dir not found:",
	PreflightBadFilter:         "Invalid --filter pattern:",
}

// PreflightError is a configuration problem found before any case runs.
type PreflightError struct {
	Kind PreflightKind
	// Path is the offending path, or the pattern for PreflightBadFilter.
	Path string
	// Filter is set for PreflightNoCases when a filter emptied the case list.
	Filter string
	Err    error
}

// Label is the fixed message prefix for the failed check.
func (e *PreflightError) Label() string {
	return preflightLabels[e.Kind]
}

func (e *PreflightError) Error() string {
	if e.Kind == PreflightNoCases {
		if e.Filter != "" {
			return fmt.Sprintf("No test files matching %q in %s", e.Filter, e.Path)
		}
		return "No test files in " + e.Path
	}
	return e.Label() + " " + e.Path
}

func (e *PreflightError) Unwrap() error {
	return e.Err
}

// Preflight validates cfg in a fixed order and returns the cases to run.
// The first failed check wins; no case runs when it returns an error.
func Preflight(cfg Config) ([]Case, *PreflightError) {
	info, err := os.Stat(cfg.BinPath)
	if err != nil {
		return nil, &PreflightError{Kind: PreflightBinMissing, Path: cfg.BinPath, Err: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &PreflightError{Kind: PreflightBinNotFile, Path: cfg.BinPath}
	}

	if !isDir(cfg.TestDir) {
		return nil, &PreflightError{Kind: PreflightTestDirMissing, Path: cfg.TestDir}
	}
	if !isDir(cfg.KeyDir) {
		return nil, &PreflightError{Kind: PreflightKeyDirMissing, Path: cfg.KeyDir}
	}

	cases, err := Discover(cfg.TestDir, cfg.KeyDir, cfg.suffix())
	if err != nil {
		return nil, &PreflightError{Kind: PreflightTestDirUnreadable, Path: cfg.TestDir, Err: err}
	}
	if len(cases) == 0 {
		return nil, &PreflightError{Kind: PreflightNoCases, Path: cfg.TestDir}
	}

	cases, err = FilterCases(cases, cfg.Filter, cfg.suffix())
	if err != nil {
		return nil, &PreflightError{Kind: PreflightBadFilter, Path: cfg.Filter, Err: err}
	}
	if len(cases) == 0 {
		return nil, &PreflightError{Kind: PreflightNoCases, Path: cfg.TestDir, Filter: cfg.Filter}
	}
	return cases, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
