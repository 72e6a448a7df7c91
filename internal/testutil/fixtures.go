package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// Shell bodies for common fake targets.
const (
	// CatBody echoes stdin to stdout.
	CatBody = "exec cat\n"
	// ExitOneBody echoes stdin and exits 1.
	ExitOneBody = "cat\nexit 1\n"
	// StderrBody echoes stdin and writes one line to stderr.
	StderrBody = "cat\necho oops >&2\n"
	// HangBody never exits on its own.
	HangBody = "exec sleep 30\n"
)

// RequirePOSIXShell skips the test when fake targets cannot be written as
// /bin/sh scripts.
func RequirePOSIXShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake targets are /bin/sh scripts")
	}
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}
}

// WriteScript writes an executable /bin/sh script with the given body into
// dir and returns its path.
func WriteScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

// WriteFile writes content to dir/name, creating dir if needed, and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// Layout is a temporary test/key directory pair with a fake target binary.
type Layout struct {
	Root    string
	Bin     string
	TestDir string
	KeyDir  string
}

// NewLayout creates tests/ and keys/ under a fresh temporary directory and a
// target script named "bin" with the given body.
func NewLayout(t *testing.T, body string) *Layout {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	l := &Layout{
		Root:    root,
		TestDir: filepath.Join(root, "tests"),
		KeyDir:  filepath.Join(root, "keys"),
	}
	require.NoError(t, os.MkdirAll(l.TestDir, 0755))
	require.NoError(t, os.MkdirAll(l.KeyDir, 0755))
	l.Bin = WriteScript(t, root, "bin", body)
	return l
}

// AddCase writes an input file and, unless expected is nil, its key file.
func (l *Layout) AddCase(t *testing.T, name, input string, expected *string) {
	t.Helper()
	WriteFile(t, l.TestDir, name, input)
	if expected != nil {
		WriteFile(t, l.KeyDir, name, *expected)
	}
}

// Str returns a pointer to s, for AddCase.
func Str(s string) *string {
	return &s
}
