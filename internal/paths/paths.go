// Package paths turns user-supplied path strings into absolute, canonical
// filesystem paths.
//
// Resolution is anchored on an explicit working directory rather than on the
// location of the harness binary. The install location is only consulted to
// build default paths when the user supplies nothing.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// maxSymlinks bounds symlink expansion so that link cycles terminate.
const maxSymlinks = 255

// Defaults holds the fallback locations derived from the install directory.
type Defaults struct {
	Bin     string
	TestDir string
	KeyDir  string
}

// DefaultsFor returns the default binary, test and key locations that sit
// alongside installDir.
func DefaultsFor(installDir string) Defaults {
	return Defaults{
		Bin:     filepath.Join(installDir, "bin"),
		TestDir: filepath.Join(installDir, "tests"),
		KeyDir:  filepath.Join(installDir, "keys"),
	}
}

// InstallDir returns the symlink-resolved directory holding the running executable.
func InstallDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("resolve executable: %w", err)
	}
	return filepath.Dir(exe), nil
}

// Resolve returns p as an absolute path with symlinks, "." and ".." resolved.
//
// Relative paths are joined onto cwd first. Components that do not exist are
// kept as written, so the result is usable in error messages about missing
// files. ".." is applied after the preceding symlink has been expanded, the
// way realpath(3) does it.
func Resolve(p, cwd string) (string, error) {
	if !filepath.IsAbs(p) {
		if !filepath.IsAbs(cwd) {
			return "", fmt.Errorf("working directory %q is not absolute", cwd)
		}
		// Not filepath.Join: cleaning here would apply ".." before symlinks.
		p = cwd + string(filepath.Separator) + p
	}
	return realpath(p)
}

func realpath(p string) (string, error) {
	sep := string(filepath.Separator)
	vol := filepath.VolumeName(p)
	root := vol + sep
	resolved := root
	pending := splitComponents(p[len(vol):])
	links := 0

	for len(pending) > 0 {
		part := pending[0]
		pending = pending[1:]

		switch part {
		case ".":
			continue
		case "..":
			resolved = filepath.Dir(resolved)
			continue
		}

		next := filepath.Join(resolved, part)
		info, err := os.Lstat(next)
		if err != nil || info.Mode()&os.ModeSymlink == 0 {
			// Missing components are kept lexically.
			resolved = next
			continue
		}

		links++
		if links > maxSymlinks {
			return "", fmt.Errorf("resolve %q: too many levels of symbolic links", p)
		}
		target, err := os.Readlink(next)
		if err != nil {
			return "", fmt.Errorf("resolve %q: %w", p, err)
		}
		if filepath.IsAbs(target) {
			tvol := filepath.VolumeName(target)
			resolved = tvol + sep
			target = target[len(tvol):]
		}
		pending = append(splitComponents(target), pending...)
	}

	return filepath.Clean(resolved), nil
}

func splitComponents(p string) []string {
	return strings.FieldsFunc(p, func(r rune) bool {
		return r == '/' || r == filepath.Separator
	})
}
