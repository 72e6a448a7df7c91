package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover lists the files directly inside testDir whose names end in suffix,
// sorted by byte order. Expected paths are formed by joining keyDir with the
// same name. An empty result is not an error; callers decide whether it is fatal.
func Discover(testDir, keyDir, suffix string) ([]Case, error) {
	entries, err := os.ReadDir(testDir)
	if err != nil {
		return nil, fmt.Errorf("read test directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		if entry.Type()&os.ModeSymlink != 0 {
			info, err := os.Stat(filepath.Join(testDir, entry.Name()))
			if err == nil && info.IsDir() {
				continue
			}
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	cases := make([]Case, 0, len(names))
	for _, name := range names {
		cases = append(cases, Case{
			Name:         name,
			InputPath:    filepath.Join(testDir, name),
			ExpectedPath: filepath.Join(keyDir, name),
		})
	}
	return cases, nil
}

// FilterCases keeps the cases whose name, minus suffix, matches the glob
// pattern. An empty pattern keeps everything.
func FilterCases(cases []Case, pattern, suffix string) ([]Case, error) {
	if pattern == "" {
		return cases, nil
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid filter pattern %q: %w", pattern, err)
	}

	var kept []Case
	for _, c := range cases {
		// The pattern was validated above, so Match cannot fail here.
		if ok, _ := filepath.Match(pattern, strings.TrimSuffix(c.Name, suffix)); ok {
			kept = append(kept, c)
		}
	}
	return kept, nil
}
