package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/roach88/goldrun/internal/harness"
	"github.com/roach88/goldrun/internal/paths"
)

// EnvPrefix prefixes the environment variables that override flag defaults,
// e.g. GOLDRUN_BIN or GOLDRUN_TEST_DIR.
const EnvPrefix = "GOLDRUN"

// Flag names, shared by the flag set and the viper keys.
const (
	flagBin     = "bin"
	flagTestDir = "test-dir"
	flagKeyDir  = "key-dir"
	flagExt     = "ext"
	flagFilter  = "filter"
	flagTimeout = "timeout"
	flagUpdate  = "update"
	flagFormat  = "format"
	flagVerbose = "verbose"
)

// RootOptions holds the settings of one invocation after flags and
// environment overrides have been merged.
type RootOptions struct {
	Verbose bool
	Format  string // "text" | "json" | "yaml"

	Bin     string
	TestDir string
	KeyDir  string
	Ext     string
	Filter  string
	Timeout time.Duration
	Update  bool
}

// newViper binds every flag in fs to an environment variable. An explicitly
// set flag wins over the environment, which wins over the flag default.
func newViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}
	return v, nil
}

// loadOptions reads the merged settings out of v.
func loadOptions(v *viper.Viper) (*RootOptions, error) {
	timeout, err := parseTimeout(v.GetString(flagTimeout))
	if err != nil {
		return nil, err
	}
	return &RootOptions{
		Verbose: v.GetBool(flagVerbose),
		Format:  strings.ToLower(v.GetString(flagFormat)),
		Bin:     v.GetString(flagBin),
		TestDir: v.GetString(flagTestDir),
		KeyDir:  v.GetString(flagKeyDir),
		Ext:     v.GetString(flagExt),
		Filter:  v.GetString(flagFilter),
		Timeout: timeout,
		Update:  v.GetBool(flagUpdate),
	}, nil
}

// parseTimeout accepts Go duration syntax, e.g. "500ms" or "2s".
func parseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid --timeout %q: %w", s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid --timeout %q: must not be negative", s)
	}
	return d, nil
}

// validate checks the settings that do not touch the filesystem.
func (o *RootOptions) validate() error {
	if !isValidFormat(o.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", o.Format, ValidFormats)
	}
	if o.Ext == "" {
		return fmt.Errorf("invalid --ext: must not be empty")
	}
	return nil
}

// harnessConfig resolves the three paths against cwd and produces the
// immutable run configuration.
func (o *RootOptions) harnessConfig(cwd string) (harness.Config, error) {
	resolve := func(flag, p string) (string, error) {
		abs, err := paths.Resolve(p, cwd)
		if err != nil {
			return "", fmt.Errorf("resolve --%s %q: %w", flag, p, err)
		}
		return abs, nil
	}

	bin, err := resolve(flagBin, o.Bin)
	if err != nil {
		return harness.Config{}, err
	}
	testDir, err := resolve(flagTestDir, o.TestDir)
	if err != nil {
		return harness.Config{}, err
	}
	keyDir, err := resolve(flagKeyDir, o.KeyDir)
	if err != nil {
		return harness.Config{}, err
	}

	return harness.Config{
		BinPath: bin,
		TestDir: testDir,
		KeyDir:  keyDir,
		Suffix:  o.Ext,
		Filter:  o.Filter,
		Timeout: o.Timeout,
		Update:  o.Update,
	}, nil
}
