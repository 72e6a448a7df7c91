package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeout(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"", 0, false},
		{"0s", 0, false},
		{"250ms", 250 * time.Millisecond, false},
		{" 2s ", 2 * time.Second, false},
		{"-1s", 0, true},
		{"soon", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseTimeout(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHarnessConfig_ResolvesAgainstCwd(t *testing.T) {
	cwd, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	opts := &RootOptions{
		Bin:     "build/app",
		TestDir: "tests",
		KeyDir:  "/abs/keys",
		Ext:     ".in",
		Filter:  "x*",
		Timeout: time.Second,
		Update:  true,
	}
	cfg, err := opts.harnessConfig(cwd)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(cwd, "build", "app"), cfg.BinPath)
	assert.Equal(t, filepath.Join(cwd, "tests"), cfg.TestDir)
	assert.Equal(t, "/abs/keys", cfg.KeyDir)
	assert.Equal(t, ".in", cfg.Suffix)
	assert.Equal(t, "x*", cfg.Filter)
	assert.Equal(t, time.Second, cfg.Timeout)
	assert.True(t, cfg.Update)
}

func TestRootOptions_Validate(t *testing.T) {
	assert.NoError(t, (&RootOptions{Format: FormatYAML, Ext: ".txt"}).validate())
	assert.Error(t, (&RootOptions{Format: "xml", Ext: ".txt"}).validate())
	assert.Error(t, (&RootOptions{Format: FormatText, Ext: ""}).validate())
}
