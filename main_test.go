package main

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestSettingsDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	got := settingsFrom(v)

	assert.Equal(t, Settings{
		PreviewLimit: defaultPreviewLimit,
		LogLevel:     "info",
	}, got)
}

func TestSettingsOverrides(t *testing.T) {
	t.Setenv("FILELIST_GITIGNORE", "true")
	t.Setenv("FILELIST_PREVIEW_LIMIT", "25")

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("FILELIST")
	v.AutomaticEnv()
	v.Set("mode", "2")
	v.Set("path", "/srv/data")

	got := settingsFrom(v)

	assert.True(t, got.RespectGitignore)
	assert.Equal(t, 25, got.PreviewLimit)
	assert.Equal(t, "2", got.Mode)
	assert.Equal(t, "/srv/data", got.Path)
	assert.False(t, got.Clipboard)
}

func TestRootCommandFlags(t *testing.T) {
	for _, name := range []string{"path", "mode", "pick", "gitignore", "output-dir", "clipboard", "preview", "log-level", "no-color"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(name), "missing flag %q", name)
	}
	assert.Equal(t, "p", rootCmd.Flags().Lookup("path").Shorthand)
	assert.Equal(t, "m", rootCmd.Flags().Lookup("mode").Shorthand)
}

func TestParseScanMode(t *testing.T) {
	tests := []struct {
		in     string
		want   ScanMode
		wantOK bool
	}{
		{"1", ModeShallow, true},
		{"2", ModeRecursive, true},
		{"3", 0, false},
		{"", 0, false},
		{"recursive", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseScanMode(tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
		assert.Equal(t, tt.wantOK, ok, "input %q", tt.in)
	}
}
