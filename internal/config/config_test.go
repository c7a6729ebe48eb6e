package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.normalize())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	cfg, resolved, exists, err := Load(path)
	require.NoError(t, err)

	assert.False(t, exists)
	assert.Equal(t, path, resolved)
	assert.Equal(t, defaultBind, cfg.Server.Bind)
	assert.Equal(t, ".mp3", cfg.Scan.Extension)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_ParsesFile(t *testing.T) {
	content := t.TempDir()
	path := writeConfig(t, `
[paths]
content_dir = "`+content+`"

[scan]
extension = "ogg"
workers = 2

[server]
bind = "127.0.0.1:9000"

[logging]
level = "debug"
`)

	cfg, _, exists, err := Load(path)
	require.NoError(t, err)
	require.True(t, exists)

	assert.Equal(t, content, cfg.Paths.ContentDir)
	assert.Equal(t, filepath.Join(content, "manifest.json"), cfg.Paths.ManifestPath)
	assert.Equal(t, filepath.Join(content, "tractates.json"), cfg.Paths.ReferencePath)
	assert.Equal(t, ".ogg", cfg.Scan.Extension, "extension gets its dot")
	assert.Equal(t, 2, cfg.Scan.Workers)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Bind)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[server]
bind = "127.0.0.1:9000"
`)
	t.Setenv("LECTERN_BIND", "0.0.0.0:7000")
	t.Setenv("LECTERN_LOG_LEVEL", "warn")

	cfg, _, _, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:7000", cfg.Server.Bind)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := writeConfig(t, `[paths`)

	_, _, _, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty content dir", func(c *Config) { c.Paths.ContentDir = "" }},
		{"extension without dot", func(c *Config) { c.Scan.Extension = "mp3" }},
		{"negative workers", func(c *Config) { c.Scan.Workers = -1 }},
		{"empty bind", func(c *Config) { c.Server.Bind = "" }},
		{"zero read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }},
		{"bad passages url", func(c *Config) { c.Passages.BaseURL = "not a url" }},
		{"no languages", func(c *Config) { c.Passages.Languages = nil }},
		{"zero rate", func(c *Config) { c.Passages.RequestsPerMinute = 0 }},
		{"unknown log level", func(c *Config) { c.Logging.Level = "loud" }},
		{"unknown log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			require.NoError(t, cfg.normalize())
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_EmptyPassagesURLDisablesLookups(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.normalize())
	cfg.Passages.BaseURL = ""
	cfg.Passages.Languages = nil

	assert.NoError(t, cfg.Validate(), "disabled passages skip the section's checks")
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded, err := ExpandPath("~/lectures")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "lectures"), expanded)

	empty, err := ExpandPath("")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, CreateSample(path))

	// The shipped sample must itself load cleanly.
	cfg, _, exists, err := Load(path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, defaultBind, cfg.Server.Bind)
	assert.True(t, cfg.Server.WatchManifest)
}
