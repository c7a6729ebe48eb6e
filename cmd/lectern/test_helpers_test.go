package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// cliEnv is a throwaway content tree plus a config file pointing at it.
type cliEnv struct {
	contentDir    string
	configPath    string
	manifestPath  string
	referencePath string
}

func setupCLIEnv(t *testing.T) *cliEnv {
	t.Helper()

	base := t.TempDir()
	env := &cliEnv{
		contentDir:    filepath.Join(base, "content"),
		configPath:    filepath.Join(base, "config.toml"),
		manifestPath:  filepath.Join(base, "manifest.json"),
		referencePath: filepath.Join(base, "tractates.json"),
	}
	require.NoError(t, os.MkdirAll(env.contentDir, 0o755))

	body := fmt.Sprintf(`[paths]
content_dir = %q
manifest_path = %q
reference_path = %q

[scan]
extension = ".mp3"

[logging]
format = "json"
level = "error"
`, env.contentDir, env.manifestPath, env.referencePath)
	require.NoError(t, os.WriteFile(env.configPath, []byte(body), 0o644))

	return env
}

// addRecording drops a named file into a collection directory,
// creating the directory on first use.
func (e *cliEnv) addRecording(t *testing.T, collection, name string) {
	t.Helper()
	dir := filepath.Join(e.contentDir, collection)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("audio"), 0o644))
}

func (e *cliEnv) writeReference(t *testing.T, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(e.referencePath, []byte(body), 0o644))
}

// appendConfig adds extra TOML sections to the generated config file.
func (e *cliEnv) appendConfig(t *testing.T, extra string) {
	t.Helper()
	f, err := os.OpenFile(e.configPath, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	defer f.Close()
	_, err = f.WriteString(extra)
	require.NoError(t, err)
}

// runCLI executes one command against a fresh root command, capturing
// its output streams.
func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
