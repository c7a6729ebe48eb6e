package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrganizeMovesLooseRecordings(t *testing.T) {
	env := setupCLIEnv(t)
	loose := filepath.Join(env.contentDir, "Berakhot2.mp3")
	require.NoError(t, os.WriteFile(loose, []byte("audio"), 0o644))

	out, _, err := runCLI(t, env.configPath, "organize")
	require.NoError(t, err)
	require.Contains(t, out, "1 moved")

	require.NoFileExists(t, loose)
	require.FileExists(t, filepath.Join(env.contentDir, "Berakhot", "Berakhot2.mp3"))
}

func TestOrganizeDryRunTouchesNothing(t *testing.T) {
	env := setupCLIEnv(t)
	loose := filepath.Join(env.contentDir, "Berakhot2.mp3")
	require.NoError(t, os.WriteFile(loose, []byte("audio"), 0o644))

	out, _, err := runCLI(t, env.configPath, "organize", "--dry-run")
	require.NoError(t, err)
	require.Contains(t, out, "(dry run)")

	require.FileExists(t, loose)
	require.NoDirExists(t, filepath.Join(env.contentDir, "Berakhot"))
}

func TestOrganizeSkipsExistingTarget(t *testing.T) {
	env := setupCLIEnv(t)
	env.addRecording(t, "Berakhot", "Berakhot2.mp3")
	loose := filepath.Join(env.contentDir, "Berakhot2.mp3")
	require.NoError(t, os.WriteFile(loose, []byte("newer recording"), 0o644))

	out, _, err := runCLI(t, env.configPath, "organize")
	require.NoError(t, err)
	require.Contains(t, out, "1 skipped")
	require.FileExists(t, loose, "a loose file whose target exists stays put")
}
