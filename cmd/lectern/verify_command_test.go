package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lecternapp/lectern/internal/manifest"
)

func TestVerifyReportsMissing(t *testing.T) {
	env := setupCLIEnv(t)
	env.addRecording(t, "Berakhot", "Berakhot2.mp3")

	m := manifest.New()
	m.Set("Berakhot", []string{"2", "3"})
	require.NoError(t, m.Write(env.manifestPath))

	out, _, err := runCLI(t, env.configPath, "verify")
	require.NoError(t, err, "verify is advisory by default")
	require.Contains(t, out, "missing: Berakhot page 3")
	require.Contains(t, out, "2 pages checked, 1 missing")
}

func TestVerifyStrictFails(t *testing.T) {
	env := setupCLIEnv(t)
	env.addRecording(t, "Berakhot", "Berakhot2.mp3")

	m := manifest.New()
	m.Set("Berakhot", []string{"2", "3"})
	require.NoError(t, m.Write(env.manifestPath))

	_, _, err := runCLI(t, env.configPath, "verify", "--strict")
	require.Error(t, err)
	require.Contains(t, err.Error(), "1 of 2 recordings missing")
}

func TestVerifyAllPresent(t *testing.T) {
	env := setupCLIEnv(t)
	env.addRecording(t, "Berakhot", "Berakhot2.mp3")
	env.addRecording(t, "Berakhot", "Berakhot3.mp3")

	m := manifest.New()
	m.Set("Berakhot", []string{"2", "3"})
	require.NoError(t, m.Write(env.manifestPath))

	out, _, err := runCLI(t, env.configPath, "verify", "--strict")
	require.NoError(t, err)
	require.Contains(t, out, "2 pages checked, 0 missing")
}

func TestVerifyNoManifestFails(t *testing.T) {
	env := setupCLIEnv(t)

	_, _, err := runCLI(t, env.configPath, "verify")
	require.Error(t, err)
}
