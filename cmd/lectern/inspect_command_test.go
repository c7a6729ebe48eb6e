package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInspectMissingRecording(t *testing.T) {
	env := setupCLIEnv(t)

	_, _, err := runCLI(t, env.configPath, "inspect", "Berakhot", "2")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no recording")
}

func TestInspectRejectsBadPage(t *testing.T) {
	env := setupCLIEnv(t)

	_, _, err := runCLI(t, env.configPath, "inspect", "Berakhot", "two")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid page")
}
