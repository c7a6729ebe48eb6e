package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lecternapp/lectern/internal/manifest"
)

func TestOpenManifestStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	m := manifest.New()
	m.Set("Berakhot", []string{"2", "3"})
	require.NoError(t, m.Write(path))

	store, err := OpenManifestStore(path, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"2", "3"}, store.Manifest().Pages("Berakhot"))
	assert.False(t, store.LoadedAt().IsZero())
	assert.Equal(t, path, store.Path())
}

func TestOpenManifestStore_MissingFile(t *testing.T) {
	_, err := OpenManifestStore(filepath.Join(t.TempDir(), "manifest.json"), nil)
	require.Error(t, err)
}

func TestManifestStore_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	m := manifest.New()
	m.Set("Berakhot", []string{"2"})
	require.NoError(t, m.Write(path))

	store, err := OpenManifestStore(path, nil)
	require.NoError(t, err)
	first := store.LoadedAt()

	m.Set("Berakhot", []string{"2", "3"})
	require.NoError(t, m.Write(path))

	require.NoError(t, store.Reload())
	assert.Equal(t, []string{"2", "3"}, store.Manifest().Pages("Berakhot"))
	assert.True(t, store.LoadedAt().After(first) || store.LoadedAt().Equal(first))
}

func TestManifestStore_ReloadKeepsLastGoodCopy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	m := manifest.New()
	m.Set("Berakhot", []string{"2"})
	require.NoError(t, m.Write(path))

	store, err := OpenManifestStore(path, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	require.Error(t, store.Reload())
	assert.Equal(t, []string{"2"}, store.Manifest().Pages("Berakhot"))
}

func TestManifestStore_WatchAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	m := manifest.New()
	m.Set("Berakhot", []string{"2"})
	require.NoError(t, m.Write(path))

	store, err := OpenManifestStore(path, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- store.WatchAndReload(ctx) }()

	// Give the watch time to register before rewriting the file.
	time.Sleep(200 * time.Millisecond)

	m.Set("Berakhot", []string{"2", "3"})
	require.NoError(t, m.Write(path))

	require.Eventually(t, func() bool {
		return len(store.Manifest().Pages("Berakhot")) == 2
	}, 5*time.Second, 50*time.Millisecond, "manifest should reload after rewrite")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("WatchAndReload did not return after cancel")
	}
}
