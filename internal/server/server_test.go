package server

import (
	"encoding/json/v2"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lecternapp/lectern/internal/manifest"
	"github.com/lecternapp/lectern/internal/passages"
)

// testServer bundles a server over a small catalog on disk.
type testServer struct {
	*Server
	api          humatest.TestAPI
	store        *ManifestStore
	contentDir   string
	manifestPath string
}

// setupTestServer creates a server with two collections on disk. A nil
// passage service matches the default deployment.
func setupTestServer(t *testing.T, passageSvc *passages.Service) *testServer {
	t.Helper()

	tmpDir := t.TempDir()
	contentDir := filepath.Join(tmpDir, "content")

	writeRecording(t, contentDir, "Berakhot", "Berakhot2.mp3")
	writeRecording(t, contentDir, "Berakhot", "Berakhot3.mp3")
	writeRecording(t, contentDir, "Berakhot", "Berakhot5.mp3")
	writeRecording(t, contentDir, "Shabbat", "Shabbat2.mp3")

	m := manifest.New()
	m.Set("Berakhot", []string{"2", "3", "5"})
	m.Set("Shabbat", []string{"2"})
	require.NoError(t, m.SetURLs("Berakhot", map[string]string{
		"2": "https://files.example.org/Berakhot2.mp3",
	}))

	manifestPath := filepath.Join(tmpDir, "manifest.json")
	require.NoError(t, m.Write(manifestPath))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := OpenManifestStore(manifestPath, logger)
	require.NoError(t, err)

	s := NewServer(store, passageSvc, Options{
		ContentDir: contentDir,
		Extension:  ".mp3",
		Version:    "test",
	}, logger)
	t.Cleanup(s.Close)

	return &testServer{
		Server:       s,
		api:          humatest.Wrap(t, s.api),
		store:        store,
		contentDir:   contentDir,
		manifestPath: manifestPath,
	}
}

// writeRecording creates a fake audio file under the content dir.
func writeRecording(t *testing.T, contentDir, collection, name string) {
	t.Helper()
	dir := filepath.Join(contentDir, collection)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("audio-bytes"), 0o644))
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.api.Get("/health")
	assert.Equal(t, http.StatusOK, resp.Code)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &health))

	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "test", health.Version)
	assert.Equal(t, 2, health.Collections)
	assert.Equal(t, 4, health.Pages)
	assert.False(t, health.LoadedAt.IsZero())
	assert.Equal(t, "healthy", health.Components["manifest"].Status)
	assert.Equal(t, "healthy", health.Components["content"].Status)
	assert.Equal(t, "disabled", health.Components["passages"].Status)
}

func TestHealthCheck_DegradedWhenContentDirMissing(t *testing.T) {
	ts := setupTestServer(t, nil)
	require.NoError(t, os.RemoveAll(ts.contentDir))

	resp := ts.api.Get("/health")
	assert.Equal(t, http.StatusOK, resp.Code)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &health))

	assert.Equal(t, "degraded", health.Status)
	assert.Equal(t, "degraded", health.Components["content"].Status)
	assert.Equal(t, "healthy", health.Components["manifest"].Status)
}

func TestCORSPreflight(t *testing.T) {
	ts := setupTestServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/manifest", http.NoBody)
	req.Header.Set("Origin", "https://player.example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()

	ts.ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodGet)
}

func TestStaticPlayerServed(t *testing.T) {
	ts := setupTestServer(t, nil)

	webDir := t.TempDir()
	html := "<!doctype html><title>Lectern</title>"
	require.NoError(t, os.WriteFile(filepath.Join(webDir, "index.html"), []byte(html), 0o644))

	s := NewServer(ts.store, nil, Options{
		ContentDir: ts.contentDir,
		WebDir:     webDir,
		Extension:  ".mp3",
	}, nil)
	t.Cleanup(s.Close)

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Lectern")
}
