package server

import (
	"encoding/json/v2"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lecternapp/lectern/internal/passages"
)

// newPassageService builds a passage service backed by a stub text
// service. No cache, so every lookup hits the stub.
func newPassageService(t *testing.T, handler http.HandlerFunc) *passages.Service {
	t.Helper()

	if handler == nil {
		handler = func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{
				"ref": "Berakhot 2",
				"book": "Berakhot",
				"text": ["In the evening.", "From what time?"],
				"he": ["מאימתי"]
			}`))
		}
	}

	upstream := httptest.NewServer(handler)
	t.Cleanup(upstream.Close)

	client := passages.NewClient(passages.ClientOptions{
		BaseURL:           upstream.URL,
		RequestsPerMinute: 600,
	}, nil)

	return passages.NewService(client, nil, passages.ServiceOptions{
		Language:  "en",
		Languages: []string{"en", "he"},
	}, nil)
}

func TestGetPassage(t *testing.T) {
	ts := setupTestServer(t, newPassageService(t, nil))

	resp := ts.api.Get("/api/v1/passages/Berakhot/2")
	require.Equal(t, http.StatusOK, resp.Code)

	var body PassageResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	assert.Equal(t, "Berakhot", body.Collection)
	assert.Equal(t, "2", body.Page)
	assert.Equal(t, "en", body.Language)
	assert.Equal(t, "Berakhot", body.Title)
	assert.Equal(t, []string{"In the evening.", "From what time?"}, body.Segments)
	assert.Equal(t, "Berakhot 2", body.Source)
}

func TestGetPassage_LanguageQuery(t *testing.T) {
	ts := setupTestServer(t, newPassageService(t, nil))

	resp := ts.api.Get("/api/v1/passages/Berakhot/2?lang=he")
	require.Equal(t, http.StatusOK, resp.Code)

	var body PassageResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	assert.Equal(t, "he", body.Language)
	assert.Equal(t, []string{"מאימתי"}, body.Segments)
}

func TestGetPassage_NotConfigured(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.api.Get("/api/v1/passages/Berakhot/2")
	require.Equal(t, http.StatusBadGateway, resp.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &apiErr))
	assert.Equal(t, "UNAVAILABLE", apiErr.Code)
	assert.Contains(t, apiErr.Message, "not configured")
}

func TestGetPassage_InvalidPage(t *testing.T) {
	ts := setupTestServer(t, newPassageService(t, nil))

	resp := ts.api.Get("/api/v1/passages/Berakhot/two")
	require.Equal(t, http.StatusBadRequest, resp.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &apiErr))
	assert.Equal(t, "VALIDATION", apiErr.Code)
}

func TestGetPassage_UpstreamMiss(t *testing.T) {
	ts := setupTestServer(t, newPassageService(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unknown ref", http.StatusNotFound)
	}))

	resp := ts.api.Get("/api/v1/passages/Berakhot/2")
	require.Equal(t, http.StatusNotFound, resp.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &apiErr))
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
}

func TestGetPassage_RateLimited(t *testing.T) {
	ts := setupTestServer(t, newPassageService(t, nil))

	for range passageClientBurst {
		resp := ts.api.Get("/api/v1/passages/Berakhot/2", "X-Forwarded-For: 203.0.113.9")
		require.Equal(t, http.StatusOK, resp.Code)
	}

	resp := ts.api.Get("/api/v1/passages/Berakhot/2", "X-Forwarded-For: 203.0.113.9")
	require.Equal(t, http.StatusTooManyRequests, resp.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &apiErr))
	assert.Equal(t, "RATE_LIMITED", apiErr.Code)

	// A different client keeps its own budget.
	resp = ts.api.Get("/api/v1/passages/Berakhot/2", "X-Forwarded-For: 198.51.100.7")
	assert.Equal(t, http.StatusOK, resp.Code)
}
