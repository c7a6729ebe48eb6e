package server

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetManifest(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.api.Get("/api/v1/manifest")
	require.Equal(t, http.StatusOK, resp.Code)

	var m map[string]ManifestEntry
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &m))

	require.Len(t, m, 2)
	assert.Equal(t, []string{"2", "3", "5"}, m["Berakhot"].Pages)
	assert.Equal(t, "https://files.example.org/Berakhot2.mp3", m["Berakhot"].URLs["2"])
	assert.Equal(t, []string{"2"}, m["Shabbat"].Pages)
	assert.Empty(t, m["Shabbat"].URLs)
}

func TestListCollections(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.api.Get("/api/v1/collections")
	require.Equal(t, http.StatusOK, resp.Code)

	var body ListCollectionsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	require.Len(t, body.Collections, 2)

	berakhot := body.Collections[0]
	assert.Equal(t, "Berakhot", berakhot.Name)
	assert.Equal(t, "Berakhot", berakhot.Title)
	assert.Equal(t, 3, berakhot.PageCount)
	assert.Equal(t, "2", berakhot.FirstPage)
	assert.Equal(t, "5", berakhot.LastPage)

	assert.Equal(t, "Shabbat", body.Collections[1].Name)
	assert.Equal(t, 1, body.Collections[1].PageCount)
}

func TestGetCollection(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.api.Get("/api/v1/collections/Berakhot")
	require.Equal(t, http.StatusOK, resp.Code)

	var body CollectionResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	assert.Equal(t, "Berakhot", body.Name)
	assert.Equal(t, "Berakhot", body.Title)
	require.Len(t, body.Pages, 3)

	assert.Equal(t, "2", body.Pages[0].Page)
	assert.Equal(t, "/audio/Berakhot/2", body.Pages[0].AudioURL)
	assert.Equal(t, "https://files.example.org/Berakhot2.mp3", body.Pages[0].RemoteURL)
	assert.Empty(t, body.Pages[1].RemoteURL)

	assert.Equal(t, []int{4}, body.Gaps)
}

func TestGetCollection_NoGaps(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.api.Get("/api/v1/collections/Shabbat")
	require.Equal(t, http.StatusOK, resp.Code)

	var body CollectionResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	require.Len(t, body.Pages, 1)
	assert.Empty(t, body.Gaps)
}

func TestGetCollection_NotFound(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.api.Get("/api/v1/collections/Bavli")
	require.Equal(t, http.StatusNotFound, resp.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &apiErr))
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
	assert.Contains(t, apiErr.Message, "Bavli")
}
