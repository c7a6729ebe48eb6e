package passages

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	client, _ := newTestClient(t, handler)
	cache := openTestCache(t, time.Hour)
	return NewService(client, cache, ServiceOptions{
		Language:  "en",
		Languages: []string{"en", "he"},
	}, nil)
}

func TestService_SecondLookupComesFromCache(t *testing.T) {
	var requests atomic.Int64
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte(`{"ref": "Berakhot 2", "text": ["line"], "he": []}`))
	})

	first, err := svc.Get(context.Background(), "Berakhot", "2", "en")
	require.NoError(t, err)

	second, err := svc.Get(context.Background(), "Berakhot", "2", "en")
	require.NoError(t, err)

	assert.Equal(t, int64(1), requests.Load())
	assert.Equal(t, first, second)
}

func TestService_DefaultsLanguage(t *testing.T) {
	var gotLang string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotLang = r.URL.Query().Get("lang")
		w.Write([]byte(`{"ref": "Berakhot 2", "text": ["line"], "he": []}`))
	})

	p, err := svc.Get(context.Background(), "Berakhot", "2", "")
	require.NoError(t, err)
	assert.Equal(t, "en", gotLang)
	assert.Equal(t, "en", p.Language)
}

func TestService_VariantsShareACacheEntry(t *testing.T) {
	var requests atomic.Int64
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte(`{"ref": "Berakhot 2", "text": ["line"], "he": []}`))
	})

	_, err := svc.Get(context.Background(), "Berakhot", "2", "en-US")
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), "Berakhot", "2", "en")
	require.NoError(t, err)

	assert.Equal(t, int64(1), requests.Load())
}

func TestService_WorksWithoutCache(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ref": "Berakhot 2", "text": ["line"], "he": []}`))
	})
	svc := NewService(client, nil, ServiceOptions{Language: "en", Languages: []string{"en"}}, nil)

	p, err := svc.Get(context.Background(), "Berakhot", "2", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"line"}, p.Segments)
}

func TestService_FetchErrorsPropagate(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := svc.Get(context.Background(), "Nowhere", "1", "en")
	require.Error(t, err)
}
