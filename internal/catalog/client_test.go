package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/booknest/booknest-be/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchProxiesRawBody(t *testing.T) {
	const raw = `{"kind":"books#volumes","totalItems":1,"items":[{"id":"abc"}]}`

	var gotQuery, gotMax string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/volumes", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		gotMax = r.URL.Query().Get("maxResults")
		w.Write([]byte(raw))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	body, err := client.Search(context.Background(), "dune messiah")
	require.NoError(t, err)
	assert.Equal(t, raw, string(body))
	assert.Equal(t, "dune messiah", gotQuery)
	assert.Equal(t, "40", gotMax)
}

func TestSearchUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Search(context.Background(), "dune")
	assert.True(t, apperror.IsKind(err, apperror.Upstream), "got %v", err)
}

func TestGetVolume(t *testing.T) {
	const body = `{
		"id": "abc",
		"volumeInfo": {
			"title": "Dune",
			"authors": ["Frank Herbert"],
			"averageRating": 4.5,
			"description": "Spice and sand.",
			"imageLinks": {"thumbnail": "http://img/abc.jpg"}
		}
	}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/volumes/abc", r.URL.Path)
		w.Write([]byte(body))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	vol, err := client.GetVolume(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", vol.ID)
	assert.Equal(t, "Dune", vol.Title)
	assert.Equal(t, []string{"Frank Herbert"}, vol.Authors)
	assert.Equal(t, 4.5, vol.AverageRating)
	assert.Equal(t, "http://img/abc.jpg", vol.Thumbnail)
	assert.Equal(t, "Spice and sand.", vol.Description)
}

func TestGetVolumeNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.GetVolume(context.Background(), "missing")
	assert.True(t, apperror.IsKind(err, apperror.NotFound), "got %v", err)
}

func TestGetVolumeMissingInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"abc"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.GetVolume(context.Background(), "abc")
	assert.True(t, apperror.IsKind(err, apperror.NotFound), "got %v", err)
}
