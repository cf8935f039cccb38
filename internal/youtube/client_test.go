// Package youtube tests document the expected behavior of the YouTube client.
//
// Test requirements (this file serves as documentation):
// - Client lists liked videos with part=snippet, myRating=like and a page size
// - Client forwards the continuation token when one is given
// - Client looks categories up with one comma-joined id parameter
// - Client surfaces API failures as *APIError
package youtube

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(context.Background(),
		WithBaseURL(server.URL),
		WithHTTPClient(server.Client()))
	require.NoError(t, err, "client should be created against the test server")
	return client
}

func writeJSON(w http.ResponseWriter, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, client, "client should not be nil")
}

// TestClient_ListLikedVideos documents the first page request:
// - hits /youtube/v3/videos with myRating=like
// - asks for the requested page size
// - returns items and the continuation token untouched
func TestClient_ListLikedVideos(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/youtube/v3/videos", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "snippet", q.Get("part"))
		assert.Equal(t, "like", q.Get("myRating"))
		assert.Equal(t, "50", q.Get("maxResults"))
		assert.Empty(t, q.Get("pageToken"), "first page should not send a page token")

		writeJSON(w, map[string]interface{}{
			"items": []map[string]interface{}{
				{
					"id": "vid1",
					"snippet": map[string]interface{}{
						"publishedAt":  "2024-01-15T12:00:00Z",
						"title":        "Liked Video",
						"channelTitle": "Some Channel",
						"categoryId":   "10",
						"tags":         []string{"music", "live"},
					},
				},
			},
			"nextPageToken": "PAGE2",
		})
	})

	resp, err := client.ListLikedVideos(context.Background(), 50, "")

	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "PAGE2", resp.NextPageToken)
	assert.Equal(t, "Liked Video", resp.Items[0].Snippet.Title)
	assert.Equal(t, "10", resp.Items[0].Snippet.CategoryId)
}

func TestClient_ListLikedVideos_SendsPageToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PAGE2", r.URL.Query().Get("pageToken"))
		writeJSON(w, map[string]interface{}{"items": []map[string]interface{}{}})
	})

	resp, err := client.ListLikedVideos(context.Background(), 50, "PAGE2")

	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.Empty(t, resp.NextPageToken, "last page should carry no continuation token")
}

// TestClient_LookupCategories documents category lookup:
// - hits /youtube/v3/videoCategories with part=snippet
// - sends all ids joined by commas in a single request
func TestClient_LookupCategories(t *testing.T) {
	requests := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "/youtube/v3/videoCategories", r.URL.Path)
		assert.Equal(t, "snippet", r.URL.Query().Get("part"))
		assert.Equal(t, "10,20", r.URL.Query().Get("id"))

		writeJSON(w, map[string]interface{}{
			"items": []map[string]interface{}{
				{"id": "10", "snippet": map[string]interface{}{"title": "Music"}},
				{"id": "20", "snippet": map[string]interface{}{"title": "Gaming"}},
			},
		})
	})

	resp, err := client.LookupCategories(context.Background(), []string{"10", "20"})

	require.NoError(t, err)
	assert.Equal(t, 1, requests, "all ids should be resolved in one request")
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Music", resp.Items[0].Snippet.Title)
	assert.Equal(t, "20", resp.Items[1].Id)
}

func TestClient_ListLikedVideos_ReturnsAPIErrorOnUnauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":401,"message":"Invalid Credentials"}}`))
	})

	_, err := client.ListLikedVideos(context.Background(), 50, "")

	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "videos.list", apiErr.Operation)
	assert.Contains(t, err.Error(), "likestats auth", "user should be told how to re-authenticate")
}

func TestClient_LookupCategories_ReturnsAPIErrorOnForbidden(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.LookupCategories(context.Background(), []string{"10"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "videoCategories.list", apiErr.Operation)
}
