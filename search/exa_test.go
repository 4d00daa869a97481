package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("Requires an api key", func(t *testing.T) {
		client, err := NewClient("")

		require.Error(t, err)
		assert.Nil(t, client)
	})

	t.Run("Defaults to the production endpoint", func(t *testing.T) {
		client, err := NewClient("test-key")

		require.NoError(t, err)
		assert.Equal(t, DefaultBaseURL, client.baseURL)
	})
}

func TestSearch(t *testing.T) {
	t.Run("Sends query and maps results", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search", r.URL.Path)
			assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var payload map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "knowledge graphs", payload["query"])
			assert.Equal(t, float64(5), payload["numResults"])

			json.NewEncoder(w).Encode(map[string]interface{}{
				"results": []map[string]interface{}{
					{
						"url":           "https://example.com",
						"title":         "Example",
						"summary":       "A page",
						"author":        "Jane Doe",
						"publishedDate": "2024-01-01",
						"score":         0.42,
					},
				},
			})
		}))
		defer server.Close()

		client, err := NewClient("test-key", WithBaseURL(server.URL))
		require.NoError(t, err)

		results, err := client.Search(context.Background(), "knowledge graphs", 5)

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "https://example.com", results[0].URL)
		assert.Equal(t, "Example", results[0].Title)
		assert.Equal(t, "Jane Doe", results[0].Author)
		assert.Equal(t, 0.42, results[0].RelevanceScore)
	})

	t.Run("Prefers the highest highlight score", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"results": []map[string]interface{}{
					{
						"url":             "https://example.com",
						"title":           "Example",
						"score":           0.3,
						"highlightScores": []float64{0.1, 0.9, 0.4},
					},
				},
			})
		}))
		defer server.Close()

		client, err := NewClient("test-key", WithBaseURL(server.URL))
		require.NoError(t, err)

		results, err := client.Search(context.Background(), "anything", 1)

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, 0.9, results[0].RelevanceScore)
	})

	t.Run("Non-200 responses are errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client, err := NewClient("test-key", WithBaseURL(server.URL))
		require.NoError(t, err)

		results, err := client.Search(context.Background(), "anything", 1)

		require.Error(t, err)
		assert.Nil(t, results)
		assert.Contains(t, err.Error(), "429")
	})
}

func TestFindSimilar(t *testing.T) {
	t.Run("Sends url to the findSimilar endpoint", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/findSimilar", r.URL.Path)

			var payload map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "https://seed.example", payload["url"])
			assert.NotContains(t, payload, "query", "Queries are omitted from similarity lookups")

			json.NewEncoder(w).Encode(map[string]interface{}{"results": []map[string]interface{}{}})
		}))
		defer server.Close()

		client, err := NewClient("test-key", WithBaseURL(server.URL))
		require.NoError(t, err)

		results, err := client.FindSimilar(context.Background(), "https://seed.example", 5)

		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestContents(t *testing.T) {
	t.Run("Sends ids and maps text", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/contents", r.URL.Path)

			var payload map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, []interface{}{"id-1", "id-2"}, payload["ids"])

			json.NewEncoder(w).Encode(map[string]interface{}{
				"results": []map[string]interface{}{
					{"url": "https://example.com", "title": "Example", "text": "full text"},
				},
			})
		}))
		defer server.Close()

		client, err := NewClient("test-key", WithBaseURL(server.URL))
		require.NoError(t, err)

		results, err := client.Contents(context.Background(), []string{"id-1", "id-2"})

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "full text", results[0].Text)
	})
}
