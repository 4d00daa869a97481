package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kgweaver/kgweaver/model"
)

func TestNewClient(t *testing.T) {
	t.Run("Requires an api key", func(t *testing.T) {
		client, err := NewClient("")

		require.Error(t, err)
		assert.Nil(t, client)
	})
}

func TestSearchCompanies(t *testing.T) {
	t.Run("Sends query and basic auth", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search/companies", r.URL.Path)
			assert.Equal(t, "acme", r.URL.Query().Get("q"))
			assert.Equal(t, "5", r.URL.Query().Get("items_per_page"))

			// The api key is the basic auth username, the password is empty
			user, pass, ok := r.BasicAuth()
			require.True(t, ok)
			assert.Equal(t, "test-key", user)
			assert.Equal(t, "", pass)

			json.NewEncoder(w).Encode(map[string]interface{}{
				"items": []map[string]interface{}{
					{"company_number": "12345678", "title": "ACME LTD", "company_status": "active"},
				},
			})
		}))
		defer server.Close()

		client, err := NewClient("test-key", WithBaseURL(server.URL))
		require.NoError(t, err)

		companies, err := client.SearchCompanies(context.Background(), "acme", 5)

		require.NoError(t, err)
		require.Len(t, companies, 1)
		assert.Equal(t, "12345678", companies[0].CompanyNumber)
		assert.Equal(t, "ACME LTD", companies[0].Title)
	})

	t.Run("Not found yields no results and no error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client, err := NewClient("test-key", WithBaseURL(server.URL))
		require.NoError(t, err)

		companies, err := client.SearchCompanies(context.Background(), "ghost", 5)

		require.NoError(t, err)
		assert.Empty(t, companies)
	})

	t.Run("Unexpected status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client, err := NewClient("test-key", WithBaseURL(server.URL))
		require.NoError(t, err)

		_, err = client.SearchCompanies(context.Background(), "acme", 5)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})
}

func TestCompanyNetwork(t *testing.T) {
	t.Run("Builds company, officer and psc nodes", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/search/companies":
				json.NewEncoder(w).Encode(map[string]interface{}{
					"items": []map[string]interface{}{
						{"company_number": "12345678", "title": "ACME LTD"},
					},
				})
			case "/company/12345678":
				json.NewEncoder(w).Encode(map[string]interface{}{
					"company_number":   "12345678",
					"company_name":     "ACME LTD",
					"company_status":   "active",
					"date_of_creation": "2010-04-01",
				})
			case "/company/12345678/officers":
				json.NewEncoder(w).Encode(map[string]interface{}{
					"items": []map[string]interface{}{
						{"name": "DOE, Jane", "officer_role": "director", "appointed_on": "2010-04-01"},
						{"name": "GONE, Bob", "officer_role": "director", "resigned_on": "2015-01-01"},
					},
				})
			case "/company/12345678/persons-with-significant-control":
				json.NewEncoder(w).Encode(map[string]interface{}{
					"items": []map[string]interface{}{
						{"name": "Holding Corp", "kind": "corporate-entity-person-with-significant-control"},
					},
				})
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer server.Close()

		client, err := NewClient("test-key", WithBaseURL(server.URL))
		require.NoError(t, err)

		graph, err := client.CompanyNetwork(context.Background(), "acme")

		require.NoError(t, err)
		require.Len(t, graph.Nodes, 3, "Company plus active officer plus PSC")
		assert.Equal(t, "ACME LTD", graph.Nodes[0].Title)
		assert.Equal(t, model.ContentTypeCompanyPage, graph.Nodes[0].ContentType)
		assert.Equal(t, 0, graph.Nodes[0].Level)

		for _, node := range graph.Nodes[1:] {
			assert.Equal(t, 1, node.Level)
			assert.Equal(t, model.ContentTypeProfile, node.ContentType)
		}

		require.Len(t, graph.Edges, 2)
		assert.Equal(t, RelationshipOfficerOf, graph.Edges[0].Relationship)
		assert.Equal(t, 0.7, graph.Edges[0].Weight)
		assert.Equal(t, RelationshipControls, graph.Edges[1].Relationship)
		assert.Equal(t, 0.9, graph.Edges[1].Weight)

		assert.Equal(t, 3, graph.Metadata.TotalNodes)
		assert.Equal(t, 2, graph.Metadata.TotalEdges)
		assert.Equal(t, 1, graph.Metadata.Levels[0])
		assert.Equal(t, 2, graph.Metadata.Levels[1])
	})

	t.Run("No match yields an empty graph", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{"items": []map[string]interface{}{}})
		}))
		defer server.Close()

		client, err := NewClient("test-key", WithBaseURL(server.URL))
		require.NoError(t, err)

		graph, err := client.CompanyNetwork(context.Background(), "ghost")

		require.NoError(t, err)
		assert.Empty(t, graph.Nodes)
		assert.Empty(t, graph.Edges)
	})
}
