package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kgweaver/kgweaver/helper"
	"github.com/kgweaver/kgweaver/model"
)

// DefaultBaseURL is the production endpoint of the Exa content-search API
const DefaultBaseURL = "https://api.exa.ai"

const defaultTimeout = 30 * time.Second

// Client is a thin wrapper around the Exa search API. It exposes ranked
// text search, URL similarity lookup and content retrieval; all graph
// semantics live in the builder.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a search client. The API key is required.
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, helper.NewError("create search client", fmt.Errorf("api key is empty"))
	}

	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type searchRequest struct {
	Query      string `json:"query,omitempty"`
	URL        string `json:"url,omitempty"`
	NumResults int    `json:"numResults"`
}

type contentsRequest struct {
	IDs []string `json:"ids"`
}

type apiResult struct {
	URL             string    `json:"url"`
	Title           string    `json:"title"`
	Summary         string    `json:"summary"`
	Author          string    `json:"author"`
	PublishedDate   string    `json:"publishedDate"`
	Text            string    `json:"text"`
	Score           float64   `json:"score"`
	HighlightScores []float64 `json:"highlightScores"`
}

type apiResponse struct {
	Results []apiResult `json:"results"`
}

// Search performs a ranked text search
func (c *Client) Search(ctx context.Context, query string, limit int) ([]model.SearchResult, error) {
	return c.post(ctx, "/search", searchRequest{Query: query, NumResults: limit})
}

// FindSimilar finds links similar to a given URL
func (c *Client) FindSimilar(ctx context.Context, url string, limit int) ([]model.SearchResult, error) {
	return c.post(ctx, "/findSimilar", searchRequest{URL: url, NumResults: limit})
}

// Contents retrieves the text contents of previously returned result ids
func (c *Client) Contents(ctx context.Context, ids []string) ([]model.SearchResult, error) {
	body, err := json.Marshal(contentsRequest{IDs: ids})
	if err != nil {
		return nil, helper.NewError("marshal contents request", err)
	}
	return c.do(ctx, "/contents", body)
}

func (c *Client) post(ctx context.Context, path string, payload searchRequest) ([]model.SearchResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, helper.NewError("marshal search request", err)
	}
	return c.do(ctx, path, body)
}

func (c *Client) do(ctx context.Context, path string, body []byte) ([]model.SearchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, helper.NewError("create request", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, helper.NewError("perform request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, helper.NewError("perform request", fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path))
	}

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, helper.NewError("decode response", err)
	}

	results := make([]model.SearchResult, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		results = append(results, model.SearchResult{
			URL:            r.URL,
			Title:          r.Title,
			Summary:        r.Summary,
			Author:         r.Author,
			PublishedDate:  r.PublishedDate,
			Text:           r.Text,
			RelevanceScore: relevance(r),
		})
	}
	return results, nil
}

// relevance picks the highest highlight score when present, falling back to
// the overall result score
func relevance(r apiResult) float64 {
	best := 0.0
	for _, s := range r.HighlightScores {
		if s > best {
			best = s
		}
	}
	if best > 0 {
		return best
	}
	return r.Score
}
