package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/kgweaver/kgweaver/helper"
)

// DefaultBaseURL is the production endpoint of the UK Companies House API
const DefaultBaseURL = "https://api.company-information.service.gov.uk"

// minRequestInterval keeps the client under the Companies House rate limit
// of 600 requests per 5 minutes
const minRequestInterval = 500 * time.Millisecond

// Client is a thin wrapper around the Companies House company-registry API
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client

	mu          sync.Mutex
	lastRequest time.Time
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// NewClient creates a company-registry client. The API key is required.
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, helper.NewError("create registry client", fmt.Errorf("api key is empty"))
	}

	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CompanySummary is a single company search hit
type CompanySummary struct {
	CompanyNumber string `json:"company_number"`
	Title         string `json:"title"`
	CompanyStatus string `json:"company_status"`
	CompanyType   string `json:"company_type"`
}

// CompanyProfile describes a registered company
type CompanyProfile struct {
	CompanyNumber     string            `json:"company_number"`
	CompanyName       string            `json:"company_name"`
	CompanyStatus     string            `json:"company_status"`
	IncorporationDate string            `json:"date_of_creation"`
	CompanyType       string            `json:"type"`
	SICCodes          []string          `json:"sic_codes"`
	RegisteredAddress map[string]string `json:"registered_office_address"`
}

// Officer is a company director or secretary
type Officer struct {
	Name               string `json:"name"`
	Role               string `json:"officer_role"`
	AppointedOn        string `json:"appointed_on"`
	ResignedOn         string `json:"resigned_on"`
	Nationality        string `json:"nationality"`
	Occupation         string `json:"occupation"`
	CountryOfResidence string `json:"country_of_residence"`
}

// PSC is a person with significant control over a company
type PSC struct {
	Name               string   `json:"name"`
	Kind               string   `json:"kind"`
	NaturesOfControl   []string `json:"natures_of_control"`
	NotifiedOn         string   `json:"notified_on"`
	CountryOfResidence string   `json:"country_of_residence"`
	Nationality        string   `json:"nationality"`
}

type companySearchResponse struct {
	Items []CompanySummary `json:"items"`
}

type officersResponse struct {
	Items []Officer `json:"items"`
}

type pscsResponse struct {
	Items []PSC `json:"items"`
}

// SearchCompanies searches the register by company name
func (c *Client) SearchCompanies(ctx context.Context, query string, itemsPerPage int) ([]CompanySummary, error) {
	var parsed companySearchResponse
	path := fmt.Sprintf("/search/companies?q=%s&items_per_page=%d", url.QueryEscape(query), itemsPerPage)
	if err := c.get(ctx, path, &parsed); err != nil {
		return nil, err
	}
	return parsed.Items, nil
}

// CompanyProfile retrieves the full profile of a company
func (c *Client) CompanyProfile(ctx context.Context, companyNumber string) (*CompanyProfile, error) {
	var profile CompanyProfile
	if err := c.get(ctx, "/company/"+url.PathEscape(companyNumber), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Officers lists the officers of a company
func (c *Client) Officers(ctx context.Context, companyNumber string) ([]Officer, error) {
	var parsed officersResponse
	if err := c.get(ctx, "/company/"+url.PathEscape(companyNumber)+"/officers", &parsed); err != nil {
		return nil, err
	}
	return parsed.Items, nil
}

// PSCs lists the persons with significant control over a company
func (c *Client) PSCs(ctx context.Context, companyNumber string) ([]PSC, error) {
	var parsed pscsResponse
	path := "/company/" + url.PathEscape(companyNumber) + "/persons-with-significant-control"
	if err := c.get(ctx, path, &parsed); err != nil {
		return nil, err
	}
	return parsed.Items, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	c.rateLimit()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return helper.NewError("create request", err)
	}
	// Companies House uses the API key as the basic auth username
	req.SetBasicAuth(c.apiKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return helper.NewError("perform request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		return helper.NewError("perform request", fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return helper.NewError("decode response", err)
	}
	return nil
}

// rateLimit spaces requests out to stay within the API quota
func (c *Client) rateLimit() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elapsed := time.Since(c.lastRequest); elapsed < minRequestInterval {
		time.Sleep(minRequestInterval - elapsed)
	}
	c.lastRequest = time.Now()
}
