// Package source implements the client for the external job-search API.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"jobscraper/ingest-service/internal/model"
)

const httpTimeout = 15 * time.Second

// Sentinel error kinds for fetch failures. Callers match with errors.Is;
// neither is retried here — the crawler abandons the current keyword instead.
var (
	// ErrUnavailable marks transport-level failures reaching the source.
	ErrUnavailable = errors.New("job source unavailable")
	// ErrProtocol marks unexpected status codes or undecodable payloads.
	ErrProtocol = errors.New("job source protocol error")
)

// Client queries the external job-listing provider. It is read-only and
// holds no state beyond a shared HTTP client.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient constructs a Client with a shared HTTP client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: httpTimeout},
	}
}

// Fetch runs one search query and returns the provider-ordered list of
// candidate postings for that page. A zero-length result is not an error;
// it is how the provider signals the end of pagination.
func (c *Client) Fetch(ctx context.Context, criteria model.SearchCriteria) ([]model.RawJobCandidate, error) {
	if criteria.Keyword == "" {
		return nil, fmt.Errorf("keyword is required")
	}
	if criteria.Page != "" {
		page, err := strconv.Atoi(criteria.Page)
		if err != nil || page < 0 {
			return nil, fmt.Errorf("page must be a non-negative integer, got %q", criteria.Page)
		}
	}

	reqURL := c.baseURL + "/jobs?" + searchParams(criteria).Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrProtocol, resp.StatusCode, truncate(body, 256))
	}

	var candidates []model.RawJobCandidate
	if err := json.Unmarshal(body, &candidates); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %v", ErrProtocol, err)
	}

	return candidates, nil
}

// searchParams maps SearchCriteria onto the provider's query string.
// Empty filters are omitted rather than sent as empty values.
func searchParams(criteria model.SearchCriteria) url.Values {
	params := url.Values{}
	params.Set("keyword", criteria.Keyword)
	setIfPresent(params, "location", criteria.Location)
	setIfPresent(params, "dateSincePosted", criteria.DateSincePosted)
	setIfPresent(params, "jobType", criteria.JobType)
	setIfPresent(params, "remoteFilter", criteria.RemoteFilter)
	setIfPresent(params, "experienceLevel", criteria.ExperienceLevel)
	setIfPresent(params, "sortBy", criteria.SortBy)
	setIfPresent(params, "page", criteria.Page)
	return params
}

func setIfPresent(params url.Values, key, value string) {
	if value != "" {
		params.Set(key, value)
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "…"
}
