// Package predicthq talks to the PredictHQ events endpoint.
package predicthq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"disasterwatch/internal/domain"
)

// DefaultBaseURL is the public API root
const DefaultBaseURL = "https://api.predicthq.com/v1"

// PageSize is the fixed number of events requested per page
const PageSize = 10

// SortByStart orders results by start time, ascending
const SortByStart = "start"

// Client fetches event pages with a static bearer token
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client. A zero timeout means requests never time out.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetHTTPClient replaces the underlying HTTP client
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

type eventsResponse struct {
	Count   int             `json:"count"`
	Results *[]domain.Event `json:"results"`
	Next    *string         `json:"next"`
}

// FirstPageURL builds the URL of the first results page for a search term
func (c *Client) FirstPageURL(term string) string {
	params := url.Values{}
	params.Set("q", term)
	params.Set("limit", strconv.Itoa(PageSize))
	params.Set("sort", SortByStart)
	params.Set("category", domain.DisasterCategory)
	return fmt.Sprintf("%s/events?%s", c.baseURL, params.Encode())
}

// FetchPage requests one page. pageURL is either a URL built by
// FirstPageURL or the continuation returned by a previous page, used verbatim.
func (c *Client) FetchPage(ctx context.Context, pageURL string) (domain.Page, error) {
	target, err := c.resolve(pageURL)
	if err != nil {
		return domain.Page{}, fmt.Errorf("%w: invalid page url: %w", ErrFetchFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return domain.Page{}, fmt.Errorf("%w: failed to create request: %w", ErrFetchFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("predicthq: request to %s failed: %v", redactURL(target), err)
		return domain.Page{}, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	log.Printf("predicthq: GET %s -> %d in %s", redactURL(target), resp.StatusCode, time.Since(start).Round(time.Millisecond))

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return domain.Page{}, &AuthError{StatusCode: resp.StatusCode}
	case resp.StatusCode == http.StatusTooManyRequests:
		return domain.Page{}, &RateLimitedError{RetryAfter: resp.Header.Get("Retry-After")}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return domain.Page{}, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Page{}, &NetworkError{Err: err}
	}

	var payload eventsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.Page{}, &DecodeError{Err: err}
	}
	if payload.Results == nil {
		return domain.Page{}, &DecodeError{Err: errors.New("response has no results")}
	}

	page := domain.Page{Items: *payload.Results}
	if payload.Next != nil {
		page.Next = *payload.Next
	}
	return page, nil
}

// resolve returns absolute URLs unchanged and joins relative ones onto the base
func (c *Client) resolve(pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}
	if u.IsAbs() {
		return pageURL, nil
	}
	base, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return "", err
	}
	return base.ResolveReference(u).String(), nil
}

// redactURL drops the query string so search terms and cursors stay out of logs
func redactURL(u string) string {
	if i := strings.IndexByte(u, '?'); i >= 0 {
		return u[:i] + "?...(redacted)"
	}
	return u
}
