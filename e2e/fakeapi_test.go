//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

const fakeToken = "e2e-token"

type fakeEvent struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Start    string `json:"start"`
	State    string `json:"state,omitempty"`
}

type fakePage struct {
	events []fakeEvent
	status int // non-zero answers with this status once
}

// fakeAPI serves /v1/events pages keyed by query and page number
type fakeAPI struct {
	srv *httptest.Server

	mu    sync.Mutex
	pages map[string][]fakePage // q -> pages in order
	hits  map[string]int
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	api := &fakeAPI{
		pages: make(map[string][]fakePage),
		hits:  make(map[string]int),
	}
	api.srv = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.srv.Close)
	return api
}

// BaseURL is the API root the binary is pointed at
func (a *fakeAPI) BaseURL() string {
	return a.srv.URL + "/v1"
}

// AddPages registers the pages returned for query q
func (a *fakeAPI) AddPages(q string, pages ...fakePage) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pages[q] = append(a.pages[q], pages...)
}

func (a *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != "Bearer "+fakeToken {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if r.URL.Path != "/v1/events" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	q := r.URL.Query().Get("q")
	idx := 0
	if p := r.URL.Query().Get("page"); p != "" {
		fmt.Sscanf(p, "%d", &idx)
	}

	a.mu.Lock()
	pages := a.pages[q]
	if idx >= len(pages) {
		a.mu.Unlock()
		w.WriteHeader(http.StatusNotFound)
		return
	}
	page := pages[idx]
	key := fmt.Sprintf("%s#%d", q, idx)
	a.hits[key]++
	failing := page.status != 0 && a.hits[key] == 1
	a.mu.Unlock()

	if failing {
		w.WriteHeader(page.status)
		return
	}

	var next *string
	if idx+1 < len(pages) {
		u := fmt.Sprintf("%s/events?q=%s&page=%d", a.BaseURL(), url.QueryEscape(q), idx+1)
		next = &u
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"count":   len(page.events),
		"results": page.events,
		"next":    next,
	})
}

func disasterEvents(prefix string, n int) []fakeEvent {
	out := make([]fakeEvent, n)
	for i := range out {
		out[i] = fakeEvent{
			ID:       fmt.Sprintf("%s-%d", prefix, i),
			Title:    fmt.Sprintf("%s event %d", prefix, i),
			Category: "disasters",
			Start:    "2024-07-01T00:00:00Z",
			State:    "active",
		}
	}
	return out
}
