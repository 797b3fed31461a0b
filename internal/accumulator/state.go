package accumulator

import (
	"disasterwatch/internal/domain"
)

// State is an immutable snapshot of a search. Every step produces a new
// State; Collected is never modified in place once published.
type State struct {
	Query        string
	Collected    []domain.Event // arrival order
	Continuation string         // "" when no further pages exist
	Loading      bool
	Err          error // last fetch error, nil after a successful page
	Generation   uint64
}

// HasMore reports whether another page can be requested
func (s State) HasMore() bool {
	return s.Continuation != ""
}

// Len returns the number of collected events
func (s State) Len() int {
	return len(s.Collected)
}

// ErrorMessage returns the user-visible error text, or "" when there is none
func (s State) ErrorMessage() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

// Apply merges one page into s and returns the resulting state.
//
// An item is kept when its category is exactly "disasters" and its id is
// not already present in s.Collected. Both checks run against s as it was
// before the page, so an id repeated inside the same page is kept twice.
// The continuation is replaced by the page's.
func Apply(s State, page domain.Page) State {
	seen := make(map[string]struct{}, len(s.Collected))
	for _, ev := range s.Collected {
		seen[ev.ID] = struct{}{}
	}

	collected := make([]domain.Event, len(s.Collected), len(s.Collected)+len(page.Items))
	copy(collected, s.Collected)
	for _, ev := range page.Items {
		if !ev.IsDisaster() {
			continue
		}
		if _, dup := seen[ev.ID]; dup {
			continue
		}
		collected = append(collected, ev)
	}

	next := s
	next.Collected = collected
	next.Continuation = page.Next
	next.Err = nil
	return next
}

func (s State) withLoading(loading bool) State {
	s.Loading = loading
	return s
}

func (s State) withError(err error) State {
	s.Loading = false
	s.Err = err
	return s
}
