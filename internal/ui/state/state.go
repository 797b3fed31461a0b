package state

import (
	"disasterwatch/internal/accumulator"
	"disasterwatch/internal/domain"
)

// AppState contains all the application state
type AppState struct {
	// Search data, mirrored from the accumulator
	Events       []domain.Event
	Query        string
	HasMore      bool
	Loading      bool
	ErrorMessage string
	Generation   uint64

	// Selection state
	SelectedIndex int

	// UI state
	ViewportOffset   int // offset for scrolling
	ViewportHeight   int // available height for the event list
	ShowHelp         bool
	HelpScrollOffset int
	StatusMessage    string
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		Events:         make([]domain.Event, 0),
		ViewportHeight: 20, // Default
	}
}

// ApplySnapshot copies an accumulator snapshot into the UI state.
// Selection is reset when the snapshot belongs to a new search.
func (s *AppState) ApplySnapshot(snap accumulator.State) {
	if snap.Generation != s.Generation {
		s.SelectedIndex = 0
		s.ViewportOffset = 0
	}

	s.Events = snap.Collected
	s.Query = snap.Query
	s.HasMore = snap.HasMore()
	s.Loading = snap.Loading
	s.ErrorMessage = snap.ErrorMessage()
	s.Generation = snap.Generation

	if s.SelectedIndex >= len(s.Events) {
		s.SelectedIndex = len(s.Events) - 1
	}
	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
}

// ShowLoadMore reports whether the load-more control is offered. It appears
// only once at least a full page of events is on screen.
func (s *AppState) ShowLoadMore(pageSize int) bool {
	return s.HasMore && len(s.Events) >= pageSize
}

// CanAdvance reports whether a single-page fetch may be requested, either
// through the load-more control or as a retry after a failure.
func (s *AppState) CanAdvance(pageSize int) bool {
	if s.Loading || !s.HasMore {
		return false
	}
	return s.ErrorMessage != "" || s.ShowLoadMore(pageSize)
}

// SelectedEvent returns the highlighted event
func (s *AppState) SelectedEvent() (domain.Event, bool) {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Events) {
		return domain.Event{}, false
	}
	return s.Events[s.SelectedIndex], true
}
