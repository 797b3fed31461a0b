package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"

	"disasterwatch/internal/eventbus"
	"disasterwatch/internal/ui/state"
)

// EventHandler handles domain events and updates the status line.
// Result data itself comes from accumulator snapshots.
type EventHandler struct {
	state *state.AppState
}

// NewEventHandler creates a new event handler
func NewEventHandler(appState *state.AppState) *EventHandler {
	return &EventHandler{state: appState}
}

// HandleEvent processes a domain event. It reports whether the event belongs
// to the search currently on screen and the view should refresh.
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) bool {
	switch e := event.(type) {
	case eventbus.SearchStartedEvent:
		h.state.StatusMessage = fmt.Sprintf("Searching for %q...", e.Query)
		return true

	case eventbus.PageLoadedEvent:
		if h.stale(e.Generation) {
			return false
		}
		if e.HasMore {
			h.state.StatusMessage = fmt.Sprintf("Loaded %d events (+%d)", e.Total, e.Added)
		} else {
			h.state.StatusMessage = fmt.Sprintf("Loaded %d events", e.Total)
		}
		return true

	case eventbus.SearchCompletedEvent:
		if h.stale(e.Generation) {
			return false
		}
		h.state.StatusMessage = fmt.Sprintf("Search complete. Found %d events.", e.Total)
		return true

	case eventbus.SearchFailedEvent:
		if h.stale(e.Generation) || errors.Is(e.Err, context.Canceled) {
			return false
		}
		h.state.StatusMessage = ""
		return true

	case eventbus.ConfigLoadedEvent:
		log.Printf("Config loaded from %s (api %s)", e.Path, e.BaseURL)

	case eventbus.ConfigSavedEvent:
		h.state.StatusMessage = fmt.Sprintf("Config saved to %s", e.Path)
	}

	return false
}

// stale reports whether an event comes from a search older than the one shown
func (h *EventHandler) stale(gen uint64) bool {
	return gen < h.state.Generation
}
