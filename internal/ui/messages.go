package ui

import (
	"disasterwatch/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// searchDoneMsg reports the end of a full search walk
type searchDoneMsg struct {
	term string
	err  error
}

// pageDoneMsg reports the end of a single page request
type pageDoneMsg struct {
	err error
}

// detailPagerMsg contains the result of the detail pager
type detailPagerMsg struct {
	eventID string
	err     error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
