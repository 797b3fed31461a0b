package input

import (
	"disasterwatch/internal/predicthq"
	"disasterwatch/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State *state.AppState
}

// CurrentIndex returns the current selected index
func (c *ModelContext) CurrentIndex() int {
	return c.State.SelectedIndex
}

// TotalItems returns the number of events on screen
func (c *ModelContext) TotalItems() int {
	return len(c.State.Events)
}

// HasSelectedEvent reports whether an event is highlighted
func (c *ModelContext) HasSelectedEvent() bool {
	_, ok := c.State.SelectedEvent()
	return ok
}

// CanLoadMore reports whether a single page may be requested
func (c *ModelContext) CanLoadMore() bool {
	return c.State.CanAdvance(predicthq.PageSize)
}

// ShowingHelp reports whether the help popup is open
func (c *ModelContext) ShowingHelp() bool {
	return c.State.ShowHelp
}
