package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchStarted   EventType = "SearchStarted"
	EventPageLoaded      EventType = "PageLoaded"
	EventSearchCompleted EventType = "SearchCompleted"
	EventSearchFailed    EventType = "SearchFailed"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventConfigSaved     EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchStartedEvent is emitted when a new search resets the results
type SearchStartedEvent struct {
	Query      string
	Generation uint64
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// PageLoadedEvent is emitted after a page has been merged into the results
type PageLoadedEvent struct {
	Query      string
	Generation uint64
	Added      int // events kept from this page
	Total      int
	HasMore    bool
}

func (e PageLoadedEvent) Type() EventType { return EventPageLoaded }

// SearchCompletedEvent is emitted when a search has drained every page
type SearchCompletedEvent struct {
	Query      string
	Generation uint64
	Total      int
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchFailedEvent is emitted when a page request fails
type SearchFailedEvent struct {
	Query      string
	Generation uint64
	Err        error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path    string
	BaseURL string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
