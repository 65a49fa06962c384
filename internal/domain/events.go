package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventItemSelected       EventType = "ItemSelected"
	EventSelectionCleared   EventType = "SelectionCleared"
	EventItemsLoaded        EventType = "ItemsLoaded"
	EventWidgetAttachFailed EventType = "WidgetAttachFailed"
	EventSearchStarted      EventType = "SearchStarted"
	EventSearchCompleted    EventType = "SearchCompleted"
	EventSearchFailed       EventType = "SearchFailed"
	EventMapUpdated         EventType = "MapUpdated"
	EventError              EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ItemSelectedEvent is the selection notification emitted when a user commits
// a dropdown choice. Source names the emitting widget.
type ItemSelectedEvent struct {
	Source   string
	ID       any
	Title    string
	Subtitle string
	Original map[string]any
}

func (e ItemSelectedEvent) Type() EventType { return EventItemSelected }

// SelectionClearedEvent is emitted when a dropdown's selection is reset
type SelectionClearedEvent struct {
	Source string
}

func (e SelectionClearedEvent) Type() EventType { return EventSelectionCleared }

// ItemsLoadedEvent is emitted once a dropdown has its candidate list.
// Fallback is set when the configured source failed and Err holds why.
type ItemsLoadedEvent struct {
	Source   string
	Count    int
	Fallback bool
	Err      error
}

func (e ItemsLoadedEvent) Type() EventType { return EventItemsLoaded }

// WidgetAttachFailedEvent is emitted when a dropdown cannot bind to the form
type WidgetAttachFailedEvent struct {
	Source string
	Err    error
}

func (e WidgetAttachFailedEvent) Type() EventType { return EventWidgetAttachFailed }

// SearchStartedEvent is emitted when a provider search is issued
type SearchStartedEvent struct {
	Generation uint64
	RequestID  string
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// SearchCompletedEvent is emitted when the current search returns
type SearchCompletedEvent struct {
	Generation uint64
	RequestID  string
	Count      int
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchFailedEvent is emitted when the current search fails
type SearchFailedEvent struct {
	Generation uint64
	RequestID  string
	Err        error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// MapUpdatedEvent is emitted after the marker layer was cleared and refilled
type MapUpdatedEvent struct {
	Generation uint64
	Markers    int
	Missed     int // addresses with no geocoding match
}

func (e MapUpdatedEvent) Type() EventType { return EventMapUpdated }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
