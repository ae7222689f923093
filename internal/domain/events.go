package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchSubmitted EventType = "SearchSubmitted"
	EventPageRequested   EventType = "PageRequested"
	EventPageLoaded      EventType = "PageLoaded"
	EventSearchFailed    EventType = "SearchFailed"
	EventImageOpened     EventType = "ImageOpened"
	EventModalClosed     EventType = "ModalClosed"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchSubmittedEvent is emitted when a new query replaces the session
type SearchSubmittedEvent struct {
	Query      string
	Generation uint64
}

func (e SearchSubmittedEvent) Type() EventType { return EventSearchSubmitted }

// PageRequestedEvent is emitted when a further page is requested
type PageRequestedEvent struct {
	Query string
	Page  int
}

func (e PageRequestedEvent) Type() EventType { return EventPageRequested }

// PageLoadedEvent is emitted when a page has been merged into the results
type PageLoadedEvent struct {
	Query     string
	Page      int
	Items     int
	TotalHits int
	HasMore   bool
}

func (e PageLoadedEvent) Type() EventType { return EventPageLoaded }

// SearchFailedEvent is emitted when a fetch fails
type SearchFailedEvent struct {
	Query string
	Page  int
	Err   error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// ImageOpenedEvent is emitted when the modal opens
type ImageOpenedEvent struct {
	URL string
}

func (e ImageOpenedEvent) Type() EventType { return EventImageOpened }

// ModalClosedEvent is emitted when the modal is dismissed
type ModalClosedEvent struct {
	URL string
}

func (e ModalClosedEvent) Type() EventType { return EventModalClosed }
