package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventQueryIssued   EventType = "QueryIssued"
	EventSearchSettled EventType = "SearchSettled"
	EventModalOpened   EventType = "ModalOpened"
	EventModalClosed   EventType = "ModalClosed"
	EventError         EventType = "Error"
	EventConfigLoaded  EventType = "ConfigLoaded"
	EventConfigSaved   EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// QueryIssuedEvent is emitted when the search controller starts a lookup
type QueryIssuedEvent struct {
	Query string
	Token uint64
}

func (e QueryIssuedEvent) Type() EventType { return EventQueryIssued }

// SearchSettledEvent is emitted when the current lookup settles into success or error
type SearchSettledEvent struct {
	Query   string
	Token   uint64
	Status  SearchStatus
	Results int
}

func (e SearchSettledEvent) Type() EventType { return EventSearchSettled }

// ModalOpenedEvent is emitted when a modal transitions closed -> open
type ModalOpenedEvent struct {
	ID string
}

func (e ModalOpenedEvent) Type() EventType { return EventModalOpened }

// ModalClosedEvent is emitted when a modal transitions open -> closed
type ModalClosedEvent struct {
	ID            string
	FocusRestored bool
}

func (e ModalClosedEvent) Type() EventType { return EventModalClosed }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
