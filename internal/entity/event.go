package entity

import "time"

type EventType string

const (
	EventTypeCreated  EventType = "created"
	EventTypeDeployed EventType = "deployed"
	EventTypeUpdated  EventType = "updated"
)

// Event is an immutable audit record of a lifecycle transition on a
// service. Events reference the service by name only; they are never
// mutated or deleted.
type Event struct {
	ID          ID             `json:"id"`
	ServiceName string         `json:"service_name"`
	EventType   EventType      `json:"event_type"`
	EventData   map[string]any `json:"event_data"`
	CreatedAt   time.Time      `json:"created_at"`
}
