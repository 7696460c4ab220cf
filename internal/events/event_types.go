package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventContactCreated  EventType = "contact_created"
	EventContactAssigned EventType = "contact_assigned"
	EventContactClosed   EventType = "contact_closed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ContactID string      `json:"contact_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ContactCreatedPayload payload.
type ContactCreatedPayload struct {
	LeadID   string `json:"lead_id"`
	SourceID string `json:"source_id"`
	Assigned bool   `json:"assigned"`
}

// ContactAssignedPayload payload.
type ContactAssignedPayload struct {
	OperatorID string `json:"operator_id"`
	SourceID   string `json:"source_id"`
	Weight     int    `json:"weight"`
}

// ContactClosedPayload payload.
type ContactClosedPayload struct {
	OperatorID *string `json:"operator_id,omitempty"`
}
