package domain

import "time"

// Lead is the external party initiating contact, deduplicated by ExternalID
// (a phone number, messenger handle, or similar stable key).
type Lead struct {
	ID         string
	ExternalID string
	Phone      string
	Email      *string
	FirstName  *string
	LastName   *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
