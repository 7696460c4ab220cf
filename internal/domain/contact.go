package domain

import "time"

// ContactStatus enumerates lifecycle states for contacts.
type ContactStatus string

const (
	ContactStatusNew        ContactStatus = "new"
	ContactStatusInProgress ContactStatus = "in_progress"
	ContactStatusClosed     ContactStatus = "closed"
)

// Contact records one inbound event from a lead. OperatorID is nil when no
// operator qualified at distribution time. OperatorID and AssignedAt are set
// together or not at all.
type Contact struct {
	ID         string
	LeadID     string
	SourceID   string
	OperatorID *string
	Message    string
	Status     ContactStatus
	AssignedAt *time.Time
	ClosedAt   *time.Time
	CreatedAt  time.Time
}

// Assigned reports whether an operator was selected for this contact.
func (c *Contact) Assigned() bool {
	return c.OperatorID != nil
}
