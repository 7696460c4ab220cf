package dto

import (
	"time"

	"github.com/spec-kit/lead-distribution/internal/domain"
)

// CreateContactRequest is the inbound contact event payload. The lead is
// identified by its external id and created on first contact; the source by
// its routing code.
type CreateContactRequest struct {
	ExternalLeadID string  `json:"external_lead_id"`
	Phone          string  `json:"phone"`
	Email          *string `json:"email"`
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	SourceCode     string  `json:"source_code"`
	Message        string  `json:"message"`
}

// ContactResponse describes one contact.
type ContactResponse struct {
	ID         string               `json:"id"`
	LeadID     string               `json:"lead_id"`
	SourceID   string               `json:"source_id"`
	OperatorID *string              `json:"operator_id"`
	Message    string               `json:"message"`
	Status     domain.ContactStatus `json:"status"`
	AssignedAt *time.Time           `json:"assigned_at"`
	ClosedAt   *time.Time           `json:"closed_at"`
	CreatedAt  time.Time            `json:"created_at"`
}

// DistributionResponse is returned from contact intake: the persisted contact
// plus the collaborators involved. Operator is null when nobody qualified.
type DistributionResponse struct {
	Contact  ContactResponse   `json:"contact"`
	Operator *OperatorResponse `json:"operator"`
	Lead     LeadResponse      `json:"lead"`
	Source   SourceResponse    `json:"source"`
}

// DistributionStatRow is one aggregated stats entry.
type DistributionStatRow struct {
	OperatorID    string `json:"operator_id"`
	OperatorName  string `json:"operator_name"`
	SourceID      string `json:"source_id"`
	SourceName    string `json:"source_name"`
	Weight        int    `json:"weight"`
	ContactCount  int    `json:"contact_count"`
	AssignedCount int    `json:"assigned_count"`
}

// DistributionStatsResponse wraps the stats listing.
type DistributionStatsResponse struct {
	Stats []DistributionStatRow `json:"stats"`
}

// LeadContactsResponse lists a lead with all of its contacts.
type LeadContactsResponse struct {
	Lead     LeadResponse      `json:"lead"`
	Contacts []ContactResponse `json:"contacts"`
}
