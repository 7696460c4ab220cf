package dto

import "time"

// CreateLeadRequest payload.
type CreateLeadRequest struct {
	ExternalID string  `json:"external_id"`
	Phone      string  `json:"phone"`
	Email      *string `json:"email"`
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
}

// LeadResponse describes one lead.
type LeadResponse struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"external_id"`
	Phone      string    `json:"phone"`
	Email      *string   `json:"email"`
	FirstName  *string   `json:"first_name"`
	LastName   *string   `json:"last_name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
