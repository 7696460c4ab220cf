package dto

import "time"

// CreateOperatorRequest payload.
type CreateOperatorRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Active  *bool  `json:"is_active"`
	MaxLoad *int   `json:"max_load"`
}

// UpdateOperatorRequest carries partial updates.
type UpdateOperatorRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Active  *bool   `json:"is_active"`
	MaxLoad *int    `json:"max_load"`
}

// OperatorResponse describes one operator, including derived current load.
type OperatorResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Active      bool      `json:"is_active"`
	MaxLoad     int       `json:"max_load"`
	CurrentLoad int       `json:"current_load"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpsertWeightRequest payload.
type UpsertWeightRequest struct {
	SourceID string `json:"source_id"`
	Weight   int    `json:"weight"`
}

// WeightResponse describes one (operator, source) weight row.
type WeightResponse struct {
	ID         string    `json:"id"`
	OperatorID string    `json:"operator_id"`
	SourceID   string    `json:"source_id"`
	Weight     int       `json:"weight"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LoadInfoResponse reports an operator's workload.
type LoadInfoResponse struct {
	OperatorID   string `json:"operator_id"`
	OperatorName string `json:"operator_name"`
	CurrentLoad  int    `json:"current_load"`
	MaxLoad      int    `json:"max_load"`
	IsAvailable  bool   `json:"is_available"`
}
