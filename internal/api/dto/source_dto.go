package dto

import "time"

// CreateSourceRequest payload.
type CreateSourceRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// SourceResponse describes one source.
type SourceResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

// SourceOperatorEntry is one roster entry for a source.
type SourceOperatorEntry struct {
	OperatorID   string `json:"operator_id"`
	OperatorName string `json:"operator_name"`
	Weight       int    `json:"weight"`
	Active       bool   `json:"is_active"`
}

// SourceOperatorsResponse lists a source's weighted roster.
type SourceOperatorsResponse struct {
	SourceID   string                `json:"source_id"`
	SourceName string                `json:"source_name"`
	Operators  []SourceOperatorEntry `json:"operators"`
}
