package domain

import "time"

// OperatorSourceWeight sets an operator's relative selection weight for one
// source. At most one row exists per (operator, source) pair; weight zero
// keeps the operator eligible but never favored while any positive weight
// exists.
type OperatorSourceWeight struct {
	ID         string
	OperatorID string
	SourceID   string
	Weight     int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
