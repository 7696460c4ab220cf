package domain

import "time"

// Operator models a human agent who can receive contacts, bounded by a
// maximum concurrent load.
type Operator struct {
	ID        string
	Name      string
	Email     string
	Active    bool
	MaxLoad   int
	CreatedAt time.Time
	UpdatedAt time.Time
}
