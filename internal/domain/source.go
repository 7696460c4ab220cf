package domain

import "time"

// Source is a channel contacts arrive from (a bot, a campaign). Code is the
// routing key inbound events carry.
type Source struct {
	ID        string
	Name      string
	Code      string
	CreatedAt time.Time
}
