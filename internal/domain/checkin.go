package domain

import "time"

// CheckinCode is a short code vendors redeem to check in to an event.
type CheckinCode struct {
	ID        string
	EventID   string
	Code      string
	IssuedBy  string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// Usable reports whether the code can still be redeemed at the given time.
func (c *CheckinCode) Usable(now time.Time) bool {
	if c == nil || c.RevokedAt != nil {
		return false
	}
	return now.Before(c.ExpiresAt)
}
