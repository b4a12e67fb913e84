package domain

import "time"

// EventStatus represents lifecycle states for an event.
type EventStatus string

const (
	EventStatusScheduled EventStatus = "SCHEDULED"
	EventStatusActive    EventStatus = "ACTIVE"
	EventStatusCompleted EventStatus = "COMPLETED"
	EventStatusCanceled  EventStatus = "CANCELED"
)

// Event is a staffed engagement at a venue.
type Event struct {
	ID                  string
	VenueID             string
	Name                string
	StartsAt            time.Time
	EndsAt              time.Time
	CheckinOpensMinutes int
	LateGraceMinutes    int
	StaffTarget         int
	Status              EventStatus
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// CheckinOpensAt returns the moment the check-in window opens.
func (e *Event) CheckinOpensAt() time.Time {
	return e.StartsAt.Add(-time.Duration(e.CheckinOpensMinutes) * time.Minute)
}

// LateAfter returns the moment past which a check-in counts as late.
func (e *Event) LateAfter() time.Time {
	return e.StartsAt.Add(time.Duration(e.LateGraceMinutes) * time.Minute)
}
