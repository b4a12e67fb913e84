package domain

import "time"

// AssignmentStatus represents lifecycle states for a team assignment.
type AssignmentStatus string

const (
	AssignmentStatusAssigned  AssignmentStatus = "ASSIGNED"
	AssignmentStatusConfirmed AssignmentStatus = "CONFIRMED"
	AssignmentStatusDeclined  AssignmentStatus = "DECLINED"
	AssignmentStatusCheckedIn AssignmentStatus = "CHECKED_IN"
	AssignmentStatusNoShow    AssignmentStatus = "NO_SHOW"
)

// CheckinTiming classifies when a vendor checked in relative to the event start.
type CheckinTiming string

const (
	CheckinOnTime CheckinTiming = "ON_TIME"
	CheckinLate   CheckinTiming = "LATE"
)

// Assignment places a vendor on an event team.
type Assignment struct {
	ID            string
	EventID       string
	VendorID      string
	Position      string
	Status        AssignmentStatus
	CheckedInAt   *time.Time
	CheckinTiming *CheckinTiming
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
