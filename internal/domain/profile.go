package domain

import "time"

// BackgroundCheckStatus tracks the external screening outcome.
type BackgroundCheckStatus string

const (
	BackgroundCheckPending BackgroundCheckStatus = "PENDING"
	BackgroundCheckClear   BackgroundCheckStatus = "CLEAR"
	BackgroundCheckFlagged BackgroundCheckStatus = "FLAGGED"
)

// Profile holds vendor onboarding and contact details.
type Profile struct {
	ID              string
	UserID          string
	Phone           string
	Address         string
	RegionID        *string
	Latitude        *float64
	Longitude       *float64
	PhotoKey        *string
	HireDate        *time.Time
	BackgroundCheck BackgroundCheckStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasCoordinates reports whether the profile carries a usable location.
func (p *Profile) HasCoordinates() bool {
	return p != nil && p.Latitude != nil && p.Longitude != nil
}
