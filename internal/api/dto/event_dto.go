package dto

import (
	"time"

	"github.com/spec-kit/staffing-service/internal/domain"
)

// RegionRequest payload. IsActive is only honored on update.
type RegionRequest struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// RegionResponse is the public region view.
type RegionResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	IsActive bool   `json:"is_active"`
}

// VenueRequest payload.
type VenueRequest struct {
	RegionID  string  `json:"region_id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// VenueResponse is the public venue view.
type VenueResponse struct {
	ID        string  `json:"id"`
	RegionID  string  `json:"region_id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	IsActive  bool    `json:"is_active"`
}

// EventRequest payload.
type EventRequest struct {
	VenueID             string              `json:"venue_id"`
	Name                string              `json:"name"`
	StartsAt            time.Time           `json:"starts_at"`
	EndsAt              time.Time           `json:"ends_at"`
	CheckinOpensMinutes int                 `json:"checkin_opens_minutes,omitempty"`
	LateGraceMinutes    int                 `json:"late_grace_minutes,omitempty"`
	StaffTarget         int                 `json:"staff_target,omitempty"`
	Status              *domain.EventStatus `json:"status,omitempty"`
}

// EventResponse is the public event view.
type EventResponse struct {
	ID                  string             `json:"id"`
	VenueID             string             `json:"venue_id"`
	Name                string             `json:"name"`
	StartsAt            time.Time          `json:"starts_at"`
	EndsAt              time.Time          `json:"ends_at"`
	CheckinOpensMinutes int                `json:"checkin_opens_minutes"`
	LateGraceMinutes    int                `json:"late_grace_minutes"`
	StaffTarget         int                `json:"staff_target"`
	Status              domain.EventStatus `json:"status"`
}

// AssignRequest payload.
type AssignRequest struct {
	VendorID string `json:"vendor_id"`
	Position string `json:"position"`
}

// AssignmentResponse is the public assignment view.
type AssignmentResponse struct {
	ID            string                  `json:"id"`
	EventID       string                  `json:"event_id"`
	VendorID      string                  `json:"vendor_id"`
	Position      string                  `json:"position"`
	Status        domain.AssignmentStatus `json:"status"`
	CheckedInAt   *time.Time              `json:"checked_in_at,omitempty"`
	CheckinTiming *domain.CheckinTiming   `json:"checkin_timing,omitempty"`
}

// CheckinCodeResponse is the code handed to event managers.
type CheckinCodeResponse struct {
	EventID   string    `json:"event_id"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CheckinRedeemRequest payload.
type CheckinRedeemRequest struct {
	Code string `json:"code"`
}

// CheckinRedeemResponse reports a completed check-in.
type CheckinRedeemResponse struct {
	Assignment AssignmentResponse   `json:"assignment"`
	EventName  string               `json:"event_name"`
	Timing     domain.CheckinTiming `json:"timing"`
}
