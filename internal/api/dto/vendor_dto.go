package dto

import (
	"time"

	"github.com/spec-kit/staffing-service/internal/domain"
)

// VendorCreateRequest payload.
type VendorCreateRequest struct {
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role,omitempty"`
}

// VendorCreateResponse returns the account plus the one-time temp password.
type VendorCreateResponse struct {
	User         UserResponse `json:"user"`
	TempPassword string       `json:"temp_password"`
}

// ProfileUpdateRequest payload.
type ProfileUpdateRequest struct {
	Phone     string     `json:"phone,omitempty"`
	Address   string     `json:"address,omitempty"`
	RegionID  *string    `json:"region_id,omitempty"`
	Latitude  *float64   `json:"latitude,omitempty"`
	Longitude *float64   `json:"longitude,omitempty"`
	HireDate  *time.Time `json:"hire_date,omitempty"`
}

// ProfileResponse is the public profile view.
type ProfileResponse struct {
	UserID          string                       `json:"user_id"`
	Phone           string                       `json:"phone"`
	Address         string                       `json:"address"`
	RegionID        *string                      `json:"region_id,omitempty"`
	Latitude        *float64                     `json:"latitude,omitempty"`
	Longitude       *float64                     `json:"longitude,omitempty"`
	PhotoKey        *string                      `json:"photo_key,omitempty"`
	HireDate        *time.Time                   `json:"hire_date,omitempty"`
	BackgroundCheck domain.BackgroundCheckStatus `json:"background_check"`
}

// BackgroundCheckRequest payload.
type BackgroundCheckRequest struct {
	Status domain.BackgroundCheckStatus `json:"status"`
}

// VendorListingResponse is a directory entry with optional distance.
type VendorListingResponse struct {
	User       UserResponse    `json:"user"`
	Profile    ProfileResponse `json:"profile"`
	DistanceKm *float64        `json:"distance_km,omitempty"`
}
