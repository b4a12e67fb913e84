package domain

import "time"

// Region groups venues for vendor filtering.
type Region struct {
	ID        string
	Name      string
	Code      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Venue is an event location within a region.
type Venue struct {
	ID        string
	RegionID  string
	Name      string
	Address   string
	Latitude  float64
	Longitude float64
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
