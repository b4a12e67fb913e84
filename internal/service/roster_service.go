package service

import (
	"context"
	"sort"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/repository"
	"github.com/spec-kit/staffing-service/pkg/geo"
	apperrors "github.com/spec-kit/staffing-service/pkg/util"
)

// VendorListing pairs a vendor with distance from a reference point.
type VendorListing struct {
	User       domain.User
	Profile    domain.Profile
	DistanceKm *float64
}

// RosterService manages regions, venues, events and the vendor directory.
type RosterService struct {
	regions  repository.RegionRepository
	venues   repository.VenueRepository
	events   repository.EventRepository
	users    repository.UserRepository
	profiles repository.ProfileRepository
}

// RosterDependencies encapsulates requirements for the roster service.
type RosterDependencies struct {
	RegionRepo  repository.RegionRepository
	VenueRepo   repository.VenueRepository
	EventRepo   repository.EventRepository
	UserRepo    repository.UserRepository
	ProfileRepo repository.ProfileRepository
}

// NewRosterService builds the service.
func NewRosterService(deps RosterDependencies) *RosterService {
	return &RosterService{
		regions:  deps.RegionRepo,
		venues:   deps.VenueRepo,
		events:   deps.EventRepo,
		users:    deps.UserRepo,
		profiles: deps.ProfileRepo,
	}
}

// CreateRegion registers a new region.
func (s *RosterService) CreateRegion(ctx context.Context, name, code string) (*domain.Region, error) {
	if name == "" || code == "" {
		return nil, apperrors.NewValidationError("name and code are required", nil)
	}
	region := &domain.Region{Name: name, Code: code, IsActive: true}
	if err := s.regions.Create(ctx, region); err != nil {
		return nil, apperrors.MapError(err)
	}
	return region, nil
}

// ListRegions returns regions, optionally including deactivated ones.
func (s *RosterService) ListRegions(ctx context.Context, includeInactive bool) ([]domain.Region, error) {
	regions, err := s.regions.List(ctx, includeInactive)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return regions, nil
}

// UpdateRegion renames or toggles a region.
func (s *RosterService) UpdateRegion(ctx context.Context, id, name, code string, isActive *bool) (*domain.Region, error) {
	region, err := s.regions.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if name != "" {
		region.Name = name
	}
	if code != "" {
		region.Code = code
	}
	if isActive != nil {
		region.IsActive = *isActive
	}
	if err := s.regions.Update(ctx, region); err != nil {
		return nil, apperrors.MapError(err)
	}
	return region, nil
}

// CreateVenue registers a venue within an existing region.
func (s *RosterService) CreateVenue(ctx context.Context, venue *domain.Venue) (*domain.Venue, error) {
	if venue.Name == "" || venue.RegionID == "" {
		return nil, apperrors.NewValidationError("name and region_id are required", nil)
	}
	if _, err := s.regions.GetByID(ctx, venue.RegionID); err != nil {
		return nil, apperrors.MapError(err)
	}
	venue.IsActive = true
	if err := s.venues.Create(ctx, venue); err != nil {
		return nil, apperrors.MapError(err)
	}
	return venue, nil
}

// UpdateVenue applies mutable venue fields.
func (s *RosterService) UpdateVenue(ctx context.Context, venue *domain.Venue) (*domain.Venue, error) {
	if venue.Name == "" || venue.RegionID == "" {
		return nil, apperrors.NewValidationError("name and region_id are required", nil)
	}
	if _, err := s.regions.GetByID(ctx, venue.RegionID); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.venues.Update(ctx, venue); err != nil {
		return nil, apperrors.MapError(err)
	}
	return venue, nil
}

// ListVenues returns venues, optionally scoped to a region.
func (s *RosterService) ListVenues(ctx context.Context, regionID *string, includeInactive bool) ([]domain.Venue, error) {
	venues, err := s.venues.List(ctx, regionID, includeInactive)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return venues, nil
}

// GetVenue returns one venue by id.
func (s *RosterService) GetVenue(ctx context.Context, id string) (*domain.Venue, error) {
	venue, err := s.venues.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return venue, nil
}

// CreateEvent schedules an event at a venue.
func (s *RosterService) CreateEvent(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	if event.Name == "" || event.VenueID == "" {
		return nil, apperrors.NewValidationError("name and venue_id are required", nil)
	}
	if !event.EndsAt.After(event.StartsAt) {
		return nil, apperrors.NewValidationError("ends_at must be after starts_at", nil)
	}
	if _, err := s.venues.GetByID(ctx, event.VenueID); err != nil {
		return nil, apperrors.MapError(err)
	}

	if event.Status == "" {
		event.Status = domain.EventStatusScheduled
	}
	if event.CheckinOpensMinutes <= 0 {
		event.CheckinOpensMinutes = 60
	}
	if event.LateGraceMinutes < 0 {
		event.LateGraceMinutes = 0
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, apperrors.MapError(err)
	}
	return event, nil
}

// UpdateEvent applies mutable fields and transitions status.
func (s *RosterService) UpdateEvent(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	if !event.EndsAt.After(event.StartsAt) {
		return nil, apperrors.NewValidationError("ends_at must be after starts_at", nil)
	}
	if err := s.events.Update(ctx, event); err != nil {
		return nil, apperrors.MapError(err)
	}
	return event, nil
}

// GetEvent returns one event by id.
func (s *RosterService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return event, nil
}

// ListEvents returns events matching the filter.
func (s *RosterService) ListEvents(ctx context.Context, filter repository.EventFilter) ([]domain.Event, error) {
	result, err := s.events.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// CancelEvent marks the event canceled.
func (s *RosterService) CancelEvent(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if event.Status == domain.EventStatusCompleted {
		return nil, apperrors.NewConflict("completed events cannot be canceled", nil)
	}
	event.Status = domain.EventStatusCanceled
	if err := s.events.Update(ctx, event); err != nil {
		return nil, apperrors.MapError(err)
	}
	return event, nil
}

// NearbyVendors lists active vendors in the venue's region, ordered by
// distance from the venue. Vendors without coordinates sort last.
func (s *RosterService) NearbyVendors(ctx context.Context, venueID string) ([]VendorListing, error) {
	venue, err := s.venues.GetByID(ctx, venueID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.vendorsNear(ctx, venue.RegionID, venue.Latitude, venue.Longitude)
}

// VendorsInRegion lists active vendors in a region ordered by name with no
// distance annotation.
func (s *RosterService) VendorsInRegion(ctx context.Context, regionID string) ([]VendorListing, error) {
	profiles, err := s.profiles.ListByRegion(ctx, regionID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	listings, err := s.resolveVendors(ctx, profiles)
	if err != nil {
		return nil, err
	}
	sort.Slice(listings, func(i, j int) bool {
		return listings[i].User.Name < listings[j].User.Name
	})
	return listings, nil
}

func (s *RosterService) vendorsNear(ctx context.Context, regionID string, lat, lng float64) ([]VendorListing, error) {
	profiles, err := s.profiles.ListByRegion(ctx, regionID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	listings, err := s.resolveVendors(ctx, profiles)
	if err != nil {
		return nil, err
	}

	for i := range listings {
		if listings[i].Profile.HasCoordinates() {
			d := geo.HaversineKm(lat, lng, *listings[i].Profile.Latitude, *listings[i].Profile.Longitude)
			listings[i].DistanceKm = &d
		}
	}
	sort.SliceStable(listings, func(i, j int) bool {
		di, dj := listings[i].DistanceKm, listings[j].DistanceKm
		if di == nil {
			return false
		}
		if dj == nil {
			return true
		}
		return *di < *dj
	})
	return listings, nil
}

func (s *RosterService) resolveVendors(ctx context.Context, profiles []domain.Profile) ([]VendorListing, error) {
	listings := make([]VendorListing, 0, len(profiles))
	for _, profile := range profiles {
		user, err := s.users.GetByID(ctx, profile.UserID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if user.Role != domain.RoleVendor || user.Status != domain.UserStatusActive {
			continue
		}
		listings = append(listings, VendorListing{User: *user, Profile: profile})
	}
	return listings, nil
}
