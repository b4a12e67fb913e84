package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/staffing-service/internal/domain"
)

type fakeVenueRepo struct {
	mu     sync.Mutex
	venues map[string]*domain.Venue
}

func newFakeVenueRepo() *fakeVenueRepo {
	return &fakeVenueRepo{venues: map[string]*domain.Venue{}}
}

func (r *fakeVenueRepo) Create(_ context.Context, venue *domain.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	venue.ID = uuid.NewString()
	clone := *venue
	r.venues[venue.ID] = &clone
	return nil
}

func (r *fakeVenueRepo) Update(_ context.Context, venue *domain.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.venues[venue.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *venue
	r.venues[venue.ID] = &clone
	return nil
}

func (r *fakeVenueRepo) GetByID(_ context.Context, id string) (*domain.Venue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	venue, ok := r.venues[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *venue
	return &clone, nil
}

func (r *fakeVenueRepo) List(_ context.Context, regionID *string, _ bool) ([]domain.Venue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Venue
	for _, venue := range r.venues {
		if regionID != nil && venue.RegionID != *regionID {
			continue
		}
		result = append(result, *venue)
	}
	return result, nil
}

func seedVendorAt(t *testing.T, users *fakeUserRepo, profiles *fakeProfileRepo, name, regionID string, lat, lng *float64) *domain.User {
	t.Helper()
	user := &domain.User{
		Name:   name,
		Email:  name + "@example.com",
		Role:   domain.RoleVendor,
		Status: domain.UserStatusActive,
	}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if err := profiles.Create(context.Background(), &domain.Profile{
		UserID:    user.ID,
		RegionID:  &regionID,
		Latitude:  lat,
		Longitude: lng,
	}); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return user
}

func f64(v float64) *float64 { return &v }

func TestNearbyVendorsOrderedByDistance(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	profiles := newFakeProfileRepo()
	venues := newFakeVenueRepo()
	svc := NewRosterService(RosterDependencies{
		VenueRepo:   venues,
		UserRepo:    users,
		ProfileRepo: profiles,
	})

	venue := &domain.Venue{
		Name:      "Grand Hall",
		RegionID:  "region-1",
		Latitude:  40.7128,
		Longitude: -74.0060,
	}
	if err := venues.Create(context.Background(), venue); err != nil {
		t.Fatalf("seed venue: %v", err)
	}

	// Distances from the venue: near < mid, no coordinates sorts last.
	seedVendorAt(t, users, profiles, "mid", "region-1", f64(40.9), f64(-74.3))
	seedVendorAt(t, users, profiles, "near", "region-1", f64(40.72), f64(-74.01))
	seedVendorAt(t, users, profiles, "nowhere", "region-1", nil, nil)

	listings, err := svc.NearbyVendors(context.Background(), venue.ID)
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if len(listings) != 3 {
		t.Fatalf("listings = %d, want 3", len(listings))
	}
	if listings[0].User.Name != "near" || listings[1].User.Name != "mid" {
		t.Fatalf("order = [%s, %s], want [near, mid]", listings[0].User.Name, listings[1].User.Name)
	}
	if listings[2].User.Name != "nowhere" {
		t.Fatalf("vendor without coordinates should sort last, got %s", listings[2].User.Name)
	}
	if listings[2].DistanceKm != nil {
		t.Fatal("vendor without coordinates should carry no distance")
	}
	if listings[0].DistanceKm == nil || listings[1].DistanceKm == nil {
		t.Fatal("located vendors should carry a distance")
	}
	if *listings[0].DistanceKm > *listings[1].DistanceKm {
		t.Fatalf("distances out of order: %.2f > %.2f", *listings[0].DistanceKm, *listings[1].DistanceKm)
	}
}

func TestNearbyVendorsSkipsInactiveAccounts(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	profiles := newFakeProfileRepo()
	venues := newFakeVenueRepo()
	svc := NewRosterService(RosterDependencies{
		VenueRepo:   venues,
		UserRepo:    users,
		ProfileRepo: profiles,
	})

	venue := &domain.Venue{Name: "Hall", RegionID: "region-1", Latitude: 40.7, Longitude: -74.0}
	if err := venues.Create(context.Background(), venue); err != nil {
		t.Fatalf("seed venue: %v", err)
	}

	active := seedVendorAt(t, users, profiles, "active", "region-1", f64(40.71), f64(-74.01))
	suspended := seedVendorAt(t, users, profiles, "suspended", "region-1", f64(40.72), f64(-74.02))
	suspended.Status = domain.UserStatusSuspended
	if err := users.Update(context.Background(), suspended); err != nil {
		t.Fatalf("suspend: %v", err)
	}

	listings, err := svc.NearbyVendors(context.Background(), venue.ID)
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if len(listings) != 1 {
		t.Fatalf("listings = %d, want 1", len(listings))
	}
	if listings[0].User.ID != active.ID {
		t.Fatal("only the active vendor should be listed")
	}
}
