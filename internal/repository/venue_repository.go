package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/staffing-service/internal/domain"
)

// VenueRepository persists venues.
type VenueRepository interface {
	Create(ctx context.Context, venue *domain.Venue) error
	Update(ctx context.Context, venue *domain.Venue) error
	GetByID(ctx context.Context, id string) (*domain.Venue, error)
	List(ctx context.Context, regionID *string, includeInactive bool) ([]domain.Venue, error)
}

type venueRepository struct {
	pool *pgxpool.Pool
}

// NewVenueRepository constructs repository.
func NewVenueRepository(pool *pgxpool.Pool) VenueRepository {
	return &venueRepository{pool: pool}
}

const venueColumns = "id, region_id, name, address, latitude, longitude, active_flag, created_at, updated_at"

func scanVenue(row pgx.Row) (*domain.Venue, error) {
	var venue domain.Venue
	if err := row.Scan(
		&venue.ID,
		&venue.RegionID,
		&venue.Name,
		&venue.Address,
		&venue.Latitude,
		&venue.Longitude,
		&venue.IsActive,
		&venue.CreatedAt,
		&venue.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &venue, nil
}

func (r *venueRepository) Create(ctx context.Context, venue *domain.Venue) error {
	const query = `
        INSERT INTO venues (region_id, name, address, latitude, longitude, active_flag)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		venue.RegionID,
		venue.Name,
		venue.Address,
		venue.Latitude,
		venue.Longitude,
		venue.IsActive,
	).Scan(&venue.ID, &venue.CreatedAt, &venue.UpdatedAt)
}

func (r *venueRepository) Update(ctx context.Context, venue *domain.Venue) error {
	const query = `
        UPDATE venues
        SET region_id=$1, name=$2, address=$3, latitude=$4, longitude=$5, active_flag=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		venue.RegionID,
		venue.Name,
		venue.Address,
		venue.Latitude,
		venue.Longitude,
		venue.IsActive,
		venue.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *venueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	query := "SELECT " + venueColumns + " FROM venues WHERE id=$1"
	return scanVenue(r.pool.QueryRow(ctx, query, id))
}

func (r *venueRepository) List(ctx context.Context, regionID *string, includeInactive bool) ([]domain.Venue, error) {
	query := "SELECT " + venueColumns + " FROM venues"
	args := []any{}
	clauses := []string{}
	if regionID != nil {
		args = append(args, *regionID)
		clauses = append(clauses, "region_id=$1")
	}
	if !includeInactive {
		clauses = append(clauses, "active_flag=TRUE")
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY name"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Venue
	for rows.Next() {
		venue, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *venue)
	}
	return result, rows.Err()
}
