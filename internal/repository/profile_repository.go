package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/staffing-service/internal/domain"
)

// ProfileRepository persists vendor onboarding profiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	Update(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	ListByRegion(ctx context.Context, regionID string) ([]domain.Profile, error)
}

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository returns a Postgres-backed implementation.
func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepository{pool: pool}
}

const profileColumns = "id, user_id, phone, address, region_id, latitude, longitude, photo_key, hire_date, background_check, created_at, updated_at"

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var profile domain.Profile
	if err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Phone,
		&profile.Address,
		&profile.RegionID,
		&profile.Latitude,
		&profile.Longitude,
		&profile.PhotoKey,
		&profile.HireDate,
		&profile.BackgroundCheck,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	const query = `
        INSERT INTO profiles (user_id, phone, address, region_id, latitude, longitude, photo_key, hire_date, background_check)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		profile.UserID,
		profile.Phone,
		profile.Address,
		profile.RegionID,
		profile.Latitude,
		profile.Longitude,
		profile.PhotoKey,
		profile.HireDate,
		profile.BackgroundCheck,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	const query = `
        UPDATE profiles
        SET phone=$1, address=$2, region_id=$3, latitude=$4, longitude=$5, photo_key=$6, hire_date=$7, background_check=$8, updated_at=NOW()
        WHERE user_id=$9`

	cmd, err := r.pool.Exec(ctx, query,
		profile.Phone,
		profile.Address,
		profile.RegionID,
		profile.Latitude,
		profile.Longitude,
		profile.PhotoKey,
		profile.HireDate,
		profile.BackgroundCheck,
		profile.UserID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := "SELECT " + profileColumns + " FROM profiles WHERE user_id=$1"
	return scanProfile(r.pool.QueryRow(ctx, query, userID))
}

func (r *profileRepository) ListByRegion(ctx context.Context, regionID string) ([]domain.Profile, error) {
	query := "SELECT " + profileColumns + " FROM profiles WHERE region_id=$1"
	rows, err := r.pool.Query(ctx, query, regionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *profile)
	}
	return result, rows.Err()
}
