package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/staffing-service/internal/domain"
)

// RegionRepository persists regions.
type RegionRepository interface {
	Create(ctx context.Context, region *domain.Region) error
	Update(ctx context.Context, region *domain.Region) error
	GetByID(ctx context.Context, id string) (*domain.Region, error)
	List(ctx context.Context, includeInactive bool) ([]domain.Region, error)
}

type regionRepository struct {
	pool *pgxpool.Pool
}

// NewRegionRepository constructs repository.
func NewRegionRepository(pool *pgxpool.Pool) RegionRepository {
	return &regionRepository{pool: pool}
}

func (r *regionRepository) Create(ctx context.Context, region *domain.Region) error {
	const query = `
        INSERT INTO regions (name, code, active_flag)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		region.Name,
		region.Code,
		region.IsActive,
	).Scan(&region.ID, &region.CreatedAt, &region.UpdatedAt)
}

func (r *regionRepository) Update(ctx context.Context, region *domain.Region) error {
	const query = `
        UPDATE regions SET name=$1, code=$2, active_flag=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		region.Name,
		region.Code,
		region.IsActive,
		region.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *regionRepository) GetByID(ctx context.Context, id string) (*domain.Region, error) {
	const query = `
        SELECT id, name, code, active_flag, created_at, updated_at
        FROM regions WHERE id=$1`
	var region domain.Region
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&region.ID,
		&region.Name,
		&region.Code,
		&region.IsActive,
		&region.CreatedAt,
		&region.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &region, nil
}

func (r *regionRepository) List(ctx context.Context, includeInactive bool) ([]domain.Region, error) {
	query := `
        SELECT id, name, code, active_flag, created_at, updated_at
        FROM regions`
	if !includeInactive {
		query += " WHERE active_flag=TRUE"
	}
	query += " ORDER BY name"

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Region
	for rows.Next() {
		var region domain.Region
		if err := rows.Scan(
			&region.ID,
			&region.Name,
			&region.Code,
			&region.IsActive,
			&region.CreatedAt,
			&region.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, region)
	}
	return result, rows.Err()
}
