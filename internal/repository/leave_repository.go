package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/staffing-service/internal/domain"
)

// LeaveRepository persists sick leave usage.
type LeaveRepository interface {
	Create(ctx context.Context, entry *domain.LeaveEntry) error
	ListByVendor(ctx context.Context, vendorID string) ([]domain.LeaveEntry, error)
	TotalHours(ctx context.Context, vendorID string) (float64, error)
}

type leaveRepository struct {
	pool *pgxpool.Pool
}

// NewLeaveRepository constructs repository.
func NewLeaveRepository(pool *pgxpool.Pool) LeaveRepository {
	return &leaveRepository{pool: pool}
}

func (r *leaveRepository) Create(ctx context.Context, entry *domain.LeaveEntry) error {
	const query = `
        INSERT INTO leave_entries (vendor_id, taken_on, hours, note)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		entry.VendorID,
		entry.Date,
		entry.Hours,
		entry.Note,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *leaveRepository) ListByVendor(ctx context.Context, vendorID string) ([]domain.LeaveEntry, error) {
	const query = `
        SELECT id, vendor_id, taken_on, hours, note, created_at
        FROM leave_entries WHERE vendor_id=$1 ORDER BY taken_on DESC`
	rows, err := r.pool.Query(ctx, query, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.LeaveEntry
	for rows.Next() {
		var entry domain.LeaveEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.VendorID,
			&entry.Date,
			&entry.Hours,
			&entry.Note,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (r *leaveRepository) TotalHours(ctx context.Context, vendorID string) (float64, error) {
	const query = `
        SELECT COALESCE(SUM(hours), 0) FROM leave_entries WHERE vendor_id=$1`
	var total float64
	if err := r.pool.QueryRow(ctx, query, vendorID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
