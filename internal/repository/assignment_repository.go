package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/staffing-service/internal/domain"
)

// AssignmentRepository persists event team assignments.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.Assignment) error
	Update(ctx context.Context, assignment *domain.Assignment) error
	GetByID(ctx context.Context, id string) (*domain.Assignment, error)
	GetByEventAndVendor(ctx context.Context, eventID, vendorID string) (*domain.Assignment, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.Assignment, error)
	ListByVendor(ctx context.Context, vendorID string) ([]domain.Assignment, error)
}

type assignmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepository constructs repository.
func NewAssignmentRepository(pool *pgxpool.Pool) AssignmentRepository {
	return &assignmentRepository{pool: pool}
}

const assignmentColumns = "id, event_id, vendor_id, position_title, status, checked_in_at, checkin_timing, created_at, updated_at"

func scanAssignment(row pgx.Row) (*domain.Assignment, error) {
	var assignment domain.Assignment
	if err := row.Scan(
		&assignment.ID,
		&assignment.EventID,
		&assignment.VendorID,
		&assignment.Position,
		&assignment.Status,
		&assignment.CheckedInAt,
		&assignment.CheckinTiming,
		&assignment.CreatedAt,
		&assignment.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *domain.Assignment) error {
	const query = `
        INSERT INTO assignments (event_id, vendor_id, position_title, status)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		assignment.EventID,
		assignment.VendorID,
		assignment.Position,
		assignment.Status,
	).Scan(&assignment.ID, &assignment.CreatedAt, &assignment.UpdatedAt)
}

func (r *assignmentRepository) Update(ctx context.Context, assignment *domain.Assignment) error {
	const query = `
        UPDATE assignments
        SET position_title=$1, status=$2, checked_in_at=$3, checkin_timing=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		assignment.Position,
		assignment.Status,
		assignment.CheckedInAt,
		assignment.CheckinTiming,
		assignment.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *assignmentRepository) GetByID(ctx context.Context, id string) (*domain.Assignment, error) {
	query := "SELECT " + assignmentColumns + " FROM assignments WHERE id=$1"
	return scanAssignment(r.pool.QueryRow(ctx, query, id))
}

func (r *assignmentRepository) GetByEventAndVendor(ctx context.Context, eventID, vendorID string) (*domain.Assignment, error) {
	query := "SELECT " + assignmentColumns + " FROM assignments WHERE event_id=$1 AND vendor_id=$2"
	return scanAssignment(r.pool.QueryRow(ctx, query, eventID, vendorID))
}

func (r *assignmentRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.Assignment, error) {
	query := "SELECT " + assignmentColumns + " FROM assignments WHERE event_id=$1 ORDER BY created_at"
	return r.list(ctx, query, eventID)
}

func (r *assignmentRepository) ListByVendor(ctx context.Context, vendorID string) ([]domain.Assignment, error) {
	query := "SELECT " + assignmentColumns + " FROM assignments WHERE vendor_id=$1 ORDER BY created_at DESC"
	return r.list(ctx, query, vendorID)
}

func (r *assignmentRepository) list(ctx context.Context, query string, args ...any) ([]domain.Assignment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Assignment
	for rows.Next() {
		assignment, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *assignment)
	}
	return result, rows.Err()
}
