package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/staffing-service/internal/domain"
)

// PaymentRepository persists vendor payments and adjustments.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.VendorPayment) error
	Update(ctx context.Context, payment *domain.VendorPayment) error
	GetByID(ctx context.Context, id string) (*domain.VendorPayment, error)
	CreateAdjustment(ctx context.Context, adjustment *domain.PaymentAdjustment) error
	ListAdjustments(ctx context.Context, paymentID string) ([]domain.PaymentAdjustment, error)
	ListRows(ctx context.Context, filter PaymentRowFilter) ([]domain.PaymentRow, error)
}

// PaymentRowFilter scopes the flat rows feeding the aggregation view.
type PaymentRowFilter struct {
	VendorID *string
	VenueID  *string
	Status   *domain.PaymentStatus
}

type paymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository constructs repository.
func NewPaymentRepository(pool *pgxpool.Pool) PaymentRepository {
	return &paymentRepository{pool: pool}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.VendorPayment) error {
	const query = `
        INSERT INTO vendor_payments (vendor_id, event_id, base_amount, status)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		payment.VendorID,
		payment.EventID,
		payment.BaseAmount,
		payment.Status,
	).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
}

func (r *paymentRepository) Update(ctx context.Context, payment *domain.VendorPayment) error {
	const query = `
        UPDATE vendor_payments
        SET base_amount=$1, status=$2, updated_at=NOW()
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query,
		payment.BaseAmount,
		payment.Status,
		payment.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domain.VendorPayment, error) {
	const query = `
        SELECT id, vendor_id, event_id, base_amount, status, created_at, updated_at
        FROM vendor_payments WHERE id=$1`
	var payment domain.VendorPayment
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&payment.ID,
		&payment.VendorID,
		&payment.EventID,
		&payment.BaseAmount,
		&payment.Status,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) CreateAdjustment(ctx context.Context, adjustment *domain.PaymentAdjustment) error {
	const query = `
        INSERT INTO payment_adjustments (payment_id, amount, reason, created_by)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		adjustment.PaymentID,
		adjustment.Amount,
		adjustment.Reason,
		adjustment.CreatedBy,
	).Scan(&adjustment.ID, &adjustment.CreatedAt)
}

func (r *paymentRepository) ListAdjustments(ctx context.Context, paymentID string) ([]domain.PaymentAdjustment, error) {
	const query = `
        SELECT id, payment_id, amount, reason, created_by, created_at
        FROM payment_adjustments WHERE payment_id=$1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, paymentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PaymentAdjustment
	for rows.Next() {
		var adjustment domain.PaymentAdjustment
		if err := rows.Scan(
			&adjustment.ID,
			&adjustment.PaymentID,
			&adjustment.Amount,
			&adjustment.Reason,
			&adjustment.CreatedBy,
			&adjustment.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, adjustment)
	}
	return result, rows.Err()
}

func (r *paymentRepository) ListRows(ctx context.Context, filter PaymentRowFilter) ([]domain.PaymentRow, error) {
	query := `
        SELECT p.id, p.vendor_id, u.name, p.event_id, e.name, v.id, v.name,
               p.base_amount, COALESCE(SUM(a.amount), 0), p.status
        FROM vendor_payments p
        JOIN users u ON u.id = p.vendor_id
        JOIN events e ON e.id = p.event_id
        JOIN venues v ON v.id = e.venue_id
        LEFT JOIN payment_adjustments a ON a.payment_id = p.id`
	args := []any{}
	clauses := []string{}

	if filter.VendorID != nil {
		args = append(args, *filter.VendorID)
		clauses = append(clauses, fmt.Sprintf("p.vendor_id=$%d", len(args)))
	}
	if filter.VenueID != nil {
		args = append(args, *filter.VenueID)
		clauses = append(clauses, fmt.Sprintf("v.id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("p.status=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += `
        GROUP BY p.id, p.vendor_id, u.name, p.event_id, e.name, v.id, v.name, p.base_amount, p.status
        ORDER BY v.name, e.name, u.name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PaymentRow
	for rows.Next() {
		var row domain.PaymentRow
		if err := rows.Scan(
			&row.PaymentID,
			&row.VendorID,
			&row.VendorName,
			&row.EventID,
			&row.EventName,
			&row.VenueID,
			&row.VenueName,
			&row.BaseAmount,
			&row.Adjustment,
			&row.Status,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
