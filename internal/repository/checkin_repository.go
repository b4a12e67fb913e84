package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/staffing-service/internal/domain"
)

// CheckinCodeRepository persists event check-in codes.
type CheckinCodeRepository interface {
	Create(ctx context.Context, code *domain.CheckinCode) error
	GetByCode(ctx context.Context, code string) (*domain.CheckinCode, error)
	GetActiveByEvent(ctx context.Context, eventID string) (*domain.CheckinCode, error)
	Revoke(ctx context.Context, id string) error
}

type checkinCodeRepository struct {
	pool *pgxpool.Pool
}

// NewCheckinCodeRepository constructs repository.
func NewCheckinCodeRepository(pool *pgxpool.Pool) CheckinCodeRepository {
	return &checkinCodeRepository{pool: pool}
}

const checkinColumns = "id, event_id, code, issued_by, expires_at, revoked_at, created_at"

func scanCheckinCode(row pgx.Row) (*domain.CheckinCode, error) {
	var code domain.CheckinCode
	if err := row.Scan(
		&code.ID,
		&code.EventID,
		&code.Code,
		&code.IssuedBy,
		&code.ExpiresAt,
		&code.RevokedAt,
		&code.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *checkinCodeRepository) Create(ctx context.Context, code *domain.CheckinCode) error {
	const query = `
        INSERT INTO checkin_codes (event_id, code, issued_by, expires_at)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		code.EventID,
		code.Code,
		code.IssuedBy,
		code.ExpiresAt,
	).Scan(&code.ID, &code.CreatedAt)
}

func (r *checkinCodeRepository) GetByCode(ctx context.Context, codeStr string) (*domain.CheckinCode, error) {
	query := "SELECT " + checkinColumns + " FROM checkin_codes WHERE code=$1 AND revoked_at IS NULL ORDER BY created_at DESC LIMIT 1"
	return scanCheckinCode(r.pool.QueryRow(ctx, query, codeStr))
}

func (r *checkinCodeRepository) GetActiveByEvent(ctx context.Context, eventID string) (*domain.CheckinCode, error) {
	query := "SELECT " + checkinColumns + ` FROM checkin_codes
        WHERE event_id=$1 AND revoked_at IS NULL AND expires_at > NOW()
        ORDER BY created_at DESC LIMIT 1`
	return scanCheckinCode(r.pool.QueryRow(ctx, query, eventID))
}

func (r *checkinCodeRepository) Revoke(ctx context.Context, id string) error {
	const query = `
        UPDATE checkin_codes SET revoked_at=NOW()
        WHERE id=$1 AND revoked_at IS NULL`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}
