package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/staffing-service/internal/domain"
)

// MFARepository persists per-user second-factor state.
type MFARepository interface {
	Create(ctx context.Context, settings *domain.MFASettings) error
	Update(ctx context.Context, settings *domain.MFASettings) error
	GetByUserID(ctx context.Context, userID string) (*domain.MFASettings, error)
	Delete(ctx context.Context, userID string) error
}

type mfaRepository struct {
	pool *pgxpool.Pool
}

// NewMFARepository constructs repository.
func NewMFARepository(pool *pgxpool.Pool) MFARepository {
	return &mfaRepository{pool: pool}
}

func (r *mfaRepository) Create(ctx context.Context, settings *domain.MFASettings) error {
	const query = `
        INSERT INTO mfa_settings (user_id, totp_secret, totp_enabled, backup_codes)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		settings.UserID,
		settings.TOTPSecret,
		settings.TOTPEnabled,
		settings.BackupCodes,
	).Scan(&settings.ID, &settings.CreatedAt, &settings.UpdatedAt)
}

func (r *mfaRepository) Update(ctx context.Context, settings *domain.MFASettings) error {
	const query = `
        UPDATE mfa_settings
        SET totp_secret=$1, totp_enabled=$2, backup_codes=$3, updated_at=NOW()
        WHERE user_id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		settings.TOTPSecret,
		settings.TOTPEnabled,
		settings.BackupCodes,
		settings.UserID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *mfaRepository) GetByUserID(ctx context.Context, userID string) (*domain.MFASettings, error) {
	const query = `
        SELECT id, user_id, totp_secret, totp_enabled, backup_codes, created_at, updated_at
        FROM mfa_settings WHERE user_id=$1`
	var settings domain.MFASettings
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&settings.ID,
		&settings.UserID,
		&settings.TOTPSecret,
		&settings.TOTPEnabled,
		&settings.BackupCodes,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *mfaRepository) Delete(ctx context.Context, userID string) error {
	const query = `DELETE FROM mfa_settings WHERE user_id=$1`
	_, err := r.pool.Exec(ctx, query, userID)
	return err
}
