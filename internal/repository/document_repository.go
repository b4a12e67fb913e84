package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/staffing-service/internal/domain"
)

// DocumentRepository persists onboarding and payroll documents.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	Update(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Document, error)
	GetLatestByUserAndType(ctx context.Context, userID string, docType domain.DocumentType) (*domain.Document, error)
}

type documentRepository struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository constructs repository.
func NewDocumentRepository(pool *pgxpool.Pool) DocumentRepository {
	return &documentRepository{pool: pool}
}

const documentColumns = "id, user_id, doc_type, storage_key, file_name, mime_type, size_bytes, status, reviewed_by, signer_name, signature_digest, signed_at, created_at, updated_at"

func scanDocument(row pgx.Row) (*domain.Document, error) {
	var doc domain.Document
	if err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.Type,
		&doc.StorageKey,
		&doc.FileName,
		&doc.MimeType,
		&doc.SizeBytes,
		&doc.Status,
		&doc.ReviewedBy,
		&doc.SignerName,
		&doc.SignatureDigest,
		&doc.SignedAt,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) Create(ctx context.Context, doc *domain.Document) error {
	const query = `
        INSERT INTO documents (user_id, doc_type, storage_key, file_name, mime_type, size_bytes, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		doc.UserID,
		doc.Type,
		doc.StorageKey,
		doc.FileName,
		doc.MimeType,
		doc.SizeBytes,
		doc.Status,
	).Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt)
}

func (r *documentRepository) Update(ctx context.Context, doc *domain.Document) error {
	const query = `
        UPDATE documents
        SET status=$1, reviewed_by=$2, signer_name=$3, signature_digest=$4, signed_at=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		doc.Status,
		doc.ReviewedBy,
		doc.SignerName,
		doc.SignatureDigest,
		doc.SignedAt,
		doc.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *documentRepository) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	query := "SELECT " + documentColumns + " FROM documents WHERE id=$1"
	return scanDocument(r.pool.QueryRow(ctx, query, id))
}

func (r *documentRepository) ListByUser(ctx context.Context, userID string) ([]domain.Document, error) {
	query := "SELECT " + documentColumns + " FROM documents WHERE user_id=$1 ORDER BY created_at DESC"
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *doc)
	}
	return result, rows.Err()
}

func (r *documentRepository) GetLatestByUserAndType(ctx context.Context, userID string, docType domain.DocumentType) (*domain.Document, error) {
	query := "SELECT " + documentColumns + ` FROM documents
        WHERE user_id=$1 AND doc_type=$2 ORDER BY created_at DESC LIMIT 1`
	return scanDocument(r.pool.QueryRow(ctx, query, userID, docType))
}
