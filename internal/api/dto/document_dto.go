package dto

import (
	"time"

	"github.com/spec-kit/staffing-service/internal/domain"
)

// DocumentReviewRequest payload.
type DocumentReviewRequest struct {
	Approve bool `json:"approve"`
}

// DocumentSignRequest payload.
type DocumentSignRequest struct {
	SignerName string `json:"signer_name"`
}

// DocumentResponse is the public document view.
type DocumentResponse struct {
	ID              string                `json:"id"`
	UserID          string                `json:"user_id"`
	Type            domain.DocumentType   `json:"type"`
	FileName        string                `json:"file_name"`
	MimeType        string                `json:"mime_type"`
	SizeBytes       int64                 `json:"size_bytes"`
	Status          domain.DocumentStatus `json:"status"`
	ReviewedBy      *string               `json:"reviewed_by,omitempty"`
	SignerName      *string               `json:"signer_name,omitempty"`
	SignatureDigest *string               `json:"signature_digest,omitempty"`
	SignedAt        *time.Time            `json:"signed_at,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
}
