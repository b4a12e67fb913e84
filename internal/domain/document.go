package domain

import "time"

// DocumentType enumerates onboarding document kinds.
type DocumentType string

const (
	DocumentTypeI9       DocumentType = "I9"
	DocumentTypeW4       DocumentType = "W4"
	DocumentTypeContract DocumentType = "CONTRACT"
)

// DocumentStatus represents review states for a document.
type DocumentStatus string

const (
	DocumentStatusPendingReview DocumentStatus = "PENDING_REVIEW"
	DocumentStatusApproved      DocumentStatus = "APPROVED"
	DocumentStatusRejected      DocumentStatus = "REJECTED"
)

// Document is an uploaded onboarding or payroll form.
type Document struct {
	ID              string
	UserID          string
	Type            DocumentType
	StorageKey      string
	FileName        string
	MimeType        string
	SizeBytes       int64
	Status          DocumentStatus
	ReviewedBy      *string
	SignerName      *string
	SignatureDigest *string
	SignedAt        *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
