package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/staffing-service/internal/config"
	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/events"
	"github.com/spec-kit/staffing-service/internal/repository"
	"github.com/spec-kit/staffing-service/internal/storage"
	apperrors "github.com/spec-kit/staffing-service/pkg/util"
)

// DocumentService manages onboarding and payroll document records.
type DocumentService struct {
	documents  repository.DocumentRepository
	files      storage.Store
	dispatcher events.Dispatcher
	maxDoc     int64
}

// DocumentDependencies encapsulates requirements for the document service.
type DocumentDependencies struct {
	DocumentRepo repository.DocumentRepository
	FileStore    storage.Store
	Dispatcher   events.Dispatcher
}

// NewDocumentService builds the service.
func NewDocumentService(cfg config.Config, deps DocumentDependencies) *DocumentService {
	return &DocumentService{
		documents:  deps.DocumentRepo,
		files:      deps.FileStore,
		dispatcher: deps.Dispatcher,
		maxDoc:     cfg.Storage.MaxDocBytes,
	}
}

// Upload stores a document file and opens its review record.
func (s *DocumentService) Upload(ctx context.Context, user *domain.User, docType domain.DocumentType, fileName, mimeType string, data []byte) (*domain.Document, error) {
	switch docType {
	case domain.DocumentTypeI9, domain.DocumentTypeW4, domain.DocumentTypeContract:
	default:
		return nil, apperrors.NewValidationError("unknown document type", map[string]any{"doc_type": docType})
	}
	if len(data) == 0 {
		return nil, apperrors.NewValidationError("document file is empty", nil)
	}
	if int64(len(data)) > s.maxDoc {
		return nil, apperrors.NewValidationError("document exceeds size limit", map[string]any{
			"max_bytes": s.maxDoc,
		})
	}

	key, err := s.files.Save("documents", fileName, data)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	doc := &domain.Document{
		UserID:     user.ID,
		Type:       docType,
		StorageKey: key,
		FileName:   fileName,
		MimeType:   mimeType,
		SizeBytes:  int64(len(data)),
		Status:     domain.DocumentStatusPendingReview,
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		return nil, apperrors.MapError(err)
	}
	return doc, nil
}

// Review records the reviewer's verdict on a pending document.
func (s *DocumentService) Review(ctx context.Context, reviewer *domain.User, documentID string, approve bool) (*domain.Document, error) {
	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if doc.Status != domain.DocumentStatusPendingReview {
		return nil, apperrors.NewConflict("document already reviewed", map[string]any{"status": doc.Status})
	}

	if approve {
		doc.Status = domain.DocumentStatusApproved
	} else {
		doc.Status = domain.DocumentStatusRejected
	}
	doc.ReviewedBy = &reviewer.ID
	if err := s.documents.Update(ctx, doc); err != nil {
		return nil, apperrors.MapError(err)
	}
	return doc, nil
}

// Sign attaches an electronic signature to the signer's own document. The
// digest binds the signer name and moment to the stored file so later edits
// are detectable.
func (s *DocumentService) Sign(ctx context.Context, signer *domain.User, documentID, signerName string) (*domain.Document, error) {
	if signerName == "" {
		return nil, apperrors.NewValidationError("signer name is required", nil)
	}

	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if doc.UserID != signer.ID {
		return nil, apperrors.NewForbidden("document belongs to another user")
	}
	if doc.SignedAt != nil {
		return nil, apperrors.NewConflict("document already signed", nil)
	}

	content, err := s.files.Read(doc.StorageKey)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	now := time.Now().UTC()
	digest := signatureDigest(content, signerName, now)
	doc.SignerName = &signerName
	doc.SignatureDigest = &digest
	doc.SignedAt = &now
	if err := s.documents.Update(ctx, doc); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, signer, events.EventDocumentSigned, doc.ID, events.DocumentSignedPayload{
		DocumentID: doc.ID,
		DocType:    doc.Type,
		SignerName: signerName,
	})
	return doc, nil
}

// Get returns a document visible to the caller. Vendors only see their own.
func (s *DocumentService) Get(ctx context.Context, caller *domain.User, documentID string) (*domain.Document, error) {
	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if caller.Role == domain.RoleVendor && doc.UserID != caller.ID {
		return nil, apperrors.NewForbidden("document belongs to another user")
	}
	return doc, nil
}

// ListForUser returns all documents for one account, newest first.
func (s *DocumentService) ListForUser(ctx context.Context, userID string) ([]domain.Document, error) {
	docs, err := s.documents.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return docs, nil
}

func signatureDigest(content []byte, signerName string, signedAt time.Time) string {
	h := sha256.New()
	h.Write(content)
	fmt.Fprintf(h, "|%s|%s", signerName, signedAt.Format(time.RFC3339Nano))
	return hex.EncodeToString(h.Sum(nil))
}

func (s *DocumentService) publish(ctx context.Context, actor *domain.User, eventType events.EventType, subjectID string, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Actor:     events.Actor{UserID: actor.ID, Role: actor.Role},
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
