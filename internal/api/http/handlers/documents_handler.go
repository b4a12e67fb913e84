package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-service/internal/api/dto"
	"github.com/spec-kit/staffing-service/internal/auth"
	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/service"
)

// DocumentsHandler exposes document upload, review and signing endpoints.
type DocumentsHandler struct {
	documents *service.DocumentService
}

// NewDocumentsHandler constructs handler.
func NewDocumentsHandler(documents *service.DocumentService) *DocumentsHandler {
	return &DocumentsHandler{documents: documents}
}

// Upload handles POST /documents as a multipart upload with a doc_type field.
func (h *DocumentsHandler) Upload(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	docType := domain.DocumentType(c.FormValue("doc_type"))
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "document file required")
	}
	data, err := readMultipartFile(fileHeader)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "unreadable document file")
	}

	doc, err := h.documents.Upload(c.UserContext(), principal.User, docType,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": documentResponse(doc)})
}

// Review handles POST /documents/:id/review.
func (h *DocumentsHandler) Review(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	var req dto.DocumentReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	doc, err := h.documents.Review(c.UserContext(), principal.User, c.Params("id"), req.Approve)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": documentResponse(doc)})
}

// Sign handles POST /documents/:id/sign.
func (h *DocumentsHandler) Sign(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	var req dto.DocumentSignRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	doc, err := h.documents.Sign(c.UserContext(), principal.User, c.Params("id"), req.SignerName)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": documentResponse(doc)})
}

// Get handles GET /documents/:id.
func (h *DocumentsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	doc, err := h.documents.Get(c.UserContext(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": documentResponse(doc)})
}

// Mine handles GET /documents for the calling user.
func (h *DocumentsHandler) Mine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	docs, err := h.documents.ListForUser(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": documentResponses(docs)})
}

// ListForUser handles GET /admin/users/:id/documents.
func (h *DocumentsHandler) ListForUser(c *fiber.Ctx) error {
	docs, err := h.documents.ListForUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": documentResponses(docs)})
}

func documentResponses(docs []domain.Document) []dto.DocumentResponse {
	resp := make([]dto.DocumentResponse, 0, len(docs))
	for i := range docs {
		resp = append(resp, documentResponse(&docs[i]))
	}
	return resp
}

func documentResponse(doc *domain.Document) dto.DocumentResponse {
	return dto.DocumentResponse{
		ID:              doc.ID,
		UserID:          doc.UserID,
		Type:            doc.Type,
		FileName:        doc.FileName,
		MimeType:        doc.MimeType,
		SizeBytes:       doc.SizeBytes,
		Status:          doc.Status,
		ReviewedBy:      doc.ReviewedBy,
		SignerName:      doc.SignerName,
		SignatureDigest: doc.SignatureDigest,
		SignedAt:        doc.SignedAt,
		CreatedAt:       doc.CreatedAt,
	}
}
