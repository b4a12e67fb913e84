package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-service/internal/api/dto"
	"github.com/spec-kit/staffing-service/internal/auth"
	"github.com/spec-kit/staffing-service/internal/service"
)

// CheckinHandler exposes check-in code issuance and redemption endpoints.
type CheckinHandler struct {
	checkin *service.CheckinService
}

// NewCheckinHandler constructs handler.
func NewCheckinHandler(checkin *service.CheckinService) *CheckinHandler {
	return &CheckinHandler{checkin: checkin}
}

// IssueCode handles POST /events/:id/checkin-code.
func (h *CheckinHandler) IssueCode(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	code, err := h.checkin.IssueCode(c.UserContext(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.CheckinCodeResponse{
		EventID:   code.EventID,
		Code:      code.Code,
		ExpiresAt: code.ExpiresAt,
	}})
}

// ActiveCode handles GET /events/:id/checkin-code.
func (h *CheckinHandler) ActiveCode(c *fiber.Ctx) error {
	code, err := h.checkin.ActiveCode(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.CheckinCodeResponse{
		EventID:   code.EventID,
		Code:      code.Code,
		ExpiresAt: code.ExpiresAt,
	}})
}

// RevokeCode handles DELETE /events/:id/checkin-code.
func (h *CheckinHandler) RevokeCode(c *fiber.Ctx) error {
	if err := h.checkin.RevokeCode(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "revoked"}})
}

// Redeem handles POST /checkin.
func (h *CheckinHandler) Redeem(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	var req dto.CheckinRedeemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Code == "" {
		return fiber.NewError(http.StatusBadRequest, "code required")
	}

	result, err := h.checkin.Redeem(c.UserContext(), principal.User, req.Code)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.CheckinRedeemResponse{
		Assignment: assignmentResponse(result.Assignment),
		EventName:  result.Event.Name,
		Timing:     result.Timing,
	}})
}
