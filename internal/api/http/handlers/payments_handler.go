package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-service/internal/api/dto"
	"github.com/spec-kit/staffing-service/internal/auth"
	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/repository"
	"github.com/spec-kit/staffing-service/internal/service"
)

// PaymentsHandler exposes payroll and leave endpoints.
type PaymentsHandler struct {
	payroll *service.PayrollService
}

// NewPaymentsHandler constructs handler.
func NewPaymentsHandler(payroll *service.PayrollService) *PaymentsHandler {
	return &PaymentsHandler{payroll: payroll}
}

// Create handles POST /payments.
func (h *PaymentsHandler) Create(c *fiber.Ctx) error {
	var req dto.PaymentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.VendorID == "" || req.EventID == "" {
		return fiber.NewError(http.StatusBadRequest, "vendor_id and event_id required")
	}
	payment, err := h.payroll.CreatePayment(c.UserContext(), req.VendorID, req.EventID, req.BaseAmount)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": paymentResponse(payment)})
}

// Adjust handles POST /payments/:id/adjustments.
func (h *PaymentsHandler) Adjust(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	var req dto.AdjustmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	adjustment, err := h.payroll.Adjust(c.UserContext(), principal.User, c.Params("id"), req.Amount, req.Reason)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": adjustmentResponse(adjustment)})
}

// ListAdjustments handles GET /payments/:id/adjustments.
func (h *PaymentsHandler) ListAdjustments(c *fiber.Ctx) error {
	adjustments, err := h.payroll.ListAdjustments(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	resp := make([]dto.AdjustmentResponse, 0, len(adjustments))
	for i := range adjustments {
		resp = append(resp, adjustmentResponse(&adjustments[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Approve handles POST /payments/:id/approve.
func (h *PaymentsHandler) Approve(c *fiber.Ctx) error {
	payment, err := h.payroll.Approve(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": paymentResponse(payment)})
}

// MarkPaid handles POST /payments/:id/paid.
func (h *PaymentsHandler) MarkPaid(c *fiber.Ctx) error {
	payment, err := h.payroll.MarkPaid(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": paymentResponse(payment)})
}

// Summary handles GET /payments/summary, the venue/event/vendor rollup.
func (h *PaymentsHandler) Summary(c *fiber.Ctx) error {
	filter := repository.PaymentRowFilter{}
	if val := c.Query("vendor_id"); val != "" {
		filter.VendorID = &val
	}
	if val := c.Query("venue_id"); val != "" {
		filter.VenueID = &val
	}
	if val := c.Query("status"); val != "" {
		status := domain.PaymentStatus(val)
		filter.Status = &status
	}

	summary, err := h.payroll.Summarize(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary})
}

// RecordLeave handles POST /vendors/:id/leave.
func (h *PaymentsHandler) RecordLeave(c *fiber.Ctx) error {
	var req dto.LeaveRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Date.IsZero() {
		req.Date = time.Now()
	}
	entry, err := h.payroll.RecordLeave(c.UserContext(), c.Params("id"), req.Date, req.Hours, req.Note)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": leaveEntryResponse(entry)})
}

// LeaveBalance handles GET /vendors/:id/leave/balance.
func (h *PaymentsHandler) LeaveBalance(c *fiber.Ctx) error {
	balance, err := h.payroll.LeaveBalance(c.UserContext(), c.Params("id"), time.Now())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": balance})
}

// ListLeave handles GET /vendors/:id/leave.
func (h *PaymentsHandler) ListLeave(c *fiber.Ctx) error {
	entries, err := h.payroll.ListLeave(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	resp := make([]dto.LeaveEntryResponse, 0, len(entries))
	for i := range entries {
		resp = append(resp, leaveEntryResponse(&entries[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// MyLeaveBalance handles GET /leave/balance for the calling vendor.
func (h *PaymentsHandler) MyLeaveBalance(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	balance, err := h.payroll.LeaveBalance(c.UserContext(), principal.User.ID, time.Now())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": balance})
}

func paymentResponse(payment *domain.VendorPayment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:         payment.ID,
		VendorID:   payment.VendorID,
		EventID:    payment.EventID,
		BaseAmount: payment.BaseAmount,
		Status:     payment.Status,
	}
}

func adjustmentResponse(adjustment *domain.PaymentAdjustment) dto.AdjustmentResponse {
	return dto.AdjustmentResponse{
		ID:        adjustment.ID,
		PaymentID: adjustment.PaymentID,
		Amount:    adjustment.Amount,
		Reason:    adjustment.Reason,
		CreatedBy: adjustment.CreatedBy,
		CreatedAt: adjustment.CreatedAt,
	}
}

func leaveEntryResponse(entry *domain.LeaveEntry) dto.LeaveEntryResponse {
	return dto.LeaveEntryResponse{
		ID:       entry.ID,
		VendorID: entry.VendorID,
		Date:     entry.Date,
		Hours:    entry.Hours,
		Note:     entry.Note,
	}
}
