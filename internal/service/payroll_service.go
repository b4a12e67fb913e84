package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/staffing-service/internal/config"
	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/events"
	"github.com/spec-kit/staffing-service/internal/repository"
	apperrors "github.com/spec-kit/staffing-service/pkg/util"
)

// VendorPaymentLine is a single vendor's pay under an event.
type VendorPaymentLine struct {
	PaymentID  string          `json:"payment_id"`
	VendorID   string          `json:"vendor_id"`
	VendorName string          `json:"vendor_name"`
	BaseAmount decimal.Decimal `json:"base_amount"`
	Adjustment decimal.Decimal `json:"adjustment"`
	Total      decimal.Decimal `json:"total"`
	Status     domain.PaymentStatus `json:"status"`
}

// EventPaymentGroup groups vendor lines under an event.
type EventPaymentGroup struct {
	EventID   string              `json:"event_id"`
	EventName string              `json:"event_name"`
	Subtotal  decimal.Decimal     `json:"subtotal"`
	Vendors   []VendorPaymentLine `json:"vendors"`
}

// VenuePaymentGroup groups event groups under a venue.
type VenuePaymentGroup struct {
	VenueID   string              `json:"venue_id"`
	VenueName string              `json:"venue_name"`
	Subtotal  decimal.Decimal     `json:"subtotal"`
	Events    []EventPaymentGroup `json:"events"`
}

// PaymentSummary is the venue, event, vendor aggregation with a grand total.
type PaymentSummary struct {
	Total  decimal.Decimal     `json:"total"`
	Venues []VenuePaymentGroup `json:"venues"`
}

// SickLeaveBalance reports accrued versus used sick leave hours.
type SickLeaveBalance struct {
	MonthsEmployed int     `json:"months_employed"`
	AccruedHours   float64 `json:"accrued_hours"`
	UsedHours      float64 `json:"used_hours"`
	BalanceHours   float64 `json:"balance_hours"`
}

// PayrollService manages vendor payments, adjustments and leave accrual.
type PayrollService struct {
	payments    repository.PaymentRepository
	leave       repository.LeaveRepository
	profiles    repository.ProfileRepository
	assignments repository.AssignmentRepository
	dispatcher  events.Dispatcher
	accrualRate float64
}

// PayrollDependencies encapsulates requirements for the payroll service.
type PayrollDependencies struct {
	PaymentRepo    repository.PaymentRepository
	LeaveRepo      repository.LeaveRepository
	ProfileRepo    repository.ProfileRepository
	AssignmentRepo repository.AssignmentRepository
	Dispatcher     events.Dispatcher
}

// NewPayrollService builds the service.
func NewPayrollService(cfg config.Config, deps PayrollDependencies) *PayrollService {
	return &PayrollService{
		payments:    deps.PaymentRepo,
		leave:       deps.LeaveRepo,
		profiles:    deps.ProfileRepo,
		assignments: deps.AssignmentRepo,
		dispatcher:  deps.Dispatcher,
		accrualRate: cfg.Payroll.SickLeaveHoursPerMonth,
	}
}

// CreatePayment opens a pay record for a vendor who worked an event.
func (s *PayrollService) CreatePayment(ctx context.Context, vendorID, eventID string, baseAmount decimal.Decimal) (*domain.VendorPayment, error) {
	if baseAmount.IsNegative() {
		return nil, apperrors.NewValidationError("base amount cannot be negative", nil)
	}
	if _, err := s.assignments.GetByEventAndVendor(ctx, eventID, vendorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("vendor was not assigned to this event", nil)
		}
		return nil, apperrors.MapError(err)
	}

	payment := &domain.VendorPayment{
		VendorID:   vendorID,
		EventID:    eventID,
		BaseAmount: baseAmount,
		Status:     domain.PaymentStatusPending,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, apperrors.MapError(err)
	}
	return payment, nil
}

// Adjust appends a signed correction to a payment. Paid payments are frozen.
func (s *PayrollService) Adjust(ctx context.Context, actor *domain.User, paymentID string, amount decimal.Decimal, reason string) (*domain.PaymentAdjustment, error) {
	if reason == "" {
		return nil, apperrors.NewValidationError("adjustment reason is required", nil)
	}
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if payment.Status == domain.PaymentStatusPaid {
		return nil, apperrors.NewConflict("paid payments cannot be adjusted", nil)
	}

	adjustment := &domain.PaymentAdjustment{
		PaymentID: paymentID,
		Amount:    amount,
		Reason:    reason,
		CreatedBy: actor.ID,
	}
	if err := s.payments.CreateAdjustment(ctx, adjustment); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, actor, events.EventPaymentAdjusted, paymentID, events.PaymentAdjustedPayload{
		PaymentID: paymentID,
		Amount:    amount.String(),
		Reason:    reason,
	})
	return adjustment, nil
}

// Approve transitions a pending payment to approved.
func (s *PayrollService) Approve(ctx context.Context, paymentID string) (*domain.VendorPayment, error) {
	return s.transition(ctx, paymentID, domain.PaymentStatusPending, domain.PaymentStatusApproved)
}

// MarkPaid transitions an approved payment to paid.
func (s *PayrollService) MarkPaid(ctx context.Context, paymentID string) (*domain.VendorPayment, error) {
	return s.transition(ctx, paymentID, domain.PaymentStatusApproved, domain.PaymentStatusPaid)
}

func (s *PayrollService) transition(ctx context.Context, paymentID string, from, to domain.PaymentStatus) (*domain.VendorPayment, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if payment.Status != from {
		return nil, apperrors.NewConflict("invalid payment transition", map[string]any{
			"from": payment.Status,
			"to":   to,
		})
	}
	payment.Status = to
	if err := s.payments.Update(ctx, payment); err != nil {
		return nil, apperrors.MapError(err)
	}
	return payment, nil
}

// ListAdjustments returns the adjustment history for one payment.
func (s *PayrollService) ListAdjustments(ctx context.Context, paymentID string) ([]domain.PaymentAdjustment, error) {
	result, err := s.payments.ListAdjustments(ctx, paymentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// Summarize builds the venue, event, vendor payment rollup from flat rows.
func (s *PayrollService) Summarize(ctx context.Context, filter repository.PaymentRowFilter) (*PaymentSummary, error) {
	rows, err := s.payments.ListRows(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return BuildPaymentSummary(rows), nil
}

// BuildPaymentSummary folds flat payment rows into the nested rollup.
// Rows are expected ordered by venue, event, vendor; output order follows
// the input.
func BuildPaymentSummary(rows []domain.PaymentRow) *PaymentSummary {
	summary := &PaymentSummary{Total: decimal.Zero}
	venueIdx := map[string]int{}
	eventIdx := map[string]int{}

	for _, row := range rows {
		total := row.Total()
		summary.Total = summary.Total.Add(total)

		vi, ok := venueIdx[row.VenueID]
		if !ok {
			summary.Venues = append(summary.Venues, VenuePaymentGroup{
				VenueID:   row.VenueID,
				VenueName: row.VenueName,
				Subtotal:  decimal.Zero,
			})
			vi = len(summary.Venues) - 1
			venueIdx[row.VenueID] = vi
		}
		venue := &summary.Venues[vi]
		venue.Subtotal = venue.Subtotal.Add(total)

		eventKey := row.VenueID + "/" + row.EventID
		ei, ok := eventIdx[eventKey]
		if !ok {
			venue.Events = append(venue.Events, EventPaymentGroup{
				EventID:   row.EventID,
				EventName: row.EventName,
				Subtotal:  decimal.Zero,
			})
			ei = len(venue.Events) - 1
			eventIdx[eventKey] = ei
		}
		event := &venue.Events[ei]
		event.Subtotal = event.Subtotal.Add(total)

		event.Vendors = append(event.Vendors, VendorPaymentLine{
			PaymentID:  row.PaymentID,
			VendorID:   row.VendorID,
			VendorName: row.VendorName,
			BaseAmount: row.BaseAmount,
			Adjustment: row.Adjustment,
			Total:      total,
			Status:     row.Status,
		})
	}
	return summary
}

// RecordLeave logs sick leave hours against the vendor's balance.
func (s *PayrollService) RecordLeave(ctx context.Context, vendorID string, date time.Time, hours float64, note string) (*domain.LeaveEntry, error) {
	if hours <= 0 {
		return nil, apperrors.NewValidationError("hours must be positive", nil)
	}
	balance, err := s.LeaveBalance(ctx, vendorID, time.Now())
	if err != nil {
		return nil, err
	}
	if hours > balance.BalanceHours {
		return nil, apperrors.NewValidationError("insufficient sick leave balance", map[string]any{
			"balance_hours": balance.BalanceHours,
		})
	}

	entry := &domain.LeaveEntry{
		VendorID: vendorID,
		Date:     date,
		Hours:    hours,
		Note:     note,
	}
	if err := s.leave.Create(ctx, entry); err != nil {
		return nil, apperrors.MapError(err)
	}
	return entry, nil
}

// LeaveBalance computes accrued minus used sick leave hours. Accrual is a
// fixed number of hours per whole month since hire.
func (s *PayrollService) LeaveBalance(ctx context.Context, vendorID string, now time.Time) (*SickLeaveBalance, error) {
	profile, err := s.profiles.GetByUserID(ctx, vendorID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if profile.HireDate == nil {
		return nil, apperrors.NewValidationError("vendor has no hire date", nil)
	}

	used, err := s.leave.TotalHours(ctx, vendorID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	months := domain.MonthsEmployed(*profile.HireDate, now)
	accrued := float64(months) * s.accrualRate
	return &SickLeaveBalance{
		MonthsEmployed: months,
		AccruedHours:   accrued,
		UsedHours:      used,
		BalanceHours:   accrued - used,
	}, nil
}

// ListLeave returns the vendor's leave history, newest first.
func (s *PayrollService) ListLeave(ctx context.Context, vendorID string) ([]domain.LeaveEntry, error) {
	entries, err := s.leave.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}

func (s *PayrollService) publish(ctx context.Context, actor *domain.User, eventType events.EventType, subjectID string, payload any) {
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
