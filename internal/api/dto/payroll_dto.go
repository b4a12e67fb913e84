package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/staffing-service/internal/domain"
)

// PaymentCreateRequest payload.
type PaymentCreateRequest struct {
	VendorID   string          `json:"vendor_id"`
	EventID    string          `json:"event_id"`
	BaseAmount decimal.Decimal `json:"base_amount"`
}

// PaymentResponse is the public payment view.
type PaymentResponse struct {
	ID         string               `json:"id"`
	VendorID   string               `json:"vendor_id"`
	EventID    string               `json:"event_id"`
	BaseAmount decimal.Decimal      `json:"base_amount"`
	Status     domain.PaymentStatus `json:"status"`
}

// AdjustmentRequest payload.
type AdjustmentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
}

// AdjustmentResponse is the public adjustment view.
type AdjustmentResponse struct {
	ID        string          `json:"id"`
	PaymentID string          `json:"payment_id"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

// LeaveRequest payload.
type LeaveRequest struct {
	Date  time.Time `json:"date"`
	Hours float64   `json:"hours"`
	Note  string    `json:"note,omitempty"`
}

// LeaveEntryResponse is the public leave entry view.
type LeaveEntryResponse struct {
	ID       string    `json:"id"`
	VendorID string    `json:"vendor_id"`
	Date     time.Time `json:"date"`
	Hours    float64   `json:"hours"`
	Note     string    `json:"note,omitempty"`
}
