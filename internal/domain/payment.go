package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents lifecycle states for a vendor payment.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusApproved PaymentStatus = "APPROVED"
	PaymentStatusPaid     PaymentStatus = "PAID"
)

// VendorPayment is the pay record for a vendor working an event.
type VendorPayment struct {
	ID         string
	VendorID   string
	EventID    string
	BaseAmount decimal.Decimal
	Status     PaymentStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PaymentAdjustment is a signed correction applied to a payment.
type PaymentAdjustment struct {
	ID        string
	PaymentID string
	Amount    decimal.Decimal
	Reason    string
	CreatedBy string
	CreatedAt time.Time
}

// PaymentRow is a flat joined row used by the aggregation view.
type PaymentRow struct {
	PaymentID  string
	VendorID   string
	VendorName string
	EventID    string
	EventName  string
	VenueID    string
	VenueName  string
	BaseAmount decimal.Decimal
	Adjustment decimal.Decimal
	Status     PaymentStatus
}

// Total returns the payment total after adjustments.
func (r PaymentRow) Total() decimal.Decimal {
	return r.BaseAmount.Add(r.Adjustment)
}
