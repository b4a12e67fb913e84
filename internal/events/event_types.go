package events

import (
	"time"

	"github.com/spec-kit/staffing-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventVendorOnboarded  EventType = "vendor_onboarded"
	EventShiftAssigned    EventType = "shift_assigned"
	EventVendorCheckedIn  EventType = "vendor_checked_in"
	EventPaymentAdjusted  EventType = "payment_adjusted"
	EventDocumentSigned   EventType = "document_signed"
	EventPasswordReset    EventType = "password_reset"
	EventMFACodeRequested EventType = "mfa_code_requested"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// VendorOnboardedPayload payload.
type VendorOnboardedPayload struct {
	VendorID string `json:"vendor_id"`
	Email    string `json:"email"`
}

// ShiftAssignedPayload payload.
type ShiftAssignedPayload struct {
	EventID  string `json:"event_id"`
	VendorID string `json:"vendor_id"`
	Position string `json:"position"`
}

// VendorCheckedInPayload payload.
type VendorCheckedInPayload struct {
	EventID  string               `json:"event_id"`
	VendorID string               `json:"vendor_id"`
	Timing   domain.CheckinTiming `json:"timing"`
}

// PaymentAdjustedPayload payload.
type PaymentAdjustedPayload struct {
	PaymentID string `json:"payment_id"`
	Amount    string `json:"amount"`
	Reason    string `json:"reason"`
}

// DocumentSignedPayload payload.
type DocumentSignedPayload struct {
	DocumentID string              `json:"document_id"`
	DocType    domain.DocumentType `json:"doc_type"`
	SignerName string              `json:"signer_name"`
}

// PasswordResetPayload payload.
type PasswordResetPayload struct {
	TargetUserID string `json:"target_user_id"`
}

// MFACodeRequestedPayload payload. Code is the plaintext login code for
// delivery; only its hash is stored server-side.
type MFACodeRequestedPayload struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}
