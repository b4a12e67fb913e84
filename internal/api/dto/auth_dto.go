package dto

import (
	"time"

	"github.com/spec-kit/staffing-service/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries an issued token.
type AuthResponse struct {
	Token     string    `json:"token"`
	Stage     string    `json:"stage"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LoginResponse is the outcome of login or MFA verification.
type LoginResponse struct {
	User         UserResponse       `json:"user"`
	Auth         AuthResponse       `json:"auth"`
	RedirectPath string             `json:"redirect_path,omitempty"`
	MFAMethods   []domain.MFAMethod `json:"mfa_methods,omitempty"`
}

// MFAVerifyRequest payload.
type MFAVerifyRequest struct {
	Method domain.MFAMethod `json:"method"`
	Code   string           `json:"code"`
}

// TOTPActivateRequest payload.
type TOTPActivateRequest struct {
	Code string `json:"code"`
}

// TOTPEnrollResponse carries enrollment material shown once.
type TOTPEnrollResponse struct {
	OTPAuthURL  string   `json:"otpauth_url"`
	Secret      string   `json:"secret"`
	BackupCodes []string `json:"backup_codes"`
}

// PasswordResetRequest payload for initiating reset.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirmRequest payload for confirming reset.
type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// PasswordChangeRequest payload for authenticated password changes.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UserResponse is the public account view.
type UserResponse struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	Email              string            `json:"email"`
	Role               domain.Role       `json:"role"`
	Status             domain.UserStatus `json:"status"`
	MustChangePassword bool              `json:"must_change_password"`
	MFAEnabled         bool              `json:"mfa_enabled"`
}
