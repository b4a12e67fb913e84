package domain

import "time"

// MFAMethod enumerates supported second factors.
type MFAMethod string

const (
	MFAMethodTOTP   MFAMethod = "totp"
	MFAMethodEmail  MFAMethod = "email"
	MFAMethodBackup MFAMethod = "backup"
)

// MFASettings holds a user's second-factor state. BackupCodes are stored
// sha256-hashed; plaintext codes are shown once at enrollment.
type MFASettings struct {
	ID          string
	UserID      string
	TOTPSecret  string
	TOTPEnabled bool
	BackupCodes []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
