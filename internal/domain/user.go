package domain

import "time"

// Role enumerates account roles.
type Role string

const (
	RoleVendor  Role = "VENDOR"
	RoleManager Role = "MANAGER"
	RoleAdmin   Role = "ADMIN"
)

// UserStatus represents lifecycle states for an account.
type UserStatus string

const (
	UserStatusPendingOnboarding UserStatus = "PENDING_ONBOARDING"
	UserStatusActive            UserStatus = "ACTIVE"
	UserStatusSuspended         UserStatus = "SUSPENDED"
)

// User is the domain model for vendor, manager and admin accounts.
type User struct {
	ID                 string
	Name               string
	Email              string
	PasswordHash       string
	Role               Role
	Status             UserStatus
	MustChangePassword bool
	MFAEnabled         bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
