package auth

import "github.com/spec-kit/staffing-service/internal/domain"

// postLoginPaths maps roles to the page each role lands on after login.
var postLoginPaths = map[domain.Role]string{
	domain.RoleVendor:  "/schedule",
	domain.RoleManager: "/events",
	domain.RoleAdmin:   "/admin/dashboard",
}

const defaultPostLoginPath = "/"

// PostLoginPath returns the redirect target for a role. Accounts that still
// owe onboarding are sent to the onboarding flow regardless of role.
func PostLoginPath(role domain.Role, status domain.UserStatus) string {
	if status == domain.UserStatusPendingOnboarding {
		return "/onboarding"
	}
	if path, ok := postLoginPaths[role]; ok {
		return path
	}
	return defaultPostLoginPath
}
