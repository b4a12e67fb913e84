package auth

import (
	"testing"

	"github.com/spec-kit/staffing-service/internal/domain"
)

func TestPostLoginPath(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		role   domain.Role
		status domain.UserStatus
		want   string
	}{
		{"vendor", domain.RoleVendor, domain.UserStatusActive, "/schedule"},
		{"manager", domain.RoleManager, domain.UserStatusActive, "/events"},
		{"admin", domain.RoleAdmin, domain.UserStatusActive, "/admin/dashboard"},
		{"pending vendor goes to onboarding", domain.RoleVendor, domain.UserStatusPendingOnboarding, "/onboarding"},
		{"pending admin goes to onboarding", domain.RoleAdmin, domain.UserStatusPendingOnboarding, "/onboarding"},
		{"unknown role falls back to root", domain.Role("INTERN"), domain.UserStatusActive, "/"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := PostLoginPath(tc.role, tc.status); got != tc.want {
				t.Fatalf("PostLoginPath(%s, %s) = %s, want %s", tc.role, tc.status, got, tc.want)
			}
		})
	}
}
