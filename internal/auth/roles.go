package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-service/internal/domain"
	apperrors "github.com/spec-kit/staffing-service/pkg/util"
)

// passwordChangePath is the only protected route usable while a forced
// password change is outstanding.
const passwordChangePath = "/api/auth/password/change"

// RequireAccess rejects MFA-pending tokens; only fully authenticated
// callers pass. Accounts carrying a temporary password are held to the
// password-change endpoint until they set their own.
func RequireAccess() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.Stage != StageAccess {
			return apperrors.NewMFARequired("mfa verification required")
		}
		if principal.User != nil && principal.User.MustChangePassword && c.Path() != passwordChangePath {
			return apperrors.NewDomainError("PASSWORD_CHANGE_REQUIRED", "password change required", fiber.StatusForbidden, nil)
		}
		return c.Next()
	}
}

// RequirePendingMFA admits only MFA-pending tokens (the verify endpoint).
func RequirePendingMFA() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Stage != StageMFAPending {
			return apperrors.NewUnauthorized("mfa pending token required")
		}
		return c.Next()
	}
}

// RequireRole ensures the caller holds one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil || principal.Stage != StageAccess {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.User.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
