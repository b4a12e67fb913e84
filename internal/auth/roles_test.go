package auth

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-service/internal/domain"
	apperrors "github.com/spec-kit/staffing-service/pkg/util"
)

func newRolesTestApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"code": domainErr.Code})
		},
	})
}

func seedPrincipal(user *domain.User, stage TokenStage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(principalKey, &Principal{User: user, Stage: stage})
		return c.Next()
	}
}

func okHandler(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusOK)
}

func doRequest(t *testing.T, app *fiber.App, method, path string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, path, nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	var body struct {
		Code string `json:"code"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body.Code
}

func TestRequireAccessHoldsTempPasswordToChangeRoute(t *testing.T) {
	t.Parallel()

	user := &domain.User{
		ID:                 "user-1",
		Role:               domain.RoleVendor,
		Status:             domain.UserStatusActive,
		MustChangePassword: true,
	}

	app := newRolesTestApp()
	app.Get("/api/schedule", seedPrincipal(user, StageAccess), RequireAccess(), okHandler)
	app.Post(passwordChangePath, seedPrincipal(user, StageAccess), RequireAccess(), okHandler)

	status, code := doRequest(t, app, fiber.MethodGet, "/api/schedule")
	if status != fiber.StatusForbidden {
		t.Fatalf("status = %d, want %d", status, fiber.StatusForbidden)
	}
	if code != "PASSWORD_CHANGE_REQUIRED" {
		t.Fatalf("code = %s, want PASSWORD_CHANGE_REQUIRED", code)
	}

	status, _ = doRequest(t, app, fiber.MethodPost, passwordChangePath)
	if status != fiber.StatusOK {
		t.Fatalf("password change route status = %d, want 200", status)
	}
}

func TestRequireAccessPassesOncePasswordChanged(t *testing.T) {
	t.Parallel()

	user := &domain.User{
		ID:     "user-1",
		Role:   domain.RoleVendor,
		Status: domain.UserStatusActive,
	}

	app := newRolesTestApp()
	app.Get("/api/schedule", seedPrincipal(user, StageAccess), RequireAccess(), okHandler)

	status, _ := doRequest(t, app, fiber.MethodGet, "/api/schedule")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
}

func TestRequireAccessRejectsPendingStage(t *testing.T) {
	t.Parallel()

	user := &domain.User{ID: "user-1", Role: domain.RoleManager, Status: domain.UserStatusActive}

	app := newRolesTestApp()
	app.Get("/api/events", seedPrincipal(user, StageMFAPending), RequireAccess(), okHandler)

	status, code := doRequest(t, app, fiber.MethodGet, "/api/events")
	if status != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", status, fiber.StatusUnauthorized)
	}
	if code != "MFA_REQUIRED" {
		t.Fatalf("code = %s, want MFA_REQUIRED", code)
	}
}

func TestRequireRoleBlocksOtherRoles(t *testing.T) {
	t.Parallel()

	vendor := &domain.User{ID: "user-1", Role: domain.RoleVendor, Status: domain.UserStatusActive}

	app := newRolesTestApp()
	app.Post("/api/payments", seedPrincipal(vendor, StageAccess), RequireRole(domain.RoleManager, domain.RoleAdmin), okHandler)

	status, code := doRequest(t, app, fiber.MethodPost, "/api/payments")
	if status != fiber.StatusForbidden {
		t.Fatalf("status = %d, want %d", status, fiber.StatusForbidden)
	}
	if code != "FORBIDDEN" {
		t.Fatalf("code = %s, want FORBIDDEN", code)
	}
}
