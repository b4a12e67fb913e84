package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-service/internal/api/dto"
	"github.com/spec-kit/staffing-service/internal/auth"
	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/service"
)

// AuthHandler exposes login, MFA and password endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	result, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": loginResponse(result)})
}

// VerifyMFA handles POST /auth/mfa/verify. Requires an MFA-pending token.
func (h *AuthHandler) VerifyMFA(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	var req dto.MFAVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Code == "" {
		return fiber.NewError(http.StatusBadRequest, "code required")
	}

	result, err := h.authService.VerifyMFA(c.UserContext(), principal.User, req.Method, req.Code)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": loginResponse(result)})
}

// RequestEmailCode handles POST /auth/mfa/email-code. Requires an
// MFA-pending token; the code is delivered out of band.
func (h *AuthHandler) RequestEmailCode(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	if err := h.authService.RequestEmailCode(c.UserContext(), principal.User); err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"data": fiber.Map{"status": "code_sent"}})
}

// EnrollTOTP handles POST /auth/mfa/totp/enroll.
func (h *AuthHandler) EnrollTOTP(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	enrollment, err := h.authService.EnrollTOTP(c.UserContext(), principal.User)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TOTPEnrollResponse{
		OTPAuthURL:  enrollment.OTPAuthURL,
		Secret:      enrollment.Secret,
		BackupCodes: enrollment.BackupCodes,
	}})
}

// ActivateTOTP handles POST /auth/mfa/totp/activate.
func (h *AuthHandler) ActivateTOTP(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	var req dto.TOTPActivateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Code == "" {
		return fiber.NewError(http.StatusBadRequest, "code required")
	}
	if err := h.authService.ActivateTOTP(c.UserContext(), principal.User, req.Code); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "mfa_enabled"}})
}

// DisableMFA handles DELETE /auth/mfa.
func (h *AuthHandler) DisableMFA(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	if err := h.authService.DisableMFA(c.UserContext(), principal.User); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "mfa_disabled"}})
}

// ChangePassword handles POST /auth/password/change.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	var req dto.PasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return fiber.NewError(http.StatusBadRequest, "current and new password required")
	}
	if err := h.authService.ChangePassword(c.UserContext(), principal.User, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "password_changed"}})
}

// RequestPasswordReset handles POST /auth/password/reset/request.
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" {
		return fiber.NewError(http.StatusBadRequest, "email required")
	}

	token, err := h.authService.RequestPasswordReset(c.UserContext(), req.Email)
	if err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{
		"data": fiber.Map{
			"reset_token": token.Token,
			"expires_at":  token.ExpiresAt,
		},
	})
}

// ConfirmPasswordReset handles POST /auth/password/reset/confirm.
func (h *AuthHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Token == "" || req.NewPassword == "" {
		return fiber.NewError(http.StatusBadRequest, "token and new password required")
	}
	if err := h.authService.ConfirmPasswordReset(c.UserContext(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "password_reset"}})
}

// AdminResetPassword handles POST /admin/users/:id/reset-password.
func (h *AuthHandler) AdminResetPassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	tempPassword, err := h.authService.AdminResetPassword(c.UserContext(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"temp_password": tempPassword}})
}

func loginResponse(result *service.LoginResult) dto.LoginResponse {
	return dto.LoginResponse{
		User: userResponse(result.User),
		Auth: dto.AuthResponse{
			Token:     result.Token,
			Stage:     string(result.Stage),
			ExpiresAt: result.ExpiresAt,
		},
		RedirectPath: result.RedirectPath,
		MFAMethods:   result.MFAMethods,
	}
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:                 user.ID,
		Name:               user.Name,
		Email:              user.Email,
		Role:               user.Role,
		Status:             user.Status,
		MustChangePassword: user.MustChangePassword,
		MFAEnabled:         user.MFAEnabled,
	}
}
