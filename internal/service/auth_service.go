package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/staffing-service/internal/auth"
	"github.com/spec-kit/staffing-service/internal/config"
	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/events"
	"github.com/spec-kit/staffing-service/internal/mfa"
	"github.com/spec-kit/staffing-service/internal/repository"
	apperrors "github.com/spec-kit/staffing-service/pkg/util"
)

// LoginResult is the outcome of a login or MFA verification.
type LoginResult struct {
	User         *domain.User
	Token        string
	ExpiresAt    time.Time
	Stage        auth.TokenStage
	RedirectPath string
	MFAMethods   []domain.MFAMethod
}

// TOTPEnrollment is returned once at enrollment time; backup codes are
// not recoverable afterwards.
type TOTPEnrollment struct {
	OTPAuthURL  string
	Secret      string
	BackupCodes []string
}

// AuthService coordinates login, MFA and password flows.
type AuthService struct {
	users        repository.UserRepository
	mfaSettings  repository.MFARepository
	resets       repository.PasswordResetRepository
	codes        mfa.CodeStore
	dispatcher   events.Dispatcher
	tokenMgr     *auth.TokenManager
	bcryptCost   int
	resetTTL     time.Duration
	emailCodeTTL time.Duration
	issuer       string
	backupCount  int
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo          repository.UserRepository
	MFARepo           repository.MFARepository
	PasswordResetRepo repository.PasswordResetRepository
	CodeStore         mfa.CodeStore
	Dispatcher        events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:        deps.UserRepo,
		mfaSettings:  deps.MFARepo,
		resets:       deps.PasswordResetRepo,
		codes:        deps.CodeStore,
		dispatcher:   deps.Dispatcher,
		tokenMgr:     auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes, cfg.Auth.PendingTokenTTLMinutes),
		bcryptCost:   cfg.Auth.BcryptCost,
		resetTTL:     time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
		emailCodeTTL: cfg.MFA.EmailCodeTTL(),
		issuer:       cfg.MFA.Issuer,
		backupCount:  cfg.MFA.BackupCodeCount,
	}
}

// Login authenticates by email and password. Accounts with MFA enabled
// receive a short-lived pending token and must call VerifyMFA to finish.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if user.Status == domain.UserStatusSuspended {
		return nil, apperrors.NewForbidden("account suspended")
	}

	if user.MFAEnabled {
		token, exp, err := s.tokenMgr.GeneratePendingToken(user.ID, user.Role)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		return &LoginResult{
			User:       user,
			Token:      token,
			ExpiresAt:  exp,
			Stage:      auth.StageMFAPending,
			MFAMethods: s.availableMethods(ctx, user.ID),
		}, nil
	}

	return s.finishLogin(user)
}

// VerifyMFA completes a pending login with one of the supported methods.
func (s *AuthService) VerifyMFA(ctx context.Context, user *domain.User, method domain.MFAMethod, code string) (*LoginResult, error) {
	settings, err := s.mfaSettings.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewConflict("mfa not enrolled", nil)
		}
		return nil, apperrors.MapError(err)
	}

	switch method {
	case domain.MFAMethodTOTP:
		if !settings.TOTPEnabled {
			return nil, apperrors.NewValidationError("totp not enabled", nil)
		}
		if !mfa.ValidateTOTP(code, settings.TOTPSecret) {
			return nil, apperrors.NewUnauthorized("invalid code")
		}
	case domain.MFAMethodEmail:
		if err := s.codes.Verify(ctx, user.ID, code); err != nil {
			if errors.Is(err, mfa.ErrCodeMismatch) {
				return nil, apperrors.NewUnauthorized("invalid code")
			}
			return nil, apperrors.NewInternalError(err)
		}
	case domain.MFAMethodBackup:
		remaining, ok := mfa.ConsumeBackupCode(code, settings.BackupCodes)
		if !ok {
			return nil, apperrors.NewUnauthorized("invalid code")
		}
		settings.BackupCodes = remaining
		if err := s.mfaSettings.Update(ctx, settings); err != nil {
			return nil, apperrors.MapError(err)
		}
	default:
		return nil, apperrors.NewValidationError("unknown mfa method", map[string]any{"method": method})
	}

	return s.finishLogin(user)
}

// RequestEmailCode issues a single-use emailed login code for a pending login.
func (s *AuthService) RequestEmailCode(ctx context.Context, user *domain.User) error {
	code, err := s.codes.Issue(ctx, user.ID, s.emailCodeTTL)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	s.publish(ctx, user, events.EventMFACodeRequested, user.ID, events.MFACodeRequestedPayload{
		Email: user.Email,
		Code:  code,
	})
	return nil
}

// EnrollTOTP provisions a TOTP secret and fresh backup codes. The account
// stays on password-only login until ActivateTOTP confirms a code.
func (s *AuthService) EnrollTOTP(ctx context.Context, user *domain.User) (*TOTPEnrollment, error) {
	if user.MFAEnabled {
		return nil, apperrors.NewConflict("mfa already enabled", nil)
	}

	key, err := mfa.GenerateTOTPKey(s.issuer, user.Email)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	plain, hashed, err := mfa.GenerateBackupCodes(s.backupCount)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	settings := &domain.MFASettings{
		UserID:      user.ID,
		TOTPSecret:  key.Secret(),
		TOTPEnabled: false,
		BackupCodes: hashed,
	}
	if _, err := s.mfaSettings.GetByUserID(ctx, user.ID); err == nil {
		if err := s.mfaSettings.Update(ctx, settings); err != nil {
			return nil, apperrors.MapError(err)
		}
	} else if errors.Is(err, pgx.ErrNoRows) {
		if err := s.mfaSettings.Create(ctx, settings); err != nil {
			return nil, apperrors.MapError(err)
		}
	} else {
		return nil, apperrors.MapError(err)
	}

	return &TOTPEnrollment{
		OTPAuthURL:  key.URL(),
		Secret:      key.Secret(),
		BackupCodes: plain,
	}, nil
}

// ActivateTOTP confirms enrollment with a live authenticator code and turns
// MFA on for the account.
func (s *AuthService) ActivateTOTP(ctx context.Context, user *domain.User, code string) error {
	settings, err := s.mfaSettings.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewConflict("mfa not enrolled", nil)
		}
		return apperrors.MapError(err)
	}
	if !mfa.ValidateTOTP(code, settings.TOTPSecret) {
		return apperrors.NewUnauthorized("invalid code")
	}

	settings.TOTPEnabled = true
	if err := s.mfaSettings.Update(ctx, settings); err != nil {
		return apperrors.MapError(err)
	}
	user.MFAEnabled = true
	if err := s.users.Update(ctx, user); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// DisableMFA removes second-factor state for the account.
func (s *AuthService) DisableMFA(ctx context.Context, user *domain.User) error {
	if err := s.mfaSettings.Delete(ctx, user.ID); err != nil {
		return apperrors.MapError(err)
	}
	user.MFAEnabled = false
	return s.users.Update(ctx, user)
}

// AdminResetPassword issues a fresh temporary password for the target
// account and forces a change at next login. The plaintext is returned once.
func (s *AuthService) AdminResetPassword(ctx context.Context, actor *domain.User, targetUserID string) (string, error) {
	if actor == nil || actor.Role != domain.RoleAdmin {
		return "", apperrors.NewForbidden("admin role required")
	}
	target, err := s.users.GetByID(ctx, targetUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewNotFound("user", map[string]any{"user_id": targetUserID})
		}
		return "", apperrors.MapError(err)
	}

	tempPassword, err := auth.GenerateTempPassword()
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	hash, err := auth.HashPassword(tempPassword, s.bcryptCost)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}

	target.PasswordHash = hash
	target.MustChangePassword = true
	if err := s.users.Update(ctx, target); err != nil {
		return "", apperrors.MapError(err)
	}

	s.publish(ctx, actor, events.EventPasswordReset, target.ID, events.PasswordResetPayload{TargetUserID: target.ID})
	return tempPassword, nil
}

// RequestPasswordReset persists a reset token for the account email.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*repository.PasswordResetToken, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	token := &repository.PasswordResetToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return nil, apperrors.MapError(err)
	}
	return token, nil
}

// ConfirmPasswordReset validates the reset token and updates the password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, tokenStr, newPassword string) error {
	token, err := s.resets.GetByToken(ctx, tokenStr)
	if err != nil {
		return apperrors.MapError(err)
	}
	if token.UsedAt != nil || time.Now().After(token.ExpiresAt) {
		return apperrors.NewValidationError("token expired or used", nil)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	user, err := s.users.GetByID(ctx, token.UserID)
	if err != nil {
		return apperrors.MapError(err)
	}
	user.PasswordHash = hash
	user.MustChangePassword = false
	if err := s.users.Update(ctx, user); err != nil {
		return apperrors.MapError(err)
	}

	return s.resets.MarkUsed(ctx, token.ID)
}

// ChangePassword verifies the current password before updating to new hash.
func (s *AuthService) ChangePassword(ctx context.Context, user *domain.User, currentPassword, newPassword string) error {
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized("invalid credentials")
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	user.PasswordHash = hash
	user.MustChangePassword = false
	return s.users.Update(ctx, user)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) finishLogin(user *domain.User) (*LoginResult, error) {
	token, exp, err := s.tokenMgr.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &LoginResult{
		User:         user,
		Token:        token,
		ExpiresAt:    exp,
		Stage:        auth.StageAccess,
		RedirectPath: auth.PostLoginPath(user.Role, user.Status),
	}, nil
}

func (s *AuthService) availableMethods(ctx context.Context, userID string) []domain.MFAMethod {
	methods := []domain.MFAMethod{domain.MFAMethodEmail}
	settings, err := s.mfaSettings.GetByUserID(ctx, userID)
	if err != nil {
		return methods
	}
	if settings.TOTPEnabled {
		methods = append([]domain.MFAMethod{domain.MFAMethodTOTP}, methods...)
	}
	if len(settings.BackupCodes) > 0 {
		methods = append(methods, domain.MFAMethodBackup)
	}
	return methods
}

func (s *AuthService) publish(ctx context.Context, actor *domain.User, eventType events.EventType, subjectID string, payload any) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Actor:     events.Actor{UserID: actor.ID, Role: actor.Role},
		Timestamp: time.Now(),
		Payload:   payload,
	}
	_ = s.dispatcher.Publish(ctx, event)
}
