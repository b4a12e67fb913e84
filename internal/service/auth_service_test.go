package service

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/staffing-service/internal/auth"
	"github.com/spec-kit/staffing-service/internal/config"
	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/events"
	"github.com/spec-kit/staffing-service/internal/mfa"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret",
			AccessTokenTTLMinutes:   60,
			PendingTokenTTLMinutes:  5,
			PasswordResetTTLMinutes: 30,
			BcryptCost:              bcrypt.MinCost,
		},
		MFA: config.MFAConfig{
			Issuer:              "staffing-test",
			EmailCodeTTLMinutes: 10,
			BackupCodeCount:     4,
		},
	}
}

func seedUser(t *testing.T, users *fakeUserRepo, email, password string, role domain.Role, mfaEnabled bool) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &domain.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       domain.UserStatusActive,
		MFAEnabled:   mfaEnabled,
	}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func newAuthServiceForTest(users *fakeUserRepo, settings *fakeMFARepo, codes *fakeCodeStore) *AuthService {
	return NewAuthService(testConfig(), AuthDependencies{
		UserRepo:          users,
		MFARepo:           settings,
		PasswordResetRepo: newFakeResetRepo(),
		CodeStore:         codes,
	})
}

func TestLoginWithoutMFAIssuesAccessToken(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	svc := newAuthServiceForTest(users, newFakeMFARepo(), newFakeCodeStore())
	seedUser(t, users, "vendor@example.com", "hunter2!", domain.RoleVendor, false)

	result, err := svc.Login(context.Background(), "vendor@example.com", "hunter2!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Stage != auth.StageAccess {
		t.Fatalf("stage = %s, want %s", result.Stage, auth.StageAccess)
	}
	if result.RedirectPath != "/schedule" {
		t.Fatalf("redirect = %s, want /schedule", result.RedirectPath)
	}
	if result.Token == "" {
		t.Fatal("expected a token")
	}
}

func TestLoginWithWrongPasswordFails(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	svc := newAuthServiceForTest(users, newFakeMFARepo(), newFakeCodeStore())
	seedUser(t, users, "vendor@example.com", "hunter2!", domain.RoleVendor, false)

	if _, err := svc.Login(context.Background(), "vendor@example.com", "wrong"); err == nil {
		t.Fatal("expected login to fail")
	}
}

func TestLoginSuspendedAccountRejected(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	svc := newAuthServiceForTest(users, newFakeMFARepo(), newFakeCodeStore())
	user := seedUser(t, users, "vendor@example.com", "hunter2!", domain.RoleVendor, false)
	user.Status = domain.UserStatusSuspended
	if err := users.Update(context.Background(), user); err != nil {
		t.Fatalf("suspend: %v", err)
	}

	if _, err := svc.Login(context.Background(), "vendor@example.com", "hunter2!"); err == nil {
		t.Fatal("expected suspended login to fail")
	}
}

func TestLoginWithMFAIssuesPendingToken(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	settings := newFakeMFARepo()
	svc := newAuthServiceForTest(users, settings, newFakeCodeStore())
	user := seedUser(t, users, "manager@example.com", "hunter2!", domain.RoleManager, true)

	_, hashed, err := mfa.GenerateBackupCodes(2)
	if err != nil {
		t.Fatalf("backup codes: %v", err)
	}
	if err := settings.Create(context.Background(), &domain.MFASettings{
		UserID:      user.ID,
		TOTPSecret:  "SECRET",
		TOTPEnabled: true,
		BackupCodes: hashed,
	}); err != nil {
		t.Fatalf("seed mfa: %v", err)
	}

	result, err := svc.Login(context.Background(), "manager@example.com", "hunter2!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Stage != auth.StageMFAPending {
		t.Fatalf("stage = %s, want %s", result.Stage, auth.StageMFAPending)
	}
	if result.RedirectPath != "" {
		t.Fatalf("pending login should not carry a redirect, got %s", result.RedirectPath)
	}
	if len(result.MFAMethods) != 3 {
		t.Fatalf("methods = %v, want totp, email and backup", result.MFAMethods)
	}
}

func TestVerifyMFAWithEmailCode(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	settings := newFakeMFARepo()
	codes := newFakeCodeStore()
	svc := newAuthServiceForTest(users, settings, codes)
	user := seedUser(t, users, "manager@example.com", "hunter2!", domain.RoleManager, true)
	if err := settings.Create(context.Background(), &domain.MFASettings{UserID: user.ID, TOTPSecret: "SECRET"}); err != nil {
		t.Fatalf("seed mfa: %v", err)
	}

	if err := svc.RequestEmailCode(context.Background(), user); err != nil {
		t.Fatalf("request code: %v", err)
	}

	result, err := svc.VerifyMFA(context.Background(), user, domain.MFAMethodEmail, "424242")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if result.Stage != auth.StageAccess {
		t.Fatalf("stage = %s, want %s", result.Stage, auth.StageAccess)
	}
	if result.RedirectPath != "/events" {
		t.Fatalf("redirect = %s, want /events", result.RedirectPath)
	}

	// Codes are single use.
	if _, err := svc.VerifyMFA(context.Background(), user, domain.MFAMethodEmail, "424242"); err == nil {
		t.Fatal("expected second verify to fail")
	}
}

func TestRequestEmailCodePublishesPlaintextCode(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	codes := newFakeCodeStore()
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewAuthService(testConfig(), AuthDependencies{
		UserRepo:          users,
		MFARepo:           newFakeMFARepo(),
		PasswordResetRepo: newFakeResetRepo(),
		CodeStore:         codes,
		Dispatcher:        dispatcher,
	})
	user := seedUser(t, users, "manager@example.com", "hunter2!", domain.RoleManager, true)

	var published []events.Event
	dispatcher.Subscribe(events.EventMFACodeRequested, func(_ context.Context, event events.Event) error {
		published = append(published, event)
		return nil
	})

	if err := svc.RequestEmailCode(context.Background(), user); err != nil {
		t.Fatalf("request code: %v", err)
	}

	if len(published) != 1 {
		t.Fatalf("published events = %d, want 1", len(published))
	}
	payload, ok := published[0].Payload.(events.MFACodeRequestedPayload)
	if !ok {
		t.Fatalf("payload type = %T, want MFACodeRequestedPayload", published[0].Payload)
	}
	if payload.Email != user.Email {
		t.Fatalf("payload email = %s, want %s", payload.Email, user.Email)
	}
	if payload.Code == "" {
		t.Fatal("payload should carry the plaintext code for delivery")
	}

	// The delivered code is the one the store verifies against.
	if err := codes.Verify(context.Background(), user.ID, payload.Code); err != nil {
		t.Fatalf("delivered code should verify: %v", err)
	}
}

func TestVerifyMFAConsumesBackupCode(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	settings := newFakeMFARepo()
	svc := newAuthServiceForTest(users, settings, newFakeCodeStore())
	user := seedUser(t, users, "manager@example.com", "hunter2!", domain.RoleManager, true)

	plain, hashed, err := mfa.GenerateBackupCodes(3)
	if err != nil {
		t.Fatalf("backup codes: %v", err)
	}
	if err := settings.Create(context.Background(), &domain.MFASettings{UserID: user.ID, TOTPSecret: "SECRET", BackupCodes: hashed}); err != nil {
		t.Fatalf("seed mfa: %v", err)
	}

	if _, err := svc.VerifyMFA(context.Background(), user, domain.MFAMethodBackup, plain[0]); err != nil {
		t.Fatalf("verify: %v", err)
	}

	stored, err := settings.GetByUserID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if len(stored.BackupCodes) != 2 {
		t.Fatalf("backup codes remaining = %d, want 2", len(stored.BackupCodes))
	}

	// A consumed code cannot be replayed.
	if _, err := svc.VerifyMFA(context.Background(), user, domain.MFAMethodBackup, plain[0]); err == nil {
		t.Fatal("expected replayed backup code to fail")
	}
}

func TestAdminResetPasswordForcesChange(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	svc := newAuthServiceForTest(users, newFakeMFARepo(), newFakeCodeStore())
	admin := seedUser(t, users, "admin@example.com", "hunter2!", domain.RoleAdmin, false)
	vendor := seedUser(t, users, "vendor@example.com", "hunter2!", domain.RoleVendor, false)

	tempPassword, err := svc.AdminResetPassword(context.Background(), admin, vendor.ID)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(tempPassword) != auth.TempPasswordLength {
		t.Fatalf("temp password length = %d, want %d", len(tempPassword), auth.TempPasswordLength)
	}

	updated, err := users.GetByID(context.Background(), vendor.ID)
	if err != nil {
		t.Fatalf("load vendor: %v", err)
	}
	if !updated.MustChangePassword {
		t.Fatal("expected must_change_password to be set")
	}
	if err := auth.ComparePassword(updated.PasswordHash, tempPassword); err != nil {
		t.Fatal("temp password should match the stored hash")
	}
}

func TestAdminResetPasswordRequiresAdmin(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	svc := newAuthServiceForTest(users, newFakeMFARepo(), newFakeCodeStore())
	manager := seedUser(t, users, "manager@example.com", "hunter2!", domain.RoleManager, false)
	vendor := seedUser(t, users, "vendor@example.com", "hunter2!", domain.RoleVendor, false)

	if _, err := svc.AdminResetPassword(context.Background(), manager, vendor.ID); err == nil {
		t.Fatal("expected non-admin reset to fail")
	}
}

func TestEnrollAndActivateTOTP(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	settings := newFakeMFARepo()
	svc := newAuthServiceForTest(users, settings, newFakeCodeStore())
	user := seedUser(t, users, "vendor@example.com", "hunter2!", domain.RoleVendor, false)

	enrollment, err := svc.EnrollTOTP(context.Background(), user)
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if enrollment.Secret == "" || enrollment.OTPAuthURL == "" {
		t.Fatal("enrollment should carry secret and otpauth url")
	}
	if len(enrollment.BackupCodes) != 4 {
		t.Fatalf("backup codes = %d, want 4", len(enrollment.BackupCodes))
	}

	// Enrollment alone must not turn MFA on.
	stored, err := settings.GetByUserID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if stored.TOTPEnabled {
		t.Fatal("totp should stay disabled until activation")
	}
	if user.MFAEnabled {
		t.Fatal("mfa should stay disabled until activation")
	}
}
