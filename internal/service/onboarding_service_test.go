package service

import (
	"bytes"
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/staffing-service/internal/config"
	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/repository"
	apperrors "github.com/spec-kit/staffing-service/pkg/util"
)

func onboardingConfig() config.Config {
	cfg := testConfig()
	cfg.Auth.BcryptCost = bcrypt.MinCost
	cfg.Storage = config.StorageConfig{
		UploadDir:     "uploads",
		MaxPhotoBytes: 5 * 1024 * 1024,
		MaxDocBytes:   10 * 1024 * 1024,
	}
	return cfg
}

type onboardingFixture struct {
	svc      *OnboardingService
	users    *fakeUserRepo
	profiles *fakeProfileRepo
	docs     *fakeDocumentRepo
	admin    *domain.User
}

func newOnboardingFixture(t *testing.T) *onboardingFixture {
	t.Helper()
	users := newFakeUserRepo()
	profiles := newFakeProfileRepo()
	docs := newFakeDocumentRepo()
	svc := NewOnboardingService(onboardingConfig(), OnboardingDependencies{
		UserRepo:     users,
		ProfileRepo:  profiles,
		DocumentRepo: docs,
		FileStore:    newFakeFileStore(),
	})
	admin := seedUser(t, users, "admin@example.com", "hunter2!", domain.RoleAdmin, false)
	return &onboardingFixture{svc: svc, users: users, profiles: profiles, docs: docs, admin: admin}
}

func (f *onboardingFixture) createVendor(t *testing.T) *CreatedVendor {
	t.Helper()
	created, err := f.svc.CreateVendor(context.Background(), f.admin, CreateVendorInput{
		Name:  "New Vendor",
		Email: "new@example.com",
	})
	if err != nil {
		t.Fatalf("create vendor: %v", err)
	}
	return created
}

func TestCreateVendorStartsPendingWithTempPassword(t *testing.T) {
	t.Parallel()

	f := newOnboardingFixture(t)
	created := f.createVendor(t)

	if created.User.Status != domain.UserStatusPendingOnboarding {
		t.Fatalf("status = %s, want %s", created.User.Status, domain.UserStatusPendingOnboarding)
	}
	if !created.User.MustChangePassword {
		t.Fatal("new accounts must change the temp password")
	}
	if created.TempPassword == "" {
		t.Fatal("expected a temp password")
	}

	profile, err := f.profiles.GetByUserID(context.Background(), created.User.ID)
	if err != nil {
		t.Fatalf("profile should exist: %v", err)
	}
	if profile.BackgroundCheck != domain.BackgroundCheckPending {
		t.Fatalf("background check = %s, want PENDING", profile.BackgroundCheck)
	}
}

func TestCreateVendorRejectsDuplicateEmail(t *testing.T) {
	t.Parallel()

	f := newOnboardingFixture(t)
	f.createVendor(t)

	if _, err := f.svc.CreateVendor(context.Background(), f.admin, CreateVendorInput{
		Name:  "Other",
		Email: "new@example.com",
	}); err == nil {
		t.Fatal("expected duplicate email to fail")
	}
}

func TestCreateVendorRequiresAdmin(t *testing.T) {
	t.Parallel()

	f := newOnboardingFixture(t)
	manager := seedUser(t, f.users, "manager@example.com", "hunter2!", domain.RoleManager, false)

	if _, err := f.svc.CreateVendor(context.Background(), manager, CreateVendorInput{
		Name:  "V",
		Email: "v@example.com",
	}); err == nil {
		t.Fatal("expected non-admin create to fail")
	}
}

func TestUploadPhotoRejectsOversizedFile(t *testing.T) {
	t.Parallel()

	f := newOnboardingFixture(t)
	created := f.createVendor(t)

	oversized := bytes.Repeat([]byte{0xFF}, 5*1024*1024+1)
	_, err := f.svc.UploadPhoto(context.Background(), created.User, "huge.jpg", oversized)
	if err == nil {
		t.Fatal("expected oversized photo to fail")
	}
	domainErr := apperrors.ToDomainError(err)
	if domainErr.HTTPStatus != 400 {
		t.Fatalf("status = %d, want 400", domainErr.HTTPStatus)
	}
}

func TestUploadPhotoStoresKey(t *testing.T) {
	t.Parallel()

	f := newOnboardingFixture(t)
	created := f.createVendor(t)

	profile, err := f.svc.UploadPhoto(context.Background(), created.User, "me.jpg", []byte("jpeg-bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if profile.PhotoKey == nil {
		t.Fatal("expected a photo key")
	}
}

func TestActivateVendorReportsMissingRequirements(t *testing.T) {
	t.Parallel()

	f := newOnboardingFixture(t)
	created := f.createVendor(t)

	_, err := f.svc.ActivateVendor(context.Background(), f.admin, created.User.ID)
	if err == nil {
		t.Fatal("expected activation to fail before onboarding completes")
	}
	domainErr := apperrors.ToDomainError(err)
	missing, ok := domainErr.Details["missing"].([]string)
	if !ok {
		t.Fatalf("details should list missing requirements, got %v", domainErr.Details)
	}
	want := map[string]bool{"contact_details": true, "region": true, "photo": true, "background_check": true, "i9_document": true}
	for _, item := range missing {
		if !want[item] {
			t.Fatalf("unexpected missing requirement %q", item)
		}
	}
	if len(missing) != len(want) {
		t.Fatalf("missing = %v, want all five requirements", missing)
	}
}

func TestActivateVendorSucceedsWhenRequirementsMet(t *testing.T) {
	t.Parallel()

	f := newOnboardingFixture(t)
	created := f.createVendor(t)
	ctx := context.Background()

	region := "region-1"
	if _, err := f.svc.UpdateProfile(ctx, created.User, ProfileInput{
		Phone:    "555-0100",
		Address:  "1 Main St",
		RegionID: &region,
	}); err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if _, err := f.svc.UploadPhoto(ctx, created.User, "me.jpg", []byte("jpeg-bytes")); err != nil {
		t.Fatalf("upload photo: %v", err)
	}
	if _, err := f.svc.SetBackgroundCheck(ctx, f.admin, created.User.ID, domain.BackgroundCheckClear); err != nil {
		t.Fatalf("set background check: %v", err)
	}
	if err := f.docs.Create(ctx, &domain.Document{
		UserID: created.User.ID,
		Type:   domain.DocumentTypeI9,
		Status: domain.DocumentStatusApproved,
	}); err != nil {
		t.Fatalf("seed i9: %v", err)
	}

	user, err := f.svc.ActivateVendor(ctx, f.admin, created.User.ID)
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	if user.Status != domain.UserStatusActive {
		t.Fatalf("status = %s, want ACTIVE", user.Status)
	}

	profile, err := f.profiles.GetByUserID(ctx, created.User.ID)
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if profile.HireDate == nil {
		t.Fatal("activation should stamp the hire date")
	}
}

func TestActivateVendorBlockedByFlaggedCheck(t *testing.T) {
	t.Parallel()

	f := newOnboardingFixture(t)
	created := f.createVendor(t)
	ctx := context.Background()

	region := "region-1"
	if _, err := f.svc.UpdateProfile(ctx, created.User, ProfileInput{Phone: "555-0100", Address: "1 Main St", RegionID: &region}); err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if _, err := f.svc.UploadPhoto(ctx, created.User, "me.jpg", []byte("jpeg-bytes")); err != nil {
		t.Fatalf("upload photo: %v", err)
	}
	if _, err := f.svc.SetBackgroundCheck(ctx, f.admin, created.User.ID, domain.BackgroundCheckFlagged); err != nil {
		t.Fatalf("set background check: %v", err)
	}
	if err := f.docs.Create(ctx, &domain.Document{UserID: created.User.ID, Type: domain.DocumentTypeI9, Status: domain.DocumentStatusApproved}); err != nil {
		t.Fatalf("seed i9: %v", err)
	}

	if _, err := f.svc.ActivateVendor(ctx, f.admin, created.User.ID); err == nil {
		t.Fatal("expected flagged background check to block activation")
	}
}

func TestListUsersFiltersByRole(t *testing.T) {
	t.Parallel()

	f := newOnboardingFixture(t)
	f.createVendor(t)

	role := domain.RoleVendor
	users, err := f.svc.ListUsers(context.Background(), f.admin, repository.UserFilter{Role: &role})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("users = %d, want 1", len(users))
	}
	if users[0].Role != domain.RoleVendor {
		t.Fatalf("role = %s, want %s", users[0].Role, domain.RoleVendor)
	}

	vendor := users[0]
	if _, err := f.svc.ListUsers(context.Background(), &vendor, repository.UserFilter{}); err == nil {
		t.Fatal("expected non-admin listing to fail")
	}
}
