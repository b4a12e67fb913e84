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
	"github.com/spec-kit/staffing-service/internal/repository"
	"github.com/spec-kit/staffing-service/internal/storage"
	apperrors "github.com/spec-kit/staffing-service/pkg/util"
)

// CreateVendorInput holds account creation fields for a new vendor.
type CreateVendorInput struct {
	Name  string
	Email string
	Role  domain.Role
}

// CreatedVendor pairs the new account with its one-time temporary password.
type CreatedVendor struct {
	User         *domain.User
	TempPassword string
}

// ProfileInput carries updatable profile fields.
type ProfileInput struct {
	Phone     string
	Address   string
	RegionID  *string
	Latitude  *float64
	Longitude *float64
	HireDate  *time.Time
}

// OnboardingService manages vendor account creation and activation.
type OnboardingService struct {
	users      repository.UserRepository
	profiles   repository.ProfileRepository
	documents  repository.DocumentRepository
	files      storage.Store
	dispatcher events.Dispatcher
	bcryptCost int
	maxPhoto   int64
}

// OnboardingDependencies encapsulates requirements for the onboarding service.
type OnboardingDependencies struct {
	UserRepo     repository.UserRepository
	ProfileRepo  repository.ProfileRepository
	DocumentRepo repository.DocumentRepository
	FileStore    storage.Store
	Dispatcher   events.Dispatcher
}

// NewOnboardingService builds the service.
func NewOnboardingService(cfg config.Config, deps OnboardingDependencies) *OnboardingService {
	return &OnboardingService{
		users:      deps.UserRepo,
		profiles:   deps.ProfileRepo,
		documents:  deps.DocumentRepo,
		files:      deps.FileStore,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
		maxPhoto:   cfg.Storage.MaxPhotoBytes,
	}
}

// CreateVendor provisions a new account with a generated temporary password.
// The account starts in PENDING_ONBOARDING and must change the password at
// first login. The plaintext password is returned once for handoff.
func (s *OnboardingService) CreateVendor(ctx context.Context, actor *domain.User, input CreateVendorInput) (*CreatedVendor, error) {
	if actor == nil || actor.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("admin role required")
	}
	if input.Name == "" || input.Email == "" {
		return nil, apperrors.NewValidationError("name and email are required", nil)
	}
	role := input.Role
	if role == "" {
		role = domain.RoleVendor
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": input.Email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	tempPassword, err := auth.GenerateTempPassword()
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	hash, err := auth.HashPassword(tempPassword, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:               input.Name,
		Email:              input.Email,
		PasswordHash:       hash,
		Role:               role,
		Status:             domain.UserStatusPendingOnboarding,
		MustChangePassword: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	profile := &domain.Profile{
		UserID:          user.ID,
		BackgroundCheck: domain.BackgroundCheckPending,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, apperrors.MapError(err)
	}

	return &CreatedVendor{User: user, TempPassword: tempPassword}, nil
}

// GetProfile returns the profile for the given account.
func (s *OnboardingService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return profile, nil
}

// UpdateProfile applies contact and location details for the account.
func (s *OnboardingService) UpdateProfile(ctx context.Context, user *domain.User, input ProfileInput) (*domain.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	if input.Phone != "" {
		profile.Phone = input.Phone
	}
	if input.Address != "" {
		profile.Address = input.Address
	}
	if input.RegionID != nil {
		profile.RegionID = input.RegionID
	}
	if input.Latitude != nil {
		profile.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		profile.Longitude = input.Longitude
	}
	if input.HireDate != nil {
		profile.HireDate = input.HireDate
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, apperrors.MapError(err)
	}
	return profile, nil
}

// UploadPhoto stores a profile photo. Oversized uploads are rejected with a
// validation error rather than truncated.
func (s *OnboardingService) UploadPhoto(ctx context.Context, user *domain.User, fileName string, data []byte) (*domain.Profile, error) {
	if len(data) == 0 {
		return nil, apperrors.NewValidationError("photo file is empty", nil)
	}
	if int64(len(data)) > s.maxPhoto {
		return nil, apperrors.NewValidationError("photo exceeds size limit", map[string]any{
			"max_bytes": s.maxPhoto,
		})
	}

	profile, err := s.profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	key, err := s.files.Save("photos", fileName, data)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if profile.PhotoKey != nil {
		_ = s.files.Remove(*profile.PhotoKey)
	}
	profile.PhotoKey = &key

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, apperrors.MapError(err)
	}
	return profile, nil
}

// SetBackgroundCheck records the screening outcome for a vendor.
func (s *OnboardingService) SetBackgroundCheck(ctx context.Context, actor *domain.User, userID string, status domain.BackgroundCheckStatus) (*domain.Profile, error) {
	if actor == nil || actor.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("admin role required")
	}
	switch status {
	case domain.BackgroundCheckPending, domain.BackgroundCheckClear, domain.BackgroundCheckFlagged:
	default:
		return nil, apperrors.NewValidationError("unknown background check status", map[string]any{"status": status})
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	profile.BackgroundCheck = status
	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, apperrors.MapError(err)
	}
	return profile, nil
}

// ActivateVendor moves a pending vendor to ACTIVE once every onboarding
// requirement is satisfied. Each unmet requirement is reported by name.
func (s *OnboardingService) ActivateVendor(ctx context.Context, actor *domain.User, userID string) (*domain.User, error) {
	if actor == nil || actor.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("admin role required")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if user.Status == domain.UserStatusActive {
		return nil, apperrors.NewConflict("account already active", nil)
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	missing := s.missingRequirements(ctx, profile)
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("onboarding requirements not met", map[string]any{
			"missing": missing,
		})
	}

	user.Status = domain.UserStatusActive
	if profile.HireDate == nil {
		now := time.Now()
		profile.HireDate = &now
		if err := s.profiles.Update(ctx, profile); err != nil {
			return nil, apperrors.MapError(err)
		}
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, actor, events.EventVendorOnboarded, user.ID, events.VendorOnboardedPayload{
		VendorID: user.ID,
		Email:    user.Email,
	})
	return user, nil
}

// ListUsers returns the account directory matching the filter.
func (s *OnboardingService) ListUsers(ctx context.Context, actor *domain.User, filter repository.UserFilter) ([]domain.User, error) {
	if actor == nil || actor.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("admin role required")
	}
	users, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// SuspendVendor blocks the account from logging in.
func (s *OnboardingService) SuspendVendor(ctx context.Context, actor *domain.User, userID string) (*domain.User, error) {
	if actor == nil || actor.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("admin role required")
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	user.Status = domain.UserStatusSuspended
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

func (s *OnboardingService) missingRequirements(ctx context.Context, profile *domain.Profile) []string {
	var missing []string
	if profile.Phone == "" || profile.Address == "" {
		missing = append(missing, "contact_details")
	}
	if profile.RegionID == nil {
		missing = append(missing, "region")
	}
	if profile.PhotoKey == nil {
		missing = append(missing, "photo")
	}
	if profile.BackgroundCheck != domain.BackgroundCheckClear {
		missing = append(missing, "background_check")
	}

	i9, err := s.documents.GetLatestByUserAndType(ctx, profile.UserID, domain.DocumentTypeI9)
	if err != nil || i9.Status != domain.DocumentStatusApproved {
		missing = append(missing, "i9_document")
	}
	return missing
}

func (s *OnboardingService) publish(ctx context.Context, actor *domain.User, eventType events.EventType, subjectID string, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Actor:     events.Actor{UserID: actor.ID, Role: actor.Role},
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
