package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/mfa"
	"github.com/spec-kit/staffing-service/internal/repository"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context, filter repository.UserFilter) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.User
	for _, user := range r.users {
		if filter.Role != nil && user.Role != *filter.Role {
			continue
		}
		if filter.Status != nil && user.Status != *filter.Status {
			continue
		}
		result = append(result, *user)
	}
	return result, nil
}

type fakeMFARepo struct {
	mu       sync.Mutex
	settings map[string]*domain.MFASettings
}

func newFakeMFARepo() *fakeMFARepo {
	return &fakeMFARepo{settings: map[string]*domain.MFASettings{}}
}

func (r *fakeMFARepo) Create(_ context.Context, settings *domain.MFASettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	settings.ID = uuid.NewString()
	clone := *settings
	r.settings[settings.UserID] = &clone
	return nil
}

func (r *fakeMFARepo) Update(_ context.Context, settings *domain.MFASettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.settings[settings.UserID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *settings
	r.settings[settings.UserID] = &clone
	return nil
}

func (r *fakeMFARepo) GetByUserID(_ context.Context, userID string) (*domain.MFASettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	settings, ok := r.settings[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *settings
	clone.BackupCodes = append([]string(nil), settings.BackupCodes...)
	return &clone, nil
}

func (r *fakeMFARepo) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.settings, userID)
	return nil
}

type fakeResetRepo struct {
	mu     sync.Mutex
	tokens map[string]*repository.PasswordResetToken
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{tokens: map[string]*repository.PasswordResetToken{}}
}

func (r *fakeResetRepo) Create(_ context.Context, token *repository.PasswordResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	token.ID = uuid.NewString()
	token.CreatedAt = time.Now()
	clone := *token
	r.tokens[token.Token] = &clone
	return nil
}

func (r *fakeResetRepo) GetByToken(_ context.Context, tokenStr string) (*repository.PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[tokenStr]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *token
	return &clone, nil
}

func (r *fakeResetRepo) MarkUsed(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, token := range r.tokens {
		if token.ID == id {
			token.UsedAt = &now
		}
	}
	return nil
}

type fakeCodeStore struct {
	mu    sync.Mutex
	codes map[string]string
}

func newFakeCodeStore() *fakeCodeStore {
	return &fakeCodeStore{codes: map[string]string{}}
}

func (s *fakeCodeStore) Issue(_ context.Context, userID string, _ time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[userID] = "424242"
	return "424242", nil
}

func (s *fakeCodeStore) Verify(_ context.Context, userID, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.codes[userID]
	if !ok || stored != code {
		return mfa.ErrCodeMismatch
	}
	delete(s.codes, userID)
	return nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*domain.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*domain.Profile{}}
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile.ID = uuid.NewString()
	clone := *profile
	r.profiles[profile.UserID] = &clone
	return nil
}

func (r *fakeProfileRepo) Update(_ context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[profile.UserID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *profile
	r.profiles[profile.UserID] = &clone
	return nil
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *profile
	return &clone, nil
}

func (r *fakeProfileRepo) ListByRegion(_ context.Context, regionID string) ([]domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Profile
	for _, profile := range r.profiles {
		if profile.RegionID != nil && *profile.RegionID == regionID {
			result = append(result, *profile)
		}
	}
	return result, nil
}

type fakeDocumentRepo struct {
	mu   sync.Mutex
	docs map[string]*domain.Document
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: map[string]*domain.Document{}}
}

func (r *fakeDocumentRepo) Create(_ context.Context, doc *domain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc.ID = uuid.NewString()
	doc.CreatedAt = time.Now()
	clone := *doc
	r.docs[doc.ID] = &clone
	return nil
}

func (r *fakeDocumentRepo) Update(_ context.Context, doc *domain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[doc.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *doc
	r.docs[doc.ID] = &clone
	return nil
}

func (r *fakeDocumentRepo) GetByID(_ context.Context, id string) (*domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *doc
	return &clone, nil
}

func (r *fakeDocumentRepo) ListByUser(_ context.Context, userID string) ([]domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Document
	for _, doc := range r.docs {
		if doc.UserID == userID {
			result = append(result, *doc)
		}
	}
	return result, nil
}

func (r *fakeDocumentRepo) GetLatestByUserAndType(_ context.Context, userID string, docType domain.DocumentType) (*domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *domain.Document
	for _, doc := range r.docs {
		if doc.UserID != userID || doc.Type != docType {
			continue
		}
		if latest == nil || doc.CreatedAt.After(latest.CreatedAt) {
			latest = doc
		}
	}
	if latest == nil {
		return nil, pgx.ErrNoRows
	}
	clone := *latest
	return &clone, nil
}

type fakeFileStore struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{files: map[string][]byte{}}
}

func (s *fakeFileStore) Save(category, fileName string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := category + "/" + uuid.NewString() + "-" + fileName
	s.files[key] = append([]byte(nil), data...)
	return key, nil
}

func (s *fakeFileStore) Read(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[key]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return append([]byte(nil), data...), nil
}

func (s *fakeFileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, key)
	return nil
}
