package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/staffing-service/internal/config"
	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/events"
	"github.com/spec-kit/staffing-service/internal/repository"
	apperrors "github.com/spec-kit/staffing-service/pkg/util"
)

const (
	checkinCodeLength    = 8
	checkinCodeChars     = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	checkinCodeKeyPrefix = "checkin:code:"
)

// CheckinResult reports a successful redemption.
type CheckinResult struct {
	Assignment *domain.Assignment
	Event      *domain.Event
	Timing     domain.CheckinTiming
}

// CheckinService issues event check-in codes and redeems them.
type CheckinService struct {
	codes       repository.CheckinCodeRepository
	eventsRepo  repository.EventRepository
	assignments repository.AssignmentRepository
	cache       *redis.Client
	dispatcher  events.Dispatcher
	codeTTL     time.Duration
}

// CheckinDependencies encapsulates requirements for the check-in service.
type CheckinDependencies struct {
	CheckinCodeRepo repository.CheckinCodeRepository
	EventRepo       repository.EventRepository
	AssignmentRepo  repository.AssignmentRepository
	Cache           *redis.Client
	Dispatcher      events.Dispatcher
}

// NewCheckinService builds the service.
func NewCheckinService(cfg config.Config, deps CheckinDependencies) *CheckinService {
	return &CheckinService{
		codes:       deps.CheckinCodeRepo,
		eventsRepo:  deps.EventRepo,
		assignments: deps.AssignmentRepo,
		cache:       deps.Cache,
		dispatcher:  deps.Dispatcher,
		codeTTL:     cfg.Checkin.CodeTTL(),
	}
}

// IssueCode creates a fresh check-in code for an event, revoking any code
// still active. The code is mirrored in Redis for cheap lookup at the door.
func (s *CheckinService) IssueCode(ctx context.Context, actor *domain.User, eventID string) (*domain.CheckinCode, error) {
	event, err := s.eventsRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if event.Status == domain.EventStatusCanceled || event.Status == domain.EventStatusCompleted {
		return nil, apperrors.NewConflict("event is not open for check-in", map[string]any{"status": event.Status})
	}

	if active, err := s.codes.GetActiveByEvent(ctx, eventID); err == nil {
		if err := s.codes.Revoke(ctx, active.ID); err != nil {
			return nil, apperrors.MapError(err)
		}
		s.uncache(ctx, active.Code)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	codeStr, err := randomCheckinCode()
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	code := &domain.CheckinCode{
		EventID:   eventID,
		Code:      codeStr,
		IssuedBy:  actor.ID,
		ExpiresAt: time.Now().Add(s.codeTTL),
	}
	if err := s.codes.Create(ctx, code); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, checkinCodeKeyPrefix+codeStr, eventID, s.codeTTL).Err(); err != nil {
			return nil, apperrors.NewInternalError(fmt.Errorf("cache check-in code: %w", err))
		}
	}
	return code, nil
}

// ActiveCode returns the currently redeemable code for an event.
func (s *CheckinService) ActiveCode(ctx context.Context, eventID string) (*domain.CheckinCode, error) {
	code, err := s.codes.GetActiveByEvent(ctx, eventID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return code, nil
}

// RevokeCode invalidates a code before its natural expiry.
func (s *CheckinService) RevokeCode(ctx context.Context, eventID string) error {
	code, err := s.codes.GetActiveByEvent(ctx, eventID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := s.codes.Revoke(ctx, code.ID); err != nil {
		return apperrors.MapError(err)
	}
	s.uncache(ctx, code.Code)
	return nil
}

// Redeem checks a vendor in with the presented code, classifying the
// check-in as on time or late against the event's grace window.
func (s *CheckinService) Redeem(ctx context.Context, vendor *domain.User, codeStr string) (*CheckinResult, error) {
	eventID, err := s.lookupEventID(ctx, codeStr)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	event, err := s.eventsRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	timing, err := ClassifyCheckin(event, now)
	if err != nil {
		return nil, err
	}

	assignment, err := s.assignments.GetByEventAndVendor(ctx, event.ID, vendor.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewForbidden("vendor is not assigned to this event")
		}
		return nil, apperrors.MapError(err)
	}
	switch assignment.Status {
	case domain.AssignmentStatusAssigned, domain.AssignmentStatusConfirmed:
	case domain.AssignmentStatusCheckedIn:
		return nil, apperrors.NewConflict("already checked in", nil)
	default:
		return nil, apperrors.NewConflict("assignment cannot check in", map[string]any{"status": assignment.Status})
	}

	assignment.Status = domain.AssignmentStatusCheckedIn
	assignment.CheckedInAt = &now
	assignment.CheckinTiming = &timing
	if err := s.assignments.Update(ctx, assignment); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, vendor, events.EventVendorCheckedIn, assignment.ID, events.VendorCheckedInPayload{
		EventID:  event.ID,
		VendorID: vendor.ID,
		Timing:   timing,
	})
	return &CheckinResult{Assignment: assignment, Event: event, Timing: timing}, nil
}

// ClassifyCheckin validates the check-in moment against the event window.
// Check-in opens a configured number of minutes before start; arrivals past
// the grace window are late; arrivals after the event ends are rejected.
func ClassifyCheckin(event *domain.Event, now time.Time) (domain.CheckinTiming, error) {
	if now.Before(event.CheckinOpensAt()) {
		return "", apperrors.NewValidationError("check-in has not opened yet", map[string]any{
			"opens_at": event.CheckinOpensAt(),
		})
	}
	if now.After(event.EndsAt) {
		return "", apperrors.NewValidationError("event has ended", map[string]any{
			"ended_at": event.EndsAt,
		})
	}
	if now.After(event.LateAfter()) {
		return domain.CheckinLate, nil
	}
	return domain.CheckinOnTime, nil
}

// lookupEventID resolves a presented code to its event. The Redis mirror is
// the fast path; revocation deletes the key and the TTL matches the code
// lifetime, so a hit is always redeemable. Misses fall back to Postgres.
func (s *CheckinService) lookupEventID(ctx context.Context, codeStr string) (string, error) {
	if s.cache != nil {
		if eventID, err := s.cache.Get(ctx, checkinCodeKeyPrefix+codeStr).Result(); err == nil {
			return eventID, nil
		}
	}
	code, err := s.codes.GetByCode(ctx, codeStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewNotFound("check-in code", nil)
		}
		return "", apperrors.MapError(err)
	}
	if !code.Usable(time.Now()) {
		return "", apperrors.NewValidationError("check-in code expired or revoked", nil)
	}
	return code.EventID, nil
}

func (s *CheckinService) uncache(ctx context.Context, codeStr string) {
	if s.cache != nil {
		s.cache.Del(ctx, checkinCodeKeyPrefix+codeStr)
	}
}

func (s *CheckinService) publish(ctx context.Context, actor *domain.User, eventType events.EventType, subjectID string, payload any) {
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

func randomCheckinCode() (string, error) {
	buf := make([]byte, checkinCodeLength)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(checkinCodeChars))))
		if err != nil {
			return "", fmt.Errorf("random check-in code: %w", err)
		}
		buf[i] = checkinCodeChars[idx.Int64()]
	}
	return string(buf), nil
}
