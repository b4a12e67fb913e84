package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/events"
	"github.com/spec-kit/staffing-service/internal/repository"
	apperrors "github.com/spec-kit/staffing-service/pkg/util"
)

// AssignmentService manages event team membership.
type AssignmentService struct {
	assignments repository.AssignmentRepository
	eventsRepo  repository.EventRepository
	users       repository.UserRepository
	dispatcher  events.Dispatcher
}

// AssignmentDependencies encapsulates requirements for the assignment service.
type AssignmentDependencies struct {
	AssignmentRepo repository.AssignmentRepository
	EventRepo      repository.EventRepository
	UserRepo       repository.UserRepository
	Dispatcher     events.Dispatcher
}

// NewAssignmentService builds the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	return &AssignmentService{
		assignments: deps.AssignmentRepo,
		eventsRepo:  deps.EventRepo,
		users:       deps.UserRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// Assign places a vendor on an event team. Duplicate assignments for the
// same event and vendor are rejected.
func (s *AssignmentService) Assign(ctx context.Context, actor *domain.User, eventID, vendorID, position string) (*domain.Assignment, error) {
	event, err := s.eventsRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if event.Status == domain.EventStatusCanceled || event.Status == domain.EventStatusCompleted {
		return nil, apperrors.NewConflict("event is not open for staffing", map[string]any{"status": event.Status})
	}

	vendor, err := s.users.GetByID(ctx, vendorID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if vendor.Role != domain.RoleVendor {
		return nil, apperrors.NewValidationError("only vendors can be assigned", nil)
	}
	if vendor.Status != domain.UserStatusActive {
		return nil, apperrors.NewValidationError("vendor is not active", map[string]any{"status": vendor.Status})
	}

	if _, err := s.assignments.GetByEventAndVendor(ctx, eventID, vendorID); err == nil {
		return nil, apperrors.NewConflict("vendor already assigned to event", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	assignment := &domain.Assignment{
		EventID:  eventID,
		VendorID: vendorID,
		Position: position,
		Status:   domain.AssignmentStatusAssigned,
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, actor, events.EventShiftAssigned, assignment.ID, events.ShiftAssignedPayload{
		EventID:  eventID,
		VendorID: vendorID,
		Position: position,
	})
	return assignment, nil
}

// Confirm records the vendor's acceptance of their own assignment.
func (s *AssignmentService) Confirm(ctx context.Context, vendor *domain.User, assignmentID string) (*domain.Assignment, error) {
	return s.respond(ctx, vendor, assignmentID, domain.AssignmentStatusConfirmed)
}

// Decline records the vendor's refusal of their own assignment.
func (s *AssignmentService) Decline(ctx context.Context, vendor *domain.User, assignmentID string) (*domain.Assignment, error) {
	return s.respond(ctx, vendor, assignmentID, domain.AssignmentStatusDeclined)
}

func (s *AssignmentService) respond(ctx context.Context, vendor *domain.User, assignmentID string, status domain.AssignmentStatus) (*domain.Assignment, error) {
	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if assignment.VendorID != vendor.ID {
		return nil, apperrors.NewForbidden("assignment belongs to another vendor")
	}
	if assignment.Status != domain.AssignmentStatusAssigned {
		return nil, apperrors.NewConflict("assignment already responded to", map[string]any{"status": assignment.Status})
	}

	assignment.Status = status
	if err := s.assignments.Update(ctx, assignment); err != nil {
		return nil, apperrors.MapError(err)
	}
	return assignment, nil
}

// MarkNoShow flags a confirmed vendor who never checked in.
func (s *AssignmentService) MarkNoShow(ctx context.Context, assignmentID string) (*domain.Assignment, error) {
	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if assignment.Status == domain.AssignmentStatusCheckedIn {
		return nil, apperrors.NewConflict("vendor already checked in", nil)
	}
	assignment.Status = domain.AssignmentStatusNoShow
	if err := s.assignments.Update(ctx, assignment); err != nil {
		return nil, apperrors.MapError(err)
	}
	return assignment, nil
}

// ListTeam returns all assignments for an event.
func (s *AssignmentService) ListTeam(ctx context.Context, eventID string) ([]domain.Assignment, error) {
	result, err := s.assignments.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// ListSchedule returns all assignments for a vendor, newest first.
func (s *AssignmentService) ListSchedule(ctx context.Context, vendorID string) ([]domain.Assignment, error) {
	result, err := s.assignments.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

func (s *AssignmentService) publish(ctx context.Context, actor *domain.User, eventType events.EventType, subjectID string, payload any) {
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
