package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/staffing-service/internal/domain"
)

// EventRepository persists scheduled events.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	Update(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context, filter EventFilter) ([]domain.Event, error)
}

// EventFilter defines query params for event listing.
type EventFilter struct {
	VenueID   *string
	Status    *domain.EventStatus
	StartsFrom *time.Time
	StartsTo   *time.Time
	Limit     int
	Offset    int
}

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository constructs repository.
func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepository{pool: pool}
}

const eventColumns = "id, venue_id, name, starts_at, ends_at, checkin_opens_minutes, late_grace_minutes, staff_target, status, created_at, updated_at"

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var event domain.Event
	if err := row.Scan(
		&event.ID,
		&event.VenueID,
		&event.Name,
		&event.StartsAt,
		&event.EndsAt,
		&event.CheckinOpensMinutes,
		&event.LateGraceMinutes,
		&event.StaffTarget,
		&event.Status,
		&event.CreatedAt,
		&event.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	const query = `
        INSERT INTO events (venue_id, name, starts_at, ends_at, checkin_opens_minutes, late_grace_minutes, staff_target, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		event.VenueID,
		event.Name,
		event.StartsAt,
		event.EndsAt,
		event.CheckinOpensMinutes,
		event.LateGraceMinutes,
		event.StaffTarget,
		event.Status,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	const query = `
        UPDATE events
        SET venue_id=$1, name=$2, starts_at=$3, ends_at=$4, checkin_opens_minutes=$5, late_grace_minutes=$6, staff_target=$7, status=$8, updated_at=NOW()
        WHERE id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		event.VenueID,
		event.Name,
		event.StartsAt,
		event.EndsAt,
		event.CheckinOpensMinutes,
		event.LateGraceMinutes,
		event.StaffTarget,
		event.Status,
		event.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := "SELECT " + eventColumns + " FROM events WHERE id=$1"
	return scanEvent(r.pool.QueryRow(ctx, query, id))
}

func (r *eventRepository) List(ctx context.Context, filter EventFilter) ([]domain.Event, error) {
	query := "SELECT " + eventColumns + " FROM events"
	args := []any{}
	clauses := []string{}

	if filter.VenueID != nil {
		args = append(args, *filter.VenueID)
		clauses = append(clauses, fmt.Sprintf("venue_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.StartsFrom != nil {
		args = append(args, *filter.StartsFrom)
		clauses = append(clauses, fmt.Sprintf("starts_at>=$%d", len(args)))
	}
	if filter.StartsTo != nil {
		args = append(args, *filter.StartsTo)
		clauses = append(clauses, fmt.Sprintf("starts_at<=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY starts_at"
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *event)
	}
	return result, rows.Err()
}
