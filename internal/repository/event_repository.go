package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/halcyonlab/agenda-api/internal/models"
)

const changeKindEvents = "events"

// EventRepository persists personal-origin calendar events. External events
// never pass through here; they are recomputed from the feed on every fetch.
type EventRepository struct {
	db       *sqlx.DB
	notifier *Notifier
}

// NewEventRepository constructs an event repository.
func NewEventRepository(db *sqlx.DB, notifier *Notifier) *EventRepository {
	return &EventRepository{db: db, notifier: notifier}
}

const eventColumns = "id, user_id, title, start_at, end_at, location, category, goal_ref, created_at, updated_at"

// ListByUser returns all personal events for the user ordered by start time.
func (r *EventRepository) ListByUser(ctx context.Context, userID string) ([]models.CalendarEvent, error) {
	query := fmt.Sprintf("SELECT %s FROM personal_events WHERE user_id = $1 ORDER BY start_at ASC, id ASC", eventColumns)
	var events []models.CalendarEvent
	if err := r.db.SelectContext(ctx, &events, query, userID); err != nil {
		return nil, fmt.Errorf("list personal events: %w", err)
	}
	for i := range events {
		events[i].Origin = models.OriginPersonal
	}
	return events, nil
}

// GetByID fetches a single personal event.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.CalendarEvent, error) {
	query := fmt.Sprintf("SELECT %s FROM personal_events WHERE id = $1", eventColumns)
	var event models.CalendarEvent
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		return nil, err
	}
	event.Origin = models.OriginPersonal
	return &event, nil
}

// Create inserts a personal event.
func (r *EventRepository) Create(ctx context.Context, event *models.CalendarEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	event.UpdatedAt = now
	const query = `INSERT INTO personal_events (id, user_id, title, start_at, end_at, location, category, goal_ref, created_at, updated_at)
VALUES (:id, :user_id, :title, :start_at, :end_at, :location, :category, :goal_ref, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("create personal event: %w", err)
	}
	r.publish(event.UserID)
	return nil
}

// Update modifies a personal event.
func (r *EventRepository) Update(ctx context.Context, event *models.CalendarEvent) error {
	event.UpdatedAt = time.Now().UTC()
	const query = `UPDATE personal_events SET title = :title, start_at = :start_at, end_at = :end_at,
location = :location, category = :category, goal_ref = :goal_ref, updated_at = :updated_at
WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("update personal event: %w", err)
	}
	r.publish(event.UserID)
	return nil
}

// Delete removes a personal event.
func (r *EventRepository) Delete(ctx context.Context, userID, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM personal_events WHERE id = $1 AND user_id = $2", id, userID); err != nil {
		return fmt.Errorf("delete personal event: %w", err)
	}
	r.publish(userID)
	return nil
}

// ReplaceAll atomically swaps the user's personal events for the given set.
// Used by bulk import; the timeline recomputes once afterwards.
func (r *EventRepository) ReplaceAll(ctx context.Context, userID string, events []models.CalendarEvent) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM personal_events WHERE user_id = $1", userID); err != nil {
		return fmt.Errorf("clear personal events: %w", err)
	}

	now := time.Now().UTC()
	const insert = `INSERT INTO personal_events (id, user_id, title, start_at, end_at, location, category, goal_ref, created_at, updated_at)
VALUES (:id, :user_id, :title, :start_at, :end_at, :location, :category, :goal_ref, :created_at, :updated_at)`
	for i := range events {
		ev := events[i]
		ev.UserID = userID
		if ev.ID == "" {
			ev.ID = uuid.NewString()
		}
		if ev.CreatedAt.IsZero() {
			ev.CreatedAt = now
		}
		ev.UpdatedAt = now
		if _, err := tx.NamedExecContext(ctx, insert, ev); err != nil {
			return fmt.Errorf("insert personal event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	r.publish(userID)
	return nil
}

func (r *EventRepository) publish(userID string) {
	if r.notifier != nil {
		r.notifier.Publish(Change{Kind: changeKindEvents, UserID: userID})
	}
}
