package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/halcyonlab/agenda-api/internal/dto"
	"github.com/halcyonlab/agenda-api/internal/models"
	appErrors "github.com/halcyonlab/agenda-api/pkg/errors"
)

type eventRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.CalendarEvent, error)
	GetByID(ctx context.Context, id string) (*models.CalendarEvent, error)
	Create(ctx context.Context, event *models.CalendarEvent) error
	Update(ctx context.Context, event *models.CalendarEvent) error
	Delete(ctx context.Context, userID, id string) error
	ReplaceAll(ctx context.Context, userID string, events []models.CalendarEvent) error
}

type commitmentChecker interface {
	GetByID(ctx context.Context, id string) (*models.Commitment, error)
}

// EventService manages personal-origin events. Malformed records fail fast
// here at the boundary; nothing invalid reaches the timeline or calculators.
type EventService struct {
	repo        eventRepository
	commitments commitmentChecker
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewEventService constructs the service.
func NewEventService(repo eventRepository, commitments commitmentChecker, validate *validator.Validate, logger *zap.Logger) *EventService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{repo: repo, commitments: commitments, validator: validate, logger: logger}
}

// List returns the user's personal events.
func (s *EventService) List(ctx context.Context, userID string) ([]models.CalendarEvent, error) {
	events, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}
	return events, nil
}

// Get returns one personal event, scoped to the user.
func (s *EventService) Get(ctx context.Context, userID, id string) (*models.CalendarEvent, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get event")
	}
	if event.UserID != userID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
	}
	return event, nil
}

// Create registers a new personal event.
func (s *EventService) Create(ctx context.Context, userID string, req dto.CreateEventRequest) (*models.CalendarEvent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if !req.End.After(req.Start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end must be after start")
	}
	if err := s.checkGoalRef(ctx, userID, req.GoalRef); err != nil {
		return nil, err
	}

	category := req.Category
	if category == "" {
		category = models.CategoryPersonal
	}
	event := &models.CalendarEvent{
		UserID:   userID,
		Title:    req.Title,
		Start:    req.Start,
		End:      req.End,
		Origin:   models.OriginPersonal,
		Location: req.Location,
		Category: category,
		GoalRef:  req.GoalRef,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create event")
	}
	return event, nil
}

// Update modifies a personal event.
func (s *EventService) Update(ctx context.Context, userID, id string, req dto.UpdateEventRequest) (*models.CalendarEvent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if !req.End.After(req.Start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end must be after start")
	}
	if err := s.checkGoalRef(ctx, userID, req.GoalRef); err != nil {
		return nil, err
	}

	event, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	event.Title = req.Title
	event.Start = req.Start
	event.End = req.End
	event.Location = req.Location
	if req.Category != "" {
		event.Category = req.Category
	}
	event.GoalRef = req.GoalRef
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update event")
	}
	return event, nil
}

// Delete removes a personal event.
func (s *EventService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete event")
	}
	return nil
}

// checkGoalRef rejects links to commitments that do not exist or belong to a
// different user. An event links to at most one commitment.
func (s *EventService) checkGoalRef(ctx context.Context, userID string, goalRef *string) error {
	if goalRef == nil || *goalRef == "" {
		return nil
	}
	commitment, err := s.commitments.GetByID(ctx, *goalRef)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrValidation, "goal_ref does not reference a known commitment")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify goal reference")
	}
	if commitment.UserID != userID {
		return appErrors.Clone(appErrors.ErrValidation, "goal_ref does not reference a known commitment")
	}
	return nil
}
