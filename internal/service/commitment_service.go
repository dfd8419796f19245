package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/halcyonlab/agenda-api/internal/dto"
	"github.com/halcyonlab/agenda-api/internal/models"
	appErrors "github.com/halcyonlab/agenda-api/pkg/errors"
)

type commitmentRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Commitment, error)
	GetByID(ctx context.Context, id string) (*models.Commitment, error)
	Create(ctx context.Context, commitment *models.Commitment) error
	Update(ctx context.Context, commitment *models.Commitment) error
	Delete(ctx context.Context, userID, id string) error
}

// CommitmentService manages long-term goals.
type CommitmentService struct {
	repo      commitmentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCommitmentService constructs the service.
func NewCommitmentService(repo commitmentRepository, validate *validator.Validate, logger *zap.Logger) *CommitmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommitmentService{repo: repo, validator: validate, logger: logger}
}

// List returns the user's commitments.
func (s *CommitmentService) List(ctx context.Context, userID string) ([]models.Commitment, error) {
	commitments, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list commitments")
	}
	return commitments, nil
}

// Get returns one commitment, scoped to the user.
func (s *CommitmentService) Get(ctx context.Context, userID, id string) (*models.Commitment, error) {
	commitment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "commitment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get commitment")
	}
	if commitment.UserID != userID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "commitment not found")
	}
	return commitment, nil
}

// Create registers a new commitment.
func (s *CommitmentService) Create(ctx context.Context, userID string, req dto.CreateCommitmentRequest) (*models.Commitment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if err := checkCommitmentDates(req.StartDate, req.TargetDate); err != nil {
		return nil, err
	}

	commitment := &models.Commitment{
		UserID:                userID,
		Title:                 req.Title,
		WeeklyCommitmentHours: req.WeeklyCommitmentHours,
		TargetDate:            req.TargetDate,
		Status:                models.CommitmentActive,
	}
	if req.StartDate != nil {
		commitment.StartDate = *req.StartDate
	}
	if err := s.repo.Create(ctx, commitment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create commitment")
	}
	return commitment, nil
}

// Update modifies a commitment.
func (s *CommitmentService) Update(ctx context.Context, userID, id string, req dto.UpdateCommitmentRequest) (*models.Commitment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if err := checkCommitmentDates(req.StartDate, req.TargetDate); err != nil {
		return nil, err
	}

	commitment, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	commitment.Title = req.Title
	commitment.WeeklyCommitmentHours = req.WeeklyCommitmentHours
	if req.StartDate != nil {
		commitment.StartDate = *req.StartDate
	}
	commitment.TargetDate = req.TargetDate
	commitment.Status = models.CommitmentStatus(req.Status)
	if err := s.repo.Update(ctx, commitment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update commitment")
	}
	return commitment, nil
}

// Delete removes a commitment.
func (s *CommitmentService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete commitment")
	}
	return nil
}

func checkCommitmentDates(start, target *time.Time) error {
	if start != nil && target != nil && !target.After(*start) {
		return appErrors.Clone(appErrors.ErrValidation, "target_date must be after start_date")
	}
	return nil
}
