package service

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/halcyonlab/agenda-api/internal/dto"
	"github.com/halcyonlab/agenda-api/internal/models"
	appErrors "github.com/halcyonlab/agenda-api/pkg/errors"
)

// Goal progress status labels. Presentation only, never persisted.
const (
	GoalStatusOnTrack = "on_track"
	GoalStatusBehind  = "behind"
)

// GoalProgressConfig tunes the calculator.
type GoalProgressConfig struct {
	// DefaultHorizon substitutes for a missing target date.
	DefaultHorizon time.Duration
	// BehindThresholdRatio is the fraction of the weekly target below which
	// a goal reads "behind". The exact cutoff is a product knob, not a
	// derived business rule.
	BehindThresholdRatio float64
}

// StartOfISOWeek returns the most recent Monday 00:00 in the instant's
// location, on or before it. ISO week, not Sunday-start.
func StartOfISOWeek(now time.Time) time.Time {
	offset := (int(now.Weekday()) + 6) % 7
	d := now.AddDate(0, 0, -offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location())
}

// ComputeProgress measures linked effort against a commitment's lifetime
// expectation. Progress is lifetime-based on purpose: weekly under- or
// over-shoot stays visible through WeekMinutes against the weekly target,
// and must not replace the lifetime percentage.
func ComputeProgress(c models.Commitment, linked []models.CalendarEvent, now time.Time, cfg GoalProgressConfig) dto.GoalProgress {
	if cfg.DefaultHorizon <= 0 {
		cfg.DefaultHorizon = 90 * 24 * time.Hour
	}
	if cfg.BehindThresholdRatio <= 0 {
		cfg.BehindThresholdRatio = 1.0
	}

	weekStart := StartOfISOWeek(now)
	totalMinutes := 0
	weekMinutes := 0
	for _, ev := range linked {
		if ev.GoalRef == nil || *ev.GoalRef != c.ID {
			continue
		}
		mins := ev.DurationMinutes()
		totalMinutes += mins
		if !ev.Start.Before(weekStart) {
			weekMinutes += mins
		}
	}

	start := c.EffectiveStart()
	target := c.EffectiveTarget(cfg.DefaultHorizon)

	totalWeeks := int(math.Ceil(target.Sub(start).Hours() / (24 * 7)))
	if totalWeeks < 1 {
		totalWeeks = 1
	}

	// The floor of 1 keeps a zero-hour commitment safe to divide by; it does
	// not make such a commitment meaningful.
	expected := math.Max(1, float64(totalWeeks)*c.WeeklyCommitmentHours*60)

	percent := int(math.Round(float64(totalMinutes) / expected * 100))
	if percent > 100 {
		percent = 100
	}

	// Unclamped: negative means the target date already passed.
	daysLeft := int(math.Ceil(target.Sub(now).Hours() / 24))

	status := GoalStatusOnTrack
	if float64(weekMinutes) < cfg.BehindThresholdRatio*c.WeeklyCommitmentHours*60 {
		status = GoalStatusBehind
	}

	return dto.GoalProgress{
		CommitmentID:         c.ID,
		Title:                c.Title,
		TotalMinutes:         totalMinutes,
		WeekMinutes:          weekMinutes,
		ExpectedTotalMinutes: expected,
		ProgressPercent:      percent,
		DaysLeft:             daysLeft,
		Status:               status,
	}
}

type commitmentGetter interface {
	GetByID(ctx context.Context, id string) (*models.Commitment, error)
	ListByUser(ctx context.Context, userID string) ([]models.Commitment, error)
}

// GoalService resolves progress queries against the unified timeline.
type GoalService struct {
	commitments commitmentGetter
	timeline    timelineProvider
	logger      *zap.Logger
	cfg         GoalProgressConfig
	now         func() time.Time
}

// NewGoalService constructs the service.
func NewGoalService(commitments commitmentGetter, timeline timelineProvider, cfg GoalProgressConfig, logger *zap.Logger) *GoalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoalService{
		commitments: commitments,
		timeline:    timeline,
		logger:      logger,
		cfg:         cfg,
		now:         time.Now,
	}
}

// Progress computes the progress report for one commitment.
func (s *GoalService) Progress(ctx context.Context, userID, commitmentID string) (*dto.GoalProgress, error) {
	commitment, err := s.commitments.GetByID(ctx, commitmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "commitment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load commitment")
	}
	if commitment.UserID != userID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "commitment not found")
	}

	events, err := s.timeline.Timeline(ctx, userID)
	if err != nil {
		return nil, err
	}

	progress := ComputeProgress(*commitment, events, s.now(), s.cfg)
	return &progress, nil
}

// ProgressAll computes reports for every commitment the user tracks.
func (s *GoalService) ProgressAll(ctx context.Context, userID string) ([]dto.GoalProgress, error) {
	commitments, err := s.commitments.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list commitments")
	}

	events, err := s.timeline.Timeline(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]dto.GoalProgress, 0, len(commitments))
	for _, c := range commitments {
		out = append(out, ComputeProgress(c, events, now, s.cfg))
	}
	return out, nil
}
