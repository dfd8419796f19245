package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/halcyonlab/agenda-api/internal/dto"
	"github.com/halcyonlab/agenda-api/internal/models"
)

type goalProgressProvider interface {
	ProgressAll(ctx context.Context, userID string) ([]dto.GoalProgress, error)
}

// DashboardServiceConfig tunes dashboard composition.
type DashboardServiceConfig struct {
	CacheTTL      time.Duration
	UpcomingLimit int
}

// DashboardService composes the landing-page payload: the next few events,
// per-goal progress and this week's booked time.
type DashboardService struct {
	timeline timelineProvider
	goals    goalProgressProvider
	cache    *CacheService
	logger   *zap.Logger
	now      func() time.Time
	cfg      DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(timeline timelineProvider, goals goalProgressProvider, cache *CacheService, cfg DashboardServiceConfig, logger *zap.Logger) *DashboardService {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Minute
	}
	if cfg.UpcomingLimit <= 0 {
		cfg.UpcomingLimit = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		timeline: timeline,
		goals:    goals,
		cache:    cache,
		logger:   logger,
		now:      time.Now,
		cfg:      cfg,
	}
}

// Summary returns the dashboard payload and whether it came from cache.
func (s *DashboardService) Summary(ctx context.Context, userID string) (*dto.DashboardResponse, bool, error) {
	cacheKey := fmt.Sprintf("dash:%s", userID)
	if s.cache != nil {
		var cached dto.DashboardResponse
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	events, err := s.timeline.Timeline(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	goals, err := s.goals.ProgressAll(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	now := s.now()
	weekStart := StartOfISOWeek(now)

	upcoming := make([]models.CalendarEvent, 0, s.cfg.UpcomingLimit)
	weekBusy := 0
	for _, ev := range events {
		if !ev.Start.Before(weekStart) {
			weekBusy += ev.DurationMinutes()
		}
		if ev.End.After(now) && len(upcoming) < s.cfg.UpcomingLimit {
			upcoming = append(upcoming, ev)
		}
	}

	summary := &dto.DashboardResponse{
		UpcomingEvents:  upcoming,
		Goals:           goals,
		WeekBusyMinutes: weekBusy,
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, summary, s.cfg.CacheTTL)
	}
	return summary, false, nil
}
