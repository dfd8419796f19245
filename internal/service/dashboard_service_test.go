package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/halcyonlab/agenda-api/internal/dto"
	"github.com/halcyonlab/agenda-api/internal/models"
)

type fakeGoalProgress struct {
	reports []dto.GoalProgress
	err     error
}

func (f *fakeGoalProgress) ProgressAll(context.Context, string) ([]dto.GoalProgress, error) {
	return f.reports, f.err
}

func TestDashboardServiceComposesSummary(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	weekStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	events := []models.CalendarEvent{
		// Last week, already over: counts nowhere.
		{ID: "old", Title: "Old", Start: weekStart.Add(-48 * time.Hour), End: weekStart.Add(-47 * time.Hour)},
		// Earlier this week: busy time but not upcoming.
		{ID: "done", Title: "Done", Start: weekStart.Add(9 * time.Hour), End: weekStart.Add(10 * time.Hour)},
		// Later today: busy and upcoming.
		{ID: "next", Title: "Next", Start: now.Add(2 * time.Hour), End: now.Add(3 * time.Hour)},
	}

	svc := NewDashboardService(
		&fakeTimeline{events: events},
		&fakeGoalProgress{reports: []dto.GoalProgress{{CommitmentID: "goal-1", ProgressPercent: 40}}},
		nil,
		DashboardServiceConfig{},
		zap.NewNop(),
	)
	svc.now = func() time.Time { return now }

	summary, cached, err := svc.Summary(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, cached)

	require.Len(t, summary.UpcomingEvents, 1)
	assert.Equal(t, "Next", summary.UpcomingEvents[0].Title)
	assert.Equal(t, 120, summary.WeekBusyMinutes)
	require.Len(t, summary.Goals, 1)
	assert.Equal(t, "goal-1", summary.Goals[0].CommitmentID)
}

func TestDashboardServiceLimitsUpcoming(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	events := make([]models.CalendarEvent, 0, 8)
	for i := 0; i < 8; i++ {
		start := now.Add(time.Duration(i+1) * time.Hour)
		events = append(events, models.CalendarEvent{ID: start.Format(time.RFC3339), Start: start, End: start.Add(30 * time.Minute)})
	}

	svc := NewDashboardService(
		&fakeTimeline{events: events},
		&fakeGoalProgress{},
		nil,
		DashboardServiceConfig{UpcomingLimit: 3},
		zap.NewNop(),
	)
	svc.now = func() time.Time { return now }

	summary, _, err := svc.Summary(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, summary.UpcomingEvents, 3)
}

func TestDashboardServiceCachesSummary(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	cacheSvc := NewCacheService(&stubCacheRepo{}, nil, time.Minute, zap.NewNop(), true)
	timeline := &fakeTimeline{events: []models.CalendarEvent{
		{ID: "e1", Title: "Gym", Start: now.Add(time.Hour), End: now.Add(2 * time.Hour)},
	}}

	svc := NewDashboardService(timeline, &fakeGoalProgress{}, cacheSvc, DashboardServiceConfig{}, zap.NewNop())
	svc.now = func() time.Time { return now }

	_, cached, err := svc.Summary(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, cached)

	// Second call is answered from cache even if the timeline changed.
	timeline.events = nil
	summary, cached, err := svc.Summary(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Len(t, summary.UpcomingEvents, 1)
}
