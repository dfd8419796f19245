package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/halcyonlab/agenda-api/internal/feed"
	"github.com/halcyonlab/agenda-api/internal/models"
	"github.com/halcyonlab/agenda-api/internal/repository"
	appErrors "github.com/halcyonlab/agenda-api/pkg/errors"
)

type stubCacheRepo struct {
	store map[string][]byte
}

func (s *stubCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	if s.store == nil {
		return appErrors.ErrCacheMiss
	}
	payload, ok := s.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (s *stubCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if s.store == nil {
		s.store = make(map[string][]byte)
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.store[key] = payload
	return nil
}

func (s *stubCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range s.store {
		if strings.HasPrefix(key, prefix) {
			delete(s.store, key)
		}
	}
	return nil
}

type fakeEventLister struct {
	events []models.CalendarEvent
	err    error
}

func (f *fakeEventLister) ListByUser(context.Context, string) ([]models.CalendarEvent, error) {
	return f.events, f.err
}

type fakeSourceGetter struct {
	record *repository.FeedSourceRecord
	err    error
}

func (f *fakeSourceGetter) Get(context.Context, string) (*repository.FeedSourceRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.record == nil {
		return nil, sql.ErrNoRows
	}
	return f.record, nil
}

type fakeFeedLoader struct {
	events []feed.RawEvent
	err    error
	calls  int
}

func (f *fakeFeedLoader) Load(context.Context, feed.Source) ([]feed.RawEvent, error) {
	f.calls++
	if f.err != nil {
		return []feed.RawEvent{}, f.err
	}
	return f.events, nil
}

func ev(id, title string, start time.Time, minutes int) models.CalendarEvent {
	return models.CalendarEvent{
		ID:    id,
		Title: title,
		Start: start,
		End:   start.Add(time.Duration(minutes) * time.Minute),
	}
}

func TestExternalEventIDStable(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	first := ExternalEventID(start, "Math - Room 12")
	second := ExternalEventID(start, "Math - Room 12")
	assert.Equal(t, first, second)
	assert.Len(t, first, 16)

	assert.NotEqual(t, first, ExternalEventID(start, "Math - Room 13"))
	assert.NotEqual(t, first, ExternalEventID(start.Add(time.Minute), "Math - Room 12"))
}

func TestNormalizeExternalTitleAndCategory(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	raw := []feed.RawEvent{
		{Title: "Math - Mr. Jansen - A1.04", Start: start, End: start.Add(time.Hour)},
		{Title: "Standalone", Start: start, End: start.Add(time.Hour)},
	}

	out := NormalizeExternal(raw, zap.NewNop())
	require.Len(t, out, 2)

	assert.Equal(t, "Math", out[0].Title)
	assert.Equal(t, "Standalone", out[1].Title)
	for _, e := range out {
		assert.Equal(t, models.OriginExternal, e.Origin)
		assert.Equal(t, models.CategorySchool, e.Category)
	}
	// The id hashes the raw title, not the trimmed one, so two feeds sharing
	// a display title keep distinct events.
	assert.NotEqual(t, out[0].ID, ExternalEventID(start, "Math"))
}

func TestNormalizeCoercesInvalidInterval(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	raw := []feed.RawEvent{{Title: "Broken", Start: start, End: start}}

	out := NormalizeExternal(raw, zap.NewNop())
	require.Len(t, out, 1)
	assert.Equal(t, start, out[0].Start)
	assert.Equal(t, start.Add(15*time.Minute), out[0].End)

	personal := NormalizePersonal([]models.CalendarEvent{
		{ID: "p1", Title: "Backwards", Start: start, End: start.Add(-time.Hour)},
	}, zap.NewNop())
	require.Len(t, personal, 1)
	assert.Equal(t, start.Add(15*time.Minute), personal[0].End)
	assert.Equal(t, models.OriginPersonal, personal[0].Origin)
	assert.Equal(t, models.CategoryPersonal, personal[0].Category)
}

func TestMergeTimelinesOrderAndDedupe(t *testing.T) {
	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	a := []models.CalendarEvent{
		ev("b", "Second", base.Add(time.Hour), 30),
		ev("a", "First", base, 30),
	}
	b := []models.CalendarEvent{
		ev("c", "Tied", base, 30),
		ev("b", "SecondDup", base.Add(time.Hour), 30),
	}

	merged := MergeTimelines(a, b)
	flipped := MergeTimelines(b, a)

	require.Len(t, merged, 3)
	assert.Equal(t, []string{"a", "c", "b"}, []string{merged[0].ID, merged[1].ID, merged[2].ID})

	// Input list order never affects output.
	require.Len(t, flipped, 3)
	for i := range merged {
		assert.Equal(t, merged[i].ID, flipped[i].ID)
	}
}

func TestMergeTimelinesKeepsSameTitleDistinctIDs(t *testing.T) {
	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	merged := MergeTimelines(
		[]models.CalendarEvent{ev("x1", "Dentist", base, 60)},
		[]models.CalendarEvent{ev("x2", "Dentist", base, 60)},
	)
	assert.Len(t, merged, 2)
}

func TestTimelineServiceComposesAndCaches(t *testing.T) {
	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	events := &fakeEventLister{events: []models.CalendarEvent{
		{ID: "p1", UserID: "u1", Title: "Gym", Start: base, End: base.Add(time.Hour)},
	}}
	cacheSvc := NewCacheService(&stubCacheRepo{}, nil, time.Minute, zap.NewNop(), true)

	svc := NewTimelineService(TimelineServiceParams{
		Events:  events,
		Sources: &fakeSourceGetter{},
		Adapter: &fakeFeedLoader{},
		Cache:   cacheSvc,
		Logger:  zap.NewNop(),
	})

	timeline, err := svc.Timeline(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, timeline, 1)
	assert.Equal(t, models.OriginPersonal, timeline[0].Origin)

	// Second read is served from cache; drop the backing data to prove it.
	events.events = nil
	cached, err := svc.Timeline(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, cached, 1)
}

func TestTimelineServiceRequiresUser(t *testing.T) {
	svc := NewTimelineService(TimelineServiceParams{
		Events:  &fakeEventLister{},
		Sources: &fakeSourceGetter{},
		Adapter: &fakeFeedLoader{},
	})

	_, err := svc.Timeline(context.Background(), "")
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestTimelineServiceRefreshMergesFeed(t *testing.T) {
	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	svc := NewTimelineService(TimelineServiceParams{
		Events: &fakeEventLister{events: []models.CalendarEvent{
			{ID: "p1", UserID: "u1", Title: "Gym", Start: base.Add(2 * time.Hour), End: base.Add(3 * time.Hour)},
		}},
		Sources: &fakeSourceGetter{record: &repository.FeedSourceRecord{UserID: "u1", Kind: "url", Payload: "https://feed.example/cal.ics"}},
		Adapter: &fakeFeedLoader{events: []feed.RawEvent{
			{Title: "Math - A1.04", Start: base, End: base.Add(time.Hour)},
		}},
		Logger: zap.NewNop(),
	})

	timeline, degraded, err := svc.Refresh(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, degraded)
	require.Len(t, timeline, 2)
	assert.Equal(t, "Math", timeline[0].Title)
	assert.Equal(t, models.OriginExternal, timeline[0].Origin)
	assert.Equal(t, "Gym", timeline[1].Title)
}

func TestTimelineServiceRefreshDegradesOnFeedFailure(t *testing.T) {
	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	svc := NewTimelineService(TimelineServiceParams{
		Events: &fakeEventLister{events: []models.CalendarEvent{
			{ID: "p1", UserID: "u1", Title: "Gym", Start: base, End: base.Add(time.Hour)},
		}},
		Sources: &fakeSourceGetter{record: &repository.FeedSourceRecord{UserID: "u1", Kind: "url", Payload: "https://feed.example/cal.ics"}},
		Adapter: &fakeFeedLoader{err: appErrors.ErrFeedUnavailable},
		Logger:  zap.NewNop(),
	})

	timeline, degraded, err := svc.Refresh(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, degraded)
	// Personal events survive a dead feed.
	require.Len(t, timeline, 1)
	assert.Equal(t, "Gym", timeline[0].Title)
}

func TestTimelineServiceRefreshWithoutSourceSkipsFetch(t *testing.T) {
	loader := &fakeFeedLoader{}
	svc := NewTimelineService(TimelineServiceParams{
		Events:  &fakeEventLister{},
		Sources: &fakeSourceGetter{},
		Adapter: loader,
	})

	timeline, degraded, err := svc.Refresh(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, degraded)
	assert.Empty(t, timeline)
	assert.Zero(t, loader.calls)
}

func TestTimelineServicePublishesOnRepositoryChange(t *testing.T) {
	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	notifier := repository.NewNotifier()
	events := &fakeEventLister{}
	svc := NewTimelineService(TimelineServiceParams{
		Events:   events,
		Sources:  &fakeSourceGetter{},
		Adapter:  &fakeFeedLoader{},
		Notifier: notifier,
		Logger:   zap.NewNop(),
	})

	var gotUser string
	var gotEvents []models.CalendarEvent
	unsubscribe := svc.Subscribe(func(userID string, evs []models.CalendarEvent) {
		gotUser = userID
		gotEvents = evs
	})
	defer unsubscribe()

	events.events = []models.CalendarEvent{
		{ID: "p1", UserID: "u1", Title: "Gym", Start: base, End: base.Add(time.Hour)},
	}
	notifier.Publish(repository.Change{Kind: "events", UserID: "u1"})

	assert.Equal(t, "u1", gotUser)
	require.Len(t, gotEvents, 1)
	assert.Equal(t, "Gym", gotEvents[0].Title)

	// Commitment changes do not touch the timeline.
	gotUser = ""
	notifier.Publish(repository.Change{Kind: "commitments", UserID: "u1"})
	assert.Empty(t, gotUser)
}

func TestTimelineServiceUnsubscribeStopsDelivery(t *testing.T) {
	svc := NewTimelineService(TimelineServiceParams{
		Events:  &fakeEventLister{},
		Sources: &fakeSourceGetter{},
		Adapter: &fakeFeedLoader{},
	})

	calls := 0
	unsubscribe := svc.Subscribe(func(string, []models.CalendarEvent) { calls++ })
	unsubscribe()

	_, _, err := svc.Refresh(context.Background(), "u1")
	require.NoError(t, err)
	assert.Zero(t, calls)
}
