package service

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/halcyonlab/agenda-api/internal/feed"
	"github.com/halcyonlab/agenda-api/internal/models"
	"github.com/halcyonlab/agenda-api/internal/repository"
	appErrors "github.com/halcyonlab/agenda-api/pkg/errors"
)

// minimumEventDuration is substituted when a source delivers an event whose
// end does not come after its start. The invalid interval is corrected in
// place and logged, never propagated.
const minimumEventDuration = 15 * time.Minute

// titleSeparator is the feed convention for embedding metadata in SUMMARY;
// only the segment before the first occurrence is the display title.
const titleSeparator = " - "

// ExternalEventID derives a stable identifier from fields that survive a
// refetch. Re-reading an unchanged feed must yield identical ids, otherwise
// every refresh would spuriously "create" new events.
func ExternalEventID(start time.Time, title string) string {
	sum := sha256.Sum256([]byte(strconv.FormatInt(start.UnixMilli(), 10) + "|" + title))
	return hex.EncodeToString(sum[:8])
}

// NormalizeExternal converts raw feed events into canonical calendar events
// tagged with the external origin. Guarantees on output: concrete timestamps,
// start strictly before end, deterministic ids.
func NormalizeExternal(raw []feed.RawEvent, logger *zap.Logger) []models.CalendarEvent {
	if logger == nil {
		logger = zap.NewNop()
	}
	out := make([]models.CalendarEvent, 0, len(raw))
	for _, r := range raw {
		title := r.Title
		if idx := strings.Index(title, titleSeparator); idx >= 0 {
			title = title[:idx]
		}
		start, end := coerceInterval(r.Start, r.End, title, logger)
		out = append(out, models.CalendarEvent{
			ID:       ExternalEventID(r.Start, r.Title),
			Title:    title,
			Start:    start,
			End:      end,
			Origin:   models.OriginExternal,
			Location: r.Location,
			Category: models.CategorySchool,
		})
	}
	return out
}

// NormalizePersonal applies the same canonical-shape guarantees to persisted
// personal events. Stored records are validated on write, so coercion here is
// a guard against historical data, not the primary defense.
func NormalizePersonal(events []models.CalendarEvent, logger *zap.Logger) []models.CalendarEvent {
	if logger == nil {
		logger = zap.NewNop()
	}
	out := make([]models.CalendarEvent, 0, len(events))
	for _, ev := range events {
		ev.Origin = models.OriginPersonal
		if ev.Category == "" {
			ev.Category = models.CategoryPersonal
		}
		ev.Start, ev.End = coerceInterval(ev.Start, ev.End, ev.Title, logger)
		out = append(out, ev)
	}
	return out
}

func coerceInterval(start, end time.Time, title string, logger *zap.Logger) (time.Time, time.Time) {
	if end.After(start) {
		return start, end
	}
	logger.Warn("invalid event interval corrected",
		zap.String("title", title),
		zap.Time("start", start),
		zap.Time("end", end))
	return start, start.Add(minimumEventDuration)
}

// MergeTimelines concatenates the input lists into one sorted sequence.
// Ordering is by start time ascending with id as the tiebreaker, so input
// list order never affects output order. Events are duplicates only when
// their ids collide; same title and time from two sources stay distinct.
// That boundary is deliberate, not an oversight.
func MergeTimelines(lists ...[]models.CalendarEvent) []models.CalendarEvent {
	total := 0
	for _, l := range lists {
		total += len(l)
	}
	merged := make([]models.CalendarEvent, 0, total)
	for _, l := range lists {
		merged = append(merged, l...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if !merged[i].Start.Equal(merged[j].Start) {
			return merged[i].Start.Before(merged[j].Start)
		}
		return merged[i].ID < merged[j].ID
	})

	seen := make(map[string]struct{}, len(merged))
	out := merged[:0]
	for _, ev := range merged {
		if _, dup := seen[ev.ID]; dup {
			continue
		}
		seen[ev.ID] = struct{}{}
		out = append(out, ev)
	}
	return out
}

type personalEventLister interface {
	ListByUser(ctx context.Context, userID string) ([]models.CalendarEvent, error)
}

type feedSourceGetter interface {
	Get(ctx context.Context, userID string) (*repository.FeedSourceRecord, error)
}

type feedLoader interface {
	Load(ctx context.Context, src feed.Source) ([]feed.RawEvent, error)
}

// TimelineSubscriber receives the full recomputed timeline for a user after
// any upstream change. No delta updates are defined.
type TimelineSubscriber func(userID string, events []models.CalendarEvent)

// TimelineService owns the unified timeline: the merged, sorted, deduplicated
// read model over all event sources for one user. It is recomputed fully on
// every underlying change and never incrementally patched.
type TimelineService struct {
	events  personalEventLister
	sources feedSourceGetter
	adapter feedLoader
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
	ttl     time.Duration

	mu       sync.Mutex
	external map[string][]models.CalendarEvent
	fetchSeq map[string]uint64
	nextSub  int
	subs     map[int]TimelineSubscriber
}

// TimelineServiceParams groups constructor dependencies.
type TimelineServiceParams struct {
	Events   personalEventLister
	Sources  feedSourceGetter
	Adapter  feedLoader
	Cache    *CacheService
	Metrics  *MetricsService
	Notifier *repository.Notifier
	Logger   *zap.Logger
	CacheTTL time.Duration
}

// NewTimelineService constructs the service and hooks repository change
// notifications so personal-event mutations trigger a recompute.
func NewTimelineService(params TimelineServiceParams) *TimelineService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := params.CacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	s := &TimelineService{
		events:   params.Events,
		sources:  params.Sources,
		adapter:  params.Adapter,
		cache:    params.Cache,
		metrics:  params.Metrics,
		logger:   logger,
		ttl:      ttl,
		external: make(map[string][]models.CalendarEvent),
		fetchSeq: make(map[string]uint64),
		subs:     make(map[int]TimelineSubscriber),
	}
	if params.Notifier != nil {
		params.Notifier.Subscribe(func(c repository.Change) {
			s.onChange(c)
		})
	}
	return s
}

// Subscribe registers a consumer of full timeline recomputes and returns an
// unsubscribe function.
func (s *TimelineService) Subscribe(fn TimelineSubscriber) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Timeline returns the user's merged timeline. External events come from the
// latest feed snapshot; callers wanting fresh feed data invoke Refresh first.
func (s *TimelineService) Timeline(ctx context.Context, userID string) ([]models.CalendarEvent, error) {
	if userID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "user id is required")
	}

	cacheKey := timelineCacheKey(userID)
	if s.cache != nil {
		var cached []models.CalendarEvent
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	merged, err := s.compose(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, merged, s.ttl)
	}
	return merged, nil
}

// Refresh refetches the user's external feed, replaces the external snapshot
// and republishes the merged timeline. The boolean reports feed degradation:
// a failed fetch leaves the UI usable with zero external events instead of
// erroring. A refresh superseded by a newer one for the same user discards
// its result so a late response can never clobber current state.
func (s *TimelineService) Refresh(ctx context.Context, userID string) ([]models.CalendarEvent, bool, error) {
	if userID == "" {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "user id is required")
	}

	s.mu.Lock()
	s.fetchSeq[userID]++
	seq := s.fetchSeq[userID]
	s.mu.Unlock()

	degraded := false
	var external []models.CalendarEvent

	src, err := s.loadSource(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if src != nil {
		raw, loadErr := s.adapter.Load(ctx, *src)
		if loadErr != nil {
			degraded = true
			if s.metrics != nil {
				s.metrics.RecordFeedFetch(false)
			}
		} else if s.metrics != nil {
			s.metrics.RecordFeedFetch(true)
		}
		external = NormalizeExternal(raw, s.logger)
	}

	s.mu.Lock()
	if s.fetchSeq[userID] != seq {
		s.mu.Unlock()
		s.logger.Debug("discarding stale feed refresh", zap.String("user_id", userID))
		merged, tlErr := s.Timeline(ctx, userID)
		return merged, false, tlErr
	}
	s.external[userID] = external
	s.mu.Unlock()

	s.invalidate(ctx, userID)

	merged, err := s.compose(ctx, userID)
	if err != nil {
		return nil, degraded, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, timelineCacheKey(userID), merged, s.ttl)
	}
	s.publish(userID, merged)
	return merged, degraded, nil
}

func (s *TimelineService) loadSource(ctx context.Context, userID string) (*feed.Source, error) {
	record, err := s.sources.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load feed source")
	}
	return &feed.Source{Kind: feed.SourceKind(record.Kind), Payload: record.Payload}, nil
}

func (s *TimelineService) compose(ctx context.Context, userID string) ([]models.CalendarEvent, error) {
	personal, err := s.events.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list personal events")
	}

	s.mu.Lock()
	external := s.external[userID]
	s.mu.Unlock()

	return MergeTimelines(NormalizePersonal(personal, s.logger), external), nil
}

// onChange reacts to persisted-record mutations with a full recompute. The
// notifier fires synchronously in the writer's goroutine; the recompute uses
// a background context so a cancelled request cannot strand subscribers with
// a stale view.
func (s *TimelineService) onChange(c repository.Change) {
	if c.Kind != "events" {
		return
	}
	ctx := context.Background()
	s.invalidate(ctx, c.UserID)
	merged, err := s.compose(ctx, c.UserID)
	if err != nil {
		s.logger.Warn("timeline recompute after change failed",
			zap.String("user_id", c.UserID), zap.Error(err))
		return
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, timelineCacheKey(c.UserID), merged, s.ttl)
	}
	s.publish(c.UserID, merged)
}

func (s *TimelineService) publish(userID string, events []models.CalendarEvent) {
	s.mu.Lock()
	fns := make([]TimelineSubscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(userID, events)
	}
}

func (s *TimelineService) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Invalidate(ctx, fmt.Sprintf("timeline:%s*", userID))
	_ = s.cache.Invalidate(ctx, fmt.Sprintf("dash:%s*", userID))
}

func timelineCacheKey(userID string) string {
	return fmt.Sprintf("timeline:%s", userID)
}
