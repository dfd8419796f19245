package service

import (
	"context"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/halcyonlab/agenda-api/internal/dto"
	"github.com/halcyonlab/agenda-api/internal/models"
	appErrors "github.com/halcyonlab/agenda-api/pkg/errors"
)

// SearchWindow bounds a free-slot search to a run of consecutive calendar
// days, each restricted to the [DayStartHour, DayEndHour) local-time window.
type SearchWindow struct {
	StartFrom    time.Time
	Days         int
	DayStartHour int
	DayEndHour   int
}

// FindFreeSlot returns the earliest interval of the requested length that
// fits in the window, or nil when no day can host it. First fit, not best
// fit: the sweep stops at the first feasible interval. Absence of a fit is a
// normal outcome; callers widen the window rather than treat nil as an error.
//
// Busy events need not be pre-sorted. A busy interval starting before the
// day's window still blocks time up to its end, and a request longer than a
// whole day window skips that day rather than splitting across days.
func FindFreeSlot(busy []models.CalendarEvent, durationMin int, window SearchWindow) *dto.SlotResponse {
	if durationMin <= 0 || window.Days <= 0 {
		return nil
	}
	duration := time.Duration(durationMin) * time.Minute

	sorted := make([]models.CalendarEvent, len(busy))
	copy(sorted, busy)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	loc := window.StartFrom.Location()

	for day := 0; day < window.Days; day++ {
		d := window.StartFrom.AddDate(0, 0, day)
		dayStart := time.Date(d.Year(), d.Month(), d.Day(), window.DayStartHour, 0, 0, 0, loc)
		dayEnd := time.Date(d.Year(), d.Month(), d.Day(), window.DayEndHour, 0, 0, 0, loc)

		// Never propose a slot before the instant the caller asked.
		cursor := dayStart
		if window.StartFrom.After(cursor) {
			cursor = window.StartFrom
		}
		if cursor.Add(duration).After(dayEnd) {
			continue
		}

		fits := true
		for _, b := range sorted {
			if !b.Overlaps(dayStart, dayEnd) {
				continue
			}
			if !cursor.Add(duration).After(b.Start) {
				return &dto.SlotResponse{Start: cursor, End: cursor.Add(duration)}
			}
			if b.End.After(cursor) {
				cursor = b.End
			}
			if cursor.Add(duration).After(dayEnd) {
				fits = false
				break
			}
		}
		if fits && !cursor.Add(duration).After(dayEnd) {
			return &dto.SlotResponse{Start: cursor, End: cursor.Add(duration)}
		}
	}
	return nil
}

type timelineProvider interface {
	Timeline(ctx context.Context, userID string) ([]models.CalendarEvent, error)
}

// SlotSearchDefaults fills request fields the caller left unset.
type SlotSearchDefaults struct {
	Days         int
	DayStartHour int
	DayEndHour   int
}

// SlotService answers free-slot requests against the unified timeline.
type SlotService struct {
	timeline  timelineProvider
	validator *validator.Validate
	metrics   *MetricsService
	defaults  SlotSearchDefaults
	logger    *zap.Logger
	now       func() time.Time
}

// NewSlotService constructs the service.
func NewSlotService(timeline timelineProvider, validate *validator.Validate, metrics *MetricsService, defaults SlotSearchDefaults, logger *zap.Logger) *SlotService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaults.Days <= 0 {
		defaults.Days = 7
	}
	if defaults.DayEndHour <= defaults.DayStartHour {
		defaults.DayStartHour = 8
		defaults.DayEndHour = 22
	}
	return &SlotService{
		timeline:  timeline,
		validator: validate,
		metrics:   metrics,
		defaults:  defaults,
		logger:    logger,
		now:       time.Now,
	}
}

// Search validates the request, loads the user's merged timeline as the busy
// set and runs the first-fit sweep. A nil slot with a nil error means "no
// capacity found" and is the canonical signal for the caller to widen the
// search.
func (s *SlotService) Search(ctx context.Context, userID string, req dto.SlotSearchRequest) (*dto.SlotResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slot search")
	}
	if req.StartFrom.IsZero() {
		req.StartFrom = s.now()
	}
	if req.Days == 0 {
		req.Days = s.defaults.Days
	}
	if req.DayStartHour == 0 && req.DayEndHour == 0 {
		req.DayStartHour = s.defaults.DayStartHour
		req.DayEndHour = s.defaults.DayEndHour
	}
	if req.DayEndHour <= req.DayStartHour {
		return nil, appErrors.Clone(appErrors.ErrValidation, "day_end_hour must be after day_start_hour")
	}

	busy, err := s.timeline.Timeline(ctx, userID)
	if err != nil {
		return nil, err
	}

	slot := FindFreeSlot(busy, req.DurationMin, SearchWindow{
		StartFrom:    req.StartFrom,
		Days:         req.Days,
		DayStartHour: req.DayStartHour,
		DayEndHour:   req.DayEndHour,
	})
	if s.metrics != nil {
		s.metrics.RecordSlotSearch(slot != nil)
	}
	return slot, nil
}
