package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/halcyonlab/agenda-api/internal/models"
	appErrors "github.com/halcyonlab/agenda-api/pkg/errors"
	"github.com/halcyonlab/agenda-api/pkg/response"
)

type timelineService interface {
	Timeline(ctx context.Context, userID string) ([]models.CalendarEvent, error)
	Refresh(ctx context.Context, userID string) ([]models.CalendarEvent, bool, error)
}

// TimelineHandler exposes the merged timeline endpoints.
type TimelineHandler struct {
	service timelineService
}

// NewTimelineHandler constructs the handler.
func NewTimelineHandler(service timelineService) *TimelineHandler {
	return &TimelineHandler{service: service}
}

// List godoc
// @Summary Merged timeline for the current user
// @Tags Timeline
// @Produce json
// @Param from query string false "Lower bound (RFC3339)"
// @Param to query string false "Upper bound (RFC3339)"
// @Success 200 {object} response.Envelope
// @Router /timeline [get]
func (h *TimelineHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	events, err := h.service.Timeline(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	from, err := parseTimeQuery(c, "from")
	if err != nil {
		response.Error(c, err)
		return
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		response.Error(c, err)
		return
	}
	if from != nil || to != nil {
		filtered := events[:0:0]
		for _, ev := range events {
			if from != nil && ev.End.Before(*from) {
				continue
			}
			if to != nil && !ev.Start.Before(*to) {
				continue
			}
			filtered = append(filtered, ev)
		}
		events = filtered
	}

	response.JSON(c, http.StatusOK, events, nil)
}

// Refresh godoc
// @Summary Refetch the external feed and rebuild the timeline
// @Tags Timeline
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timeline/refresh [post]
func (h *TimelineHandler) Refresh(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	events, degraded, err := h.service.Refresh(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	meta := map[string]interface{}{"feed_degraded": degraded}
	response.JSON(c, http.StatusOK, events, nil, meta)
}

func parseTimeQuery(c *gin.Context, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid "+key+", expected RFC3339")
	}
	return &parsed, nil
}
