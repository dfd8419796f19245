package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/halcyonlab/agenda-api/internal/dto"
	"github.com/halcyonlab/agenda-api/internal/repository"
	appErrors "github.com/halcyonlab/agenda-api/pkg/errors"
	"github.com/halcyonlab/agenda-api/pkg/response"
)

type feedService interface {
	Register(ctx context.Context, userID string, req dto.RegisterFeedRequest) error
	Get(ctx context.Context, userID string) (*repository.FeedSourceRecord, error)
	Remove(ctx context.Context, userID string) error
}

// FeedHandler manages the user's external feed registration.
type FeedHandler struct {
	service feedService
}

// NewFeedHandler constructs the handler.
func NewFeedHandler(service feedService) *FeedHandler {
	return &FeedHandler{service: service}
}

// Get godoc
// @Summary Current feed registration
// @Tags Feed
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /feed [get]
func (h *FeedHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	record, err := h.service.Get(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if record == nil {
		response.JSON(c, http.StatusOK, nil, nil, map[string]interface{}{"registered": false})
		return
	}
	payload := gin.H{"kind": record.Kind, "updated_at": record.UpdatedAt}
	if record.Kind == "url" {
		payload["url"] = record.Payload
	}
	response.JSON(c, http.StatusOK, payload, nil)
}

// Register godoc
// @Summary Register or replace the external feed
// @Tags Feed
// @Accept json
// @Produce json
// @Param request body dto.RegisterFeedRequest true "Feed source"
// @Success 204
// @Router /feed [put]
func (h *FeedHandler) Register(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.RegisterFeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	if err := h.service.Register(c.Request.Context(), claims.UserID, req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Remove godoc
// @Summary Unregister the external feed
// @Tags Feed
// @Success 204
// @Router /feed [delete]
func (h *FeedHandler) Remove(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.service.Remove(c.Request.Context(), claims.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
