package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/halcyonlab/agenda-api/internal/dto"
	appErrors "github.com/halcyonlab/agenda-api/pkg/errors"
	"github.com/halcyonlab/agenda-api/pkg/response"
)

type slotService interface {
	Search(ctx context.Context, userID string, req dto.SlotSearchRequest) (*dto.SlotResponse, error)
}

// SlotHandler exposes the free-slot search endpoint.
type SlotHandler struct {
	service slotService
}

// NewSlotHandler constructs the handler.
func NewSlotHandler(service slotService) *SlotHandler {
	return &SlotHandler{service: service}
}

// Search godoc
// @Summary Find the earliest free interval
// @Tags Slots
// @Accept json
// @Produce json
// @Param request body dto.SlotSearchRequest true "Search parameters"
// @Success 200 {object} response.Envelope
// @Router /slots/search [post]
func (h *SlotHandler) Search(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.SlotSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}

	slot, err := h.service.Search(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	// No fit is a normal outcome: data stays null and the caller is told to
	// widen the window.
	if slot == nil {
		meta := map[string]interface{}{"no_slot": true, "hint": "widen the search window"}
		response.JSON(c, http.StatusOK, nil, nil, meta)
		return
	}
	response.JSON(c, http.StatusOK, slot, nil)
}
