package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/halcyonlab/agenda-api/internal/dto"
	"github.com/halcyonlab/agenda-api/internal/models"
	appErrors "github.com/halcyonlab/agenda-api/pkg/errors"
	"github.com/halcyonlab/agenda-api/pkg/response"
)

type commitmentService interface {
	List(ctx context.Context, userID string) ([]models.Commitment, error)
	Get(ctx context.Context, userID, id string) (*models.Commitment, error)
	Create(ctx context.Context, userID string, req dto.CreateCommitmentRequest) (*models.Commitment, error)
	Update(ctx context.Context, userID, id string, req dto.UpdateCommitmentRequest) (*models.Commitment, error)
	Delete(ctx context.Context, userID, id string) error
}

type goalService interface {
	Progress(ctx context.Context, userID, commitmentID string) (*dto.GoalProgress, error)
}

// CommitmentHandler exposes commitment CRUD and progress queries.
type CommitmentHandler struct {
	service commitmentService
	goals   goalService
}

// NewCommitmentHandler constructs the handler.
func NewCommitmentHandler(service commitmentService, goals goalService) *CommitmentHandler {
	return &CommitmentHandler{service: service, goals: goals}
}

// List godoc
// @Summary List commitments
// @Tags Commitments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /commitments [get]
func (h *CommitmentHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	commitments, err := h.service.List(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, commitments, nil)
}

// Get godoc
// @Summary Get one commitment
// @Tags Commitments
// @Produce json
// @Param id path string true "Commitment ID"
// @Success 200 {object} response.Envelope
// @Router /commitments/{id} [get]
func (h *CommitmentHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	commitment, err := h.service.Get(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, commitment, nil)
}

// Create godoc
// @Summary Create a commitment
// @Tags Commitments
// @Accept json
// @Produce json
// @Param request body dto.CreateCommitmentRequest true "Commitment"
// @Success 201 {object} response.Envelope
// @Router /commitments [post]
func (h *CommitmentHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.CreateCommitmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	commitment, err := h.service.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, commitment)
}

// Update godoc
// @Summary Update a commitment
// @Tags Commitments
// @Accept json
// @Produce json
// @Param id path string true "Commitment ID"
// @Param request body dto.UpdateCommitmentRequest true "Commitment"
// @Success 200 {object} response.Envelope
// @Router /commitments/{id} [put]
func (h *CommitmentHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.UpdateCommitmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	commitment, err := h.service.Update(c.Request.Context(), claims.UserID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, commitment, nil)
}

// Delete godoc
// @Summary Delete a commitment
// @Tags Commitments
// @Param id path string true "Commitment ID"
// @Success 204
// @Router /commitments/{id} [delete]
func (h *CommitmentHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.service.Delete(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Progress godoc
// @Summary Progress report for a commitment
// @Tags Commitments
// @Produce json
// @Param id path string true "Commitment ID"
// @Success 200 {object} response.Envelope
// @Router /commitments/{id}/progress [get]
func (h *CommitmentHandler) Progress(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	progress, err := h.goals.Progress(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, progress, nil)
}
