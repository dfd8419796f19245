package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/halcyonlab/agenda-api/pkg/errors"
	"github.com/halcyonlab/agenda-api/pkg/response"
)

type exportService interface {
	Agenda(ctx context.Context, userID, format string) ([]byte, string, error)
}

// ExportHandler serves agenda downloads.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Agenda godoc
// @Summary Export the merged timeline
// @Tags Export
// @Param format query string false "csv or pdf" default(csv)
// @Success 200
// @Router /agenda/export [get]
func (h *ExportHandler) Agenda(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	format := c.DefaultQuery("format", "csv")
	payload, contentType, err := h.service.Agenda(c.Request.Context(), claims.UserID, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=agenda."+format)
	c.Data(http.StatusOK, contentType, payload)
}
