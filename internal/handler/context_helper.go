package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/halcyonlab/agenda-api/internal/middleware"
	"github.com/halcyonlab/agenda-api/internal/models"
)

// claimsFromContext extracts the authenticated user's claims, or nil.
func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}
