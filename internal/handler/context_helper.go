package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/srms-gateway/internal/middleware"
	"github.com/noah-isme/srms-gateway/internal/models"
	appErrors "github.com/noah-isme/srms-gateway/pkg/errors"
	"github.com/noah-isme/srms-gateway/pkg/response"
)

// sessionFromContext returns the session attached by middleware.Session, writing
// a 401 when it is missing.
func sessionFromContext(c *gin.Context) (*models.Session, bool) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return nil, false
	}
	return session, true
}
