package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/srms-gateway/internal/models"
	appErrors "github.com/noah-isme/srms-gateway/pkg/errors"
	"github.com/noah-isme/srms-gateway/pkg/response"
)

// ContextSessionKey is the gin context key storing the active session.
const ContextSessionKey = "currentSession"

// SessionResolver turns a bearer token into a live session.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*models.Session, error)
}

// Session protects routes by requiring a live session token.
func Session(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		session, err := resolver.Resolve(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextSessionKey, session)
		c.Next()
	}
}

// CurrentSession returns the session attached by Session, if any.
func CurrentSession(c *gin.Context) (*models.Session, bool) {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil, false
	}
	session, ok := value.(*models.Session)
	return session, ok && session != nil
}
