package handler

import (
	"bytes"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/srms-gateway/internal/middleware"
	"github.com/noah-isme/srms-gateway/internal/models"
)

func newGinContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func withSession(c *gin.Context, username string, role models.Role) *models.Session {
	now := time.Now().UTC()
	session := &models.Session{
		ID:        "sess-" + username,
		Principal: models.Principal{Username: username, Role: role, ClearanceLevel: 1},
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}
	c.Set(middleware.ContextSessionKey, session)
	return session
}

func ginParam(key, value string) gin.Param {
	return gin.Param{Key: key, Value: value}
}
