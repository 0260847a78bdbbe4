package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/srms-gateway/internal/dto"
	"github.com/noah-isme/srms-gateway/internal/models"
	"github.com/noah-isme/srms-gateway/internal/service"
	appErrors "github.com/noah-isme/srms-gateway/pkg/errors"
	"github.com/noah-isme/srms-gateway/pkg/response"
)

type sessionAuthenticator interface {
	Authenticate(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, session *models.Session) error
}

// AuthHandler wires HTTP endpoints to the session service.
type AuthHandler struct {
	service sessionAuthenticator
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc sessionAuthenticator) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Login godoc
// @Summary Open a session
// @Description Validate credentials against the remote store and return a session token with the permitted operations
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}
	req.IP = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	res, err := h.service.Authenticate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}

// Logout godoc
// @Summary Close the current session
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 204 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	if err := h.service.Logout(c.Request.Context(), session); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Me godoc
// @Summary Describe the current session
// @Description Returns the principal and the operations its role may invoke
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	response.JSON(c, http.StatusOK, dto.SessionInfo{
		Principal:  session.Principal,
		IssuedAt:   session.IssuedAt,
		ExpiresAt:  session.ExpiresAt,
		Operations: service.PermittedOperations(session.Principal.Role),
	})
}
