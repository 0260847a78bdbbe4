package dto

import (
	"time"

	"github.com/noah-isme/srms-gateway/internal/models"
)

// LoginRequest holds credentials collected from the login form.
type LoginRequest struct {
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// LoginResponse returns the session token and the resolved principal.
type LoginResponse struct {
	AccessToken string           `json:"accessToken"`
	ExpiresIn   int64            `json:"expiresIn"`
	IssuedAt    time.Time        `json:"issuedAt"`
	Principal   models.Principal `json:"principal"`
	Operations  []string         `json:"operations"`
}

// SessionInfo describes the active session.
type SessionInfo struct {
	Principal  models.Principal `json:"principal"`
	IssuedAt   time.Time        `json:"issuedAt"`
	ExpiresAt  time.Time        `json:"expiresAt"`
	Operations []string         `json:"operations"`
}
