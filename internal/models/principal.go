package models

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role names the authorization tier resolved at login.
type Role string

const (
	RoleAdmin      Role = "Admin"
	RoleInstructor Role = "Instructor"
	RoleTA         Role = "TA"
	RoleStudent    Role = "Student"
	RoleGuest      Role = "Guest"
)

// Roles lists every known role from most to least privileged.
var Roles = []Role{RoleAdmin, RoleInstructor, RoleTA, RoleStudent, RoleGuest}

// ParseRole canonicalises a role name regardless of case.
func ParseRole(raw string) (Role, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, r := range Roles {
		if strings.EqualFold(trimmed, string(r)) {
			return r, true
		}
	}
	return "", false
}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// NextRole returns the single role a user may request elevation to.
func (r Role) NextRole() (Role, bool) {
	switch r {
	case RoleStudent:
		return RoleTA, true
	case RoleTA:
		return RoleInstructor, true
	default:
		return "", false
	}
}

// Principal is the authenticated identity driving authorization decisions.
type Principal struct {
	Username       string `db:"username" json:"username"`
	Role           Role   `db:"role_name" json:"role"`
	ClearanceLevel int    `db:"clearance_level" json:"clearanceLevel"`
}

// Session binds a principal to an issued token until logout or expiry.
type Session struct {
	ID        string    `json:"id"`
	Principal Principal `json:"principal"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionClaims is the JWT payload carried by session tokens.
type SessionClaims struct {
	SessionID      string `json:"sid"`
	Username       string `json:"username"`
	Role           Role   `json:"role"`
	ClearanceLevel int    `json:"clearance"`
	jwt.RegisteredClaims
}
