package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/srms-gateway/internal/dto"
	"github.com/noah-isme/srms-gateway/internal/models"
	"github.com/noah-isme/srms-gateway/internal/repository"
	appErrors "github.com/noah-isme/srms-gateway/pkg/errors"
)

type credentialValidator interface {
	ValidateLogin(ctx context.Context, username, password string) (*models.Principal, error)
}

type sessionStore interface {
	Save(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}

// SessionConfig defines token issuance for sessions.
type SessionConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// SessionService authenticates principals and tracks their sessions.
type SessionService struct {
	accounts  credentialValidator
	sessions  sessionStore
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	config    SessionConfig
	now       func() time.Time
}

// NewSessionService constructs a SessionService instance.
func NewSessionService(accounts credentialValidator, sessions sessionStore, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService, config SessionConfig) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.TTL <= 0 {
		config.TTL = 8 * time.Hour
	}
	return &SessionService{
		accounts:  accounts,
		sessions:  sessions,
		validator: validate,
		logger:    logger,
		metrics:   metrics,
		config:    config,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Authenticate validates credentials against the remote store and opens a session.
// Any previous session of the same username is replaced.
func (s *SessionService) Authenticate(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "username and password are required")
	}

	principal, err := s.accounts.ValidateLogin(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, appErrors.ErrRemoteUnavailable) {
			s.logger.Error("remote store unreachable during login", zap.String("username", req.Username), zap.Error(err))
		}
		return nil, err
	}
	if principal == nil {
		s.logger.Info("login rejected", zap.String("username", req.Username), zap.String("ip", req.IP))
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid username or password")
	}

	role, ok := models.ParseRole(string(principal.Role))
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrRemote, fmt.Sprintf("unknown role %q", principal.Role))
	}
	principal.Role = role

	issuedAt := s.now()
	session := &models.Session{
		ID:        uuid.NewString(),
		Principal: *principal,
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(s.config.TTL),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist session")
	}

	token, err := s.signToken(session)
	if err != nil {
		_ = s.sessions.Delete(ctx, session.ID)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session token")
	}

	s.metrics.SessionOpened()
	s.logger.Info("session opened",
		zap.String("username", principal.Username),
		zap.String("role", string(principal.Role)),
		zap.String("ip", req.IP),
	)

	return &dto.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.config.TTL.Seconds()),
		IssuedAt:    issuedAt,
		Principal:   *principal,
		Operations:  PermittedOperations(principal.Role),
	}, nil
}

// Resolve validates a session token and returns the live session behind it.
func (s *SessionService) Resolve(ctx context.Context, tokenString string) (*models.Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid session token")
	}
	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid session claims")
	}

	session, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session expired or logged out")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	if session.Principal.Username != claims.Username {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session does not match token")
	}
	return session, nil
}

// Logout destroys the session.
func (s *SessionService) Logout(ctx context.Context, session *models.Session) error {
	if session == nil {
		return appErrors.ErrUnauthorized
	}
	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to destroy session")
	}
	s.metrics.SessionClosed()
	s.logger.Info("session closed", zap.String("username", session.Principal.Username))
	return nil
}

func (s *SessionService) signToken(session *models.Session) (string, error) {
	claims := &models.SessionClaims{
		SessionID:      session.ID,
		Username:       session.Principal.Username,
		Role:           session.Principal.Role,
		ClearanceLevel: session.Principal.ClearanceLevel,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Issuer:    s.config.Issuer,
			Subject:   session.Principal.Username,
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
			NotBefore: jwt.NewNumericDate(session.IssuedAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}
