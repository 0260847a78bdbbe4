package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/srms-gateway/internal/dto"
	"github.com/noah-isme/srms-gateway/internal/models"
)

type userStore interface {
	CreateUser(ctx context.Context, admin, username, password string, role models.Role, clearance int) error
	UpdateUserRole(ctx context.Context, admin, target string, role models.Role, clearance int) error
}

// UserService provisions accounts and changes roles on behalf of admins.
type UserService struct {
	store     userStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs a UserService.
func NewUserService(store userStore, validate *validator.Validate, logger *zap.Logger) *UserService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{store: store, validator: validate, logger: logger}
}

// CreateUser creates a new account with an explicit role and clearance.
func (s *UserService) CreateUser(ctx context.Context, admin models.Principal, args dto.CreateUserArgs) error {
	if err := s.validator.Struct(args); err != nil {
		return validationError(err, "username, password, role and a non-negative clearance are required")
	}
	if err := s.store.CreateUser(ctx, admin.Username, args.Username, args.Password, args.Role, args.Clearance); err != nil {
		return err
	}
	s.logger.Info("user created",
		zap.String("admin", admin.Username),
		zap.String("username", args.Username),
		zap.String("role", string(args.Role)),
	)
	return nil
}

// UpdateUserRole replaces a user's role and clearance.
func (s *UserService) UpdateUserRole(ctx context.Context, admin models.Principal, args dto.UpdateUserRoleArgs) error {
	if err := s.validator.Struct(args); err != nil {
		return validationError(err, "targetUsername, newRole and a non-negative newClearance are required")
	}
	if err := s.store.UpdateUserRole(ctx, admin.Username, args.TargetUsername, args.NewRole, args.NewClearance); err != nil {
		return err
	}
	s.logger.Info("user role updated",
		zap.String("admin", admin.Username),
		zap.String("target", args.TargetUsername),
		zap.String("role", string(args.NewRole)),
		zap.Int("clearance", args.NewClearance),
	)
	return nil
}
