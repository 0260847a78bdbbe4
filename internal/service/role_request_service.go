package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/srms-gateway/internal/dto"
	"github.com/noah-isme/srms-gateway/internal/models"
	appErrors "github.com/noah-isme/srms-gateway/pkg/errors"
)

type roleRequestStore interface {
	Submit(ctx context.Context, username string, requested models.Role, reason string) error
	ListPending(ctx context.Context, admin string) ([]models.RoleUpgradeRequest, error)
	Resolve(ctx context.Context, admin string, requestID int64, decision models.RoleDecision, clearance *int) (*models.RoleResolution, error)
}

// RoleRequestService runs the role-upgrade workflow: Pending -> Approved | Denied.
type RoleRequestService struct {
	store     roleRequestStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRoleRequestService constructs the workflow service.
func NewRoleRequestService(store roleRequestStore, validate *validator.Validate, logger *zap.Logger) *RoleRequestService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoleRequestService{store: store, validator: validate, logger: logger}
}

// Submit files a pending request for the caller's single next-step role.
func (s *RoleRequestService) Submit(ctx context.Context, principal models.Principal, args dto.RoleRequestArgs) error {
	next, ok := principal.Role.NextRole()
	if !ok {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("role %s has no upgrade path", principal.Role))
	}
	if args.RequestedRole == "" {
		args.RequestedRole = next
	}
	if args.RequestedRole != next {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s may only request an upgrade to %s", principal.Role, next))
	}
	args.Reason = strings.TrimSpace(args.Reason)
	if err := s.validator.Struct(args); err != nil {
		return validationError(err, "reason is required")
	}

	if err := s.store.Submit(ctx, principal.Username, args.RequestedRole, args.Reason); err != nil {
		return err
	}
	s.logger.Info("role request submitted",
		zap.String("username", principal.Username),
		zap.String("current_role", string(principal.Role)),
		zap.String("requested_role", string(args.RequestedRole)),
	)
	return nil
}

// ListPending returns pending requests oldest first, ties broken by request id.
func (s *RoleRequestService) ListPending(ctx context.Context, principal models.Principal) ([]models.RoleUpgradeRequest, error) {
	rows, err := s.store.ListPending(ctx, principal.Username)
	if err != nil {
		return nil, err
	}
	pending := make([]models.RoleUpgradeRequest, 0, len(rows))
	for _, row := range rows {
		if row.Status == models.RoleRequestPending {
			pending = append(pending, row)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		a, b := pending[i], pending[j]
		if !a.DateSubmitted.Equal(b.DateSubmitted) {
			return a.DateSubmitted.Before(b.DateSubmitted)
		}
		return a.RequestID < b.RequestID
	})
	return pending, nil
}

// Approve resolves a pending request and assigns the fixed clearance of the requested role.
func (s *RoleRequestService) Approve(ctx context.Context, principal models.Principal, args dto.ResolveRoleRequestArgs) (*models.RoleResolution, error) {
	role, _ := models.ParseRole(string(args.RequestedRole))
	clearance, ok := models.ApprovalClearance[role]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrInvalidRoleForApproval, fmt.Sprintf("invalid role for approval: %q", args.RequestedRole))
	}
	if err := s.validator.Struct(args); err != nil {
		return nil, validationError(err, "a positive requestId is required")
	}
	return s.resolve(ctx, principal, args.RequestID, models.DecisionApprove, &clearance)
}

// Deny resolves a pending request without touching the requester's account.
func (s *RoleRequestService) Deny(ctx context.Context, principal models.Principal, requestID int64) (*models.RoleResolution, error) {
	if requestID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "a positive requestId is required")
	}
	return s.resolve(ctx, principal, requestID, models.DecisionDeny, nil)
}

func (s *RoleRequestService) resolve(ctx context.Context, principal models.Principal, requestID int64, decision models.RoleDecision, clearance *int) (*models.RoleResolution, error) {
	resolution, err := s.store.Resolve(ctx, principal.Username, requestID, decision, clearance)
	if err != nil {
		return nil, err
	}
	if resolution == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("role request %d not found", requestID))
	}
	if !resolution.Transitioned {
		return nil, appErrors.Clone(appErrors.ErrRequestAlreadyResolved, fmt.Sprintf("role request %d is already %s", requestID, resolution.Status))
	}
	fields := []zap.Field{
		zap.String("admin", principal.Username),
		zap.Int64("request_id", requestID),
		zap.String("decision", string(decision)),
	}
	if clearance != nil {
		fields = append(fields, zap.Int("clearance", *clearance))
	}
	s.logger.Info("role request resolved", fields...)
	return resolution, nil
}
