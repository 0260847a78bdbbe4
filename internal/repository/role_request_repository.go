package repository

import (
	"context"

	"github.com/noah-isme/srms-gateway/internal/models"
)

// RoleRequestRepository wraps the role-upgrade procedures.
type RoleRequestRepository struct {
	calls *ProcedureCaller
}

// NewRoleRequestRepository constructs the repository.
func NewRoleRequestRepository(calls *ProcedureCaller) *RoleRequestRepository {
	return &RoleRequestRepository{calls: calls}
}

// Submit files a new pending request for username.
func (r *RoleRequestRepository) Submit(ctx context.Context, username string, requested models.Role, reason string) error {
	return r.calls.Exec(ctx, ProcSubmitRoleUpgradeRequest, username, string(requested), reason)
}

// ListPending returns the pending requests visible to admin.
func (r *RoleRequestRepository) ListPending(ctx context.Context, admin string) ([]models.RoleUpgradeRequest, error) {
	requests := make([]models.RoleUpgradeRequest, 0)
	if err := r.calls.Select(ctx, &requests, ProcListPendingRoleRequests, admin); err != nil {
		return nil, err
	}
	return requests, nil
}

// Resolve transitions a pending request. The returned resolution is nil when
// the request does not exist; Transitioned is false when it was already resolved.
func (r *RoleRequestRepository) Resolve(ctx context.Context, admin string, requestID int64, decision models.RoleDecision, clearance *int) (*models.RoleResolution, error) {
	args := []interface{}{admin, requestID, string(decision)}
	if clearance != nil {
		args = append(args, *clearance)
	}
	var resolution models.RoleResolution
	found, err := r.calls.GetInTx(ctx, &resolution, ProcResolveRoleRequest, args...)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &resolution, nil
}
