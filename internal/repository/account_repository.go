package repository

import (
	"context"

	"github.com/noah-isme/srms-gateway/internal/models"
)

// AccountRepository wraps the credential and account procedures.
type AccountRepository struct {
	calls *ProcedureCaller
}

// NewAccountRepository constructs the repository.
func NewAccountRepository(calls *ProcedureCaller) *AccountRepository {
	return &AccountRepository{calls: calls}
}

// ValidateLogin returns the principal for valid credentials, or nil when the store rejects them.
func (r *AccountRepository) ValidateLogin(ctx context.Context, username, password string) (*models.Principal, error) {
	var principal models.Principal
	found, err := r.calls.Get(ctx, &principal, ProcValidateLogin, username, password)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &principal, nil
}

// CreateUser provisions an account on behalf of an admin.
func (r *AccountRepository) CreateUser(ctx context.Context, admin, username, password string, role models.Role, clearance int) error {
	return r.calls.Exec(ctx, ProcCreateUser, admin, username, password, string(role), clearance)
}

// UpdateUserRole changes a user's role and clearance on behalf of an admin.
func (r *AccountRepository) UpdateUserRole(ctx context.Context, admin, target string, role models.Role, clearance int) error {
	return r.calls.Exec(ctx, ProcUpdateUserRole, admin, target, string(role), clearance)
}

// Ping reports whether the store is reachable.
func (r *AccountRepository) Ping(ctx context.Context) error {
	return r.calls.Ping(ctx)
}
