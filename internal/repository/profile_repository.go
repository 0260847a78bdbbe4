package repository

import (
	"context"

	"github.com/noah-isme/srms-gateway/internal/models"
)

// ProfileRepository reads profiles visible to the caller's role.
type ProfileRepository struct {
	calls *ProcedureCaller
}

// NewProfileRepository constructs the repository.
func NewProfileRepository(calls *ProcedureCaller) *ProfileRepository {
	return &ProfileRepository{calls: calls}
}

// ViewProfiles lists the profiles the store exposes to username.
func (r *ProfileRepository) ViewProfiles(ctx context.Context, username string) ([]models.Profile, error) {
	profiles := make([]models.Profile, 0)
	if err := r.calls.Select(ctx, &profiles, ProcViewProfilesByRole, username); err != nil {
		return nil, err
	}
	return profiles, nil
}
