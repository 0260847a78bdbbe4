package service

import (
	"context"

	"github.com/noah-isme/srms-gateway/internal/models"
)

type profileStore interface {
	ViewProfiles(ctx context.Context, username string) ([]models.Profile, error)
}

// ProfileService reads the profiles the store exposes to a principal.
type ProfileService struct {
	store profileStore
}

// NewProfileService constructs a ProfileService.
func NewProfileService(store profileStore) *ProfileService {
	return &ProfileService{store: store}
}

// View lists profiles; scoping (own, assigned, all) is decided by the store from the caller.
func (s *ProfileService) View(ctx context.Context, principal models.Principal) ([]models.Profile, error) {
	profiles, err := s.store.ViewProfiles(ctx, principal.Username)
	if err != nil {
		return nil, err
	}
	if profiles == nil {
		profiles = []models.Profile{}
	}
	return profiles, nil
}
