package service

import (
	"context"

	"github.com/noah-isme/srms-gateway/internal/models"
)

type courseStore interface {
	ViewPublic(ctx context.Context, username string) ([]models.CourseListing, error)
}

// CourseService reads public course listings.
type CourseService struct {
	store courseStore
}

// NewCourseService constructs a CourseService.
func NewCourseService(store courseStore) *CourseService {
	return &CourseService{store: store}
}

// ViewPublic lists public courses.
func (s *CourseService) ViewPublic(ctx context.Context, principal models.Principal) ([]models.CourseListing, error) {
	courses, err := s.store.ViewPublic(ctx, principal.Username)
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []models.CourseListing{}
	}
	return courses, nil
}
