package repository

import (
	"context"

	"github.com/noah-isme/srms-gateway/internal/models"
)

// CourseRepository reads public course listings.
type CourseRepository struct {
	calls *ProcedureCaller
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(calls *ProcedureCaller) *CourseRepository {
	return &CourseRepository{calls: calls}
}

// ViewPublic lists public course information.
func (r *CourseRepository) ViewPublic(ctx context.Context, username string) ([]models.CourseListing, error) {
	courses := make([]models.CourseListing, 0)
	if err := r.calls.Select(ctx, &courses, ProcViewPublicCourses, username); err != nil {
		return nil, err
	}
	return courses, nil
}
