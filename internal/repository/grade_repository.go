package repository

import (
	"context"

	"github.com/noah-isme/srms-gateway/internal/models"
)

// GradeRepository wraps the grade procedures.
type GradeRepository struct {
	calls *ProcedureCaller
}

// NewGradeRepository constructs the repository.
func NewGradeRepository(calls *ProcedureCaller) *GradeRepository {
	return &GradeRepository{calls: calls}
}

// EnterOrUpdate upserts the grade for a (student, course) pair.
func (r *GradeRepository) EnterOrUpdate(ctx context.Context, username, student string, courseID int64, value float64) error {
	return r.calls.Exec(ctx, ProcEnterOrUpdateGrade, username, student, courseID, value)
}

// ViewGrades lists grades of a student as visible to username.
func (r *GradeRepository) ViewGrades(ctx context.Context, username, student string) ([]models.GradeRecord, error) {
	grades := make([]models.GradeRecord, 0)
	if err := r.calls.Select(ctx, &grades, ProcViewGrades, username, student); err != nil {
		return nil, err
	}
	return grades, nil
}
