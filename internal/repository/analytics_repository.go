package repository

import (
	"context"

	"github.com/noah-isme/srms-gateway/internal/models"
)

// AnalyticsRepository runs aggregate inference procedures.
type AnalyticsRepository struct {
	calls *ProcedureCaller
}

// NewAnalyticsRepository constructs the repository.
func NewAnalyticsRepository(calls *ProcedureCaller) *AnalyticsRepository {
	return &AnalyticsRepository{calls: calls}
}

// AvgGradeByDepartment returns the department aggregate, or nil when the store has no data.
func (r *AnalyticsRepository) AvgGradeByDepartment(ctx context.Context, admin, department string) (*models.DepartmentAggregate, error) {
	var aggregate models.DepartmentAggregate
	found, err := r.calls.Get(ctx, &aggregate, ProcAvgGradeByDepartment, admin, department)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &aggregate, nil
}
