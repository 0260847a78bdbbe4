package service

import (
	"context"
	"strings"

	"github.com/noah-isme/srms-gateway/internal/models"
	appErrors "github.com/noah-isme/srms-gateway/pkg/errors"
)

type analyticsStore interface {
	AvgGradeByDepartment(ctx context.Context, admin, department string) (*models.DepartmentAggregate, error)
}

// AnalyticsService runs aggregate inference queries guarded by the store's group-size rules.
type AnalyticsService struct {
	store analyticsStore
}

// NewAnalyticsService constructs an AnalyticsService.
func NewAnalyticsService(store analyticsStore) *AnalyticsService {
	return &AnalyticsService{store: store}
}

// DepartmentAverage returns the average grade of a department, or nil when the store has no data.
func (s *AnalyticsService) DepartmentAverage(ctx context.Context, principal models.Principal, department string) (*models.DepartmentAggregate, error) {
	department = strings.TrimSpace(department)
	if department == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "department is required")
	}
	return s.store.AvgGradeByDepartment(ctx, principal.Username, department)
}
