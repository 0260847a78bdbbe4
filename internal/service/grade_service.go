package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/srms-gateway/internal/dto"
	"github.com/noah-isme/srms-gateway/internal/models"
)

type gradeStore interface {
	EnterOrUpdate(ctx context.Context, username, student string, courseID int64, value float64) error
	ViewGrades(ctx context.Context, username, student string) ([]models.GradeRecord, error)
}

// GradeService enters and reads grades through the remote store.
type GradeService struct {
	store     gradeStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGradeService constructs a GradeService.
func NewGradeService(store gradeStore, validate *validator.Validate, logger *zap.Logger) *GradeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{store: store, validator: validate, logger: logger}
}

// EnterOrUpdate upserts the grade of a student in a course.
func (s *GradeService) EnterOrUpdate(ctx context.Context, principal models.Principal, args dto.GradeArgs) error {
	if err := s.validator.Struct(args); err != nil {
		return validationError(err, "studentIdentifier, a positive courseId and a non-negative gradeValue are required")
	}
	if err := s.store.EnterOrUpdate(ctx, principal.Username, args.StudentIdentifier, args.CourseID, args.GradeValue); err != nil {
		return err
	}
	s.logger.Info("grade saved",
		zap.String("by", principal.Username),
		zap.String("student", args.StudentIdentifier),
		zap.Int64("course_id", args.CourseID),
	)
	return nil
}

// View lists the grades of a student.
func (s *GradeService) View(ctx context.Context, principal models.Principal, student string) ([]models.GradeRecord, error) {
	grades, err := s.store.ViewGrades(ctx, principal.Username, student)
	if err != nil {
		return nil, err
	}
	if grades == nil {
		grades = []models.GradeRecord{}
	}
	return grades, nil
}
