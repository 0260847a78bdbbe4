package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/srms-gateway/internal/dto"
	"github.com/noah-isme/srms-gateway/internal/models"
)

type attendanceStore interface {
	Record(ctx context.Context, username, student string, courseID int64, status models.AttendanceStatus) error
	View(ctx context.Context, username, student string) ([]models.AttendanceRecord, error)
}

// AttendanceService records and reads attendance through the remote store.
type AttendanceService struct {
	store     attendanceStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs an AttendanceService.
func NewAttendanceService(store attendanceStore, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{store: store, validator: validate, logger: logger}
}

// Record appends a single attendance mark.
func (s *AttendanceService) Record(ctx context.Context, principal models.Principal, args dto.AttendanceArgs) error {
	if err := s.validator.Struct(args); err != nil {
		return validationError(err, "studentIdentifier and a positive courseId are required")
	}
	if err := s.store.Record(ctx, principal.Username, args.StudentIdentifier, args.CourseID, args.Status); err != nil {
		return err
	}
	s.logger.Info("attendance recorded",
		zap.String("by", principal.Username),
		zap.String("student", args.StudentIdentifier),
		zap.Int64("course_id", args.CourseID),
		zap.Stringer("status", args.Status),
	)
	return nil
}

// View lists attendance; an empty student means the caller's own records.
func (s *AttendanceService) View(ctx context.Context, principal models.Principal, student string) ([]models.AttendanceRecord, error) {
	records, err := s.store.View(ctx, principal.Username, student)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.AttendanceRecord{}
	}
	return records, nil
}
