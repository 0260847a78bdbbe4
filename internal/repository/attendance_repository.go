package repository

import (
	"context"

	"github.com/noah-isme/srms-gateway/internal/models"
)

// AttendanceRepository wraps the attendance procedures.
type AttendanceRepository struct {
	calls *ProcedureCaller
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(calls *ProcedureCaller) *AttendanceRepository {
	return &AttendanceRepository{calls: calls}
}

// Record appends one attendance mark.
func (r *AttendanceRepository) Record(ctx context.Context, username, student string, courseID int64, status models.AttendanceStatus) error {
	return r.calls.Exec(ctx, ProcRecordAttendance, username, student, courseID, int(status))
}

// View lists attendance visible to username, optionally narrowed to one student.
func (r *AttendanceRepository) View(ctx context.Context, username, student string) ([]models.AttendanceRecord, error) {
	records := make([]models.AttendanceRecord, 0)
	args := []interface{}{username}
	if student != "" {
		args = append(args, student)
	}
	if err := r.calls.Select(ctx, &records, ProcViewAttendance, args...); err != nil {
		return nil, err
	}
	return records, nil
}
