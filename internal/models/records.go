package models

import "time"

// AttendanceStatus is stored remotely as 1 (present) or 0 (absent).
type AttendanceStatus int

const (
	AttendanceAbsent  AttendanceStatus = 0
	AttendancePresent AttendanceStatus = 1
)

// String renders the status label.
func (s AttendanceStatus) String() string {
	if s == AttendancePresent {
		return "Present"
	}
	return "Absent"
}

// MarshalText renders the status label in JSON and exports.
func (s AttendanceStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Profile is a row returned by the profile procedure.
type Profile struct {
	StudentID      *int64     `db:"student_id" json:"studentId,omitempty"`
	FullName       string     `db:"full_name" json:"fullName"`
	Email          string     `db:"email" json:"email"`
	Phone          *string    `db:"phone" json:"phone,omitempty"`
	DOB            *time.Time `db:"dob" json:"dob,omitempty"`
	Department     *string    `db:"department" json:"department,omitempty"`
	ClearanceLevel int        `db:"clearance_level" json:"clearanceLevel"`
}

// GradeRecord holds the single grade of a student in a course.
type GradeRecord struct {
	GradeID     int64     `db:"grade_id" json:"gradeId"`
	StudentID   *int64    `db:"student_id" json:"studentId,omitempty"`
	CourseID    int64     `db:"course_id" json:"courseId"`
	GradeValue  float64   `db:"grade_value" json:"gradeValue"`
	DateEntered time.Time `db:"date_entered" json:"dateEntered"`
	EnteredBy   string    `db:"entered_by" json:"enteredBy"`
}

// AttendanceRecord is one append-only attendance mark.
type AttendanceRecord struct {
	AttendanceID int64            `db:"attendance_id" json:"attendanceId"`
	StudentID    *int64           `db:"student_id" json:"studentId,omitempty"`
	CourseID     int64            `db:"course_id" json:"courseId"`
	Status       AttendanceStatus `db:"status" json:"status"`
	DateRecorded time.Time        `db:"date_recorded" json:"dateRecorded"`
	RecordedBy   string           `db:"recorded_by" json:"recordedBy"`
}

// CourseListing is publicly visible course information.
type CourseListing struct {
	CourseID   int64  `db:"course_id" json:"courseId"`
	CourseName string `db:"course_name" json:"courseName"`
	PublicInfo string `db:"public_info" json:"publicInfo"`
}

// DepartmentAggregate is the inference result for a department.
type DepartmentAggregate struct {
	Department string  `db:"department" json:"department"`
	AvgGrade   float64 `db:"avg_grade" json:"avgGrade"`
	GroupSize  int     `db:"group_size" json:"groupSize"`
}
