package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/srms-gateway/internal/dto"
	"github.com/noah-isme/srms-gateway/internal/models"
	"github.com/noah-isme/srms-gateway/pkg/config"
	appErrors "github.com/noah-isme/srms-gateway/pkg/errors"
)

// StudentLookup validates student identifiers against the configured key type.
type StudentLookup struct {
	key       string
	validator *validator.Validate
}

// NewStudentLookup builds a lookup for config.StudentLookupEmail or config.StudentLookupID.
func NewStudentLookup(key string, validate *validator.Validate) StudentLookup {
	if validate == nil {
		validate = validator.New()
	}
	if key != config.StudentLookupID {
		key = config.StudentLookupEmail
	}
	return StudentLookup{key: key, validator: validate}
}

// Check reports a problem description when the identifier does not match the key type.
func (l StudentLookup) Check(identifier string) string {
	if l.key == config.StudentLookupID {
		id, err := strconv.ParseInt(identifier, 10, 64)
		if err != nil || id <= 0 {
			return "must be a positive numeric student id"
		}
		return ""
	}
	v := l.validator
	if v == nil {
		v = validator.New()
	}
	if err := v.Var(identifier, "email"); err != nil {
		return "must be a student email address"
	}
	return ""
}

// argReader parses form fields and collects every problem before failing.
type argReader struct {
	args     dto.Args
	lookup   StudentLookup
	problems []string
}

func newArgReader(args dto.Args, lookup StudentLookup) *argReader {
	return &argReader{args: args, lookup: lookup}
}

func (r *argReader) fail(key, problem string) {
	r.problems = append(r.problems, fmt.Sprintf("%s %s", key, problem))
}

func (r *argReader) optional(key string) string {
	return strings.TrimSpace(r.args.Get(key))
}

func (r *argReader) required(key string) string {
	value := r.optional(key)
	if value == "" {
		r.fail(key, "is required")
	}
	return value
}

func (r *argReader) integer(key string) int64 {
	raw := r.required(key)
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		r.fail(key, "must be an integer")
		return 0
	}
	return value
}

func (r *argReader) clearance(key string) int {
	value := r.integer(key)
	if value < 0 {
		r.fail(key, "must not be negative")
	}
	return int(value)
}

func (r *argReader) float(key string) float64 {
	raw := r.required(key)
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		r.fail(key, "must be a number")
		return 0
	}
	return value
}

func (r *argReader) role(key string) models.Role {
	raw := r.required(key)
	if raw == "" {
		return ""
	}
	role, ok := models.ParseRole(raw)
	if !ok {
		r.fail(key, "must be one of Admin, Instructor, TA, Student, Guest")
		return ""
	}
	return role
}

func (r *argReader) optionalRole(key string) models.Role {
	if r.optional(key) == "" {
		return ""
	}
	return r.role(key)
}

func (r *argReader) student(key string) string {
	value := r.required(key)
	if value == "" {
		return ""
	}
	if problem := r.lookup.Check(value); problem != "" {
		r.fail(key, problem)
	}
	return value
}

func (r *argReader) optionalStudent(key string) string {
	if r.optional(key) == "" {
		return ""
	}
	return r.student(key)
}

func (r *argReader) attendanceStatus(key string) models.AttendanceStatus {
	raw := r.required(key)
	switch strings.ToLower(raw) {
	case "":
		return models.AttendanceAbsent
	case "1", "present":
		return models.AttendancePresent
	case "0", "absent":
		return models.AttendanceAbsent
	}
	r.fail(key, "must be 1 (Present) or 0 (Absent)")
	return models.AttendanceAbsent
}

func (r *argReader) err() error {
	if len(r.problems) == 0 {
		return nil
	}
	return appErrors.Clone(appErrors.ErrValidation, strings.Join(r.problems, "; "))
}

func validationError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}
