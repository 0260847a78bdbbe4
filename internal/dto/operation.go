package dto

import "github.com/noah-isme/srms-gateway/internal/models"

// Args carries raw form fields for an operation invocation.
type Args map[string]string

// Get returns the named field or an empty string.
func (a Args) Get(key string) string {
	if a == nil {
		return ""
	}
	return a[key]
}

// OperationResult is the outcome of a routed operation.
type OperationResult struct {
	Operation models.Operation `json:"operation"`
	Data      interface{}      `json:"data,omitempty"`
	Count     int              `json:"count"`
	Message   string           `json:"message,omitempty"`
}

// OperationsResponse lists operations available to a principal.
type OperationsResponse struct {
	Role       models.Role `json:"role"`
	Operations []string    `json:"operations"`
}

// CreateUserArgs are validated inputs for createUser.
type CreateUserArgs struct {
	Username  string      `validate:"required"`
	Password  string      `validate:"required"`
	Role      models.Role `validate:"required"`
	Clearance int         `validate:"min=0"`
}

// UpdateUserRoleArgs are validated inputs for updateUserRole.
type UpdateUserRoleArgs struct {
	TargetUsername string      `validate:"required"`
	NewRole        models.Role `validate:"required"`
	NewClearance   int         `validate:"min=0"`
}

// GradeArgs are validated inputs for enterOrUpdateGrade.
type GradeArgs struct {
	StudentIdentifier string  `validate:"required"`
	CourseID          int64   `validate:"gt=0"`
	GradeValue        float64 `validate:"gte=0"`
}

// AttendanceArgs are validated inputs for recordAttendance.
type AttendanceArgs struct {
	StudentIdentifier string `validate:"required"`
	CourseID          int64  `validate:"gt=0"`
	Status            models.AttendanceStatus
}

// RoleRequestArgs are validated inputs for submitRoleRequest.
type RoleRequestArgs struct {
	RequestedRole models.Role `validate:"required"`
	Reason        string      `validate:"required"`
}

// ResolveRoleRequestArgs are validated inputs for approve/deny.
type ResolveRoleRequestArgs struct {
	RequestID     int64 `validate:"gt=0"`
	RequestedRole models.Role
}
