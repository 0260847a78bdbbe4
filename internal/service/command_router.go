package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/srms-gateway/internal/dto"
	"github.com/noah-isme/srms-gateway/internal/models"
	appErrors "github.com/noah-isme/srms-gateway/pkg/errors"
)

// permittedOps is the single authority on which role may invoke which operation.
var permittedOps = map[models.Role]map[models.Operation]struct{}{
	models.RoleGuest: opSet(
		models.OpViewPublicCourses,
	),
	models.RoleStudent: opSet(
		models.OpViewOwnProfile,
		models.OpViewOwnAttendance,
		models.OpViewPublicCourses,
		models.OpSubmitRoleRequest,
	),
	models.RoleTA: opSet(
		models.OpViewAssignedProfiles,
		models.OpRecordAttendance,
		models.OpViewAttendance,
		models.OpSubmitRoleRequest,
	),
	models.RoleInstructor: opSet(
		models.OpViewProfiles,
		models.OpEnterOrUpdateGrade,
		models.OpViewGrades,
		models.OpRecordAttendance,
		models.OpViewAttendance,
	),
	models.RoleAdmin: opSet(
		models.OpCreateUser,
		models.OpUpdateUserRole,
		models.OpViewProfiles,
		models.OpEnterOrUpdateGrade,
		models.OpViewGrades,
		models.OpViewAttendance,
		models.OpListPendingRoleRequests,
		models.OpApproveRoleRequest,
		models.OpDenyRoleRequest,
		models.OpRunDepartmentAggregate,
	),
}

func opSet(ops ...models.Operation) map[models.Operation]struct{} {
	set := make(map[models.Operation]struct{}, len(ops))
	for _, op := range ops {
		set[op] = struct{}{}
	}
	return set
}

// Permitted reports whether role may invoke op.
func Permitted(role models.Role, op models.Operation) bool {
	_, ok := permittedOps[role][op]
	return ok
}

// PermittedOperations returns the sorted operation names available to role.
func PermittedOperations(role models.Role) []string {
	ops := make([]string, 0, len(permittedOps[role]))
	for op := range permittedOps[role] {
		ops = append(ops, string(op))
	}
	sort.Strings(ops)
	return ops
}

// RouterDeps groups the services the router dispatches to.
type RouterDeps struct {
	Users        *UserService
	Profiles     *ProfileService
	Grades       *GradeService
	Attendance   *AttendanceService
	Courses      *CourseService
	RoleRequests *RoleRequestService
	Analytics    *AnalyticsService
}

type operationFunc func(ctx context.Context, principal models.Principal, in *argReader) (*dto.OperationResult, error)

// CommandRouter authorizes operations by role and dispatches them to the remote store.
type CommandRouter struct {
	handlers map[models.Operation]operationFunc
	lookup   StudentLookup
	logger   *zap.Logger
	metrics  *MetricsService
}

// NewCommandRouter constructs the router.
func NewCommandRouter(deps RouterDeps, lookup StudentLookup, logger *zap.Logger, metrics *MetricsService) *CommandRouter {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &CommandRouter{lookup: lookup, logger: logger, metrics: metrics}
	r.handlers = map[models.Operation]operationFunc{
		models.OpViewPublicCourses: func(ctx context.Context, p models.Principal, in *argReader) (*dto.OperationResult, error) {
			courses, err := deps.Courses.ViewPublic(ctx, p)
			if err != nil {
				return nil, err
			}
			return rowsResult(models.OpViewPublicCourses, courses, len(courses)), nil
		},
		models.OpViewOwnProfile:       r.viewProfiles(deps.Profiles, models.OpViewOwnProfile),
		models.OpViewAssignedProfiles: r.viewProfiles(deps.Profiles, models.OpViewAssignedProfiles),
		models.OpViewProfiles:         r.viewProfiles(deps.Profiles, models.OpViewProfiles),
		models.OpViewOwnAttendance: func(ctx context.Context, p models.Principal, in *argReader) (*dto.OperationResult, error) {
			records, err := deps.Attendance.View(ctx, p, "")
			if err != nil {
				return nil, err
			}
			return rowsResult(models.OpViewOwnAttendance, records, len(records)), nil
		},
		models.OpViewAttendance: func(ctx context.Context, p models.Principal, in *argReader) (*dto.OperationResult, error) {
			student := in.optionalStudent("studentIdentifier")
			if err := in.err(); err != nil {
				return nil, err
			}
			records, err := deps.Attendance.View(ctx, p, student)
			if err != nil {
				return nil, err
			}
			return rowsResult(models.OpViewAttendance, records, len(records)), nil
		},
		models.OpRecordAttendance: func(ctx context.Context, p models.Principal, in *argReader) (*dto.OperationResult, error) {
			args := dto.AttendanceArgs{
				StudentIdentifier: in.student("studentIdentifier"),
				CourseID:          in.integer("courseId"),
				Status:            in.attendanceStatus("status"),
			}
			if err := in.err(); err != nil {
				return nil, err
			}
			if err := deps.Attendance.Record(ctx, p, args); err != nil {
				return nil, err
			}
			return messageResult(models.OpRecordAttendance, fmt.Sprintf("attendance recorded as %s", args.Status)), nil
		},
		models.OpEnterOrUpdateGrade: func(ctx context.Context, p models.Principal, in *argReader) (*dto.OperationResult, error) {
			args := dto.GradeArgs{
				StudentIdentifier: in.student("studentIdentifier"),
				CourseID:          in.integer("courseId"),
				GradeValue:        in.float("gradeValue"),
			}
			if err := in.err(); err != nil {
				return nil, err
			}
			if err := deps.Grades.EnterOrUpdate(ctx, p, args); err != nil {
				return nil, err
			}
			return messageResult(models.OpEnterOrUpdateGrade, "grade saved"), nil
		},
		models.OpViewGrades: func(ctx context.Context, p models.Principal, in *argReader) (*dto.OperationResult, error) {
			student := in.student("studentIdentifier")
			if err := in.err(); err != nil {
				return nil, err
			}
			grades, err := deps.Grades.View(ctx, p, student)
			if err != nil {
				return nil, err
			}
			return rowsResult(models.OpViewGrades, grades, len(grades)), nil
		},
		models.OpCreateUser: func(ctx context.Context, p models.Principal, in *argReader) (*dto.OperationResult, error) {
			args := dto.CreateUserArgs{
				Username:  in.required("username"),
				Password:  in.args.Get("password"),
				Role:      in.role("role"),
				Clearance: in.clearance("clearance"),
			}
			if args.Password == "" {
				in.fail("password", "is required")
			}
			if err := in.err(); err != nil {
				return nil, err
			}
			if err := deps.Users.CreateUser(ctx, p, args); err != nil {
				return nil, err
			}
			return messageResult(models.OpCreateUser, fmt.Sprintf("user %s created", args.Username)), nil
		},
		models.OpUpdateUserRole: func(ctx context.Context, p models.Principal, in *argReader) (*dto.OperationResult, error) {
			args := dto.UpdateUserRoleArgs{
				TargetUsername: in.required("targetUsername"),
				NewRole:        in.role("newRole"),
				NewClearance:   in.clearance("newClearance"),
			}
			if err := in.err(); err != nil {
				return nil, err
			}
			if err := deps.Users.UpdateUserRole(ctx, p, args); err != nil {
				return nil, err
			}
			return messageResult(models.OpUpdateUserRole, fmt.Sprintf("user %s is now %s", args.TargetUsername, args.NewRole)), nil
		},
		models.OpSubmitRoleRequest: func(ctx context.Context, p models.Principal, in *argReader) (*dto.OperationResult, error) {
			args := dto.RoleRequestArgs{
				RequestedRole: in.optionalRole("requestedRole"),
				Reason:        in.required("reason"),
			}
			if err := in.err(); err != nil {
				return nil, err
			}
			if err := deps.RoleRequests.Submit(ctx, p, args); err != nil {
				return nil, err
			}
			return messageResult(models.OpSubmitRoleRequest, "role upgrade request submitted"), nil
		},
		models.OpListPendingRoleRequests: func(ctx context.Context, p models.Principal, in *argReader) (*dto.OperationResult, error) {
			pending, err := deps.RoleRequests.ListPending(ctx, p)
			if err != nil {
				return nil, err
			}
			return rowsResult(models.OpListPendingRoleRequests, pending, len(pending)), nil
		},
		models.OpApproveRoleRequest: func(ctx context.Context, p models.Principal, in *argReader) (*dto.OperationResult, error) {
			// The role is passed through unparsed so tampered values surface as
			// INVALID_ROLE_FOR_APPROVAL rather than a generic validation failure.
			args := dto.ResolveRoleRequestArgs{
				RequestID:     in.integer("requestId"),
				RequestedRole: models.Role(in.required("requestedRole")),
			}
			if err := in.err(); err != nil {
				return nil, err
			}
			resolution, err := deps.RoleRequests.Approve(ctx, p, args)
			if err != nil {
				return nil, err
			}
			return &dto.OperationResult{
				Operation: models.OpApproveRoleRequest,
				Data:      resolution,
				Count:     1,
				Message:   fmt.Sprintf("role request %d approved", args.RequestID),
			}, nil
		},
		models.OpDenyRoleRequest: func(ctx context.Context, p models.Principal, in *argReader) (*dto.OperationResult, error) {
			requestID := in.integer("requestId")
			if err := in.err(); err != nil {
				return nil, err
			}
			resolution, err := deps.RoleRequests.Deny(ctx, p, requestID)
			if err != nil {
				return nil, err
			}
			return &dto.OperationResult{
				Operation: models.OpDenyRoleRequest,
				Data:      resolution,
				Count:     1,
				Message:   fmt.Sprintf("role request %d denied", requestID),
			}, nil
		},
		models.OpRunDepartmentAggregate: func(ctx context.Context, p models.Principal, in *argReader) (*dto.OperationResult, error) {
			department := in.required("department")
			if err := in.err(); err != nil {
				return nil, err
			}
			aggregate, err := deps.Analytics.DepartmentAverage(ctx, p, department)
			if err != nil {
				return nil, err
			}
			if aggregate == nil {
				return rowsResult(models.OpRunDepartmentAggregate, []models.DepartmentAggregate{}, 0), nil
			}
			return rowsResult(models.OpRunDepartmentAggregate, []models.DepartmentAggregate{*aggregate}, 1), nil
		},
	}
	return r
}

func (r *CommandRouter) viewProfiles(profiles *ProfileService, op models.Operation) operationFunc {
	return func(ctx context.Context, p models.Principal, in *argReader) (*dto.OperationResult, error) {
		rows, err := profiles.View(ctx, p)
		if err != nil {
			return nil, err
		}
		return rowsResult(op, rows, len(rows)), nil
	}
}

// Invoke checks the principal's role and runs the named operation.
func (r *CommandRouter) Invoke(ctx context.Context, principal models.Principal, op models.Operation, args dto.Args) (*dto.OperationResult, error) {
	role := string(principal.Role)
	if strings.TrimSpace(principal.Username) == "" {
		r.metrics.RecordDecision(string(op), role, DecisionDenied)
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "no active session")
	}

	handler, known := r.handlers[op]
	if !known || !Permitted(principal.Role, op) {
		r.metrics.RecordDecision(string(op), role, DecisionDenied)
		r.logger.Warn("operation denied",
			zap.String("username", principal.Username),
			zap.String("role", role),
			zap.String("operation", string(op)),
		)
		return nil, appErrors.Clone(appErrors.ErrRoleNotPermitted, fmt.Sprintf("role %s may not invoke %s", principal.Role, op))
	}

	result, err := handler(ctx, principal, newArgReader(args, r.lookup))
	if err != nil {
		outcome := DecisionFailed
		if errors.Is(err, appErrors.ErrValidation) || errors.Is(err, appErrors.ErrInvalidRoleForApproval) {
			outcome = DecisionInvalid
		}
		r.metrics.RecordDecision(string(op), role, outcome)
		r.logger.Info("operation failed",
			zap.String("username", principal.Username),
			zap.String("operation", string(op)),
			zap.String("code", appErrors.FromError(err).Code),
			zap.Error(err),
		)
		return nil, err
	}

	r.metrics.RecordDecision(string(op), role, DecisionAllowed)
	r.logger.Debug("operation completed",
		zap.String("username", principal.Username),
		zap.String("operation", string(op)),
		zap.Int("count", result.Count),
	)
	return result, nil
}

func rowsResult(op models.Operation, rows interface{}, count int) *dto.OperationResult {
	return &dto.OperationResult{Operation: op, Data: rows, Count: count}
}

func messageResult(op models.Operation, message string) *dto.OperationResult {
	return &dto.OperationResult{Operation: op, Message: message}
}
