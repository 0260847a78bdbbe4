package service

import (
	"context"
	"sync"
	"time"

	"github.com/noah-isme/srms-gateway/internal/models"
	appErrors "github.com/noah-isme/srms-gateway/pkg/errors"
)

type fakeAccount struct {
	password  string
	role      models.Role
	clearance int
}

// fakeRemote stands in for the stored-procedure layer and records every call.
type fakeRemote struct {
	mu         sync.Mutex
	calls      []string
	accounts   map[string]fakeAccount
	requests   []models.RoleUpgradeRequest
	nextID     int64
	profiles   []models.Profile
	grades     []models.GradeRecord
	attendance []models.AttendanceRecord
	courses    []models.CourseListing
	aggregate  *models.DepartmentAggregate
	err        error
	now        time.Time
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		accounts: map[string]fakeAccount{
			"admin1": {password: "adminpass", role: models.RoleAdmin, clearance: 5},
			"bob":    {password: "pw", role: models.RoleTA, clearance: 2},
			"alice":  {password: "pw", role: models.RoleStudent, clearance: 1},
			"guest1": {password: "guest", role: models.RoleGuest, clearance: 0},
		},
		now: time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (f *fakeRemote) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	return f.err
}

func (f *fakeRemote) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeRemote) ValidateLogin(ctx context.Context, username, password string) (*models.Principal, error) {
	if err := f.record("validate_login"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	account, ok := f.accounts[username]
	if !ok || account.password != password {
		return nil, nil
	}
	return &models.Principal{Username: username, Role: account.role, ClearanceLevel: account.clearance}, nil
}

func (f *fakeRemote) CreateUser(ctx context.Context, admin, username, password string, role models.Role, clearance int) error {
	if err := f.record("create_user"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[username] = fakeAccount{password: password, role: role, clearance: clearance}
	return nil
}

func (f *fakeRemote) UpdateUserRole(ctx context.Context, admin, target string, role models.Role, clearance int) error {
	if err := f.record("update_user_role"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	account, ok := f.accounts[target]
	if !ok {
		return appErrors.Clone(appErrors.ErrRemote, "user not found")
	}
	account.role = role
	account.clearance = clearance
	f.accounts[target] = account
	return nil
}

func (f *fakeRemote) ViewProfiles(ctx context.Context, username string) ([]models.Profile, error) {
	if err := f.record("view_profiles_by_role"); err != nil {
		return nil, err
	}
	return f.profiles, nil
}

func (f *fakeRemote) EnterOrUpdate(ctx context.Context, username, student string, courseID int64, value float64) error {
	if err := f.record("enter_or_update_grade"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.grades {
		if f.grades[i].CourseID == courseID {
			f.grades[i].GradeValue = value
			return nil
		}
	}
	f.grades = append(f.grades, models.GradeRecord{GradeID: int64(len(f.grades) + 1), CourseID: courseID, GradeValue: value, EnteredBy: username})
	return nil
}

func (f *fakeRemote) ViewGrades(ctx context.Context, username, student string) ([]models.GradeRecord, error) {
	if err := f.record("view_grades"); err != nil {
		return nil, err
	}
	return f.grades, nil
}

func (f *fakeRemote) Record(ctx context.Context, username, student string, courseID int64, status models.AttendanceStatus) error {
	if err := f.record("record_attendance"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attendance = append(f.attendance, models.AttendanceRecord{
		AttendanceID: int64(len(f.attendance) + 1),
		CourseID:     courseID,
		Status:       status,
		RecordedBy:   username,
	})
	return nil
}

func (f *fakeRemote) View(ctx context.Context, username, student string) ([]models.AttendanceRecord, error) {
	if err := f.record("view_attendance"); err != nil {
		return nil, err
	}
	return f.attendance, nil
}

func (f *fakeRemote) ViewPublic(ctx context.Context, username string) ([]models.CourseListing, error) {
	if err := f.record("view_public_courses"); err != nil {
		return nil, err
	}
	return f.courses, nil
}

func (f *fakeRemote) Submit(ctx context.Context, username string, requested models.Role, reason string) error {
	if err := f.record("submit_role_upgrade_request"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.requests = append(f.requests, models.RoleUpgradeRequest{
		RequestID:     f.nextID,
		Username:      username,
		CurrentRole:   f.accounts[username].role,
		RequestedRole: requested,
		Reason:        reason,
		DateSubmitted: f.now.Add(time.Duration(f.nextID) * time.Minute),
		Status:        models.RoleRequestPending,
	})
	return nil
}

func (f *fakeRemote) ListPending(ctx context.Context, admin string) ([]models.RoleUpgradeRequest, error) {
	if err := f.record("list_pending_role_requests"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := make([]models.RoleUpgradeRequest, len(f.requests))
	copy(rows, f.requests)
	return rows, nil
}

// Resolve transitions a request atomically under the lock, like the stored function's
// guarded UPDATE.
func (f *fakeRemote) Resolve(ctx context.Context, admin string, requestID int64, decision models.RoleDecision, clearance *int) (*models.RoleResolution, error) {
	if err := f.record("resolve_role_request"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.requests {
		req := &f.requests[i]
		if req.RequestID != requestID {
			continue
		}
		if req.Status.Terminal() {
			return &models.RoleResolution{Transitioned: false, Status: req.Status}, nil
		}
		if decision == models.DecisionApprove {
			req.Status = models.RoleRequestApproved
			account := f.accounts[req.Username]
			account.role = req.RequestedRole
			if clearance != nil {
				account.clearance = *clearance
			}
			f.accounts[req.Username] = account
		} else {
			req.Status = models.RoleRequestDenied
		}
		return &models.RoleResolution{Transitioned: true, Status: req.Status}, nil
	}
	return nil, nil
}

func (f *fakeRemote) AvgGradeByDepartment(ctx context.Context, admin, department string) (*models.DepartmentAggregate, error) {
	if err := f.record("avg_grade_by_department"); err != nil {
		return nil, err
	}
	return f.aggregate, nil
}

func (f *fakeRemote) account(username string) fakeAccount {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accounts[username]
}
