package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	appErrors "github.com/noah-isme/srms-gateway/pkg/errors"
)

// Stored functions exposed by the remote store.
const (
	ProcValidateLogin            = "validate_login"
	ProcCreateUser               = "create_user"
	ProcUpdateUserRole           = "update_user_role"
	ProcViewProfilesByRole       = "view_profiles_by_role"
	ProcEnterOrUpdateGrade       = "enter_or_update_grade"
	ProcViewGrades               = "view_grades"
	ProcRecordAttendance         = "record_attendance"
	ProcViewAttendance           = "view_attendance"
	ProcViewPublicCourses        = "view_public_courses"
	ProcSubmitRoleUpgradeRequest = "submit_role_upgrade_request"
	ProcListPendingRoleRequests  = "list_pending_role_requests"
	ProcResolveRoleRequest       = "resolve_role_request"
	ProcAvgGradeByDepartment     = "avg_grade_by_department"
)

// sqlStateInsufficientPrivilege is raised by procedures that deny the caller.
const sqlStateInsufficientPrivilege = "42501"

// ProcedureObserver receives timing for every remote call.
type ProcedureObserver interface {
	ObserveProcedure(name string, duration time.Duration, code string)
}

// ProcedureCaller invokes named stored functions with positional arguments.
type ProcedureCaller struct {
	db       *sqlx.DB
	schema   string
	observer ProcedureObserver
}

// NewProcedureCaller constructs a caller bound to the given schema.
func NewProcedureCaller(db *sqlx.DB, schema string, observer ProcedureObserver) *ProcedureCaller {
	return &ProcedureCaller{db: db, schema: strings.TrimSpace(schema), observer: observer}
}

func (c *ProcedureCaller) function(name string, argc int) string {
	placeholders := make([]string, argc)
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	qualified := name
	if c.schema != "" {
		qualified = pq.QuoteIdentifier(c.schema) + "." + name
	}
	return fmt.Sprintf("%s(%s)", qualified, strings.Join(placeholders, ", "))
}

// Select runs a row-returning procedure into dest, which must be a slice pointer.
func (c *ProcedureCaller) Select(ctx context.Context, dest interface{}, name string, args ...interface{}) error {
	start := time.Now()
	err := c.db.SelectContext(ctx, dest, "SELECT * FROM "+c.function(name, len(args)), args...)
	return c.finish(name, start, err)
}

// Get runs a procedure returning at most one row. It reports false when no row came back.
func (c *ProcedureCaller) Get(ctx context.Context, dest interface{}, name string, args ...interface{}) (bool, error) {
	start := time.Now()
	err := c.db.GetContext(ctx, dest, "SELECT * FROM "+c.function(name, len(args)), args...)
	if errors.Is(err, sql.ErrNoRows) {
		c.observe(name, start, "")
		return false, nil
	}
	if err := c.finish(name, start, err); err != nil {
		return false, err
	}
	return true, nil
}

// Exec runs a state-changing procedure inside its own transaction.
func (c *ProcedureCaller) Exec(ctx context.Context, name string, args ...interface{}) error {
	start := time.Now()
	err := c.inTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, "SELECT "+c.function(name, len(args)), args...)
		return err
	})
	return c.finish(name, start, err)
}

// GetInTx runs a state-changing procedure that reports a single row, committing only on success.
func (c *ProcedureCaller) GetInTx(ctx context.Context, dest interface{}, name string, args ...interface{}) (bool, error) {
	start := time.Now()
	found := true
	err := c.inTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, dest, "SELECT * FROM "+c.function(name, len(args)), args...)
		if errors.Is(err, sql.ErrNoRows) {
			found = false
			return nil
		}
		return err
	})
	if err := c.finish(name, start, err); err != nil {
		return false, err
	}
	return found, nil
}

// Ping checks that the remote store is reachable.
func (c *ProcedureCaller) Ping(ctx context.Context) error {
	if err := c.db.PingContext(ctx); err != nil {
		return classify(err)
	}
	return nil
}

func (c *ProcedureCaller) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	commit := false
	defer func() {
		if !commit {
			_ = tx.Rollback()
		}
	}()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	commit = true
	return nil
}

func (c *ProcedureCaller) finish(name string, start time.Time, err error) error {
	if err == nil {
		c.observe(name, start, "")
		return nil
	}
	classified := classify(err)
	c.observe(name, start, appErrors.FromError(classified).Code)
	return classified
}

func (c *ProcedureCaller) observe(name string, start time.Time, code string) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveProcedure(name, time.Since(start), code)
}

// classify maps driver and server failures onto the error taxonomy, keeping
// the store's own message so it can be shown verbatim.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code == sqlStateInsufficientPrivilege:
			return appErrors.Wrap(err, appErrors.ErrRoleNotPermitted.Code, appErrors.ErrRoleNotPermitted.Status, pqErr.Message)
		case pqErr.Code.Class() == "08", pqErr.Code.Class() == "57":
			return appErrors.Wrap(err, appErrors.ErrRemoteUnavailable.Code, appErrors.ErrRemoteUnavailable.Status, appErrors.ErrRemoteUnavailable.Message)
		default:
			return appErrors.Wrap(err, appErrors.ErrRemote.Code, appErrors.ErrRemote.Status, pqErr.Message)
		}
	}
	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.As(err, &netErr) || errors.Is(err, sql.ErrConnDone) {
		return appErrors.Wrap(err, appErrors.ErrRemoteUnavailable.Code, appErrors.ErrRemoteUnavailable.Status, appErrors.ErrRemoteUnavailable.Message)
	}
	return appErrors.Wrap(err, appErrors.ErrRemote.Code, appErrors.ErrRemote.Status, err.Error())
}
