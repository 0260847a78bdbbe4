package models

import "time"

// RoleRequestStatus captures workflow states for role-upgrade requests.
type RoleRequestStatus string

const (
	RoleRequestPending  RoleRequestStatus = "Pending"
	RoleRequestApproved RoleRequestStatus = "Approved"
	RoleRequestDenied   RoleRequestStatus = "Denied"
)

// Terminal reports whether no further transition is allowed.
func (s RoleRequestStatus) Terminal() bool {
	return s == RoleRequestApproved || s == RoleRequestDenied
}

// RoleDecision is the verdict string understood by the remote store.
type RoleDecision string

const (
	DecisionApprove RoleDecision = "Approve"
	DecisionDeny    RoleDecision = "Deny"
)

// RoleUpgradeRequest is a user-initiated, admin-resolved elevation request.
type RoleUpgradeRequest struct {
	RequestID     int64             `db:"request_id" json:"requestId"`
	Username      string            `db:"username" json:"username"`
	CurrentRole   Role              `db:"current_role" json:"currentRole"`
	RequestedRole Role              `db:"requested_role" json:"requestedRole"`
	Reason        string            `db:"reason" json:"reason"`
	DateSubmitted time.Time         `db:"date_submitted" json:"dateSubmitted"`
	Status        RoleRequestStatus `db:"status" json:"status"`
}

// RoleResolution is the outcome reported by the store for a resolve call.
type RoleResolution struct {
	Transitioned bool              `db:"transitioned" json:"transitioned"`
	Status       RoleRequestStatus `db:"status" json:"status"`
}

// ApprovalClearance is the fixed clearance assigned when a request is approved.
var ApprovalClearance = map[Role]int{
	RoleTA:         3,
	RoleInstructor: 3,
}
