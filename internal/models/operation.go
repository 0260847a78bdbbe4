package models

// Operation is the name of a routable remote command.
type Operation string

const (
	OpViewPublicCourses       Operation = "viewPublicCourses"
	OpViewOwnProfile          Operation = "viewOwnProfile"
	OpViewOwnAttendance       Operation = "viewOwnAttendance"
	OpSubmitRoleRequest       Operation = "submitRoleRequest"
	OpViewAssignedProfiles    Operation = "viewAssignedProfiles"
	OpRecordAttendance        Operation = "recordAttendance"
	OpViewAttendance          Operation = "viewAttendance"
	OpViewProfiles            Operation = "viewProfiles"
	OpEnterOrUpdateGrade      Operation = "enterOrUpdateGrade"
	OpViewGrades              Operation = "viewGrades"
	OpCreateUser              Operation = "createUser"
	OpUpdateUserRole          Operation = "updateUserRole"
	OpListPendingRoleRequests Operation = "listPendingRoleRequests"
	OpApproveRoleRequest      Operation = "approveRoleRequest"
	OpDenyRoleRequest         Operation = "denyRoleRequest"
	OpRunDepartmentAggregate  Operation = "runDepartmentAggregate"
)

// Mutates reports whether the operation changes state in the remote store.
func (o Operation) Mutates() bool {
	switch o {
	case OpSubmitRoleRequest, OpRecordAttendance, OpEnterOrUpdateGrade, OpCreateUser,
		OpUpdateUserRole, OpApproveRoleRequest, OpDenyRoleRequest:
		return true
	}
	return false
}
