package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	role, ok := ParseRole(" instructor ")
	assert.True(t, ok)
	assert.Equal(t, RoleInstructor, role)

	role, ok = ParseRole("ta")
	assert.True(t, ok)
	assert.Equal(t, RoleTA, role)

	_, ok = ParseRole("SuperAdmin")
	assert.False(t, ok)

	assert.True(t, RoleGuest.Valid())
	assert.False(t, Role("guest").Valid())
}

func TestNextRole(t *testing.T) {
	next, ok := RoleStudent.NextRole()
	assert.True(t, ok)
	assert.Equal(t, RoleTA, next)

	next, ok = RoleTA.NextRole()
	assert.True(t, ok)
	assert.Equal(t, RoleInstructor, next)

	for _, r := range []Role{RoleInstructor, RoleAdmin, RoleGuest} {
		_, ok := r.NextRole()
		assert.False(t, ok, r)
	}
}

func TestRoleRequestStatusTerminal(t *testing.T) {
	assert.False(t, RoleRequestPending.Terminal())
	assert.True(t, RoleRequestApproved.Terminal())
	assert.True(t, RoleRequestDenied.Terminal())
}

func TestApprovalClearance(t *testing.T) {
	assert.Equal(t, map[Role]int{RoleTA: 3, RoleInstructor: 3}, ApprovalClearance)
}

func TestAttendanceStatusText(t *testing.T) {
	text, err := AttendancePresent.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "Present", string(text))
	assert.Equal(t, "Absent", AttendanceAbsent.String())
}
