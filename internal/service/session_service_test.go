package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/srms-gateway/internal/dto"
	"github.com/noah-isme/srms-gateway/internal/models"
	"github.com/noah-isme/srms-gateway/internal/repository"
	appErrors "github.com/noah-isme/srms-gateway/pkg/errors"
)

func newTestSessionService(remote *fakeRemote) (*SessionService, *repository.MemorySessionRepository) {
	store := repository.NewMemorySessionRepository()
	svc := NewSessionService(remote, store, nil, nil, nil, SessionConfig{
		Secret: "test-secret",
		TTL:    time.Hour,
		Issuer: "srms-test",
	})
	return svc, store
}

func TestAuthenticateOpensSession(t *testing.T) {
	svc, _ := newTestSessionService(newFakeRemote())

	resp, err := svc.Authenticate(context.Background(), dto.LoginRequest{Username: "bob", Password: "pw"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, models.Principal{Username: "bob", Role: models.RoleTA, ClearanceLevel: 2}, resp.Principal)
	assert.ElementsMatch(t, []string{"viewAssignedProfiles", "recordAttendance", "viewAttendance", "submitRoleRequest"}, resp.Operations)

	session, err := svc.Resolve(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "bob", session.Principal.Username)
	assert.Equal(t, models.RoleTA, session.Principal.Role)
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestSessionService(newFakeRemote())

	_, err := svc.Authenticate(context.Background(), dto.LoginRequest{Username: "bob", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrInvalidCredentials))

	_, err = svc.Authenticate(context.Background(), dto.LoginRequest{Username: "", Password: "pw"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestAuthenticateSurfacesRemoteUnavailable(t *testing.T) {
	remote := newFakeRemote()
	remote.err = appErrors.ErrRemoteUnavailable
	svc, _ := newTestSessionService(remote)

	_, err := svc.Authenticate(context.Background(), dto.LoginRequest{Username: "bob", Password: "pw"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrRemoteUnavailable))
}

func TestAuthenticateReplacesPreviousSession(t *testing.T) {
	svc, _ := newTestSessionService(newFakeRemote())
	ctx := context.Background()

	first, err := svc.Authenticate(ctx, dto.LoginRequest{Username: "bob", Password: "pw"})
	require.NoError(t, err)
	second, err := svc.Authenticate(ctx, dto.LoginRequest{Username: "bob", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Resolve(ctx, first.AccessToken)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))

	_, err = svc.Resolve(ctx, second.AccessToken)
	require.NoError(t, err)
}

func TestLogoutDestroysSession(t *testing.T) {
	svc, _ := newTestSessionService(newFakeRemote())
	ctx := context.Background()

	resp, err := svc.Authenticate(ctx, dto.LoginRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	session, err := svc.Resolve(ctx, resp.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, session))

	_, err = svc.Resolve(ctx, resp.AccessToken)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))
	assert.Error(t, svc.Logout(ctx, nil))
}

func TestResolveRejectsExpiredAndForeignTokens(t *testing.T) {
	svc, _ := newTestSessionService(newFakeRemote())
	ctx := context.Background()

	resp, err := svc.Authenticate(ctx, dto.LoginRequest{Username: "bob", Password: "pw"})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().UTC().Add(2 * time.Hour) }
	_, err = svc.Resolve(ctx, resp.AccessToken)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.SessionClaims{SessionID: "x", Username: "bob"})
	signed, err := forged.SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = svc.Resolve(ctx, signed)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))

	_, err = svc.Resolve(ctx, "not-a-token")
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))
}

// A TA logs in, sees the TA view, and is refused an admin operation before any remote call.
func TestTALoginScenario(t *testing.T) {
	remote := newFakeRemote()
	svc, _ := newTestSessionService(remote)
	router := newTestRouter(remote, nil)
	ctx := context.Background()

	resp, err := svc.Authenticate(ctx, dto.LoginRequest{Username: "bob", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleTA, resp.Principal.Role)
	assert.Contains(t, resp.Operations, string(models.OpRecordAttendance))
	assert.NotContains(t, resp.Operations, string(models.OpCreateUser))

	session, err := svc.Resolve(ctx, resp.AccessToken)
	require.NoError(t, err)
	callsAfterLogin := remote.callCount()

	_, err = router.Invoke(ctx, session.Principal, models.OpCreateUser, dto.Args{"username": "eve", "password": "x", "role": "Admin", "clearance": "5"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrRoleNotPermitted))
	assert.Equal(t, callsAfterLogin, remote.callCount())
}
