package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/srms-gateway/internal/models"
)

func newSession(id, username string, ttl time.Duration) *models.Session {
	now := time.Now()
	return &models.Session{
		ID:        id,
		Principal: models.Principal{Username: username, Role: models.RoleStudent, ClearanceLevel: 1},
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
}

func TestMemorySessionRepositoryReplacesPreviousLogin(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newSession("s1", "bob", time.Hour)))
	require.NoError(t, repo.Save(ctx, newSession("s2", "bob", time.Hour)))

	_, err := repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	current, err := repo.Get(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, "bob", current.Principal.Username)
}

func TestMemorySessionRepositoryDelete(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newSession("s1", "alice", time.Hour)))
	require.NoError(t, repo.Delete(ctx, "s1"))
	require.NoError(t, repo.Delete(ctx, "s1"))

	_, err := repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessionRepositoryExpiry(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, newSession("s1", "carol", time.Minute)))

	repo.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err := repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Empty(t, repo.byUser)
}
