package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/srms-gateway/internal/models"
)

// ErrSessionNotFound is returned when a session is unknown, expired or logged out.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists live sessions keyed by session id.
type SessionStore interface {
	Save(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}

var (
	_ SessionStore = (*RedisSessionRepository)(nil)
	_ SessionStore = (*MemorySessionRepository)(nil)
)

const (
	sessionKeyPrefix     = "srms:session:"
	sessionUserKeyPrefix = "srms:session:user:"
)

// RedisSessionRepository stores sessions in Redis, one active session per username.
type RedisSessionRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisSessionRepository constructs a Redis-backed session store.
func NewRedisSessionRepository(client *redis.Client, logger *zap.Logger) *RedisSessionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisSessionRepository{client: client, logger: logger}
}

// Save stores the session and replaces any previous session of the same user.
func (r *RedisSessionRepository) Save(ctx context.Context, session *models.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", session.ID)
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", session.ID, err)
	}

	userKey := sessionUserKeyPrefix + session.Principal.Username
	previous, err := r.client.Get(ctx, userKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("redis get %s: %w", userKey, err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if previous != "" && previous != session.ID {
			pipe.Del(ctx, sessionKeyPrefix+previous)
		}
		pipe.Set(ctx, sessionKeyPrefix+session.ID, payload, ttl)
		pipe.Set(ctx, userKey, session.ID, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save session %s: %w", session.ID, err)
	}
	if previous != "" && previous != session.ID {
		r.logger.Info("replaced previous session", zap.String("username", session.Principal.Username))
	}
	return nil
}

// Get loads a live session by identifier.
func (r *RedisSessionRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	raw, err := r.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis get session %s: %w", id, err)
	}
	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", id, err)
	}
	return &session, nil
}

// Delete destroys a session; deleting an unknown session is not an error.
func (r *RedisSessionRepository) Delete(ctx context.Context, id string) error {
	session, err := r.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}
		return err
	}
	userKey := sessionUserKeyPrefix + session.Principal.Username
	current, err := r.client.Get(ctx, userKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("redis get %s: %w", userKey, err)
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, sessionKeyPrefix+id)
		if current == id {
			pipe.Del(ctx, userKey)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis delete session %s: %w", id, err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (r *RedisSessionRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}

// MemorySessionRepository keeps sessions in process memory, one per username.
type MemorySessionRepository struct {
	mu       sync.Mutex
	sessions map[string]models.Session
	byUser   map[string]string
	now      func() time.Time
}

// NewMemorySessionRepository constructs an in-memory session store.
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]models.Session),
		byUser:   make(map[string]string),
		now:      time.Now,
	}
}

// Save stores the session and replaces any previous session of the same user.
func (r *MemorySessionRepository) Save(_ context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if previous, ok := r.byUser[session.Principal.Username]; ok {
		delete(r.sessions, previous)
	}
	r.sessions[session.ID] = *session
	r.byUser[session.Principal.Username] = session.ID
	return nil
}

// Get loads a live session by identifier.
func (r *MemorySessionRepository) Get(_ context.Context, id string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !r.now().Before(session.ExpiresAt) {
		r.remove(id, session.Principal.Username)
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

// Delete destroys a session.
func (r *MemorySessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session, ok := r.sessions[id]; ok {
		r.remove(id, session.Principal.Username)
	}
	return nil
}

func (r *MemorySessionRepository) remove(id, username string) {
	delete(r.sessions, id)
	if r.byUser[username] == id {
		delete(r.byUser, username)
	}
}
