package signup

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"trustgrade-workers/internal/common/errors"
)

const sessionKeyPrefix = "signup:session:"

// Session is a wizard in progress, kept between jobs.
type Session struct {
	ID           string    `json:"id"`
	Wizard       Wizard    `json:"wizard"`
	CreatedAt    time.Time `json:"createdAt"`
	ExpiresAt    time.Time `json:"expiresAt"`
	LastActivity time.Time `json:"lastActivity"`
}

// IsExpired checks if session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// UpdateActivity updates the last activity timestamp
func (s *Session) UpdateActivity() {
	s.LastActivity = time.Now()
}

// SessionStore defines session data access interface
type SessionStore interface {
	Create(ctx context.Context) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

// RedisSessionStore keeps sessions as JSON with a sliding TTL.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

// NewSession starts a wizard under a fresh id. Nothing is stored until Save.
func NewSession() *Session {
	now := time.Now().UTC()
	return &Session{
		ID:           uuid.NewString(),
		Wizard:       *NewWizard(),
		CreatedAt:    now,
		LastActivity: now,
	}
}

func (r *RedisSessionStore) Create(ctx context.Context) (*Session, error) {
	s := NewSession()
	if err := r.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *RedisSessionStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, errors.NewSessionNotFoundError(id)
	}
	if err != nil {
		return nil, errors.NewSessionStoreFailedError(err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.NewSessionStoreFailedError(err)
	}
	if s.IsExpired() {
		return nil, errors.NewSessionNotFoundError(id)
	}
	return &s, nil
}

// Save writes s and pushes its expiry out by the store TTL.
func (r *RedisSessionStore) Save(ctx context.Context, s *Session) error {
	s.UpdateActivity()
	s.ExpiresAt = s.LastActivity.Add(r.ttl)

	stored := *s
	state, err := s.Wizard.State.Seal()
	if err != nil {
		return errors.NewSessionStoreFailedError(err)
	}
	stored.Wizard.State = state

	data, err := json.Marshal(&stored)
	if err != nil {
		return errors.NewSessionStoreFailedError(err)
	}
	if err := r.client.Set(ctx, sessionKey(s.ID), data, r.ttl).Err(); err != nil {
		return errors.NewSessionStoreFailedError(err)
	}
	return nil
}

func (r *RedisSessionStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return errors.NewSessionStoreFailedError(err)
	}
	return nil
}
