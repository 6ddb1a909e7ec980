package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jangheelee880707/wooahhan/internal/app/model"
	"github.com/jangheelee880707/wooahhan/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

const lockKeyPrefix = "lock:"

// SessionRepository stores whole sessions. Get always returns a private copy;
// callers persist changes with Save.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*model.Session, error)
	Save(ctx context.Context, session *model.Session) error
	Delete(ctx context.Context, id string) error
	// SweepIdle removes sessions not saved within idle and returns how many
	// were removed.
	SweepIdle(ctx context.Context, idle time.Duration) (int, error)
	// TryLock takes a lease on key without waiting. The lease lapses after
	// ttl if unlock is never called. Leases are visible to every process
	// sharing the store.
	TryLock(ctx context.Context, key string, ttl time.Duration) (unlock func(), ok bool, err error)
}

type memoryEntry struct {
	data      []byte
	updatedAt time.Time
}

type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	leases   map[string]time.Time
	now      func() time.Time
}

func NewMemorySessionRepository() SessionRepository {
	return &memorySessionRepository{
		sessions: make(map[string]memoryEntry),
		leases:   make(map[string]time.Time),
		now:      time.Now,
	}
}

func (r *memorySessionRepository) Get(_ context.Context, id string) (*model.Session, error) {
	r.mu.RLock()
	entry, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return decodeSession(entry.data)
}

func (r *memorySessionRepository) Save(_ context.Context, session *model.Session) error {
	session.UpdatedAt = r.now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	r.mu.Lock()
	r.sessions[session.ID] = memoryEntry{data: data, updatedAt: session.UpdatedAt}
	r.mu.Unlock()
	return nil
}

func (r *memorySessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
	return nil
}

func (r *memorySessionRepository) SweepIdle(_ context.Context, idle time.Duration) (int, error) {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, entry := range r.sessions {
		if entry.updatedAt.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed, nil
}

func (r *memorySessionRepository) TryLock(_ context.Context, key string, ttl time.Duration) (func(), bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if expires, held := r.leases[key]; held && now.Before(expires) {
		return nil, false, nil
	}
	expires := now.Add(ttl)
	r.leases[key] = expires

	return func() {
		r.mu.Lock()
		// a lapsed lease may already belong to someone else
		if r.leases[key].Equal(expires) {
			delete(r.leases, key)
		}
		r.mu.Unlock()
	}, true, nil
}

const sessionKeyPrefix = "session:"

// releaseLease deletes a lease only while it still carries our token.
var releaseLease = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionRepository stores sessions as JSON under session:<id>.
// Every Save refreshes the key TTL, so idle sessions expire on their own.
func NewRedisSessionRepository(client *redis.Client, ttl time.Duration) SessionRepository {
	return &redisSessionRepository{client: client, ttl: ttl}
}

func (r *redisSessionRepository) Get(ctx context.Context, id string) (*model.Session, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		logger.Error("Failed to read session from Redis", err, map[string]interface{}{
			"session_id": id,
		})
		return nil, err
	}
	return decodeSession(data)
}

func (r *redisSessionRepository) Save(ctx context.Context, session *model.Session) error {
	session.UpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+session.ID, data, r.ttl).Err(); err != nil {
		logger.Error("Failed to write session to Redis", err, map[string]interface{}{
			"session_id": session.ID,
		})
		return err
	}
	return nil
}

func (r *redisSessionRepository) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, sessionKeyPrefix+id).Err()
}

// SweepIdle is a no-op; Redis expires keys itself.
func (r *redisSessionRepository) SweepIdle(context.Context, time.Duration) (int, error) {
	return 0, nil
}

// TryLock uses SET NX with a random token so a lapsed lease taken over by
// another instance is never released by the old holder.
func (r *redisSessionRepository) TryLock(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	token := uuid.NewString()
	ok, err := r.client.SetNX(ctx, lockKeyPrefix+key, token, ttl).Result()
	if err != nil {
		logger.Error("Failed to acquire Redis lease", err, map[string]interface{}{
			"key": key,
		})
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	return func() {
		if err := releaseLease.Run(context.Background(), r.client, []string{lockKeyPrefix + key}, token).Err(); err != nil {
			logger.Warn("Failed to release Redis lease", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}, true, nil
}

func decodeSession(data []byte) (*model.Session, error) {
	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	if session.Images == nil {
		session.Images = map[string]string{}
	}
	if session.Cart.Lines == nil {
		session.Cart.Lines = []model.CartLine{}
	}
	return &session, nil
}
