package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jangheelee880707/wooahhan/internal/app/model"
	"github.com/jangheelee880707/wooahhan/internal/app/repository"
	"github.com/jangheelee880707/wooahhan/pkg/logger"
)

var ErrRequestInFlight = errors.New("a request of this kind is already in progress")

const (
	// requestLease outlives the slowest gateway call it guards.
	requestLease = 2 * time.Minute
	updateLease  = 10 * time.Second
	leaseRetry   = 20 * time.Millisecond
)

// SessionService loads and mutates sessions. Mutations of one session run
// one at a time; different sessions never block each other.
type SessionService interface {
	NewSessionID() string
	Load(ctx context.Context, sessionID string) (*model.Session, error)
	Update(ctx context.Context, sessionID string, fn func(*model.Session) error) (*model.Session, error)
	Delete(ctx context.Context, sessionID string) error
	SweepIdle(ctx context.Context, idle time.Duration) (int, error)
	// Acquire admits one holder per key across every server instance and
	// returns ErrRequestInFlight instead of waiting.
	Acquire(ctx context.Context, key string) (release func(), err error)
}

type sessionService struct {
	repo         repository.SessionRepository
	locks        *keyedMutex
	requestLease time.Duration
	updateLease  time.Duration
	now          func() time.Time
}

func NewSessionService(repo repository.SessionRepository) SessionService {
	return &sessionService{
		repo:         repo,
		locks:        newKeyedMutex(),
		requestLease: requestLease,
		updateLease:  updateLease,
		now:          time.Now,
	}
}

func (s *sessionService) NewSessionID() string {
	return uuid.NewString()
}

// Load returns the stored session or a fresh one. A fresh session is not
// saved until the first Update.
func (s *sessionService) Load(ctx context.Context, sessionID string) (*model.Session, error) {
	session, err := s.repo.Get(ctx, sessionID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return model.NewSession(sessionID, s.now()), nil
	}
	if err != nil {
		logger.Error("Failed to load session", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}
	return session, nil
}

// Update applies fn under the session lock and saves the result. When fn
// fails nothing is saved.
func (s *sessionService) Update(ctx context.Context, sessionID string, fn func(*model.Session) error) (*model.Session, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	// other instances sharing the store
	release, err := s.waitLease(ctx, "update:"+sessionID)
	if err != nil {
		return nil, err
	}
	defer release()

	session, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, session); err != nil {
		logger.Error("Failed to save session", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}
	return session, nil
}

func (s *sessionService) Delete(ctx context.Context, sessionID string) error {
	unlock := s.locks.Lock(sessionID)
	defer unlock()
	return s.repo.Delete(ctx, sessionID)
}

func (s *sessionService) SweepIdle(ctx context.Context, idle time.Duration) (int, error) {
	return s.repo.SweepIdle(ctx, idle)
}

func (s *sessionService) Acquire(ctx context.Context, key string) (func(), error) {
	release, ok, err := s.repo.TryLock(ctx, key, s.requestLease)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRequestInFlight
	}
	return release, nil
}

// waitLease polls for a lease until it is granted or ctx ends.
func (s *sessionService) waitLease(ctx context.Context, key string) (func(), error) {
	for {
		release, ok, err := s.repo.TryLock(ctx, key, s.updateLease)
		if err != nil {
			return nil, err
		}
		if ok {
			return release, nil
		}

		timer := time.NewTimer(leaseRetry)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// keyedMutex hands out one mutex per key and forgets keys nobody holds.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyedLock)}
}

func (k *keyedMutex) Lock(key string) (unlock func()) {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
