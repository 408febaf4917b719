// Package memory holds the in-process session store. Screening state lives
// for one browser session and is discarded on restart, so no database backs it.
package memory

import (
	"context"
	"sync"
	"time"

	"go-screening-backend/internal/domain"
)

const janitorInterval = 10 * time.Minute

type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*domain.SessionState
	idleTTL  time.Duration
}

// NewSessionRepository creates the store. When idleTTL is positive a janitor
// goroutine purges sessions that have not been touched within it.
func NewSessionRepository(idleTTL time.Duration) *SessionRepository {
	r := &SessionRepository{
		sessions: make(map[string]*domain.SessionState),
		idleTTL:  idleTTL,
	}
	if idleTTL > 0 {
		go r.janitor()
	}
	return r
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*domain.SessionState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (r *SessionRepository) Save(ctx context.Context, session *domain.SessionState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.ID] = session
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}

// Len reports how many sessions are live. Used by the health endpoint.
func (r *SessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *SessionRepository) janitor() {
	ticker := time.NewTicker(janitorInterval)
	for range ticker.C {
		cutoff := time.Now().Add(-r.idleTTL)

		r.mu.Lock()
		for id, session := range r.sessions {
			// A session locked by an in-flight request is not idle.
			if !session.TryLock() {
				continue
			}
			if session.UpdatedAt.Before(cutoff) {
				delete(r.sessions, id)
			}
			session.Unlock()
		}
		r.mu.Unlock()
	}
}

var _ domain.SessionRepository = (*SessionRepository)(nil)
