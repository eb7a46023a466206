// Package memory provides process-local adapters. Sessions kept here are lost
// on restart, which suits tests and single-instance demos.
package memory

import (
	"context"
	"sync"
	"time"

	"bookstore/internal/core/domain/model/dialog"
	"bookstore/internal/pkg/errs"
)

// SessionRepository stores session copies in a map.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*dialog.Session
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]*dialog.Session)}
}

func (r *SessionRepository) Get(_ context.Context, id string) (*dialog.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("session", id)
	}
	return s.Clone(), nil
}

func (r *SessionRepository) Save(_ context.Context, session *dialog.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID()] = session.Clone()
	return nil
}

func (r *SessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *SessionRepository) DeleteIdleSince(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for id, s := range r.sessions {
		if s.UpdatedAt().Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored sessions.
func (r *SessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
