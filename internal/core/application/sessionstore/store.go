// Package sessionstore keeps dialog sessions behind a read-through cache.
//
// The durable SessionRepository is the source of truth. Every Update and
// Clear is written to it before returning, the in-process cache only saves
// the storage round trip on reads. Callers must serialize operations on the
// same session id.
package sessionstore

import (
	"context"
	"errors"
	"time"

	"bookstore/internal/core/domain/model/dialog"
	"bookstore/internal/core/ports"
	"bookstore/internal/pkg/errs"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Store is the session store used by the dialog.
type Store struct {
	repo   ports.SessionRepository
	cache  *cache.Cache
	logger *zap.Logger
	now    func() time.Time
}

// New creates a store caching sessions for ttl after their last use.
func New(repo ports.SessionRepository, ttl time.Duration, logger *zap.Logger) *Store {
	return &Store{
		repo:   repo,
		cache:  cache.New(ttl, 2*ttl),
		logger: logger.With(zap.String("component", "session_store")),
		now:    time.Now,
	}
}

// Get returns a copy of the session, creating and persisting an idle one on
// first reference.
func (s *Store) Get(ctx context.Context, id string) (*dialog.Session, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return session.Clone(), nil
}

// Update replaces the state (dialog.Unknown keeps it) and merges patch into
// the context. Keys absent from patch are preserved.
func (s *Store) Update(ctx context.Context, id string, state dialog.State, patch dialog.ContextPatch) (*dialog.Session, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	next := session.Clone()
	if err = next.Apply(state, patch, s.now()); err != nil {
		return nil, err
	}
	if err = s.save(ctx, next); err != nil {
		return nil, err
	}

	s.logger.Debug("session updated",
		zap.String("session_id", id),
		zap.Stringer("from", session.State()),
		zap.Stringer("to", next.State()),
	)
	return next.Clone(), nil
}

// Clear resets the session to idle with an empty context.
func (s *Store) Clear(ctx context.Context, id string) error {
	session, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	next := session.Clone()
	next.Reset(s.now())
	return s.save(ctx, next)
}

// Evict drops a cached copy so the next read goes to storage.
func (s *Store) Evict(id string) {
	s.cache.Delete(id)
}

func (s *Store) load(ctx context.Context, id string) (*dialog.Session, error) {
	if cached, ok := s.cache.Get(id); ok {
		return cached.(*dialog.Session), nil
	}

	session, err := s.repo.Get(ctx, id)
	switch {
	case err == nil:
	case errors.Is(err, errs.ErrObjectNotFound):
		if session, err = dialog.NewSession(id, s.now()); err != nil {
			return nil, err
		}
		if err = s.repo.Save(ctx, session); err != nil {
			return nil, err
		}
		s.logger.Debug("session created", zap.String("session_id", id))
	default:
		return nil, err
	}

	s.cache.SetDefault(id, session)
	return session, nil
}

func (s *Store) save(ctx context.Context, session *dialog.Session) error {
	if err := s.repo.Save(ctx, session); err != nil {
		s.Evict(session.ID())
		return err
	}
	s.cache.SetDefault(session.ID(), session.Clone())
	return nil
}

// ExpireIdle deletes sessions not updated since cutoff from storage and
// drops their cached copies. It returns the number of stored sessions removed.
func (s *Store) ExpireIdle(ctx context.Context, cutoff time.Time) (int64, error) {
	removed, err := s.repo.DeleteIdleSince(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	for id, item := range s.cache.Items() {
		if session, ok := item.Object.(*dialog.Session); ok && session.UpdatedAt().Before(cutoff) {
			s.Evict(id)
		}
	}
	return removed, nil
}
