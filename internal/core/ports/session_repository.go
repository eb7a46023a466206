package ports

import (
	"context"
	"time"

	"bookstore/internal/core/domain/model/dialog"
)

// SessionRepository is the durable backend behind the session store.
// Implementations must be safe for concurrent use.
type SessionRepository interface {
	// Get loads a session. Returns errs.ErrObjectNotFound for unknown ids.
	Get(ctx context.Context, id string) (*dialog.Session, error)

	// Save inserts or replaces the session.
	Save(ctx context.Context, session *dialog.Session) error

	// Delete removes the session. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteIdleSince removes sessions not updated since cutoff and reports
	// how many were removed.
	DeleteIdleSince(ctx context.Context, cutoff time.Time) (int64, error)
}
