package dialog

import (
	"errors"
	"strings"
	"time"

	"bookstore/internal/pkg/errs"
	"bookstore/internal/pkg/guard"
)

var ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession or RestoreSession")

// ContextKey names an entry of the session context.
type ContextKey string

const (
	KeyDraft     ContextKey = "draft"
	KeySelection ContextKey = "selection"
)

// Context is the per-session slot storage. A nil field is an absent key.
type Context struct {
	Draft     *Draft     `json:"draft,omitempty"`
	Selection *Selection `json:"selection,omitempty"`
}

// IsEmpty reports whether no key is present.
func (c Context) IsEmpty() bool {
	return c.Draft == nil && c.Selection == nil
}

// Clone returns a deep copy.
func (c Context) Clone() Context {
	return Context{Draft: c.Draft.Clone(), Selection: c.Selection.Clone()}
}

// ContextPatch describes a merge into a Context. Non-nil fields replace the
// stored key, Unset removes keys and every other key is left untouched.
type ContextPatch struct {
	Draft     *Draft
	Selection *Selection
	Unset     []ContextKey
}

// Merge applies p to c and returns the result. c is not modified.
func (c Context) Merge(p ContextPatch) Context {
	out := c.Clone()
	for _, key := range p.Unset {
		switch key {
		case KeyDraft:
			out.Draft = nil
		case KeySelection:
			out.Selection = nil
		}
	}
	if p.Draft != nil {
		out.Draft = p.Draft.Clone()
	}
	if p.Selection != nil {
		out.Selection = p.Selection.Clone()
	}
	return out
}

// Session is the dialog state of one conversation.
type Session struct {
	id        string
	state     State
	context   Context
	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewSession creates an idle session with an empty context.
func NewSession(id string, now time.Time) (*Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errs.NewValueIsRequiredError("session id")
	}
	return &Session{
		id:        id,
		state:     Idle,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreSession rebuilds a session loaded from storage.
func RestoreSession(id string, state State, ctx Context, createdAt, updatedAt time.Time) (*Session, error) {
	s, err := NewSession(id, createdAt)
	if err != nil {
		return nil, err
	}
	if err = state.Validate(); err != nil {
		return nil, err
	}
	s.state = state
	s.context = ctx.Clone()
	s.updatedAt = updatedAt
	return s, nil
}

// Validate ensures the session was created through a constructor.
func (s *Session) Validate() error {
	if s == nil {
		return ErrSessionIsNotConstructed
	}
	return s.guard.Validate(ErrSessionIsNotConstructed)
}

func (s *Session) ID() string           { return s.id }
func (s *Session) State() State         { return s.state }
func (s *Session) Context() Context     { return s.context.Clone() }
func (s *Session) CreatedAt() time.Time { return s.createdAt }
func (s *Session) UpdatedAt() time.Time { return s.updatedAt }

// Draft returns a copy of the pending draft, or nil.
func (s *Session) Draft() *Draft {
	return s.context.Draft.Clone()
}

// Selection returns a copy of the candidate list, or nil.
func (s *Session) Selection() *Selection {
	return s.context.Selection.Clone()
}

// Apply replaces the state (unless Unknown) and merges patch into the context.
// Returning to Idle drops the context entirely since idle carries no draft.
func (s *Session) Apply(state State, patch ContextPatch, now time.Time) error {
	if state != Unknown {
		if err := state.Validate(); err != nil {
			return err
		}
		s.state = state
	}
	s.context = s.context.Merge(patch)
	if s.state == Idle {
		s.context = Context{}
	}
	s.updatedAt = now
	return nil
}

// Reset returns the session to Idle with an empty context.
func (s *Session) Reset(now time.Time) {
	s.state = Idle
	s.context = Context{}
	s.updatedAt = now
}

// Clone returns a deep copy.
func (s *Session) Clone() *Session {
	c := *s
	c.context = s.context.Clone()
	return &c
}
