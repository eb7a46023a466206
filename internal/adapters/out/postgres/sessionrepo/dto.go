// Package sessionrepo keeps dialog sessions in the chat_sessions table. The
// draft and the candidate list are stored together as one jsonb document.
package sessionrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"bookstore/internal/core/domain/model/dialog"
)

// SessionDTO is the row of the chat_sessions table.
type SessionDTO struct {
	SessionID string        `gorm:"primaryKey;size:128"`
	State     string        `gorm:"size:32;not null"`
	Context   ContextColumn `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt time.Time     `gorm:"not null"`
	UpdatedAt time.Time     `gorm:"not null;index"`
}

// TableName overrides GORM's default naming convention.
func (SessionDTO) TableName() string {
	return "chat_sessions"
}

// ContextColumn adapts dialog.Context to a jsonb column.
type ContextColumn dialog.Context

// Value implements driver.Valuer.
func (c ContextColumn) Value() (driver.Value, error) {
	raw, err := json.Marshal(dialog.Context(c))
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan implements sql.Scanner.
func (c *ContextColumn) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*c = ContextColumn{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported context column type %T", src)
	}

	var ctx dialog.Context
	if err := json.Unmarshal(raw, &ctx); err != nil {
		return err
	}
	*c = ContextColumn(ctx)
	return nil
}

func fromDomain(s *dialog.Session) SessionDTO {
	return SessionDTO{
		SessionID: s.ID(),
		State:     s.State().String(),
		Context:   ContextColumn(s.Context()),
		CreatedAt: s.CreatedAt(),
		UpdatedAt: s.UpdatedAt(),
	}
}

func toDomain(dto SessionDTO) (*dialog.Session, error) {
	state, err := dialog.ParseState(dto.State)
	if err != nil {
		return nil, err
	}
	return dialog.RestoreSession(dto.SessionID, state, dialog.Context(dto.Context), dto.CreatedAt, dto.UpdatedAt)
}
