// Package conversationrepo appends chat transcripts to the conversations table.
package conversationrepo

import (
	"context"
	"time"

	"bookstore/internal/core/domain/model/conversation"
	"bookstore/internal/core/domain/model/nlu"

	"gorm.io/gorm"
)

// TurnDTO is one row of the conversations table.
type TurnDTO struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	SessionID   string    `gorm:"size:128;not null;index"`
	UserMessage string    `gorm:"type:text;not null"`
	BotResponse string    `gorm:"type:text;not null"`
	Intent      string    `gorm:"size:32;not null"`
	CreatedAt   time.Time `gorm:"not null;index"`
}

// TableName overrides GORM's default naming convention.
func (TurnDTO) TableName() string {
	return "conversations"
}

// GormConversationLog implements ConversationLog using GORM.
type GormConversationLog struct {
	db *gorm.DB
}

// NewGormConversationLog creates a new GORM conversation log.
func NewGormConversationLog(db *gorm.DB) *GormConversationLog {
	return &GormConversationLog{db: db}
}

// Append inserts one transcript row.
func (l *GormConversationLog) Append(ctx context.Context, turn conversation.Turn) error {
	dto := TurnDTO{
		SessionID:   turn.SessionID,
		UserMessage: turn.UserMessage,
		BotResponse: turn.BotResponse,
		Intent:      string(turn.Intent),
		CreatedAt:   turn.CreatedAt,
	}
	return l.db.WithContext(ctx).Create(&dto).Error
}

// History returns the latest turns of a session, oldest first.
func (l *GormConversationLog) History(ctx context.Context, sessionID string, limit int) ([]conversation.Turn, error) {
	var dtos []TurnDTO
	err := l.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	turns := make([]conversation.Turn, len(dtos))
	for i, dto := range dtos {
		turns[len(dtos)-1-i] = conversation.Turn{
			SessionID:   dto.SessionID,
			UserMessage: dto.UserMessage,
			BotResponse: dto.BotResponse,
			Intent:      nlu.ParseIntent(dto.Intent),
			CreatedAt:   dto.CreatedAt,
		}
	}
	return turns, nil
}
