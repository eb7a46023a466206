package conversationlog

import (
	"context"

	"bookstore/internal/core/domain/model/conversation"
	"bookstore/internal/pkg/logger"

	"go.uber.org/zap"
)

// FileLog writes each turn as one JSON line to a rotated transcript file.
type FileLog struct {
	log *zap.Logger
}

func NewFileLog(path string) *FileLog {
	return &FileLog{log: logger.NewFileOnly(path)}
}

func (f *FileLog) Append(_ context.Context, turn conversation.Turn) error {
	f.log.Info("turn",
		zap.String("session_id", turn.SessionID),
		zap.String("intent", string(turn.Intent)),
		zap.String("user_message", turn.UserMessage),
		zap.String("bot_response", turn.BotResponse),
		zap.Time("created_at", turn.CreatedAt),
	)
	return nil
}

// Sync flushes buffered entries.
func (f *FileLog) Sync() error {
	return f.log.Sync()
}
