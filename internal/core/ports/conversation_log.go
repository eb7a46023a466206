package ports

import (
	"context"

	"bookstore/internal/core/domain/model/conversation"
)

// ConversationLog is a sink for transcript entries.
type ConversationLog interface {
	Append(ctx context.Context, turn conversation.Turn) error
}

// TurnNotifier hands a finished turn to the conversation log without
// blocking the reply. Failures are never reported to the caller.
type TurnNotifier interface {
	Notify(turn conversation.Turn)
}
