// Package conversation models the transcript entries written after each turn.
package conversation

import (
	"strings"
	"time"

	"bookstore/internal/core/domain/model/nlu"
	"bookstore/internal/pkg/errs"
)

// Turn is one request/reply cycle of a conversation.
type Turn struct {
	SessionID   string     `json:"session_id"`
	UserMessage string     `json:"user_message"`
	BotResponse string     `json:"bot_response"`
	Intent      nlu.Intent `json:"intent"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewTurn validates and creates a transcript entry.
func NewTurn(sessionID, userMessage, botResponse string, intent nlu.Intent, at time.Time) (Turn, error) {
	if strings.TrimSpace(sessionID) == "" {
		return Turn{}, errs.NewValueIsRequiredError("session id")
	}
	if intent == "" {
		intent = nlu.Unknown
	}
	return Turn{
		SessionID:   sessionID,
		UserMessage: userMessage,
		BotResponse: botResponse,
		Intent:      intent,
		CreatedAt:   at,
	}, nil
}
