// Package turnpublisher streams conversation turns to NATS JetStream so
// analytics consumers can read transcripts without touching the database.
package turnpublisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bookstore/internal/core/domain/model/conversation"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"
)

const (
	StreamName = "CONVERSATIONS"
	Subject    = "events.conversation.turn"
)

// Event is the JSON document published for each turn.
type Event struct {
	EventID    string            `json:"event_id"`
	EventType  string            `json:"event_type"`
	OccurredAt time.Time         `json:"occurred_at"`
	Turn       conversation.Turn `json:"turn"`
}

// Publisher implements ConversationLog on a JetStream stream.
type Publisher struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	logger *zap.Logger
	newID  func() string
}

// NewPublisher connects to url and makes sure the stream exists. A stream
// setup failure is logged rather than returned so the service can start
// while NATS is still coming up.
func NewPublisher(url string, logger *zap.Logger) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("bookstore-chat"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	p := &Publisher{
		nc:     nc,
		js:     js,
		logger: logger.Named("turn_publisher"),
		newID:  func() string { return uuid.NewString() },
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = p.ensureStream(ctx); err != nil {
		p.logger.Warn("failed to ensure stream", zap.String("stream", StreamName), zap.Error(err))
	}

	return p, nil
}

func (p *Publisher) ensureStream(ctx context.Context) error {
	_, err := p.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      StreamName,
		Subjects:  []string{Subject},
		Storage:   jetstream.FileStorage,
		Retention: jetstream.LimitsPolicy,
		MaxAge:    30 * 24 * time.Hour,
	})
	return err
}

// Append publishes the turn. The event id doubles as the JetStream message
// id so a retried publish is deduplicated by the server.
func (p *Publisher) Append(ctx context.Context, turn conversation.Turn) error {
	event := Event{
		EventID:    p.newID(),
		EventType:  "conversation.turn",
		OccurredAt: turn.CreatedAt,
		Turn:       turn,
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal turn event: %w", err)
	}

	if _, err = p.js.Publish(ctx, Subject, data, jetstream.WithMsgID(event.EventID)); err != nil {
		return fmt.Errorf("failed to publish event to subject %s: %w", Subject, err)
	}
	return nil
}

// Close drains the connection.
func (p *Publisher) Close() {
	if p.nc != nil {
		_ = p.nc.Drain()
	}
}
