// Package conversationlog delivers finished turns to a transcript sink off
// the request path.
package conversationlog

import (
	"context"
	"sync"
	"time"

	"bookstore/internal/core/domain/model/conversation"
	"bookstore/internal/core/ports"

	"go.uber.org/zap"
)

const (
	DefaultBufferSize    = 256
	DefaultAppendTimeout = 5 * time.Second
)

// Recorder queues turns on a buffered channel drained by one goroutine.
// Notify never blocks: when the buffer is full the turn is dropped.
// Sink errors are logged and otherwise ignored.
type Recorder struct {
	sink    ports.ConversationLog
	logger  *zap.Logger
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan conversation.Turn
	done   chan struct{}
}

// NewRecorder starts the drain goroutine. Close must be called to flush.
func NewRecorder(sink ports.ConversationLog, bufferSize int, logger *zap.Logger) *Recorder {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	r := &Recorder{
		sink:    sink,
		logger:  logger.Named("conversation_log"),
		timeout: DefaultAppendTimeout,
		queue:   make(chan conversation.Turn, bufferSize),
		done:    make(chan struct{}),
	}
	go r.drain()
	return r
}

// Notify implements ports.TurnNotifier.
func (r *Recorder) Notify(turn conversation.Turn) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		r.logger.Warn("recorder closed, turn dropped", zap.String("session_id", turn.SessionID))
		return
	}

	select {
	case r.queue <- turn:
	default:
		r.logger.Warn("conversation log buffer full, turn dropped", zap.String("session_id", turn.SessionID))
	}
}

// Close stops accepting turns and waits until the queued ones are written
// or ctx is done.
func (r *Recorder) Close(ctx context.Context) error {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Recorder) drain() {
	defer close(r.done)

	for turn := range r.queue {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		if err := r.sink.Append(ctx, turn); err != nil {
			r.logger.Warn("conversation log append failed",
				zap.String("session_id", turn.SessionID),
				zap.Error(err),
			)
		}
		cancel()
	}
}
