package conversationlog_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"bookstore/internal/adapters/out/conversationlog"
	"bookstore/internal/core/domain/model/conversation"
	"bookstore/internal/core/domain/model/nlu"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type memorySink struct {
	mu    sync.Mutex
	turns []conversation.Turn
	err   error
	gate  chan struct{}
}

func (s *memorySink) Append(_ context.Context, turn conversation.Turn) error {
	if s.gate != nil {
		<-s.gate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.turns = append(s.turns, turn)
	return nil
}

func turn(t *testing.T, session, msg string) conversation.Turn {
	t.Helper()
	tr, err := conversation.NewTurn(session, msg, "ok", nlu.Greeting, time.Now())
	require.NoError(t, err)
	return tr
}

func TestRecorder_DeliversInOrderAndFlushesOnClose(t *testing.T) {
	sink := &memorySink{}
	r := conversationlog.NewRecorder(sink, 16, zap.NewNop())

	for _, msg := range []string{"một", "hai", "ba"} {
		r.Notify(turn(t, "s1", msg))
	}
	require.NoError(t, r.Close(context.Background()))

	require.Len(t, sink.turns, 3)
	assert.Equal(t, "một", sink.turns[0].UserMessage)
	assert.Equal(t, "ba", sink.turns[2].UserMessage)
}

func TestRecorder_DropsWhenBufferFull(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	sink := &memorySink{gate: make(chan struct{})}
	r := conversationlog.NewRecorder(sink, 1, zap.New(core))

	// The first turn is taken by the drain goroutine and blocks on the gate,
	// the second fills the buffer, the third has nowhere to go.
	r.Notify(turn(t, "s1", "1"))
	require.Eventually(t, func() bool {
		r.Notify(turn(t, "s1", "x"))
		return logs.FilterMessage("conversation log buffer full, turn dropped").Len() > 0
	}, time.Second, 5*time.Millisecond)

	close(sink.gate)
	require.NoError(t, r.Close(context.Background()))
}

func TestRecorder_SinkErrorsAreSwallowed(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	sink := &memorySink{err: errors.New("db down")}
	r := conversationlog.NewRecorder(sink, 4, zap.New(core))

	r.Notify(turn(t, "s1", "xin chào"))
	require.NoError(t, r.Close(context.Background()))

	entries := logs.FilterMessage("conversation log append failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "s1", entries[0].ContextMap()["session_id"])
}

func TestRecorder_NotifyAfterCloseIsIgnored(t *testing.T) {
	sink := &memorySink{}
	r := conversationlog.NewRecorder(sink, 4, zap.NewNop())
	require.NoError(t, r.Close(context.Background()))
	require.NoError(t, r.Close(context.Background()))

	assert.NotPanics(t, func() { r.Notify(turn(t, "s1", "muộn")) })
	assert.Empty(t, sink.turns)
}

func TestFileLog_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversations.log")
	fl := conversationlog.NewFileLog(path)

	require.NoError(t, fl.Append(context.Background(), turn(t, "s9", "tìm sách sapiens")))
	_ = fl.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"session_id":"s9"`)
	assert.Contains(t, string(data), `"intent":"greeting"`)
	assert.Contains(t, string(data), "tìm sách sapiens")
}
