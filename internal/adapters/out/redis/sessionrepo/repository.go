// Package sessionrepo keeps dialog sessions in Redis as JSON documents.
//
// Each session lives under "<prefix>session:<id>" with a TTL refreshed on
// every save. A sorted set "<prefix>sessions:updated" scores ids by their
// last update so the expiry job can sweep sessions without a key scan.
package sessionrepo

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"bookstore/internal/core/domain/model/dialog"
	"bookstore/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

type document struct {
	ID        string         `json:"session_id"`
	State     dialog.State   `json:"state"`
	Context   dialog.Context `json:"context"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// RedisSessionRepository implements SessionRepository on a Redis client.
type RedisSessionRepository struct {
	rdb    redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisSessionRepository creates a repository. A zero ttl keeps sessions
// until they are deleted explicitly.
func NewRedisSessionRepository(rdb redis.UniversalClient, prefix string, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (r *RedisSessionRepository) key(id string) string {
	return r.prefix + "session:" + id
}

func (r *RedisSessionRepository) index() string {
	return r.prefix + "sessions:updated"
}

// Get loads a session by id.
func (r *RedisSessionRepository) Get(ctx context.Context, id string) (*dialog.Session, error) {
	raw, err := r.rdb.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errs.NewObjectNotFoundError("session", id)
		}
		return nil, err
	}

	var doc document
	if err = json.Unmarshal(raw, &doc); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("session document", err)
	}

	return dialog.RestoreSession(doc.ID, doc.State, doc.Context, doc.CreatedAt, doc.UpdatedAt)
}

// Save writes the document and its index entry in one MULTI block.
func (r *RedisSessionRepository) Save(ctx context.Context, session *dialog.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	raw, err := json.Marshal(document{
		ID:        session.ID(),
		State:     session.State(),
		Context:   session.Context(),
		CreatedAt: session.CreatedAt(),
		UpdatedAt: session.UpdatedAt(),
	})
	if err != nil {
		return err
	}

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.key(session.ID()), raw, r.ttl)
		pipe.ZAdd(ctx, r.index(), redis.Z{
			Score:  float64(session.UpdatedAt().Unix()),
			Member: session.ID(),
		})
		return nil
	})
	return err
}

// Delete removes the document and its index entry.
func (r *RedisSessionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.key(id))
		pipe.ZRem(ctx, r.index(), id)
		return nil
	})
	return err
}

// DeleteIdleSince removes sessions whose last update is before cutoff.
// Documents already expired by their TTL are only dropped from the index
// and not counted.
func (r *RedisSessionRepository) DeleteIdleSince(ctx context.Context, cutoff time.Time) (int64, error) {
	ids, err := r.rdb.ZRangeByScore(ctx, r.index(), &redis.ZRangeBy{
		Min: "-inf",
		Max: "(" + strconv.FormatInt(cutoff.Unix(), 10),
	}).Result()
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	keys := make([]string, len(ids))
	members := make([]any, len(ids))
	for i, id := range ids {
		keys[i] = r.key(id)
		members[i] = id
	}

	var deleted *redis.IntCmd
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(ctx, keys...)
		pipe.ZRem(ctx, r.index(), members...)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted.Val(), nil
}
