// package redis provides Redis-backed implementations for state that
// should survive a single process: session tokens, and the pub/sub bridge
// used by the comment fan-out (see internal/notify).
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/codesye/studentcode-service/internal/apperrors"
	"github.com/codesye/studentcode-service/internal/config"
)

const sessionTTL = 24 * time.Hour

func NewClient(cfg config.Redis) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
	})
}

// SessionStore keeps opaque bearer tokens in Redis with a TTL, letting
// multiple instances share a session space.
type SessionStore struct {
	rdb *goredis.Client
}

func NewSessionStore(rdb *goredis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

func (s *SessionStore) Put(ctx context.Context, token string, userID string) error {
	const op = "internal.repository.redis.SessionStore.Put"

	if err := s.rdb.Set(ctx, sessionKey(token), userID, sessionTTL).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *SessionStore) Get(ctx context.Context, token string) (string, error) {
	const op = "internal.repository.redis.SessionStore.Get"

	userID, err := s.rdb.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", fmt.Errorf("%s: %w", op, apperrors.ErrInvalidToken)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	return userID, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	const op = "internal.repository.redis.SessionStore.Delete"

	if err := s.rdb.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func sessionKey(token string) string {
	return "session:" + token
}
