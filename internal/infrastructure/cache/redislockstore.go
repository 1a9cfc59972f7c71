package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// unlockScript deletes the key only when it still holds the caller's token.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLockStore implements LockStore with SET NX PX, so several worker
// processes sharing one Redis never sweep at the same time.
type RedisLockStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisLockStore(client *redis.Client, prefix string, ttl time.Duration) *RedisLockStore {
	return &RedisLockStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisLockStore) TryLock(ctx context.Context, key string) (string, bool, error) {
	token, err := newLockToken()
	if err != nil {
		return "", false, err
	}
	ok, err := s.client.SetNX(ctx, s.prefix+key, token, s.ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("failed to acquire lock %q: %w", key, err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

func (s *RedisLockStore) Unlock(ctx context.Context, key, token string) error {
	n, err := unlockScript.Run(ctx, s.client, []string{s.prefix + key}, token).Int()
	if err != nil {
		return fmt.Errorf("failed to release lock %q: %w", key, err)
	}
	if n == 0 {
		return ErrLockNotHeld
	}
	return nil
}
