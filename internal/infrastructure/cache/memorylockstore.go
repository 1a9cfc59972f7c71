package cache

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const memoryLockCapacity = 1024

// MemoryLockStore is the single-process LockStore used when Redis is
// disabled. Entries expire after the configured TTL.
type MemoryLockStore struct {
	mu    sync.Mutex
	locks *expirable.LRU[string, string]
}

func NewMemoryLockStore(ttl time.Duration) *MemoryLockStore {
	return &MemoryLockStore{
		locks: expirable.NewLRU[string, string](memoryLockCapacity, nil, ttl),
	}
}

func (s *MemoryLockStore) TryLock(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, held := s.locks.Get(key); held {
		return "", false, nil
	}
	token, err := newLockToken()
	if err != nil {
		return "", false, err
	}
	s.locks.Add(key, token)
	return token, true, nil
}

func (s *MemoryLockStore) Unlock(_ context.Context, key, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, held := s.locks.Get(key)
	if !held || current != token {
		return ErrLockNotHeld
	}
	s.locks.Remove(key)
	return nil
}
