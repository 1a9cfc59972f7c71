// Package cache provides short-lived keyed state shared between processes:
// currently the distributed locks that keep background sweeps exclusive.
package cache

import (
	"context"
	"errors"

	"github.com/orris-inc/backoffice/internal/shared/id"
)

// ErrLockNotHeld is returned by Unlock when the key expired or belongs to
// another holder.
var ErrLockNotHeld = errors.New("lock not held")

// LockStore hands out TTL-bound exclusive locks. A lock that is never
// released frees itself when the TTL elapses.
type LockStore interface {
	// TryLock acquires key without waiting. ok is false when another holder
	// owns it; token identifies this holder for Unlock.
	TryLock(ctx context.Context, key string) (token string, ok bool, err error)
	Unlock(ctx context.Context, key, token string) error
}

func newLockToken() (string, error) {
	return id.Generate(24)
}
