// Package goroutine launches background work that must never crash the process.
package goroutine

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/orris-inc/backoffice/internal/shared/logger"
)

// SafeGo runs fn in a goroutine, logging a panic with its stack instead of crashing.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
			}
		}()
		fn()
	}()
}

// Detach runs fn in a goroutine with a context that keeps ctx's values but
// not its cancellation, bounded by timeout. Used for post-commit
// notifications that must outlive the request.
func Detach(ctx context.Context, log logger.Interface, name string, timeout time.Duration, fn func(ctx context.Context)) {
	bg := context.WithoutCancel(ctx)
	SafeGo(log, name, func() {
		runCtx, cancel := context.WithTimeout(bg, timeout)
		defer cancel()
		fn(runCtx)
	})
}
