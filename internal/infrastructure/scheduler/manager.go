// Package scheduler runs the periodic billing jobs on gocron v2.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/orris-inc/backoffice/internal/infrastructure/cache"
	"github.com/orris-inc/backoffice/internal/shared/biztime"
	"github.com/orris-inc/backoffice/internal/shared/logger"
)

// BatchJob processes one batch and reports how many rows it touched.
type BatchJob interface {
	Execute(ctx context.Context) (int64, error)
}

// BatchJobFunc adapts a function to BatchJob.
type BatchJobFunc func(ctx context.Context) (int64, error)

func (f BatchJobFunc) Execute(ctx context.Context) (int64, error) {
	return f(ctx)
}

const expiryLockKey = "subscription-expiry"

// SchedulerManager owns the gocron scheduler. Jobs run in singleton mode
// inside this process and additionally take a LockStore lock so that only
// one process sweeps at a time.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	locks     cache.LockStore
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

func NewSchedulerManager(locks cache.LockStore, log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		locks:     locks,
		logger:    log,
	}, nil
}

// RegisterExpiryJob runs the subscription expiry sweep every interval,
// starting immediately, each run bounded by timeout.
func (m *SchedulerManager) RegisterExpiryJob(job BatchJob, interval, timeout time.Duration) error {
	if interval <= 0 {
		return errors.New("expiry interval must be positive")
	}
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			m.runExclusive(ctx, expiryLockKey, job)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("subscription", "expire"),
		gocron.WithName("subscription-expire"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered subscription expiry job", "interval", interval.String())
	return nil
}

// runExclusive executes job while holding key. A run that cannot take the
// lock is skipped: another process is already sweeping.
func (m *SchedulerManager) runExclusive(ctx context.Context, key string, job BatchJob) (int64, bool) {
	token, ok, err := m.locks.TryLock(ctx, key)
	if err != nil {
		m.logger.Errorw("failed to acquire job lock", "lock", key, "error", err)
		return 0, false
	}
	if !ok {
		m.logger.Debugw("job lock held elsewhere, skipping run", "lock", key)
		return 0, false
	}
	defer func() {
		if err := m.locks.Unlock(context.WithoutCancel(ctx), key, token); err != nil {
			m.logger.Warnw("failed to release job lock", "lock", key, "error", err)
		}
	}()

	startTime := biztime.NowUTC()
	count, err := job.Execute(ctx)
	if err != nil {
		m.logger.Errorw("scheduled job failed",
			"lock", key,
			"error", err,
			"duration", time.Since(startTime),
		)
		return 0, true
	}

	if count > 0 {
		m.logger.Infow("scheduled job processed rows",
			"lock", key,
			"count", count,
			"duration", time.Since(startTime),
		)
	} else {
		m.logger.Debugw("scheduled job found nothing to do",
			"lock", key,
			"duration", time.Since(startTime),
		)
	}
	return count, true
}

func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}
	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler started", "jobs", len(m.scheduler.Jobs()))
}

// Shutdown stops the scheduler and waits for running jobs.
func (m *SchedulerManager) Shutdown() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}
	if err := m.scheduler.Shutdown(); err != nil {
		m.logger.Errorw("failed to shutdown scheduler", "error", err)
		return err
	}
	m.started = false
	m.logger.Infow("scheduler stopped")
	return nil
}

func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}
