// Package bootstrap holds the start-up steps shared by the CLI commands and
// the worker binary.
package bootstrap

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/backoffice/internal/application/subscription/usecases"
	"github.com/orris-inc/backoffice/internal/infrastructure/cache"
	"github.com/orris-inc/backoffice/internal/infrastructure/config"
	"github.com/orris-inc/backoffice/internal/infrastructure/database"
	"github.com/orris-inc/backoffice/internal/infrastructure/repository"
	"github.com/orris-inc/backoffice/internal/infrastructure/scheduler"
	"github.com/orris-inc/backoffice/internal/shared/biztime"
	"github.com/orris-inc/backoffice/internal/shared/logger"
)

// Load reads configuration, initializes the global logger and the business
// timezone.
func Load(env string) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

// OpenDatabase initializes the shared connection pool.
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return database.Get(), nil
}

// NewExpiryUseCase builds the sweep use case directly on db.
func NewExpiryUseCase(db *gorm.DB, log logger.Interface) *usecases.ExpireSubscriptionsUseCase {
	return usecases.NewExpireSubscriptionsUseCase(repository.NewSubscriptionRepository(db, log), log)
}

// StartExpiryScheduler registers and starts the periodic expiry sweep. The
// returned stop func shuts the scheduler down and releases the lock store.
func StartExpiryScheduler(ctx context.Context, cfg *config.Config, db *gorm.DB, log logger.Interface) (func(), error) {
	locks, closeLocks, err := cache.NewLockStore(ctx, &cfg.Redis, cfg.Scheduler.LockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create lock store: %w", err)
	}

	manager, err := scheduler.NewSchedulerManager(locks, log.Named("scheduler"))
	if err != nil {
		_ = closeLocks()
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	job := NewExpiryUseCase(db, log)
	if err := manager.RegisterExpiryJob(job, cfg.Scheduler.ExpiryInterval, cfg.Scheduler.ExpiryTimeout); err != nil {
		_ = closeLocks()
		return nil, fmt.Errorf("failed to register expiry job: %w", err)
	}

	manager.Start()
	log.Infow("expiry scheduler started",
		"interval", cfg.Scheduler.ExpiryInterval,
		"timeout", cfg.Scheduler.ExpiryTimeout,
		"distributed_lock", cfg.Redis.Enabled,
	)

	return func() {
		if err := manager.Shutdown(); err != nil {
			log.Errorw("failed to shutdown scheduler", "error", err)
		}
		if err := closeLocks(); err != nil {
			log.Warnw("failed to close lock store", "error", err)
		}
	}, nil
}
