package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/backoffice/internal/domain/subscription"
	"github.com/orris-inc/backoffice/internal/shared/biztime"
	"github.com/orris-inc/backoffice/internal/shared/logger"
)

// ExpireSubscriptionsUseCase moves every active subscription whose end date
// has passed to expired. It runs as one set-based statement, so it is safe
// to repeat and to run while writes are in flight.
type ExpireSubscriptionsUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	logger           logger.Interface
}

func NewExpireSubscriptionsUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	logger logger.Interface,
) *ExpireSubscriptionsUseCase {
	return &ExpireSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// Execute returns the number of subscriptions marked as expired.
func (uc *ExpireSubscriptionsUseCase) Execute(ctx context.Context) (int64, error) {
	today := biztime.Today()

	count, err := uc.subscriptionRepo.ExpireEnded(ctx, today)
	if err != nil {
		uc.logger.Errorw("failed to expire subscriptions", "error", err, "as_of", biztime.FormatDate(today))
		return 0, fmt.Errorf("failed to expire subscriptions: %w", err)
	}

	if count > 0 {
		uc.logger.Infow("subscriptions expired", "count", count, "as_of", biztime.FormatDate(today))
	} else {
		uc.logger.Debugw("no subscriptions to expire", "as_of", biztime.FormatDate(today))
	}
	return count, nil
}
