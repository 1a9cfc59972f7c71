package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/orris-inc/backoffice/internal/application/common"
	"github.com/orris-inc/backoffice/internal/domain/subscription"
	"github.com/orris-inc/backoffice/internal/shared/goroutine"
	"github.com/orris-inc/backoffice/internal/shared/logger"
)

const notifyTimeout = 30 * time.Second

// notifier is embedded by the lifecycle use cases; the notifier is optional.
type notifier struct {
	subscriptionNotifier common.SubscriptionChangeNotifier
}

// SetSubscriptionNotifier sets the subscription change notifier (optional).
func (n *notifier) SetSubscriptionNotifier(sn common.SubscriptionChangeNotifier) {
	n.subscriptionNotifier = sn
}

// notify must be called after the transaction has committed.
func (n *notifier) notify(ctx context.Context, log logger.Interface, change common.SubscriptionChange) {
	if n.subscriptionNotifier == nil {
		return
	}
	sn := n.subscriptionNotifier
	goroutine.Detach(ctx, log, "subscription-"+string(change.Event), notifyTimeout, func(ctx context.Context) {
		sn.NotifySubscriptionChange(ctx, change)
	})
}

// recordHistory appends a ledger row for sub after the event was applied.
func recordHistory(
	ctx context.Context,
	repo subscription.HistoryRepository,
	sub *subscription.Subscription,
	event subscription.EventType,
	actorID uint,
	decorate func(h *subscription.History),
) error {
	h, err := subscription.NewHistory(sub, event, actorID)
	if err != nil {
		return err
	}
	if decorate != nil {
		decorate(h)
	}
	return repo.Create(ctx, h)
}

func getPlan(ctx context.Context, repo subscription.PlanRepository, id uint) (*subscription.Plan, error) {
	plan, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, fmt.Errorf("%w: id %d", subscription.ErrPlanNotFound, id)
	}
	return plan, nil
}
