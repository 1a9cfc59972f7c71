package common

import (
	"context"

	"github.com/orris-inc/backoffice/internal/domain/client"
	"github.com/orris-inc/backoffice/internal/domain/payment"
	"github.com/orris-inc/backoffice/internal/domain/subscription"
)

// SubscriptionChange describes a committed lifecycle event.
type SubscriptionChange struct {
	Event        subscription.EventType
	Subscription *subscription.Subscription
	Plan         *subscription.Plan
	Client       *client.Client
	Reason       string
}

// SubscriptionChangeNotifier receives events after commit. Implementations
// own their error handling; a failed notification never fails the write.
type SubscriptionChangeNotifier interface {
	NotifySubscriptionChange(ctx context.Context, change SubscriptionChange)
}

type PaymentReceiptNotifier interface {
	NotifyPaymentReceived(ctx context.Context, p *payment.Payment, c *client.Client)
}
