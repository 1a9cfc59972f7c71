package usecases

import (
	"context"
	"time"

	"github.com/orris-inc/backoffice/internal/application/common"
	"github.com/orris-inc/backoffice/internal/domain/client"
	"github.com/orris-inc/backoffice/internal/domain/payment"
	"github.com/orris-inc/backoffice/internal/domain/subscription"
	"github.com/orris-inc/backoffice/internal/shared/authorization"
	apperrors "github.com/orris-inc/backoffice/internal/shared/errors"
	"github.com/orris-inc/backoffice/internal/shared/goroutine"
	"github.com/orris-inc/backoffice/internal/shared/logger"
)

const notifyTimeout = 30 * time.Second

// notifiers is embedded by the use cases that settle payments. Both
// collaborators are optional and run after commit.
type notifiers struct {
	receiptNotifier      common.PaymentReceiptNotifier
	subscriptionNotifier common.SubscriptionChangeNotifier
}

// SetReceiptNotifier sets the payment receipt notifier (optional).
func (n *notifiers) SetReceiptNotifier(rn common.PaymentReceiptNotifier) {
	n.receiptNotifier = rn
}

// SetSubscriptionNotifier sets the subscription change notifier (optional).
func (n *notifiers) SetSubscriptionNotifier(sn common.SubscriptionChangeNotifier) {
	n.subscriptionNotifier = sn
}

func (n *notifiers) notifyReceipt(ctx context.Context, log logger.Interface, p *payment.Payment, c *client.Client) {
	if n.receiptNotifier == nil || c == nil {
		return
	}
	rn := n.receiptNotifier
	goroutine.Detach(ctx, log, "payment-receipt", notifyTimeout, func(ctx context.Context) {
		rn.NotifyPaymentReceived(ctx, p, c)
	})
}

func (n *notifiers) notifySubscription(ctx context.Context, log logger.Interface, change common.SubscriptionChange) {
	if n.subscriptionNotifier == nil {
		return
	}
	sn := n.subscriptionNotifier
	goroutine.Detach(ctx, log, "subscription-"+string(change.Event), notifyTimeout, func(ctx context.Context) {
		sn.NotifySubscriptionChange(ctx, change)
	})
}

// paymentContext is a payment with the subscription and client it settles.
type paymentContext struct {
	payment      *payment.Payment
	subscription *subscription.Subscription
	client       *client.Client
}

// loadPayment resolves a payment and applies the caller's scope through its
// subscription. forUpdate locks the client row for the transaction.
func loadPayment(
	ctx context.Context,
	payments payment.Repository,
	loader *common.SubscriptionLoader,
	scope authorization.Scope,
	id uint,
	forUpdate bool,
) (*paymentContext, error) {
	p, err := payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.NewNotFoundError("payment not found").WithCause(payment.ErrPaymentNotFound)
	}
	sub, c, err := loader.Load(ctx, scope, p.SubscriptionID(), forUpdate)
	if err != nil {
		return nil, err
	}
	return &paymentContext{payment: p, subscription: sub, client: c}, nil
}

// settleSubscription applies fn to the subscription when it is still open
// and persists it with a ledger entry if fn changed it. Cancelled
// subscriptions keep their last billing state.
func settleSubscription(
	ctx context.Context,
	subs subscription.SubscriptionRepository,
	history subscription.HistoryRepository,
	pc *paymentContext,
	event subscription.EventType,
	actorID uint,
	reason string,
	fn func(s *subscription.Subscription) error,
) (changed bool, err error) {
	sub := pc.subscription
	if sub.Status().IsTerminal() {
		return false, nil
	}
	before := sub.Version()
	if err := fn(sub); err != nil {
		return false, err
	}
	if sub.Version() == before {
		return false, nil
	}
	if err := subs.Update(ctx, sub); err != nil {
		return false, err
	}

	h, err := subscription.NewHistory(sub, event, actorID)
	if err != nil {
		return false, err
	}
	h.AddMetadata("payment_id", pc.payment.ID())
	h.AddMetadata("receipt_number", pc.payment.ReceiptNumber())
	if reason != "" {
		h.SetReason(reason)
	}
	if err := history.Create(ctx, h); err != nil {
		return false, err
	}
	return true, nil
}

// markPaid settles the subscription's billing state. A trial promoted to
// active starts blocking its dates, so the overlap check runs again.
func markPaid(ctx context.Context, subs subscription.SubscriptionRepository) func(s *subscription.Subscription) error {
	return func(s *subscription.Subscription) error {
		becameActive, err := s.MarkPaid()
		if err != nil || !becameActive {
			return err
		}
		return common.EnsureNoOverlap(ctx, subs, s)
	}
}
