// Package adapters connects application notification contracts to the
// outbound email and HRMS sync clients.
package adapters

import (
	"context"

	"github.com/orris-inc/backoffice/internal/application/common"
	"github.com/orris-inc/backoffice/internal/domain/client"
	"github.com/orris-inc/backoffice/internal/domain/payment"
	"github.com/orris-inc/backoffice/internal/domain/subscription"
	"github.com/orris-inc/backoffice/internal/infrastructure/email"
	"github.com/orris-inc/backoffice/internal/infrastructure/hrmssync"
	"github.com/orris-inc/backoffice/internal/shared/biztime"
	"github.com/orris-inc/backoffice/internal/shared/logger"
)

// Mailer is implemented by email.SMTPEmailService.
type Mailer interface {
	SendSubscriptionCreated(n email.SubscriptionNotice) error
	SendSubscriptionRenewed(n email.SubscriptionNotice) error
	SendSubscriptionCancelled(n email.SubscriptionNotice) error
	SendPaymentReceipt(n email.PaymentNotice) error
}

// SnapshotPusher is implemented by hrmssync.Client.
type SnapshotPusher interface {
	Push(ctx context.Context, s hrmssync.Snapshot) error
}

// BillingNotifier fans committed billing events out to client email and the
// HRMS webhook. Either collaborator may be nil when it is not configured.
type BillingNotifier struct {
	mailer   Mailer
	hrms     SnapshotPusher
	currency string
	logger   logger.Interface
}

var (
	_ common.SubscriptionChangeNotifier = (*BillingNotifier)(nil)
	_ common.PaymentReceiptNotifier     = (*BillingNotifier)(nil)
)

func NewBillingNotifier(mailer Mailer, hrms SnapshotPusher, currency string, log logger.Interface) *BillingNotifier {
	return &BillingNotifier{
		mailer:   mailer,
		hrms:     hrms,
		currency: currency,
		logger:   log,
	}
}

// NotifySubscriptionChange pushes every change to HRMS so module access
// follows the subscription, and emails the client for created, renewed and
// cancelled events.
func (n *BillingNotifier) NotifySubscriptionChange(ctx context.Context, change common.SubscriptionChange) {
	sub := change.Subscription
	if sub == nil {
		return
	}

	if n.hrms != nil {
		if err := n.hrms.Push(ctx, snapshotOf(change)); err != nil {
			n.logger.Warnw("failed to push subscription snapshot",
				"error", err,
				"subscription_id", sub.ID(),
				"event", change.Event,
			)
		}
	}

	if n.mailer == nil || change.Client == nil {
		return
	}

	var send func(email.SubscriptionNotice) error
	switch change.Event {
	case subscription.EventCreated:
		send = n.mailer.SendSubscriptionCreated
	case subscription.EventRenewed:
		send = n.mailer.SendSubscriptionRenewed
	case subscription.EventCancelled:
		send = n.mailer.SendSubscriptionCancelled
	default:
		return
	}

	notice := email.SubscriptionNotice{
		To:             change.Client.Email(),
		ClientName:     change.Client.Name(),
		SubscriptionID: sub.ID(),
		StartDate:      sub.StartDate(),
		EndDate:        sub.EndDate(),
		NumUsers:       sub.NumUsers(),
		FinalAmount:    sub.FinalAmount().StringFixed(2),
		Currency:       n.currency,
		Reason:         change.Reason,
	}
	if change.Plan != nil {
		notice.PlanName = change.Plan.Name()
	}
	if err := send(notice); err != nil {
		n.logger.Warnw("failed to send subscription email",
			"error", err,
			"subscription_id", sub.ID(),
			"event", change.Event,
		)
		return
	}
	n.logger.Debugw("subscription email sent", "subscription_id", sub.ID(), "event", change.Event)
}

func (n *BillingNotifier) NotifyPaymentReceived(ctx context.Context, p *payment.Payment, c *client.Client) {
	if n.mailer == nil || p == nil || c == nil {
		return
	}

	notice := email.PaymentNotice{
		To:            c.Email(),
		ClientName:    c.Name(),
		ReceiptNumber: p.ReceiptNumber(),
		Amount:        p.Amount().StringFixed(2),
		Currency:      p.Currency(),
		Method:        p.Method().String(),
	}
	if p.PaidAt() != nil {
		notice.PaidAt = *p.PaidAt()
	}
	if err := n.mailer.SendPaymentReceipt(notice); err != nil {
		n.logger.Warnw("failed to send payment receipt",
			"error", err,
			"payment_id", p.ID(),
			"receipt_number", p.ReceiptNumber(),
		)
	}
}

func snapshotOf(change common.SubscriptionChange) hrmssync.Snapshot {
	sub := change.Subscription
	s := hrmssync.Snapshot{
		Event:          string(change.Event),
		ClientID:       sub.ClientID(),
		SubscriptionID: sub.ID(),
		PlanID:         sub.PlanID(),
		Status:         sub.Status().String(),
		PaymentStatus:  sub.PaymentStatus().String(),
		NumUsers:       sub.NumUsers(),
		StartDate:      biztime.FormatDate(sub.StartDate()),
		EndDate:        biztime.FormatDate(sub.EndDate()),
		OccurredAt:     biztime.NowUTC(),
	}
	if change.Plan != nil {
		s.ModuleAccess = change.Plan.ModuleAccess()
	}
	return s
}
