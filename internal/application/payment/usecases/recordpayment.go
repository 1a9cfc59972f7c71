package usecases

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/orris-inc/backoffice/internal/application/common"
	"github.com/orris-inc/backoffice/internal/application/payment/dto"
	"github.com/orris-inc/backoffice/internal/domain/payment"
	"github.com/orris-inc/backoffice/internal/domain/subscription"
	"github.com/orris-inc/backoffice/internal/shared/authorization"
	"github.com/orris-inc/backoffice/internal/shared/db"
	"github.com/orris-inc/backoffice/internal/shared/logger"
)

// RecordPaymentCommand records money received or expected against a
// subscription. With Paid set the payment is settled in the same
// transaction, as if MarkPaymentPaid had followed.
type RecordPaymentCommand struct {
	Scope          authorization.Scope
	SubscriptionID uint
	Amount         decimal.Decimal
	Currency       string // empty uses the configured default
	Method         payment.Method
	TransactionID  string
	Notes          string
	Paid           bool
}

type RecordPaymentUseCase struct {
	notifiers
	paymentRepo      payment.Repository
	subscriptionRepo subscription.SubscriptionRepository
	historyRepo      subscription.HistoryRepository
	loader           *common.SubscriptionLoader
	txMgr            *db.TransactionManager
	defaultCurrency  string
	logger           logger.Interface
}

func NewRecordPaymentUseCase(
	paymentRepo payment.Repository,
	subscriptionRepo subscription.SubscriptionRepository,
	historyRepo subscription.HistoryRepository,
	loader *common.SubscriptionLoader,
	txMgr *db.TransactionManager,
	defaultCurrency string,
	logger logger.Interface,
) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{
		paymentRepo:      paymentRepo,
		subscriptionRepo: subscriptionRepo,
		historyRepo:      historyRepo,
		loader:           loader,
		txMgr:            txMgr,
		defaultCurrency:  defaultCurrency,
		logger:           logger,
	}
}

func (uc *RecordPaymentUseCase) Execute(ctx context.Context, cmd RecordPaymentCommand) (*dto.PaymentDTO, error) {
	currency := cmd.Currency
	if currency == "" {
		currency = uc.defaultCurrency
	}

	var (
		pc         *paymentContext
		subChanged bool
	)
	err := uc.txMgr.RunInTransaction(ctx, func(ctx context.Context) error {
		sub, c, err := uc.loader.Load(ctx, cmd.Scope, cmd.SubscriptionID, true)
		if err != nil {
			return err
		}
		if sub.Status().IsTerminal() {
			return payment.ErrSubscriptionClosed
		}

		p, err := payment.NewPayment(payment.NewPaymentParams{
			SubscriptionID: sub.ID(),
			ClientID:       sub.ClientID(),
			Amount:         cmd.Amount,
			Currency:       currency,
			Method:         cmd.Method,
			TransactionID:  cmd.TransactionID,
			Notes:          cmd.Notes,
			RecordedBy:     cmd.Scope.UserID,
		})
		if err != nil {
			return err
		}
		if cmd.Paid {
			if _, err := p.MarkAsPaid(""); err != nil {
				return err
			}
		}
		if err := uc.paymentRepo.Create(ctx, p); err != nil {
			return err
		}

		pc = &paymentContext{payment: p, subscription: sub, client: c}
		if !cmd.Paid {
			return nil
		}
		subChanged, err = settleSubscription(ctx, uc.subscriptionRepo, uc.historyRepo, pc,
			subscription.EventPaymentReceived, cmd.Scope.UserID, "",
			markPaid(ctx, uc.subscriptionRepo))
		return err
	})
	if err != nil {
		return nil, common.WrapError(uc.logger, "failed to record payment", err,
			"subscription_id", cmd.SubscriptionID,
		)
	}

	p := pc.payment
	uc.logger.Infow("payment recorded",
		"payment_id", p.ID(),
		"subscription_id", p.SubscriptionID(),
		"receipt_number", p.ReceiptNumber(),
		"amount", p.Amount().String(),
		"status", p.Status(),
	)

	result := dto.ToPaymentDTO(p)
	if cmd.Paid {
		uc.notifyReceipt(ctx, uc.logger, p, pc.client)
	}
	if subChanged {
		uc.notifySubscription(ctx, uc.logger, common.SubscriptionChange{
			Event:        subscription.EventPaymentReceived,
			Subscription: pc.subscription,
			Client:       pc.client,
		})
	}
	return result, nil
}
