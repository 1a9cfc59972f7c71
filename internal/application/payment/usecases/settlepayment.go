package usecases

import (
	"context"

	"github.com/orris-inc/backoffice/internal/application/common"
	"github.com/orris-inc/backoffice/internal/application/payment/dto"
	"github.com/orris-inc/backoffice/internal/domain/payment"
	"github.com/orris-inc/backoffice/internal/domain/subscription"
	vo "github.com/orris-inc/backoffice/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/backoffice/internal/shared/authorization"
	"github.com/orris-inc/backoffice/internal/shared/db"
	"github.com/orris-inc/backoffice/internal/shared/logger"
)

type MarkPaymentPaidCommand struct {
	Scope         authorization.Scope
	PaymentID     uint
	TransactionID string
}

// MarkPaymentPaidUseCase settles a pending or failed payment. The
// subscription's billing state follows in the same transaction; marking an
// already paid payment again changes nothing.
type MarkPaymentPaidUseCase struct {
	notifiers
	paymentRepo      payment.Repository
	subscriptionRepo subscription.SubscriptionRepository
	historyRepo      subscription.HistoryRepository
	loader           *common.SubscriptionLoader
	txMgr            *db.TransactionManager
	logger           logger.Interface
}

func NewMarkPaymentPaidUseCase(
	paymentRepo payment.Repository,
	subscriptionRepo subscription.SubscriptionRepository,
	historyRepo subscription.HistoryRepository,
	loader *common.SubscriptionLoader,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *MarkPaymentPaidUseCase {
	return &MarkPaymentPaidUseCase{
		paymentRepo:      paymentRepo,
		subscriptionRepo: subscriptionRepo,
		historyRepo:      historyRepo,
		loader:           loader,
		txMgr:            txMgr,
		logger:           logger,
	}
}

func (uc *MarkPaymentPaidUseCase) Execute(ctx context.Context, cmd MarkPaymentPaidCommand) (*dto.PaymentDTO, error) {
	var (
		pc         *paymentContext
		changed    bool
		subChanged bool
	)
	err := uc.txMgr.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		pc, err = loadPayment(ctx, uc.paymentRepo, uc.loader, cmd.Scope, cmd.PaymentID, true)
		if err != nil {
			return err
		}
		changed, err = pc.payment.MarkAsPaid(cmd.TransactionID)
		if err != nil || !changed {
			return err
		}
		if err := uc.paymentRepo.Update(ctx, pc.payment); err != nil {
			return err
		}
		subChanged, err = settleSubscription(ctx, uc.subscriptionRepo, uc.historyRepo, pc,
			subscription.EventPaymentReceived, cmd.Scope.UserID, "",
			markPaid(ctx, uc.subscriptionRepo))
		return err
	})
	if err != nil {
		return nil, common.WrapError(uc.logger, "failed to mark payment as paid", err, "payment_id", cmd.PaymentID)
	}

	p := pc.payment
	result := dto.ToPaymentDTO(p)
	if !changed {
		uc.logger.Debugw("payment already paid", "payment_id", p.ID())
		return result, nil
	}

	uc.logger.Infow("payment marked as paid",
		"payment_id", p.ID(),
		"subscription_id", p.SubscriptionID(),
		"subscription_updated", subChanged,
	)
	uc.notifyReceipt(ctx, uc.logger, p, pc.client)
	if subChanged {
		uc.notifySubscription(ctx, uc.logger, common.SubscriptionChange{
			Event:        subscription.EventPaymentReceived,
			Subscription: pc.subscription,
			Client:       pc.client,
		})
	}
	return result, nil
}

type MarkPaymentFailedCommand struct {
	Scope     authorization.Scope
	PaymentID uint
	Reason    string
}

// MarkPaymentFailedUseCase records a bounced or declined pending payment.
// A subscription still waiting on payment is marked failed with it.
type MarkPaymentFailedUseCase struct {
	notifiers
	paymentRepo      payment.Repository
	subscriptionRepo subscription.SubscriptionRepository
	historyRepo      subscription.HistoryRepository
	loader           *common.SubscriptionLoader
	txMgr            *db.TransactionManager
	logger           logger.Interface
}

func NewMarkPaymentFailedUseCase(
	paymentRepo payment.Repository,
	subscriptionRepo subscription.SubscriptionRepository,
	historyRepo subscription.HistoryRepository,
	loader *common.SubscriptionLoader,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *MarkPaymentFailedUseCase {
	return &MarkPaymentFailedUseCase{
		paymentRepo:      paymentRepo,
		subscriptionRepo: subscriptionRepo,
		historyRepo:      historyRepo,
		loader:           loader,
		txMgr:            txMgr,
		logger:           logger,
	}
}

func (uc *MarkPaymentFailedUseCase) Execute(ctx context.Context, cmd MarkPaymentFailedCommand) (*dto.PaymentDTO, error) {
	var (
		pc         *paymentContext
		subChanged bool
	)
	err := uc.txMgr.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		pc, err = loadPayment(ctx, uc.paymentRepo, uc.loader, cmd.Scope, cmd.PaymentID, true)
		if err != nil {
			return err
		}
		if err := pc.payment.MarkAsFailed(cmd.Reason); err != nil {
			return err
		}
		if err := uc.paymentRepo.Update(ctx, pc.payment); err != nil {
			return err
		}
		subChanged, err = settleSubscription(ctx, uc.subscriptionRepo, uc.historyRepo, pc,
			subscription.EventPaymentFailed, cmd.Scope.UserID, *pc.payment.FailureReason(),
			func(s *subscription.Subscription) error {
				if s.PaymentStatus() != vo.PaymentStatusPending {
					return nil
				}
				return s.SetPaymentStatus(vo.PaymentStatusFailed)
			})
		return err
	})
	if err != nil {
		return nil, common.WrapError(uc.logger, "failed to mark payment as failed", err, "payment_id", cmd.PaymentID)
	}

	uc.logger.Infow("payment marked as failed",
		"payment_id", pc.payment.ID(),
		"subscription_id", pc.payment.SubscriptionID(),
	)
	if subChanged {
		uc.notifySubscription(ctx, uc.logger, common.SubscriptionChange{
			Event:        subscription.EventPaymentFailed,
			Subscription: pc.subscription,
			Client:       pc.client,
		})
	}
	return dto.ToPaymentDTO(pc.payment), nil
}

type RefundPaymentCommand struct {
	Scope     authorization.Scope
	PaymentID uint
	Reason    string
}

// RefundPaymentUseCase reverses a paid payment and flags the subscription's
// billing state as refunded.
type RefundPaymentUseCase struct {
	notifiers
	paymentRepo      payment.Repository
	subscriptionRepo subscription.SubscriptionRepository
	historyRepo      subscription.HistoryRepository
	loader           *common.SubscriptionLoader
	txMgr            *db.TransactionManager
	logger           logger.Interface
}

func NewRefundPaymentUseCase(
	paymentRepo payment.Repository,
	subscriptionRepo subscription.SubscriptionRepository,
	historyRepo subscription.HistoryRepository,
	loader *common.SubscriptionLoader,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *RefundPaymentUseCase {
	return &RefundPaymentUseCase{
		paymentRepo:      paymentRepo,
		subscriptionRepo: subscriptionRepo,
		historyRepo:      historyRepo,
		loader:           loader,
		txMgr:            txMgr,
		logger:           logger,
	}
}

func (uc *RefundPaymentUseCase) Execute(ctx context.Context, cmd RefundPaymentCommand) (*dto.PaymentDTO, error) {
	var (
		pc         *paymentContext
		subChanged bool
	)
	err := uc.txMgr.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		pc, err = loadPayment(ctx, uc.paymentRepo, uc.loader, cmd.Scope, cmd.PaymentID, true)
		if err != nil {
			return err
		}
		if err := pc.payment.Refund(cmd.Reason); err != nil {
			return err
		}
		if err := uc.paymentRepo.Update(ctx, pc.payment); err != nil {
			return err
		}
		subChanged, err = settleSubscription(ctx, uc.subscriptionRepo, uc.historyRepo, pc,
			subscription.EventRefunded, cmd.Scope.UserID, *pc.payment.RefundReason(),
			func(s *subscription.Subscription) error {
				return s.SetPaymentStatus(vo.PaymentStatusRefunded)
			})
		return err
	})
	if err != nil {
		return nil, common.WrapError(uc.logger, "failed to refund payment", err, "payment_id", cmd.PaymentID)
	}

	uc.logger.Infow("payment refunded",
		"payment_id", pc.payment.ID(),
		"subscription_id", pc.payment.SubscriptionID(),
		"amount", pc.payment.Amount().String(),
	)
	if subChanged {
		uc.notifySubscription(ctx, uc.logger, common.SubscriptionChange{
			Event:        subscription.EventRefunded,
			Subscription: pc.subscription,
			Client:       pc.client,
		})
	}
	return dto.ToPaymentDTO(pc.payment), nil
}
