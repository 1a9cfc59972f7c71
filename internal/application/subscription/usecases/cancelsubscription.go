package usecases

import (
	"context"
	"strings"

	"github.com/orris-inc/backoffice/internal/application/common"
	"github.com/orris-inc/backoffice/internal/application/subscription/dto"
	"github.com/orris-inc/backoffice/internal/domain/client"
	"github.com/orris-inc/backoffice/internal/domain/subscription"
	"github.com/orris-inc/backoffice/internal/shared/authorization"
	"github.com/orris-inc/backoffice/internal/shared/db"
	"github.com/orris-inc/backoffice/internal/shared/logger"
)

type CancelSubscriptionCommand struct {
	Scope          authorization.Scope
	SubscriptionID uint
	Reason         string
}

type CancelSubscriptionUseCase struct {
	notifier
	subscriptionRepo subscription.SubscriptionRepository
	planRepo         subscription.PlanRepository
	historyRepo      subscription.HistoryRepository
	loader           *common.SubscriptionLoader
	txMgr            *db.TransactionManager
	logger           logger.Interface
}

func NewCancelSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	planRepo subscription.PlanRepository,
	historyRepo subscription.HistoryRepository,
	loader *common.SubscriptionLoader,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		historyRepo:      historyRepo,
		loader:           loader,
		txMgr:            txMgr,
		logger:           logger,
	}
}

func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, cmd CancelSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	reason := strings.TrimSpace(cmd.Reason)
	var (
		sub *subscription.Subscription
		cl  *client.Client
	)

	err := uc.txMgr.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		sub, cl, err = uc.loader.Load(ctx, cmd.Scope, cmd.SubscriptionID, true)
		if err != nil {
			return err
		}

		if err := sub.Cancel(reason); err != nil {
			return err
		}

		if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
			return err
		}
		return recordHistory(ctx, uc.historyRepo, sub, subscription.EventCancelled, cmd.Scope.UserID, func(h *subscription.History) {
			h.SetReason(reason)
		})
	})
	if err != nil {
		return nil, common.WrapError(uc.logger, "failed to cancel subscription", err,
			"subscription_id", cmd.SubscriptionID,
		)
	}

	uc.logger.Infow("subscription cancelled",
		"subscription_id", sub.ID(),
		"client_id", sub.ClientID(),
		"reason", reason,
	)

	result := dto.ToSubscriptionDTO(sub)
	// the plan only decorates the notice
	plan, err := uc.planRepo.GetByID(ctx, sub.PlanID())
	if err != nil {
		uc.logger.Warnw("failed to load plan for cancellation notice", "error", err, "plan_id", sub.PlanID())
	}
	uc.notify(ctx, uc.logger, common.SubscriptionChange{
		Event:        subscription.EventCancelled,
		Subscription: sub,
		Plan:         plan,
		Client:       cl,
		Reason:       reason,
	})
	return result, nil
}
