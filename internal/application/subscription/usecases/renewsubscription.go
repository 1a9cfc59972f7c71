package usecases

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orris-inc/backoffice/internal/application/common"
	"github.com/orris-inc/backoffice/internal/application/subscription/dto"
	"github.com/orris-inc/backoffice/internal/domain/client"
	"github.com/orris-inc/backoffice/internal/domain/subscription"
	"github.com/orris-inc/backoffice/internal/shared/authorization"
	"github.com/orris-inc/backoffice/internal/shared/db"
	"github.com/orris-inc/backoffice/internal/shared/logger"
)

type RenewSubscriptionCommand struct {
	Scope          authorization.Scope
	SubscriptionID uint
	Discount       *decimal.Decimal // nil resets the discount to zero
}

// RenewSubscriptionUseCase extends a subscription in place by one billing
// cycle at the plan's current price. The plan may have been deactivated
// since: renewal continues an existing contract.
type RenewSubscriptionUseCase struct {
	notifier
	subscriptionRepo subscription.SubscriptionRepository
	planRepo         subscription.PlanRepository
	historyRepo      subscription.HistoryRepository
	loader           *common.SubscriptionLoader
	txMgr            *db.TransactionManager
	logger           logger.Interface
}

func NewRenewSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	planRepo subscription.PlanRepository,
	historyRepo subscription.HistoryRepository,
	loader *common.SubscriptionLoader,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *RenewSubscriptionUseCase {
	return &RenewSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		historyRepo:      historyRepo,
		loader:           loader,
		txMgr:            txMgr,
		logger:           logger,
	}
}

func (uc *RenewSubscriptionUseCase) Execute(ctx context.Context, cmd RenewSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	var (
		sub         *subscription.Subscription
		plan        *subscription.Plan
		cl          *client.Client
		previousEnd time.Time
	)

	err := uc.txMgr.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		sub, cl, err = uc.loader.Load(ctx, cmd.Scope, cmd.SubscriptionID, true)
		if err != nil {
			return err
		}

		plan, err = getPlan(ctx, uc.planRepo, sub.PlanID())
		if err != nil {
			return err
		}

		previousEnd, err = sub.Renew(plan, cmd.Discount)
		if err != nil {
			return err
		}

		// an expired row may have been followed by another subscription,
		// so the whole renewed range is checked, not only the extension
		if err := common.EnsureNoOverlap(ctx, uc.subscriptionRepo, sub); err != nil {
			return err
		}

		if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
			return err
		}
		return recordHistory(ctx, uc.historyRepo, sub, subscription.EventRenewed, cmd.Scope.UserID, func(h *subscription.History) {
			h.SetPeriodChange(previousEnd, sub.EndDate())
		})
	})
	if err != nil {
		return nil, common.WrapError(uc.logger, "failed to renew subscription", err,
			"subscription_id", cmd.SubscriptionID,
		)
	}

	uc.logger.Infow("subscription renewed",
		"subscription_id", sub.ID(),
		"previous_end_date", previousEnd,
		"new_end_date", sub.EndDate(),
		"final_amount", sub.FinalAmount().String(),
	)

	result := dto.ToSubscriptionDTO(sub)
	uc.notify(ctx, uc.logger, common.SubscriptionChange{
		Event:        subscription.EventRenewed,
		Subscription: sub,
		Plan:         plan,
		Client:       cl,
	})
	return result, nil
}
