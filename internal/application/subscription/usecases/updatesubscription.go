package usecases

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orris-inc/backoffice/internal/application/common"
	"github.com/orris-inc/backoffice/internal/application/subscription/dto"
	"github.com/orris-inc/backoffice/internal/domain/client"
	"github.com/orris-inc/backoffice/internal/domain/subscription"
	vo "github.com/orris-inc/backoffice/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/backoffice/internal/shared/authorization"
	"github.com/orris-inc/backoffice/internal/shared/db"
	"github.com/orris-inc/backoffice/internal/shared/logger"
)

// UpdateSubscriptionCommand is a partial update; nil fields are unchanged.
type UpdateSubscriptionCommand struct {
	Scope          authorization.Scope
	SubscriptionID uint
	PlanID         *uint
	StartDate      *time.Time
	EndDate        *time.Time
	NumUsers       *int
	Discount       *decimal.Decimal
	PaymentStatus  *vo.PaymentStatus
	AutoRenew      *bool
}

type UpdateSubscriptionUseCase struct {
	notifier
	subscriptionRepo subscription.SubscriptionRepository
	planRepo         subscription.PlanRepository
	historyRepo      subscription.HistoryRepository
	loader           *common.SubscriptionLoader
	txMgr            *db.TransactionManager
	logger           logger.Interface
}

func NewUpdateSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	planRepo subscription.PlanRepository,
	historyRepo subscription.HistoryRepository,
	loader *common.SubscriptionLoader,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *UpdateSubscriptionUseCase {
	return &UpdateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		historyRepo:      historyRepo,
		loader:           loader,
		txMgr:            txMgr,
		logger:           logger,
	}
}

func (uc *UpdateSubscriptionUseCase) Execute(ctx context.Context, cmd UpdateSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	var (
		sub  *subscription.Subscription
		plan *subscription.Plan
		cl   *client.Client
		res  subscription.ChangeResult
	)

	err := uc.txMgr.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		sub, cl, err = uc.loader.Load(ctx, cmd.Scope, cmd.SubscriptionID, true)
		if err != nil {
			return err
		}

		planID := sub.PlanID()
		if cmd.PlanID != nil {
			planID = *cmd.PlanID
		}
		plan, err = getPlan(ctx, uc.planRepo, planID)
		if err != nil {
			return err
		}

		res, err = sub.ApplyChanges(subscription.Changes{
			Plan:          plan,
			StartDate:     cmd.StartDate,
			EndDate:       cmd.EndDate,
			NumUsers:      cmd.NumUsers,
			Discount:      cmd.Discount,
			PaymentStatus: cmd.PaymentStatus,
			AutoRenew:     cmd.AutoRenew,
		})
		if err != nil {
			return err
		}

		if (res.DatesChanged || res.BecameActive) && sub.Status().OccupiesDates() {
			if err := common.EnsureNoOverlap(ctx, uc.subscriptionRepo, sub); err != nil {
				return err
			}
		}

		if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
			return err
		}

		event := subscription.EventUpdated
		if res.PlanChanged {
			event = subscription.EventPlanChanged
		}
		err = recordHistory(ctx, uc.historyRepo, sub, event, cmd.Scope.UserID, func(h *subscription.History) {
			if res.PlanChanged {
				h.SetPlanChange(res.PreviousPlanID, sub.PlanID())
			}
			h.AddMetadata("repriced", res.Repriced)
			h.AddMetadata("dates_changed", res.DatesChanged)
		})
		if err != nil {
			return err
		}

		if res.BecamePaid {
			return recordHistory(ctx, uc.historyRepo, sub, subscription.EventPaymentReceived, cmd.Scope.UserID, nil)
		}
		return nil
	})
	if err != nil {
		return nil, common.WrapError(uc.logger, "failed to update subscription", err,
			"subscription_id", cmd.SubscriptionID,
		)
	}

	uc.logger.Infow("subscription updated",
		"subscription_id", sub.ID(),
		"plan_changed", res.PlanChanged,
		"repriced", res.Repriced,
		"dates_changed", res.DatesChanged,
		"payment_status", sub.PaymentStatus(),
		"version", sub.Version(),
	)

	result := dto.ToSubscriptionDTO(sub)
	event := subscription.EventUpdated
	switch {
	case res.PlanChanged:
		event = subscription.EventPlanChanged
	case res.BecamePaid:
		event = subscription.EventPaymentReceived
	}
	uc.notify(ctx, uc.logger, common.SubscriptionChange{
		Event:        event,
		Subscription: sub,
		Plan:         plan,
		Client:       cl,
	})
	return result, nil
}
