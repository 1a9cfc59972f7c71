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

type CreateSubscriptionCommand struct {
	Scope         authorization.Scope
	ClientID      uint
	PlanID        uint
	NumUsers      int
	StartDate     *time.Time // nil means today in the business timezone
	EndDate       *time.Time // nil means start plus the plan's billing months
	Discount      decimal.Decimal
	PaymentStatus vo.PaymentStatus
	Trial         bool
	AutoRenew     bool
}

type CreateSubscriptionUseCase struct {
	notifier
	subscriptionRepo subscription.SubscriptionRepository
	planRepo         subscription.PlanRepository
	historyRepo      subscription.HistoryRepository
	loader           *common.SubscriptionLoader
	txMgr            *db.TransactionManager
	logger           logger.Interface
}

func NewCreateSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	planRepo subscription.PlanRepository,
	historyRepo subscription.HistoryRepository,
	loader *common.SubscriptionLoader,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		historyRepo:      historyRepo,
		loader:           loader,
		txMgr:            txMgr,
		logger:           logger,
	}
}

func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, cmd CreateSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	var (
		sub  *subscription.Subscription
		plan *subscription.Plan
		cl   *client.Client
	)

	err := uc.txMgr.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		cl, err = uc.loader.LoadClient(ctx, cmd.Scope, cmd.ClientID, true)
		if err != nil {
			return err
		}
		if err := cl.EnsureCanSubscribe(); err != nil {
			return err
		}

		plan, err = getPlan(ctx, uc.planRepo, cmd.PlanID)
		if err != nil {
			return err
		}

		sub, err = subscription.NewSubscription(subscription.NewSubscriptionParams{
			ClientID:      cmd.ClientID,
			Plan:          plan,
			NumUsers:      cmd.NumUsers,
			StartDate:     cmd.StartDate,
			EndDate:       cmd.EndDate,
			Discount:      cmd.Discount,
			PaymentStatus: cmd.PaymentStatus,
			Trial:         cmd.Trial,
			AutoRenew:     cmd.AutoRenew,
			CreatedBy:     cmd.Scope.UserID,
		})
		if err != nil {
			return err
		}

		if sub.NeedsOverlapCheck() {
			if err := common.EnsureNoOverlap(ctx, uc.subscriptionRepo, sub); err != nil {
				return err
			}
		}

		if err := uc.subscriptionRepo.Create(ctx, sub); err != nil {
			return err
		}
		return recordHistory(ctx, uc.historyRepo, sub, subscription.EventCreated, cmd.Scope.UserID, nil)
	})
	if err != nil {
		return nil, common.WrapError(uc.logger, "failed to create subscription", err,
			"client_id", cmd.ClientID,
			"plan_id", cmd.PlanID,
		)
	}

	uc.logger.Infow("subscription created",
		"subscription_id", sub.ID(),
		"client_id", sub.ClientID(),
		"plan_id", sub.PlanID(),
		"start_date", sub.StartDate(),
		"end_date", sub.EndDate(),
		"final_amount", sub.FinalAmount().String(),
	)

	result := dto.ToSubscriptionDTO(sub)
	uc.notify(ctx, uc.logger, common.SubscriptionChange{
		Event:        subscription.EventCreated,
		Subscription: sub,
		Plan:         plan,
		Client:       cl,
	})
	return result, nil
}
