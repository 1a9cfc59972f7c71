package usecases

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/orris-inc/backoffice/internal/application/common"
	"github.com/orris-inc/backoffice/internal/application/subscription/dto"
	"github.com/orris-inc/backoffice/internal/domain/subscription"
	vo "github.com/orris-inc/backoffice/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/backoffice/internal/shared/logger"
)

type CreatePlanCommand struct {
	Name          string
	Description   string
	PricePerUser  decimal.Decimal
	BillingCycle  vo.BillingCycle
	BillingMonths int // zero derives it from BillingCycle
	MinUsers      int
	MaxUsers      int
	ModuleAccess  map[string]bool
}

type CreatePlanUseCase struct {
	planRepo subscription.PlanRepository
	logger   logger.Interface
}

func NewCreatePlanUseCase(planRepo subscription.PlanRepository, logger logger.Interface) *CreatePlanUseCase {
	return &CreatePlanUseCase{planRepo: planRepo, logger: logger}
}

func (uc *CreatePlanUseCase) Execute(ctx context.Context, cmd CreatePlanCommand) (*dto.PlanDTO, error) {
	plan, err := subscription.NewPlan(subscription.NewPlanParams{
		Name:          cmd.Name,
		Description:   cmd.Description,
		PricePerUser:  cmd.PricePerUser,
		BillingCycle:  cmd.BillingCycle,
		BillingMonths: cmd.BillingMonths,
		MinUsers:      cmd.MinUsers,
		MaxUsers:      cmd.MaxUsers,
		ModuleAccess:  cmd.ModuleAccess,
	})
	if err != nil {
		return nil, common.WrapError(uc.logger, "failed to create plan", err)
	}

	exists, err := uc.planRepo.ExistsByName(ctx, plan.Name(), 0)
	if err != nil {
		return nil, common.WrapError(uc.logger, "failed to check plan name", err, "name", plan.Name())
	}
	if exists {
		return nil, common.WrapError(uc.logger, "failed to create plan", subscription.ErrPlanNameExists)
	}

	if err := uc.planRepo.Create(ctx, plan); err != nil {
		return nil, common.WrapError(uc.logger, "failed to create plan", err, "name", plan.Name())
	}

	uc.logger.Infow("plan created",
		"plan_id", plan.ID(),
		"name", plan.Name(),
		"billing_cycle", plan.BillingCycle(),
		"price_per_user", plan.PricePerUser().String(),
	)
	return dto.ToPlanDTO(plan), nil
}
