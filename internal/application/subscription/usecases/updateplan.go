package usecases

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/orris-inc/backoffice/internal/application/common"
	"github.com/orris-inc/backoffice/internal/application/subscription/dto"
	"github.com/orris-inc/backoffice/internal/domain/subscription"
	"github.com/orris-inc/backoffice/internal/shared/logger"
)

// UpdatePlanCommand changes catalog fields. The billing cycle is fixed once
// a plan exists; existing subscriptions keep the amounts they were priced at
// until their next change or renewal.
type UpdatePlanCommand struct {
	PlanID       uint
	Name         *string
	Description  *string
	PricePerUser *decimal.Decimal
	MinUsers     *int
	MaxUsers     *int
	ModuleAccess map[string]bool
}

type UpdatePlanUseCase struct {
	planRepo subscription.PlanRepository
	logger   logger.Interface
}

func NewUpdatePlanUseCase(planRepo subscription.PlanRepository, logger logger.Interface) *UpdatePlanUseCase {
	return &UpdatePlanUseCase{planRepo: planRepo, logger: logger}
}

func (uc *UpdatePlanUseCase) Execute(ctx context.Context, cmd UpdatePlanCommand) (*dto.PlanDTO, error) {
	plan, err := getPlan(ctx, uc.planRepo, cmd.PlanID)
	if err != nil {
		return nil, common.WrapError(uc.logger, "failed to get plan", err, "plan_id", cmd.PlanID)
	}

	if cmd.Name != nil && strings.TrimSpace(*cmd.Name) != plan.Name() {
		exists, err := uc.planRepo.ExistsByName(ctx, strings.TrimSpace(*cmd.Name), plan.ID())
		if err != nil {
			return nil, common.WrapError(uc.logger, "failed to check plan name", err, "plan_id", cmd.PlanID)
		}
		if exists {
			return nil, common.WrapError(uc.logger, "failed to update plan", subscription.ErrPlanNameExists)
		}
	}

	if err := plan.Update(subscription.PlanChanges{
		Name:         cmd.Name,
		Description:  cmd.Description,
		PricePerUser: cmd.PricePerUser,
		MinUsers:     cmd.MinUsers,
		MaxUsers:     cmd.MaxUsers,
		ModuleAccess: cmd.ModuleAccess,
	}); err != nil {
		return nil, common.WrapError(uc.logger, "failed to update plan", err, "plan_id", cmd.PlanID)
	}

	if err := uc.planRepo.Update(ctx, plan); err != nil {
		return nil, common.WrapError(uc.logger, "failed to update plan", err, "plan_id", cmd.PlanID)
	}

	uc.logger.Infow("plan updated", "plan_id", plan.ID(), "price_per_user", plan.PricePerUser().String())
	return dto.ToPlanDTO(plan), nil
}

// SetPlanActiveUseCase activates or deactivates a plan. Inactive plans
// cannot be attached to new subscriptions but existing ones still renew.
type SetPlanActiveUseCase struct {
	planRepo subscription.PlanRepository
	logger   logger.Interface
}

func NewSetPlanActiveUseCase(planRepo subscription.PlanRepository, logger logger.Interface) *SetPlanActiveUseCase {
	return &SetPlanActiveUseCase{planRepo: planRepo, logger: logger}
}

func (uc *SetPlanActiveUseCase) Execute(ctx context.Context, planID uint, active bool) (*dto.PlanDTO, error) {
	plan, err := getPlan(ctx, uc.planRepo, planID)
	if err != nil {
		return nil, common.WrapError(uc.logger, "failed to get plan", err, "plan_id", planID)
	}

	if plan.IsActive() == active {
		return dto.ToPlanDTO(plan), nil
	}
	if active {
		plan.Activate()
	} else {
		plan.Deactivate()
	}

	if err := uc.planRepo.Update(ctx, plan); err != nil {
		return nil, common.WrapError(uc.logger, "failed to update plan", err, "plan_id", planID)
	}

	uc.logger.Infow("plan status changed", "plan_id", planID, "is_active", active)
	return dto.ToPlanDTO(plan), nil
}
