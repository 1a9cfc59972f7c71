package usecases

import (
	"context"

	"github.com/orris-inc/backoffice/internal/application/common"
	"github.com/orris-inc/backoffice/internal/application/subscription/dto"
	"github.com/orris-inc/backoffice/internal/domain/subscription"
	vo "github.com/orris-inc/backoffice/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/backoffice/internal/shared/logger"
	"github.com/orris-inc/backoffice/internal/shared/query"
)

type GetPlanUseCase struct {
	planRepo subscription.PlanRepository
	logger   logger.Interface
}

func NewGetPlanUseCase(planRepo subscription.PlanRepository, logger logger.Interface) *GetPlanUseCase {
	return &GetPlanUseCase{planRepo: planRepo, logger: logger}
}

func (uc *GetPlanUseCase) Execute(ctx context.Context, planID uint) (*dto.PlanDTO, error) {
	plan, err := getPlan(ctx, uc.planRepo, planID)
	if err != nil {
		return nil, common.WrapError(uc.logger, "failed to get plan", err, "plan_id", planID)
	}
	return dto.ToPlanDTO(plan), nil
}

type ListPlansQuery struct {
	IsActive     *bool
	BillingCycle *vo.BillingCycle
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}

type ListPlansResult struct {
	Plans    []*dto.PlanDTO `json:"plans"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

type ListPlansUseCase struct {
	planRepo subscription.PlanRepository
	logger   logger.Interface
}

func NewListPlansUseCase(planRepo subscription.PlanRepository, logger logger.Interface) *ListPlansUseCase {
	return &ListPlansUseCase{planRepo: planRepo, logger: logger}
}

func (uc *ListPlansUseCase) Execute(ctx context.Context, q ListPlansQuery) (*ListPlansResult, error) {
	filter := subscription.PlanFilter{
		BaseFilter:   query.NewBaseFilter(query.WithPage(q.Page, q.PageSize), query.WithSort(q.SortBy, q.SortOrder)),
		IsActive:     q.IsActive,
		BillingCycle: q.BillingCycle,
	}

	plans, total, err := uc.planRepo.List(ctx, filter)
	if err != nil {
		return nil, common.WrapError(uc.logger, "failed to list plans", err)
	}

	return &ListPlansResult{
		Plans:    dto.ToPlanDTOs(plans),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.Limit(),
	}, nil
}
