package usecases

import (
	"context"

	"github.com/orris-inc/backoffice/internal/application/common"
	"github.com/orris-inc/backoffice/internal/application/subscription/dto"
	"github.com/orris-inc/backoffice/internal/domain/subscription"
	vo "github.com/orris-inc/backoffice/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/backoffice/internal/shared/authorization"
	"github.com/orris-inc/backoffice/internal/shared/logger"
	"github.com/orris-inc/backoffice/internal/shared/query"
)

type ListSubscriptionsQuery struct {
	Scope         authorization.Scope
	ClientID      *uint
	PlanID        *uint
	Status        *vo.SubscriptionStatus
	PaymentStatus *vo.PaymentStatus
	Page          int
	PageSize      int
	SortBy        string
	SortOrder     string
}

type ListSubscriptionsResult struct {
	Subscriptions []*dto.SubscriptionDTO `json:"subscriptions"`
	Total         int64                  `json:"total"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"page_size"`
}

type ListSubscriptionsUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	logger           logger.Interface
}

func NewListSubscriptionsUseCase(subscriptionRepo subscription.SubscriptionRepository, logger logger.Interface) *ListSubscriptionsUseCase {
	return &ListSubscriptionsUseCase{subscriptionRepo: subscriptionRepo, logger: logger}
}

func (uc *ListSubscriptionsUseCase) Execute(ctx context.Context, q ListSubscriptionsQuery) (*ListSubscriptionsResult, error) {
	filter := subscription.SubscriptionFilter{
		BaseFilter:    query.NewBaseFilter(query.WithPage(q.Page, q.PageSize), query.WithSort(q.SortBy, q.SortOrder)),
		OwnerID:       q.Scope.OwnerID(),
		ClientID:      q.ClientID,
		PlanID:        q.PlanID,
		Status:        q.Status,
		PaymentStatus: q.PaymentStatus,
	}

	items, total, err := uc.subscriptionRepo.List(ctx, filter)
	if err != nil {
		return nil, common.WrapError(uc.logger, "failed to list subscriptions", err)
	}

	return &ListSubscriptionsResult{
		Subscriptions: dto.ToSubscriptionDTOs(items),
		Total:         total,
		Page:          filter.Page,
		PageSize:      filter.Limit(),
	}, nil
}

type GetSubscriptionStatsQuery struct {
	Scope authorization.Scope
}

type GetSubscriptionStatsUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	logger           logger.Interface
}

func NewGetSubscriptionStatsUseCase(subscriptionRepo subscription.SubscriptionRepository, logger logger.Interface) *GetSubscriptionStatsUseCase {
	return &GetSubscriptionStatsUseCase{subscriptionRepo: subscriptionRepo, logger: logger}
}

func (uc *GetSubscriptionStatsUseCase) Execute(ctx context.Context, q GetSubscriptionStatsQuery) (*dto.StatsDTO, error) {
	stats, err := uc.subscriptionRepo.GetStats(ctx, q.Scope.OwnerID())
	if err != nil {
		return nil, common.WrapError(uc.logger, "failed to get subscription stats", err)
	}
	return dto.ToStatsDTO(stats), nil
}
