package usecases

import (
	"context"

	"github.com/orris-inc/backoffice/internal/application/common"
	"github.com/orris-inc/backoffice/internal/application/subscription/dto"
	"github.com/orris-inc/backoffice/internal/domain/subscription"
	"github.com/orris-inc/backoffice/internal/shared/authorization"
	"github.com/orris-inc/backoffice/internal/shared/logger"
)

type GetSubscriptionQuery struct {
	Scope          authorization.Scope
	SubscriptionID uint
}

type GetSubscriptionUseCase struct {
	loader *common.SubscriptionLoader
	logger logger.Interface
}

func NewGetSubscriptionUseCase(loader *common.SubscriptionLoader, logger logger.Interface) *GetSubscriptionUseCase {
	return &GetSubscriptionUseCase{loader: loader, logger: logger}
}

func (uc *GetSubscriptionUseCase) Execute(ctx context.Context, query GetSubscriptionQuery) (*dto.SubscriptionDTO, error) {
	sub, _, err := uc.loader.Load(ctx, query.Scope, query.SubscriptionID, false)
	if err != nil {
		return nil, common.WrapError(uc.logger, "failed to get subscription", err, "subscription_id", query.SubscriptionID)
	}
	return dto.ToSubscriptionDTO(sub), nil
}

type ListSubscriptionHistoryQuery struct {
	Scope          authorization.Scope
	SubscriptionID uint
}

type ListSubscriptionHistoryUseCase struct {
	loader      *common.SubscriptionLoader
	historyRepo subscription.HistoryRepository
	logger      logger.Interface
}

func NewListSubscriptionHistoryUseCase(
	loader *common.SubscriptionLoader,
	historyRepo subscription.HistoryRepository,
	logger logger.Interface,
) *ListSubscriptionHistoryUseCase {
	return &ListSubscriptionHistoryUseCase{loader: loader, historyRepo: historyRepo, logger: logger}
}

func (uc *ListSubscriptionHistoryUseCase) Execute(ctx context.Context, query ListSubscriptionHistoryQuery) ([]*dto.HistoryDTO, error) {
	if _, _, err := uc.loader.Load(ctx, query.Scope, query.SubscriptionID, false); err != nil {
		return nil, common.WrapError(uc.logger, "failed to get subscription", err, "subscription_id", query.SubscriptionID)
	}

	items, err := uc.historyRepo.ListBySubscription(ctx, query.SubscriptionID)
	if err != nil {
		return nil, common.WrapError(uc.logger, "failed to list subscription history", err, "subscription_id", query.SubscriptionID)
	}
	return dto.ToHistoryDTOs(items), nil
}
