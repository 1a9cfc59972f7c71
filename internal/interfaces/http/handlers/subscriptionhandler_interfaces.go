package handlers

import (
	"context"

	subdto "github.com/orris-inc/backoffice/internal/application/subscription/dto"
	"github.com/orris-inc/backoffice/internal/application/subscription/usecases"
)

// Use case interfaces for SubscriptionHandler

type createSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateSubscriptionCommand) (*subdto.SubscriptionDTO, error)
}

type updateSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateSubscriptionCommand) (*subdto.SubscriptionDTO, error)
}

type cancelSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd usecases.CancelSubscriptionCommand) (*subdto.SubscriptionDTO, error)
}

type renewSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd usecases.RenewSubscriptionCommand) (*subdto.SubscriptionDTO, error)
}

type getSubscriptionUseCase interface {
	Execute(ctx context.Context, query usecases.GetSubscriptionQuery) (*subdto.SubscriptionDTO, error)
}

type listSubscriptionsUseCase interface {
	Execute(ctx context.Context, query usecases.ListSubscriptionsQuery) (*usecases.ListSubscriptionsResult, error)
}

type getSubscriptionStatsUseCase interface {
	Execute(ctx context.Context, query usecases.GetSubscriptionStatsQuery) (*subdto.StatsDTO, error)
}

type listSubscriptionHistoryUseCase interface {
	Execute(ctx context.Context, query usecases.ListSubscriptionHistoryQuery) ([]*subdto.HistoryDTO, error)
}

type expireSubscriptionsUseCase interface {
	Execute(ctx context.Context) (int64, error)
}
