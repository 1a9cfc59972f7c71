package handlers

import (
	"context"

	subdto "github.com/orris-inc/backoffice/internal/application/subscription/dto"
	"github.com/orris-inc/backoffice/internal/application/subscription/usecases"
)

// Use case interfaces for PlanHandler

type createPlanUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreatePlanCommand) (*subdto.PlanDTO, error)
}

type updatePlanUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdatePlanCommand) (*subdto.PlanDTO, error)
}

type getPlanUseCase interface {
	Execute(ctx context.Context, planID uint) (*subdto.PlanDTO, error)
}

type listPlansUseCase interface {
	Execute(ctx context.Context, query usecases.ListPlansQuery) (*usecases.ListPlansResult, error)
}

type setPlanActiveUseCase interface {
	Execute(ctx context.Context, planID uint, active bool) (*subdto.PlanDTO, error)
}
