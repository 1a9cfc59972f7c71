package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/orris-inc/backoffice/internal/domain/subscription"
	vo "github.com/orris-inc/backoffice/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/backoffice/internal/infrastructure/persistence/models"
	"github.com/orris-inc/backoffice/internal/shared/mapper"
)

func PlanToEntity(model *models.PlanModel) (*subscription.Plan, error) {
	if model == nil {
		return nil, nil
	}

	cycle, err := vo.ParseBillingCycle(model.BillingCycle)
	if err != nil {
		return nil, fmt.Errorf("plan %d: %w", model.ID, err)
	}

	modules := map[string]bool{}
	if len(model.ModuleAccess) > 0 {
		if err := json.Unmarshal(model.ModuleAccess, &modules); err != nil {
			return nil, fmt.Errorf("failed to unmarshal module access for plan %d: %w", model.ID, err)
		}
	}

	return subscription.ReconstructPlan(
		model.ID,
		model.Name,
		model.Description,
		model.PricePerUser,
		cycle,
		model.BillingMonths,
		model.MinUsers,
		model.MaxUsers,
		modules,
		model.IsActive,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func PlanToModel(entity *subscription.Plan) (*models.PlanModel, error) {
	modules, err := json.Marshal(entity.ModuleAccess())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal module access: %w", err)
	}
	return &models.PlanModel{
		ID:            entity.ID(),
		Name:          entity.Name(),
		Description:   entity.Description(),
		PricePerUser:  entity.PricePerUser(),
		BillingCycle:  entity.BillingCycle().String(),
		BillingMonths: entity.BillingMonths(),
		MinUsers:      entity.MinUsers(),
		MaxUsers:      entity.MaxUsers(),
		ModuleAccess:  datatypes.JSON(modules),
		IsActive:      entity.IsActive(),
		CreatedAt:     entity.CreatedAt(),
		UpdatedAt:     entity.UpdatedAt(),
	}, nil
}

func PlansToEntities(items []*models.PlanModel) ([]*subscription.Plan, error) {
	return mapper.MapPtrsWithID(items, PlanToEntity, func(m *models.PlanModel) uint { return m.ID })
}
