package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/backoffice/internal/domain/subscription"
	"github.com/orris-inc/backoffice/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/backoffice/internal/infrastructure/persistence/models"
	"github.com/orris-inc/backoffice/internal/shared/db"
	"github.com/orris-inc/backoffice/internal/shared/logger"
)

var planSortColumns = map[string]string{
	"id":             "id",
	"name":           "name",
	"price_per_user": "price_per_user",
	"billing_months": "billing_months",
	"created_at":     "created_at",
}

type PlanRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPlanRepository(db *gorm.DB, logger logger.Interface) subscription.PlanRepository {
	return &PlanRepositoryImpl{db: db, logger: logger}
}

func (r *PlanRepositoryImpl) Create(ctx context.Context, plan *subscription.Plan) error {
	model, err := mappers.PlanToModel(plan)
	if err != nil {
		return err
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create plan", "name", model.Name, "error", err)
		return fmt.Errorf("failed to create plan: %w", err)
	}
	if err := plan.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set plan ID: %w", err)
	}
	r.logger.Infow("plan created", "id", model.ID, "name", model.Name)
	return nil
}

func (r *PlanRepositoryImpl) GetByID(ctx context.Context, id uint) (*subscription.Plan, error) {
	var model models.PlanModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get plan by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return mappers.PlanToEntity(&model)
}

func (r *PlanRepositoryImpl) Update(ctx context.Context, plan *subscription.Plan) error {
	model, err := mappers.PlanToModel(plan)
	if err != nil {
		return err
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.PlanModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":           model.Name,
			"description":    model.Description,
			"price_per_user": model.PricePerUser,
			"min_users":      model.MinUsers,
			"max_users":      model.MaxUsers,
			"module_access":  model.ModuleAccess,
			"is_active":      model.IsActive,
			"updated_at":     model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update plan", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update plan: %w", result.Error)
	}

	// Note: RowsAffected may be 0 when updated values are identical to existing values.

	r.logger.Infow("plan updated", "id", model.ID)
	return nil
}

func (r *PlanRepositoryImpl) List(ctx context.Context, filter subscription.PlanFilter) ([]*subscription.Plan, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.PlanModel{})
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.BillingCycle != nil {
		query = query.Where("billing_cycle = ?", filter.BillingCycle.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count plans: %w", err)
	}

	var rows []*models.PlanModel
	if err := query.
		Order(filter.OrderClause(planSortColumns, "id ASC")).
		Scopes(db.Paginate(filter.Offset(), filter.Limit())).
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list plans", "error", err)
		return nil, 0, fmt.Errorf("failed to list plans: %w", err)
	}

	plans, err := mappers.PlansToEntities(rows)
	if err != nil {
		return nil, 0, err
	}
	return plans, total, nil
}

func (r *PlanRepositoryImpl) ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.PlanModel{}).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check plan name: %w", err)
	}
	return count > 0, nil
}
