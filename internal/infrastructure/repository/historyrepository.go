package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/backoffice/internal/domain/subscription"
	"github.com/orris-inc/backoffice/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/backoffice/internal/infrastructure/persistence/models"
	"github.com/orris-inc/backoffice/internal/shared/db"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Create(ctx context.Context, h *subscription.History) error {
	model, err := mappers.HistoryToModel(h)
	if err != nil {
		return err
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create subscription history: %w", err)
	}
	h.SetID(model.ID)
	return nil
}

// ListBySubscription returns entries oldest first.
func (r *HistoryRepository) ListBySubscription(ctx context.Context, subscriptionID uint) ([]*subscription.History, error) {
	var rows []*models.SubscriptionHistoryModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("subscription_id = ?", subscriptionID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list subscription history: %w", err)
	}
	return mappers.HistoriesToEntities(rows)
}
