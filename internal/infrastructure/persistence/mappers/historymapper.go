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

func HistoryToModel(entity *subscription.History) (*models.SubscriptionHistoryModel, error) {
	var metadata datatypes.JSON
	if md := entity.Metadata(); len(md) > 0 {
		data, err := json.Marshal(md)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal history metadata: %w", err)
		}
		metadata = data
	}

	var reason *string
	if r := entity.Reason(); r != "" {
		reason = &r
	}

	return &models.SubscriptionHistoryModel{
		ID:                 entity.ID(),
		SubscriptionID:     entity.SubscriptionID(),
		EventType:          string(entity.EventType()),
		OldPlanID:          entity.OldPlanID(),
		NewPlanID:          entity.NewPlanID(),
		PreviousEndDate:    entity.PreviousEnd(),
		NewEndDate:         entity.NewEnd(),
		SubscriptionStatus: entity.Status().String(),
		PaymentStatus:      entity.PaymentStatus().String(),
		FinalAmount:        entity.FinalAmount(),
		Reason:             reason,
		Metadata:           metadata,
		ActorID:            entity.ActorID(),
		CreatedAt:          entity.CreatedAt(),
	}, nil
}

func HistoryToEntity(model *models.SubscriptionHistoryModel) (*subscription.History, error) {
	var metadata map[string]interface{}
	if len(model.Metadata) > 0 {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history metadata: %w", err)
		}
	}

	var reason string
	if model.Reason != nil {
		reason = *model.Reason
	}

	return subscription.ReconstructHistory(
		model.ID,
		model.SubscriptionID,
		subscription.EventType(model.EventType),
		model.OldPlanID,
		model.NewPlanID,
		model.PreviousEndDate,
		model.NewEndDate,
		vo.SubscriptionStatus(model.SubscriptionStatus),
		vo.PaymentStatus(model.PaymentStatus),
		model.FinalAmount,
		reason,
		metadata,
		model.ActorID,
		model.CreatedAt,
	), nil
}

func HistoriesToEntities(items []*models.SubscriptionHistoryModel) ([]*subscription.History, error) {
	return mapper.MapPtrsWithID(items, HistoryToEntity, func(m *models.SubscriptionHistoryModel) uint { return m.ID })
}
